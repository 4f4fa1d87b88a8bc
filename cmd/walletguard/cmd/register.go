package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wallet-guard/walletguard/internal/service"
)

var registerPassword string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the primary user",
	Long: `Register the primary user with a password.

Only one primary user can exist; registering twice fails. The password is
taken from --password, or from the WALLETGUARD_PASSWORD environment
variable when the flag is absent.

Security note: a password passed via --password appears in shell history.
Prefer the environment variable:
  WALLETGUARD_PASSWORD="$PW" walletguard register`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "password for the primary user")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	password := registerPassword
	if password == "" {
		password = os.Getenv("WALLETGUARD_PASSWORD")
	}
	if password == "" {
		return errors.New("password required: use --password or WALLETGUARD_PASSWORD")
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.identity.RegisterUser(ctx, password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyRegistered) {
			return errors.New("a primary user is already registered")
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	fmt.Printf("User registered: %s\n", u.ID())
	return nil
}

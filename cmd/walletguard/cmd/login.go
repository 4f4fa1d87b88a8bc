package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wallet-guard/walletguard/internal/service"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a password",
	Long: `Authenticate the primary user with a password and open a session.

A wrong password counts toward the lockout limit. When the limit is
reached, authentication is blocked for the configured block duration and
attempts during the block are ignored entirely.

The password is taken from --password, or from the WALLETGUARD_PASSWORD
environment variable when the flag is absent.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password to authenticate with")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	password := loginPassword
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

	desc, err := a.identity.AuthenticateUser(ctx, password)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPassword) {
			return errors.New("password must not be empty")
		}
		return fmt.Errorf("authentication failed: %w", err)
	}
	if desc == nil {
		if a.identity.IsAuthenticationBlocked(ctx) {
			return errors.New("authentication denied: too many failed attempts, try again later")
		}
		return errors.New("authentication denied: wrong password")
	}

	fmt.Printf("Authenticated: session %s\n", desc.SessionID)
	return nil
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wallet-guard/walletguard/internal/domain/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the active session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.identity.Logout(ctx); err != nil {
		if errors.Is(err, session.ErrSessionIsNotActive) {
			return errors.New("no active session")
		}
		return fmt.Errorf("failed to log out: %w", err)
	}

	fmt.Println("Logged out.")
	return nil
}

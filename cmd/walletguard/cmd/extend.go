package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wallet-guard/walletguard/internal/domain/session"
)

var extendCmd = &cobra.Command{
	Use:   "extend",
	Short: "Renew the active session",
	Long: `Renew the active session, restarting its validity window from now.

Fails when no session is active or the session has already expired.`,
	RunE: runExtend,
}

func init() {
	rootCmd.AddCommand(extendCmd)
}

func runExtend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.identity.ExtendSession(ctx); err != nil {
		if errors.Is(err, session.ErrSessionIsNotActive) {
			return errors.New("no active session to extend")
		}
		return fmt.Errorf("failed to extend session: %w", err)
	}

	fmt.Println("Session extended.")
	return nil
}

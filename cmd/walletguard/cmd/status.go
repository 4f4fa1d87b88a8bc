package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wallet-guard/walletguard/internal/domain/gatekeeper"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show registration, session, and lockout state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.identity.Policy(ctx)
	if err != nil {
		if errors.Is(err, gatekeeper.ErrGatekeeperNotFound) {
			fmt.Println("Gatekeeper: not provisioned (run 'walletguard provision')")
			return nil
		}
		return fmt.Errorf("failed to read gatekeeper: %w", err)
	}

	now := a.identity.Now()

	fmt.Println("Gatekeeper: provisioned")
	fmt.Printf("  Session duration:    %s\n", p.SessionDuration)
	fmt.Printf("  Max failed attempts: %d\n", p.MaxFailedAttempts)
	fmt.Printf("  Block duration:      %s\n", p.BlockDuration)
	fmt.Printf("User registered:  %t\n", a.identity.IsUserRegistered(ctx))
	fmt.Printf("Authenticated:    %t\n", a.identity.IsUserAuthenticated(ctx, now))
	fmt.Printf("Login blocked:    %t\n", a.identity.IsAuthenticationBlocked(ctx))
	return nil
}

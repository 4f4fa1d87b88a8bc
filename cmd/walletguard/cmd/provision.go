package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	provisionSessionDuration time.Duration
	provisionMaxAttempts     int
	provisionBlockDuration   time.Duration
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create the gatekeeper with an authentication policy",
	Long: `Create and persist the gatekeeper that guards authentication.

The policy values default to the configuration file (gatekeeper section)
and can be overridden per flag. Provisioning an already provisioned store
replaces the gatekeeper and clears any session or lockout state.

Examples:
  walletguard provision
  walletguard provision --session-duration 10m --max-attempts 3 --block-duration 30s`,
	RunE: runProvision,
}

func init() {
	provisionCmd.Flags().DurationVar(&provisionSessionDuration, "session-duration", 0, "session validity window (default from config)")
	provisionCmd.Flags().IntVar(&provisionMaxAttempts, "max-attempts", 0, "failed attempts before lockout (default from config)")
	provisionCmd.Flags().DurationVar(&provisionBlockDuration, "block-duration", -1, "lockout duration, 0 disables (default from config)")
	rootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sessionDuration := a.cfg.Gatekeeper.SessionDuration
	if provisionSessionDuration > 0 {
		sessionDuration = provisionSessionDuration
	}
	maxAttempts := a.cfg.Gatekeeper.MaxFailedAttempts
	if provisionMaxAttempts > 0 {
		maxAttempts = provisionMaxAttempts
	}
	blockDuration := a.cfg.Gatekeeper.BlockDuration
	if provisionBlockDuration >= 0 {
		blockDuration = provisionBlockDuration
	}

	g, err := a.identity.ProvisionGatekeeper(ctx, sessionDuration, maxAttempts, blockDuration)
	if err != nil {
		return fmt.Errorf("failed to provision gatekeeper: %w", err)
	}

	p := g.Policy()
	fmt.Printf("Gatekeeper provisioned: %s\n", g.ID())
	fmt.Printf("  Session duration:    %s\n", p.SessionDuration)
	fmt.Printf("  Max failed attempts: %d\n", p.MaxFailedAttempts)
	fmt.Printf("  Block duration:      %s\n", p.BlockDuration)
	return nil
}

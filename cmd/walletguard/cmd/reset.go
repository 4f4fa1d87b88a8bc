package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wallet-guard/walletguard/internal/domain/gatekeeper"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the gatekeeper lockout state",
	Long: `Reset the gatekeeper: clear the failed attempt counter, lift any
active lockout, and invalidate the current session. The authentication
policy and the registered user are kept.

Examples:
  # Interactive confirmation
  walletguard reset

  # Skip the prompt
  walletguard reset --force`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetForce {
		fmt.Fprint(os.Stderr, "Clear lockout state and end the current session? [y/N] ")
		var answer string
		fmt.Scanln(&answer) //nolint:errcheck // interactive prompt, error irrelevant
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.identity.ResetGatekeeper(ctx); err != nil {
		if errors.Is(err, gatekeeper.ErrGatekeeperNotFound) {
			return errors.New("gatekeeper not provisioned")
		}
		return fmt.Errorf("failed to reset gatekeeper: %w", err)
	}

	fmt.Println("Gatekeeper reset.")
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wallet-guard/walletguard/internal/config"
)

var configInitOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a walletguard.yaml with default values",
	Long: `Write a configuration file populated with default values.

Refuses to overwrite an existing file.

Examples:
  walletguard config init
  walletguard config init --output /etc/walletguard/walletguard.yaml`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&configInitOutput, "output", "walletguard.yaml", "path to write the config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configInitOutput); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", configInitOutput)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", configInitOutput, err)
	}

	// Durations are emitted as strings ("5m0s") rather than letting the
	// encoder render them as nanosecond integers.
	cfg := config.Default()
	data, err := yaml.Marshal(map[string]any{
		"gatekeeper": map[string]any{
			"session_duration":    cfg.Gatekeeper.SessionDuration.String(),
			"max_failed_attempts": cfg.Gatekeeper.MaxFailedAttempts,
			"block_duration":      cfg.Gatekeeper.BlockDuration.String(),
		},
		"storage": map[string]any{
			"driver": cfg.Storage.Driver,
			"path":   cfg.Storage.Path,
		},
		"audit": map[string]any{
			"output":         cfg.Audit.Output,
			"retention_days": cfg.Audit.RetentionDays,
		},
		"log_level": cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configInitOutput, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configInitOutput, err)
	}

	fmt.Printf("Wrote %s\n", configInitOutput)
	return nil
}

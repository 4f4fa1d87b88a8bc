// Package cmd provides the CLI commands for Wallet Guard.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wallet-guard/walletguard/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "walletguard",
	Short: "Wallet Guard - authentication gatekeeper",
	Long: `Wallet Guard is a local authentication gatekeeper for wallet-style
applications. It manages a single primary user, password and biometric
authentication, session lifetimes, and progressive lockout after repeated
failed attempts.

Quick start:
  1. Provision the gatekeeper: walletguard provision
  2. Register the primary user: walletguard register --password <pw>
  3. Authenticate: walletguard login --password <pw>

Configuration:
  Config is loaded from walletguard.yaml in the current directory,
  $HOME/.walletguard/, or /etc/walletguard/.

  Environment variables can override config values with the WALLETGUARD_ prefix.
  Example: WALLETGUARD_STORAGE_PATH=/var/lib/walletguard/guard.db

Commands:
  provision      Create the gatekeeper with an authentication policy
  register       Register the primary user
  login          Authenticate with a password or biometry
  status         Show registration, session, and lockout state
  extend         Renew the active session
  logout         End the active session
  reset          Reset the gatekeeper lockout state
  hash-password  Generate an Argon2id hash for out-of-band verification
  config         Configuration helpers
  version        Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./walletguard.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}

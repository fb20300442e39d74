// Package cmd wires the ledger CLI's cobra command tree: an interactive
// menu by default, plus non-interactive subcommands for scripting.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/cli"
)

var app *cli.App

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Base Blockchain Transaction System",
	Long:  "An account-balance ledger with proof-of-work block mining, RSA-signed transactions, and AES-GCM sealed backups.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunMenu(app, os.Stdin)
	},
}

// Execute runs the root command against the given App, returning any
// error to the caller.
func Execute(a *cli.App) error {
	app = a
	return rootCmd.Execute()
}

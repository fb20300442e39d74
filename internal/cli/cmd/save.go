package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var saveOutput string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Serialize and seal the chain to an encrypted file",
	RunE: func(cmd *cobra.Command, args []string) error {
		key := []byte(os.Getenv("LEDGER_ENCRYPTION_KEY"))
		if len(key) != 32 {
			return fmt.Errorf("LEDGER_ENCRYPTION_KEY must be set to exactly 32 bytes, got %d", len(key))
		}

		path, err := app.SaveBlockchain(saveOutput, key)
		if err != nil {
			return fmt.Errorf("save: %w", err)
		}
		app.UI.Success("Blockchain saved to " + path)
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVar(&saveOutput, "out", "blockchain.dat", "output filename under the data directory")
	rootCmd.AddCommand(saveCmd)
}

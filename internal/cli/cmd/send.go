package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/ledger"
)

var (
	sendFrom    string
	sendKeyPath string
)

var sendCmd = &cobra.Command{
	Use:   "send <receiver> <amount>",
	Short: "Sign and submit a single-transaction block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sendFrom != "" {
			if err := app.SelectUser(sendFrom); err != nil {
				return err
			}
		}

		var amount float64
		if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}

		block, tx, err := app.CreateTransaction(args[0], amount, sendKeyPath)
		if err != nil {
			return fmt.Errorf("send: %w", err)
		}

		app.UI.Success(fmt.Sprintf("block %d mined, tx %s: %s -> %s (%s)",
			block.Index(), tx.TxID(), tx.Sender(), tx.Receiver(), ledger.FormatAmount(tx.Amount())))
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "sender username, defaults to the active session user")
	sendCmd.Flags().StringVar(&sendKeyPath, "key", "", "path to the sender's *_private.pem file")
	rootCmd.AddCommand(sendCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users and their balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		users := app.Users()
		if len(users) == 0 {
			app.UI.Warning("No users registered yet")
			return nil
		}
		for _, user := range users {
			app.UI.Default(fmt.Sprintf(" - %s (balance: %.6f)", user, app.Ledger.Balance(user)), true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

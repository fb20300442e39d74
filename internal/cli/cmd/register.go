package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Register a new user and generate its RSA key pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user := args[0]
		if err := app.RegisterUser(user); err != nil {
			return fmt.Errorf("register %s: %w", user, err)
		}
		app.UI.Success(fmt.Sprintf("User '%s' registered successfully", user))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

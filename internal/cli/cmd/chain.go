package cmd

import "github.com/spf13/cobra"

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print every block in the chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.UI.Default(app.ShowBlockchain(), true)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Replay and verify the entire chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.ValidateBlockchain(); err != nil {
			app.UI.Error("Blockchain validation failed: " + err.Error())
			return err
		}
		app.UI.Success("Blockchain integrity verified!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(validateCmd)
}

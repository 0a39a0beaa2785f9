package cmd

import (
	"fmt"

	"github.com/theirongolddev/dompet/internal/app"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage the PIN that guards private notes",
}

var pinSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the PIN (only when none is set)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app.App) error {
			secret, err := promptSecret("New PIN", flagNotePIN)
			if err != nil {
				return err
			}
			if err := a.Notes.Guard().Setup(secret); err != nil {
				return err
			}
			fmt.Println("  PIN set.")
			return nil
		})
	},
}

var pinClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the PIN",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(a *app.App) error {
			if !a.RequestClearPIN() {
				fmt.Println("  No PIN is set.")
				return nil
			}
			done, err := resolveGate(a)
			if err != nil {
				return err
			}
			if done {
				fmt.Println("  PIN removed.")
			}
			return nil
		})
	},
}

func init() {
	pinSetCmd.Flags().StringVar(&flagNotePIN, "pin", "", "PIN to use instead of prompting")
	pinCmd.AddCommand(pinSetCmd, pinClearCmd)
	rootCmd.AddCommand(pinCmd)
}

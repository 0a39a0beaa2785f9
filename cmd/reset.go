package cmd

import (
	"fmt"

	"github.com/theirongolddev/dompet/internal/app"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all transactions, budgets, notes and the PIN",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app.App) error {
		a.RequestResetAll()
		done, err := resolveGate(a)
		if err != nil {
			return err
		}
		if done {
			fmt.Println("  All data erased.")
		}
		return nil
	})
}

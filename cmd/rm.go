package cmd

import (
	"fmt"

	"github.com/theirongolddev/dompet/internal/app"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app.App) error {
		tx, ok := a.Ledger.Resolve(args[0])
		if !ok || !a.RequestDeleteTransaction(tx.ID) {
			fmt.Printf("  No transaction matches %q.\n", args[0])
			return nil
		}
		done, err := resolveGate(a)
		if err != nil {
			return err
		}
		if done {
			fmt.Println("  Deleted.")
		}
		return nil
	})
}

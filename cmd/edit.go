package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/ledger"
	"github.com/theirongolddev/dompet/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagEditAmount   string
	flagEditDesc     string
	flagEditCategory string
	flagEditDate     string
	flagEditKind     string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a transaction",
	Long:  "Change fields of a transaction. The id may be the short id shown by `dompet list`.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditAmount, "amount", "", "New amount")
	editCmd.Flags().StringVar(&flagEditDesc, "desc", "", "New description")
	editCmd.Flags().StringVarP(&flagEditCategory, "category", "c", "", "New category id")
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date as YYYY-MM-DD")
	editCmd.Flags().StringVar(&flagEditKind, "kind", "", "New kind: income or expense")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app.App) error {
		tx, ok := a.Ledger.Resolve(args[0])
		if !ok {
			fmt.Printf("  No transaction matches %q.\n", args[0])
			return nil
		}

		d := ledger.DraftOf(tx)
		flags := cmd.Flags()
		if flags.Changed("amount") {
			amount, err := ledger.ParseAmount(flagEditAmount)
			if err != nil {
				return err
			}
			d.Amount = amount
		}
		if flags.Changed("desc") {
			d.Description = flagEditDesc
		}
		if flags.Changed("date") {
			date, err := cli.ParseDate(flagEditDate, time.Now())
			if err != nil {
				return err
			}
			d.Date = date
		}
		if flags.Changed("kind") {
			kind, err := model.ParseKind(flagEditKind)
			if err != nil {
				return err
			}
			if kind != d.Kind && !flags.Changed("category") {
				d.Category = config.DefaultCategory(kind).ID
			}
			d.Kind = kind
		}
		if flags.Changed("category") {
			d.Category = strings.ToLower(flagEditCategory)
		}

		if err := a.Ledger.Update(tx.ID, d); err != nil {
			return err
		}
		updated, _ := a.Ledger.Get(tx.ID)
		fmt.Printf("  Updated %s  %s  %s  %s\n",
			cli.ShortID(updated.ID),
			cli.FormatDate(updated.Date),
			cli.FormatSigned(a.Config.Display, updated.Kind, updated.Amount),
			updated.Description,
		)
		return nil
	})
}

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
	flagAddIncome   bool
	flagAddCategory string
	flagAddDate     string
	flagAddAuto     bool
)

var addCmd = &cobra.Command{
	Use:   "add <amount> <description...>",
	Short: "Record an expense (or income with --income)",
	Example: `  dompet add 25000 nasi padang -c food
  dompet add 5000000 march salary --income
  dompet add 18000 ojek to office --auto`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&flagAddIncome, "income", "i", false, "Record income instead of an expense")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Category id (see `dompet categories`)")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Date as YYYY-MM-DD (default today)")
	addCmd.Flags().BoolVar(&flagAddAuto, "auto", false, "Ask the advisor to pick a category")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := ledger.ParseAmount(args[0])
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(flagAddDate, time.Now())
	if err != nil {
		return err
	}
	kind := model.Expense
	if flagAddIncome {
		kind = model.Income
	}

	return withApp(cmd, func(a *app.App) error {
		draft := ledger.Draft{
			Amount:      amount,
			Kind:        kind,
			Category:    flagAddCategory,
			Description: strings.Join(args[1:], " "),
			Date:        date,
		}
		if draft.Category == "" {
			draft.Category = pickCategory(cmd, a, kind, draft.Description)
		}

		tx, err := a.Ledger.Add(draft)
		if err != nil {
			return err
		}

		cat := config.CategoryOrRaw(tx.Kind, tx.Category)
		fmt.Printf("  Added %s  %s  %s  [%s]\n",
			cli.ShortID(tx.ID),
			cli.FormatSigned(a.Config.Display, tx.Kind, tx.Amount),
			tx.Description,
			cat.Name,
		)
		s := a.Ledger.Summary()
		fmt.Printf("  Balance: %s\n", cli.FormatCurrency(a.Config.Display, s.Balance))
		return nil
	})
}

// pickCategory uses the advisor when --auto is set and the suggestion fits
// kind, otherwise the kind's default category.
func pickCategory(cmd *cobra.Command, a *app.App, kind model.Kind, desc string) string {
	if flagAddAuto && a.Advisor.Configured() {
		if id, ok := a.Advisor.Categorize(cmd.Context(), desc); ok && config.ValidCategory(kind, id) {
			return id
		}
	}
	return config.DefaultCategory(kind).ID
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var flagSummaryMonths int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, this month's totals and spending by category",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&flagSummaryMonths, "months", 6, "Months of history in the trend line")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app.App) error {
		if a.Ledger.Len() == 0 {
			fmt.Println("\n  No transactions yet.")
			fmt.Println("  Record one with `dompet add 25000 lunch -c food`.")
			return nil
		}

		now := time.Now()
		display := a.Config.Display
		all := a.Ledger.Summary()
		month := pipeline.FilterByMonth(a.Ledger.List(), now)
		ms := pipeline.Summarize(month)

		fmt.Println()
		fmt.Println(cli.RenderTitle("DOMPET  " + cli.MonthLabel(now)))
		fmt.Println()

		rows := [][]string{
			{"Balance", cli.FormatCurrency(display, all.Balance)},
			{"Total income", cli.FormatCurrency(display, all.TotalIncome)},
			{"Total expense", cli.FormatCurrency(display, all.TotalExpense)},
			{"Transactions", cli.FormatNumber(int64(all.Count))},
			{"---"},
			{"Income this month", cli.FormatCurrency(display, ms.TotalIncome)},
			{"Expense this month", cli.FormatCurrency(display, ms.TotalExpense)},
			{"Net this month", cli.FormatCurrency(display, ms.Balance)},
		}

		if flagSummaryMonths > 1 {
			trend := pipeline.MonthlyTotals(a.Ledger.List(), flagSummaryMonths, now)
			values := make([]float64, len(trend))
			for i, m := range trend {
				// oldest on the left
				values[len(trend)-1-i] = m.Expense.InexactFloat64()
			}
			rows = append(rows, []string{"---"},
				[]string{fmt.Sprintf("Expense, %d months", flagSummaryMonths), cli.RenderSparkline(values)})
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}))

		totals := pipeline.CategoryTotals(month, model.Expense)
		if len(totals) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Println("  Spending by category this month")
		maxAmount := totals[0].Amount.InexactFloat64()
		for _, ct := range totals {
			bar := cli.RenderHorizontalBar(ct.Amount.InexactFloat64(), maxAmount, 20, ct.Color)
			fmt.Printf("  %-18s %s%s %s\n",
				cli.Truncate(ct.Name, 18),
				bar, strings.Repeat(" ", max(0, 20-lipgloss.Width(bar))),
				cli.FormatCurrency(display, ct.Amount),
			)
		}
		return nil
	})
}

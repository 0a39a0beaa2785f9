package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagListMonth string
	flagListKind  string
	flagListLimit int
	flagListAll   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "history"},
	Short:   "Transaction history, newest date first",
	RunE:    runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List category ids",
	RunE:  runCategories,
}

func init() {
	listCmd.Flags().StringVar(&flagListMonth, "month", "", "Only this month, YYYY-MM")
	listCmd.Flags().StringVar(&flagListKind, "kind", "", "Only income or expense")
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "n", 20, "Maximum rows")
	listCmd.Flags().BoolVarP(&flagListAll, "all", "a", false, "Show every transaction")
	rootCmd.AddCommand(listCmd, categoriesCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	return withApp(cmd, func(a *app.App) error {
		txs := a.Ledger.List()
		if cmd.Flags().Changed("month") {
			ref, err := cli.ParseMonth(flagListMonth, now)
			if err != nil {
				return err
			}
			txs = pipeline.FilterByMonth(txs, ref)
		}
		if flagListKind != "" {
			kind, err := model.ParseKind(flagListKind)
			if err != nil {
				return err
			}
			txs = pipeline.FilterByKind(txs, kind)
		}

		if len(txs) == 0 {
			fmt.Println("\n  No transactions yet. Add one with `dompet add`.")
			return nil
		}

		limit := flagListLimit
		if flagListAll {
			limit = -1
		}
		shown := pipeline.Recent(txs, limit)

		rows := make([][]string, 0, len(shown))
		for _, t := range shown {
			cat := config.CategoryOrRaw(t.Kind, t.Category)
			rows = append(rows, []string{
				cli.ShortID(t.ID),
				cli.FormatDate(t.Date),
				cli.Truncate(t.Description, 32),
				cat.Name,
				cli.FormatSigned(a.Config.Display, t.Kind, t.Amount),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers:    []string{"ID", "Date", "Description", "Category", "Amount"},
			Rows:       rows,
			RightAlign: []bool{false, false, false, false, true},
		}))
		if len(shown) < len(txs) {
			fmt.Printf("  %d of %d shown (use --all for everything)\n", len(shown), len(txs))
		}
		return nil
	})
}

func runCategories(_ *cobra.Command, _ []string) error {
	for _, kind := range []model.Kind{model.Expense, model.Income} {
		rows := [][]string{}
		for _, c := range config.Categories(kind) {
			rows = append(rows, []string{c.ID, c.Name})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      kind.String(),
			Headers:    []string{"ID", "Name"},
			Rows:       rows,
			RightAlign: []bool{false, false},
		}))
	}
	return nil
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/cli"

	"github.com/spf13/cobra"
)

var flagBudgetMonth string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Monthly spending targets per category",
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Set the monthly target for an expense category",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetClearCmd = &cobra.Command{
	Use:   "clear <category>",
	Short: "Remove the target for a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetClear,
}

var budgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Month-to-date spend against each target",
	RunE:  runBudgetShow,
}

func init() {
	budgetCmd.PersistentFlags().StringVar(&flagBudgetMonth, "month", "", "Evaluate this month, YYYY-MM (default current)")
	budgetCmd.AddCommand(budgetSetCmd, budgetClearCmd, budgetShowCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app.App) error {
		id := strings.ToLower(args[0])
		if err := a.Budget.Set(id, args[1]); err != nil {
			return err
		}
		target, _ := a.Budget.Target(id)
		fmt.Printf("  Budget for %s set to %s\n", id, cli.FormatCurrency(a.Config.Display, target))
		return nil
	})
}

func runBudgetClear(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app.App) error {
		id := strings.ToLower(args[0])
		a.Budget.Clear(id)
		fmt.Printf("  Budget for %s cleared\n", id)
		return nil
	})
}

func runBudgetShow(cmd *cobra.Command, _ []string) error {
	ref, err := cli.ParseMonth(flagBudgetMonth, time.Now())
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app.App) error {
		display := a.Config.Display
		rows := [][]string{}
		for _, st := range a.Budget.Overview(ref) {
			target := "-"
			if st.HasTarget {
				target = cli.FormatCurrency(display, st.Target)
			}
			rows = append(rows, []string{
				st.Category.Name,
				cli.FormatCurrency(display, st.Spent),
				target,
				cli.RenderBudgetBar(st, 16),
				st.Severity.String(),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Budget  " + cli.MonthLabel(ref),
			Headers:    []string{"Category", "Spent", "Target", "Progress", "Status"},
			Rows:       rows,
			RightAlign: []bool{false, true, true, false, false},
		}))
		if len(a.Budget.Targets()) == 0 {
			fmt.Println("  No targets yet. Try `dompet budget set food 1500000`.")
		}
		return nil
	})
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/dompet/internal/advisor"
	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/pipeline"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	trendMonths   = 6
	topCategories = 6
	recentCount   = 5
)

func (a App) updateOverview(key string) (tea.Model, tea.Cmd) {
	if key != "a" {
		return a, nil
	}
	if a.advising || a.data.Advisor.InFlight() {
		a.flash = components.Flash{Text: "Advice is already on its way"}
		return a, nil
	}
	a.advising = true
	return a, tea.Batch(a.spinner.Tick, adviceCmd(a.ctx, a.data.Advisor, a.data.Ledger.List()))
}

// adviceCmd asks the advisor off the UI goroutine.
func adviceCmd(ctx context.Context, adv *advisor.Advisor, txs []model.Transaction) tea.Cmd {
	return func() tea.Msg {
		return AdviceMsg{Text: adv.Advise(ctx, txs)}
	}
}

// renderAdvice renders the last answer as markdown for the current width.
func (a App) renderAdvice() string {
	if a.advice == "" || a.width == 0 {
		return a.advice
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(components.CardInnerWidth(a.contentWidth())),
	)
	if err != nil {
		return a.advice
	}
	out, err := r.Render(a.advice)
	if err != nil {
		return a.advice
	}
	return strings.Trim(out, "\n")
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	disp := a.data.Config.Display
	now := a.now()
	txs := a.data.Ledger.List()

	sum := a.data.Ledger.Summary()
	month := pipeline.Summarize(pipeline.FilterByMonth(txs, now))

	balanceColor := t.Income()
	if sum.Balance.IsNegative() {
		balanceColor = t.Expense()
	}
	monthColor := t.Income()
	if month.Balance.IsNegative() {
		monthColor = t.Expense()
	}

	var b strings.Builder

	// Row 1: headline figures
	b.WriteString(components.MetricCardRow([]components.Metric{
		{
			Label: "Balance",
			Value: cli.FormatCurrency(disp, sum.Balance),
			Hint:  fmt.Sprintf("%s transactions", cli.FormatNumber(int64(sum.Count))),
			Color: balanceColor,
		},
		{Label: "Income", Value: cli.FormatCurrency(disp, sum.TotalIncome), Color: t.Income()},
		{Label: "Expense", Value: cli.FormatCurrency(disp, sum.TotalExpense), Color: t.Expense()},
		{
			Label: cli.MonthLabel(now),
			Value: cli.FormatCurrency(disp, month.Balance),
			Hint:  fmt.Sprintf("+%s  -%s", cli.FormatCurrency(disp, month.TotalIncome), cli.FormatCurrency(disp, month.TotalExpense)),
			Color: monthColor,
		},
	}, cw))
	b.WriteString("\n")

	if len(txs) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard("Getting started",
			hint.Render("No transactions yet. Press h then a to add your first one."), cw))
		return b.String()
	}

	// Row 2: trend and category split
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	monthly := pipeline.MonthlyTotals(txs, trendMonths, now)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	trend := components.ContentCard(
		fmt.Sprintf("Last %d months", trendMonths),
		dim.Render("Spending ")+components.SpendingSparkline(monthly)+"\n"+
			components.MonthlyBars(monthly, components.CardInnerWidth(halves[0])),
		halves[0],
	)

	totals := pipeline.CategoryTotals(txs, model.Expense)
	if len(totals) > topCategories {
		totals = totals[:topCategories]
	}
	catBody := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No expenses yet")
	if len(totals) > 0 {
		catBody = components.CategoryBars(totals, components.CardInnerWidth(halves[1]), func(ct model.CategoryTotal) string {
			return cli.FormatCurrency(disp, ct.Amount)
		})
	}
	split := components.ContentCard("Expense by category", catBody, halves[1])

	if a.isCompactLayout() {
		b.WriteString(trend)
		b.WriteString("\n")
		b.WriteString(split)
	} else {
		b.WriteString(components.CardRow([]string{trend, split}))
	}
	b.WriteString("\n")

	// Row 3: recent activity and advice
	b.WriteString(components.ContentCard("Recent", a.renderTransactionRows(pipeline.Recent(txs, recentCount), components.CardInnerWidth(cw), -1), cw))
	b.WriteString("\n")
	b.WriteString(a.renderAdviceCard(cw))

	return b.String()
}

func (a App) renderAdviceCard(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var body string
	switch {
	case a.advising:
		body = a.spinner.View() + muted.Render(" Asking the advisor...")
	case a.adviceView != "":
		body = a.adviceView
	case !a.data.Advisor.Configured():
		body = muted.Render("Add an API key with `dompet setup` to get spending advice.")
	default:
		body = muted.Render("Press a for advice based on your recent transactions.")
	}
	return components.AccentCard("Advice", body, cw, t.BorderAccent)
}

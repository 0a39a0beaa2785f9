package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// SpendingSparkline draws monthly expense oldest first. months is ordered
// most recent first, as pipeline.MonthlyTotals returns it.
func SpendingSparkline(months []model.MonthlyStats) string {
	values := make([]float64, len(months))
	for i, m := range months {
		values[len(months)-1-i] = m.Expense.InexactFloat64()
	}
	return Sparkline(values, theme.Active.Expense())
}

// HBar renders a single horizontal bar of up to width cells. Any positive
// value gets at least one cell.
func HBar(value, peak float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if width <= 0 {
		return ""
	}
	n := 0
	if peak > 0 {
		n = int(value / peak * float64(width))
	}
	if n == 0 && value > 0 {
		n = 1
	}
	n = min(n, width)

	fill := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	rest := lipgloss.NewStyle().Background(t.Surface)
	return fill.Render(strings.Repeat("█", n)) + rest.Render(strings.Repeat(" ", width-n))
}

// CategoryBars renders one labelled bar per category total, scaled to the
// largest. format renders the amount column.
func CategoryBars(totals []model.CategoryTotal, width int, format func(model.CategoryTotal) string) string {
	if len(totals) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	amountW := 0
	amounts := make([]string, len(totals))
	peak := 0.0
	for i, ct := range totals {
		labelW = max(labelW, lipgloss.Width(ct.Name))
		amounts[i] = format(ct)
		amountW = max(amountW, lipgloss.Width(amounts[i]))
		peak = max(peak, ct.Amount.InexactFloat64())
	}
	labelW = min(labelW, 18)

	barW := width - labelW - amountW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	lines := make([]string, 0, len(totals))
	for i, ct := range totals {
		name := ct.Name
		if lipgloss.Width(name) > labelW {
			name = string([]rune(name)[:labelW-1]) + "…"
		}
		label := labelStyle.Render(fmt.Sprintf("%-*s", labelW, name))
		amount := amountStyle.Render(fmt.Sprintf("%*s", amountW, amounts[i]))
		bar := HBar(ct.Amount.InexactFloat64(), peak, barW, lipgloss.Color(ct.Color))
		lines = append(lines, label+space+bar+space+amount)
	}
	return strings.Join(lines, "\n")
}

// MonthlyBars renders income and expense bars for each month, most recent
// first, as two rows per month.
func MonthlyBars(months []model.MonthlyStats, width int) string {
	if len(months) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, m := range months {
		peak = max(peak, m.Income.InexactFloat64(), m.Expense.InexactFloat64())
	}

	const labelW = 9
	barW := width - labelW - 3
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := labelStyle.Render(strings.Repeat(" ", labelW))

	var b strings.Builder
	for i, m := range months {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, m.Month.Format("Jan 2006"))))
		b.WriteString(markStyle.Render("+ "))
		b.WriteString(HBar(m.Income.InexactFloat64(), peak, barW, t.Income()))
		b.WriteString("\n")
		b.WriteString(blank)
		b.WriteString(markStyle.Render("- "))
		b.WriteString(HBar(m.Expense.InexactFloat64(), peak, barW, t.Expense()))
	}
	return b.String()
}

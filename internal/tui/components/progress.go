package components

import (
	"fmt"

	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// SeverityColor maps a budget severity to a theme colour.
func SeverityColor(sev model.Severity) lipgloss.Color {
	t := theme.Active
	switch sev {
	case model.SeverityOver:
		return t.Red
	case model.SeverityWarning:
		return t.Yellow
	case model.SeverityOK:
		return t.Green
	default:
		return t.TextDim
	}
}

// SeverityLabel is the short badge text for a severity.
func SeverityLabel(sev model.Severity) string {
	switch sev {
	case model.SeverityOver:
		return "OVER"
	case model.SeverityWarning:
		return "WARN"
	case model.SeverityOK:
		return "OK"
	default:
		return "—"
	}
}

// BudgetBar renders a category's month-to-date spend against its target as
// a filled bar and percentage. The bar saturates at 100%; the label does not.
func BudgetBar(st model.BudgetStatus, barWidth int) string {
	t := theme.Active
	color := SeverityColor(st.Severity)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	if !st.HasTarget {
		return dimStyle.Render(fmt.Sprintf("%-*s", barWidth, "no target")) +
			spaceStyle.Render(" ") +
			dimStyle.Render(fmt.Sprintf("%7s", ""))
	}

	pct := st.PercentFloat() / 100
	pct = max(0, min(pct, 1))

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.SurfaceBright)

	return bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%7s", cli.FormatPercent(st.Percent)))
}

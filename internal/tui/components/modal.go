package components

import (
	"strings"

	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Modal renders a centred dialog card over a width×height area.
func Modal(width, height int, title, body, hint string, border lipgloss.Color) string {
	t := theme.Active

	cardW := min(max(width/2, 44), width-4)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(cardW).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(border).Background(t.Surface).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(cardW - 6)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(bodyStyle.Render(body))
	}
	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render(hint))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

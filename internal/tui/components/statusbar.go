package components

import (
	"strings"

	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Flash is a one-line message shown in the status bar until the next key.
type Flash struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, and
// the flash message or right-hand text on the right.
func RenderStatusBar(width int, hints string, flash Flash, right string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rightStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if flash.Text != "" {
		right = flash.Text
		rightStyle = rightStyle.Foreground(t.Green).Bold(true)
		if flash.Error {
			rightStyle = rightStyle.Foreground(t.Red)
		}
	}

	left := hintStyle.Render(" " + hints)
	r := ""
	if right != "" {
		r = rightStyle.Render(right + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(r)
	if gap < 0 {
		gap = 0
	}
	bar := left + lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap)) + r

	return lipgloss.NewStyle().Background(t.Surface).MaxWidth(width).Render(bar)
}

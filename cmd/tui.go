package cmd

import (
	"fmt"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/tui"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app.App) error {
		theme.SetActive(a.Config.Appearance.Theme)

		// Force TrueColor profile so all background styling produces ANSI codes
		// Without this, lipgloss may default to Ascii profile (no colors)
		lipgloss.SetColorProfile(termenv.TrueColor)

		p := tea.NewProgram(tui.NewApp(cmd.Context(), a), tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}

package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// budgetState tracks the budget tab cursor and the inline target editor.
type budgetState struct {
	list     listState
	editing  bool
	category string
	input    textinput.Model
	err      error
}

func (a App) updateBudget(key string) (tea.Model, tea.Cmd) {
	rows := a.data.Budget.Overview(a.now())
	a.budget.list.clamp(len(rows))
	switch key {
	case "j", "down":
		a.budget.list.move(1, len(rows))
	case "k", "up":
		a.budget.list.move(-1, len(rows))
	case "e", "enter":
		st := rows[a.budget.list.cursor]
		ti := textinput.New()
		ti.Placeholder = "monthly target, e.g. 1500000"
		ti.CharLimit = 24
		ti.Width = 24
		if st.HasTarget {
			ti.SetValue(st.Target.String())
		}
		ti.Focus()
		a.budget.editing = true
		a.budget.category = st.Category.ID
		a.budget.input = ti
		a.budget.err = nil
		return a, textinput.Blink
	case "c", "x", "delete":
		st := rows[a.budget.list.cursor]
		if st.HasTarget {
			a.data.Budget.Clear(st.Category.ID)
			a.flash = components.Flash{Text: st.Category.Name + " target cleared"}
		}
	}
	return a, nil
}

func (a App) updateBudgetInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		val := strings.TrimSpace(a.budget.input.Value())
		if val == "" {
			a.data.Budget.Clear(a.budget.category)
			a.budget.editing = false
			return a, nil
		}
		if err := a.data.Budget.Set(a.budget.category, val); err != nil {
			a.budget.err = err
			return a, nil
		}
		a.budget.editing = false
		a.flash = components.Flash{Text: "Target saved"}
		return a, nil
	case "esc":
		a.budget.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.budget.input, cmd = a.budget.input.Update(msg)
	return a, cmd
}

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	disp := a.data.Config.Display
	now := a.now()
	rows := a.data.Budget.Overview(now)

	cursor := a.budget.list
	cursor.clamp(len(rows))

	inner := components.CardInnerWidth(cw)
	labelW := 20
	amountW := 30
	barW := inner - labelW - amountW - 6 - 8 - 4
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	for i, st := range rows {
		bg := t.Surface
		if i == cursor.cursor {
			bg = t.SurfaceHover
		}
		name := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
		badge := lipgloss.NewStyle().Foreground(components.SeverityColor(st.Severity)).Background(bg).Bold(true)
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Category.Color)).Background(bg).Render("●")
		sp := lipgloss.NewStyle().Background(bg).Render(" ")

		amounts := cli.FormatCurrency(disp, st.Spent)
		if st.HasTarget {
			amounts += " / " + cli.FormatCurrency(disp, st.Target)
		}

		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dot + sp)
		b.WriteString(name.Render(fmt.Sprintf("%-*s", labelW, cli.Truncate(st.Category.Name, labelW))))
		b.WriteString(sp)
		b.WriteString(components.BudgetBar(st, barW))
		b.WriteString(sp)
		b.WriteString(badge.Render(fmt.Sprintf("%-4s", components.SeverityLabel(st.Severity))))
		b.WriteString(sp)
		b.WriteString(muted.Render(fmt.Sprintf("%*s", amountW, cli.Truncate(amounts, amountW))))

		if a.budget.editing && a.budget.category == st.Category.ID {
			b.WriteString("\n    ")
			b.WriteString(a.budget.input.View())
			if a.budget.err != nil {
				errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
				b.WriteString("  " + errStyle.Render(a.budget.err.Error()))
			}
		}
	}

	title := fmt.Sprintf("Budgets · %s", cli.MonthLabel(now))
	return components.ContentCard(title, b.String(), cw)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// historyChrome is the number of lines the history card spends on its border,
// title and column header.
const historyChrome = 4

func (a App) updateHistory(key string) (tea.Model, tea.Cmd) {
	txs := a.data.Ledger.Sorted()
	a.history.clamp(len(txs))
	switch key {
	case "j", "down":
		a.history.move(1, len(txs))
	case "k", "up":
		a.history.move(-1, len(txs))
	case "g", "home":
		a.history.cursor = 0
	case "G", "end":
		a.history.cursor = max(0, len(txs)-1)
	case "a":
		return a.openTransactionForm(nil)
	case "e", "enter":
		if len(txs) == 0 {
			return a, nil
		}
		tx := txs[a.history.cursor]
		return a.openTransactionForm(&tx)
	case "d", "delete":
		if len(txs) == 0 {
			return a, nil
		}
		a.data.RequestDeleteTransaction(txs[a.history.cursor].ID)
	}
	return a, nil
}

func (a App) renderHistoryTab(cw, h int) string {
	t := theme.Active
	txs := a.data.Ledger.Sorted()
	if len(txs) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("History", muted.Render("Nothing here yet. Press a to add a transaction."), cw)
	}

	cursor := a.history
	cursor.clamp(len(txs))
	start, end := cursor.window(len(txs), h-historyChrome)

	title := fmt.Sprintf("History · %d of %d", cursor.cursor+1, len(txs))
	inner := components.CardInnerWidth(cw)
	body := a.renderTransactionHeader(inner) + "\n" +
		a.renderTransactionRows(txs[start:end], inner, cursor.cursor-start)
	return components.ContentCard(title, body, cw)
}

// transactionColumns splits width into date, category, description and amount columns.
func transactionColumns(width int) (dateW, catW, descW, amtW int) {
	dateW, catW, amtW = 11, 18, 16
	descW = width - dateW - catW - amtW - 3
	if descW < 10 {
		descW = 10
	}
	return
}

func (a App) renderTransactionHeader(width int) string {
	t := theme.Active
	dateW, catW, descW, amtW := transactionColumns(width)
	style := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	return style.Render(fmt.Sprintf("%-*s %-*s %-*s %*s", dateW, "Date", catW, "Category", descW, "Description", amtW, "Amount"))
}

// renderTransactionRows renders one line per transaction. selected < 0 highlights nothing.
func (a App) renderTransactionRows(txs []model.Transaction, width, selected int) string {
	t := theme.Active
	disp := a.data.Config.Display
	dateW, catW, descW, amtW := transactionColumns(width)

	lines := make([]string, 0, len(txs))
	for i, tx := range txs {
		bg := t.Surface
		if i == selected {
			bg = t.SurfaceHover
		}
		text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
		amountColor := t.Expense()
		if tx.Kind == model.Income {
			amountColor = t.Income()
		}
		amount := lipgloss.NewStyle().Foreground(amountColor).Background(bg).Bold(true)
		cat := config.CategoryOrRaw(tx.Kind, tx.Category)
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Background(bg).Render("●")
		sp := lipgloss.NewStyle().Background(bg).Render(" ")

		line := muted.Render(fmt.Sprintf("%-*s", dateW, cli.FormatDate(tx.Date))) + sp +
			dot + sp + text.Render(fmt.Sprintf("%-*s", catW-2, cli.Truncate(cat.Name, catW-2))) + sp +
			text.Render(fmt.Sprintf("%-*s", descW, cli.Truncate(tx.Description, descW))) + sp +
			amount.Render(fmt.Sprintf("%*s", amtW, cli.FormatSigned(disp, tx.Kind, tx.Amount)))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/dompet/internal/advisor"
	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/confirm"
	"github.com/theirongolddev/dompet/internal/ledger"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/notes"
	"github.com/theirongolddev/dompet/internal/store"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (App, *app.App) {
	t.Helper()
	data := app.New(config.DefaultConfig(), store.NewMemory(), nil, zap.NewNop())
	m := NewApp(context.Background(), data)
	m.now = func() time.Time { return testNow }
	m.settings.save = func(config.Config) error { return nil }
	return m, data
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(App)
		require.True(t, ok)
	}
	return m
}

func addTx(t *testing.T, data *app.App, desc string, kind model.Kind, cat string, amount int64, date time.Time) model.Transaction {
	t.Helper()
	tx, err := data.Ledger.Add(ledger.Draft{
		Amount:      decimal.NewFromInt(amount),
		Kind:        kind,
		Category:    cat,
		Description: desc,
		Date:        date,
	})
	require.NoError(t, err)
	return tx
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		assert.Equal(t, -1, a.tabAtX(pos+50))
	}
}

func TestTabKeysSwitchTabs(t *testing.T) {
	m, _ := newTestApp(t)
	m = press(t, m, "h")
	assert.Equal(t, tabHistory, m.activeTab)
	m = press(t, m, "n")
	assert.Equal(t, tabNotes, m.activeTab)
	m = press(t, m, "x")
	assert.Equal(t, tabSettings, m.activeTab)
	m = press(t, m, "o")
	assert.Equal(t, tabOverview, m.activeTab)
}

func TestDeleteTransactionGoesThroughGate(t *testing.T) {
	m, data := newTestApp(t)
	addTx(t, data, "old", model.Expense, "food", 10_000, testNow.AddDate(0, -1, 0))
	newer := addTx(t, data, "new", model.Expense, "transport", 5_000, testNow)

	m = press(t, m, "h", "j", "d")
	p, ok := data.Gate.Pending()
	require.True(t, ok)
	assert.Equal(t, confirm.DeleteTransaction, p.Effect)

	m = press(t, m, "n")
	_, ok = data.Gate.Pending()
	assert.False(t, ok)
	assert.Equal(t, 2, data.Ledger.Len())

	m = press(t, m, "d", "y")
	require.Equal(t, 1, data.Ledger.Len())
	_, ok = data.Ledger.Get(newer.ID)
	assert.True(t, ok, "the selected (older) transaction is the one removed")
	assert.Equal(t, "Transaction deleted", m.flash.Text)
	assert.Equal(t, 0, m.history.cursor)
}

func TestPrivateNoteUnlock(t *testing.T) {
	m, data := newTestApp(t)
	require.NoError(t, data.Notes.Guard().Setup("1234"))
	n, err := data.Notes.Save(notes.Draft{Title: "diary", Content: "dear diary", IsPrivate: true})
	require.NoError(t, err)

	m = press(t, m, "n", "enter")
	require.True(t, m.pin.active)
	assert.Equal(t, pinUnlock, m.pin.mode)

	m = press(t, m, "0000", "enter")
	assert.True(t, m.pin.active)
	assert.ErrorIs(t, m.pin.err, notes.ErrWrongPIN)
	_, open := data.Notes.Editing()
	assert.False(t, open)

	m = press(t, m, "1234", "enter")
	assert.False(t, m.pin.active)
	id, open := data.Notes.Editing()
	require.True(t, open)
	assert.Equal(t, n.ID, id)

	m = press(t, m, "esc")
	_, open = data.Notes.Editing()
	assert.False(t, open)
	assert.Equal(t, notes.Locked, data.Notes.Guard().State())
}

func TestCancelUnlockLeavesNoteClosed(t *testing.T) {
	m, data := newTestApp(t)
	require.NoError(t, data.Notes.Guard().Setup("1234"))
	_, err := data.Notes.Save(notes.Draft{Title: "diary", IsPrivate: true})
	require.NoError(t, err)

	m = press(t, m, "n", "enter", "esc")
	assert.False(t, m.pin.active)
	assert.Equal(t, notes.Locked, data.Notes.Guard().State())
}

func TestPrivateSaveWithoutPINAsksForOne(t *testing.T) {
	m, data := newTestApp(t)
	m.activeTab = tabNotes

	next, _ := m.submitNote(&noteValues{title: "secret", content: "s3cr3t", color: "yellow", isPrivate: true})
	m = next.(App)
	require.True(t, m.pin.active)
	assert.Equal(t, pinUpgrade, m.pin.mode)
	assert.Zero(t, data.Notes.Len(), "nothing is written before the PIN exists")

	m = press(t, m, "12", "enter")
	assert.True(t, m.pin.active)
	assert.ErrorIs(t, m.pin.err, notes.ErrPINTooShort)
	_, pending := data.Notes.Pending()
	assert.True(t, pending)

	m = press(t, m, "1234", "enter")
	assert.False(t, m.pin.active)
	require.Equal(t, 1, data.Notes.Len())
	saved := data.Notes.List()[0]
	assert.True(t, saved.IsPrivate)
	assert.Equal(t, "#fef08a", saved.BackgroundColor)
	assert.True(t, data.Notes.Guard().HasPIN())
}

func TestPrivateSaveCancelledDiscardsDraft(t *testing.T) {
	m, data := newTestApp(t)
	next, _ := m.submitNote(&noteValues{title: "secret", isPrivate: true})
	m = next.(App)

	m = press(t, m, "esc")
	assert.False(t, m.pin.active)
	_, pending := data.Notes.Pending()
	assert.False(t, pending)
	assert.Zero(t, data.Notes.Len())
	assert.False(t, data.Notes.Guard().HasPIN())
}

func TestSubmitTransaction(t *testing.T) {
	m, data := newTestApp(t)

	next, _ := m.submitTransaction(&txValues{
		kind:        model.Income,
		amount:      "1,500,000",
		category:    "food", // stale pick from the expense list
		description: "salary",
		date:        "2025-02-01",
	})
	m = next.(App)
	require.Equal(t, 1, data.Ledger.Len())
	tx := data.Ledger.List()[0]
	assert.Equal(t, "salary", tx.Category)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1_500_000)))
	assert.False(t, m.flash.Error)

	next, _ = m.submitTransaction(&txValues{
		id:          tx.ID,
		kind:        model.Income,
		amount:      "2000000",
		category:    "bonus",
		description: "bonus",
		date:        "today",
	})
	m = next.(App)
	got, _ := data.Ledger.Get(tx.ID)
	assert.Equal(t, "bonus", got.Category)
	assert.Equal(t, testNow, got.Date)
	assert.Equal(t, "Transaction updated", m.flash.Text)

	next, _ = m.submitTransaction(&txValues{kind: model.Expense, amount: "abc", category: "food", description: "x", date: "today"})
	m = next.(App)
	assert.True(t, m.flash.Error)
	assert.Equal(t, 1, data.Ledger.Len())
}

func TestBudgetTargetEditing(t *testing.T) {
	m, data := newTestApp(t)

	m = press(t, m, "b", "e")
	require.True(t, m.budget.editing)
	assert.Equal(t, "food", m.budget.category)

	m.budget.input.SetValue("-5")
	m = press(t, m, "enter")
	assert.True(t, m.budget.editing, "a rejected target keeps the editor open")
	assert.Error(t, m.budget.err)
	_, ok := data.Budget.Target("food")
	assert.False(t, ok)

	m.budget.input.SetValue("500000")
	m = press(t, m, "enter")
	assert.False(t, m.budget.editing)
	target, ok := data.Budget.Target("food")
	require.True(t, ok)
	assert.True(t, target.Equal(decimal.NewFromInt(500_000)))

	m = press(t, m, "c")
	_, ok = data.Budget.Target("food")
	assert.False(t, ok)
}

func TestAdviceRequest(t *testing.T) {
	m, _ := newTestApp(t)

	next, cmd := m.Update(keyMsg("a"))
	m = next.(App)
	assert.True(t, m.advising)
	assert.NotNil(t, cmd)

	m = press(t, m, "a")
	assert.Equal(t, "Advice is already on its way", m.flash.Text)

	next, _ = m.Update(AdviceMsg{Text: advisor.MsgNeedMoreData})
	m = next.(App)
	assert.False(t, m.advising)
	assert.Equal(t, advisor.MsgNeedMoreData, m.advice)
}

func TestSettingsThemeAndReset(t *testing.T) {
	t.Cleanup(func() { theme.SetActive(theme.FlexokiDark.Name) })
	m, data := newTestApp(t)
	var saved config.Config
	m.settings.save = func(cfg config.Config) error {
		saved = cfg
		return nil
	}
	addTx(t, data, "lunch", model.Expense, "food", 25_000, testNow)

	m = press(t, m, "x", "enter")
	assert.Equal(t, theme.CatppuccinMocha.Name, saved.Appearance.Theme)
	assert.Equal(t, theme.CatppuccinMocha.Name, theme.Active.Name)
	assert.True(t, m.settings.saved)

	for i := 0; i < settingsFieldReset; i++ {
		m = press(t, m, "j")
	}
	m = press(t, m, "enter")
	p, ok := data.Gate.Pending()
	require.True(t, ok)
	assert.Equal(t, confirm.ResetAll, p.Effect)

	m = press(t, m, "y")
	assert.Zero(t, data.Ledger.Len())
	assert.Equal(t, "All data erased", m.flash.Text)
}

func TestViewsFillTerminal(t *testing.T) {
	m, data := newTestApp(t)
	addTx(t, data, "salary", model.Income, "salary", 8_000_000, testNow.AddDate(0, -1, 0))
	addTx(t, data, "lunch", model.Expense, "food", 25_000, testNow)
	require.NoError(t, data.Budget.Set("food", "20000"))
	_, err := data.Notes.Save(notes.Draft{Title: "groceries", Content: "eggs\nmilk"})
	require.NoError(t, err)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(App)

	for tab := range components.Tabs {
		m.activeTab = tab
		out := m.View()
		assert.Equal(t, 40, lipgloss.Height(out), "tab %d", tab)
	}

	m.activeTab = tabBudget
	assert.Contains(t, m.View(), "OVER")

	m = press(t, m, "h", "d")
	assert.Contains(t, m.View(), "Delete transaction?")
	m = press(t, m, "n")

	m = press(t, m, "?")
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
}

func TestViewTooNarrow(t *testing.T) {
	m, _ := newTestApp(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(App)
	assert.True(t, strings.Contains(m.View(), "too narrow"))
}

func TestListWindowKeepsCursorVisible(t *testing.T) {
	l := listState{cursor: 9}
	start, end := l.window(20, 5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 10, end)

	l.cursor = 0
	start, end = l.window(20, 5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	l = listState{cursor: 2}
	start, end = l.window(3, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

// Package tui provides the interactive Bubble Tea dashboard for dompet.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/confirm"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabHistory
	tabBudget
	tabNotes
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5
)

// AdviceMsg carries the advisor's answer back to the model.
type AdviceMsg struct {
	Text string
}

// App is the root Bubble Tea model.
type App struct {
	ctx  context.Context
	data *app.App
	now  func() time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     components.Flash

	// Per-tab state
	history  listState
	budget   budgetState
	notes    listState
	settings settingsState

	// Overlays
	pin  pinPrompt
	form *entryForm

	// Advice
	advising   bool
	advice     string
	adviceView string
	spinner    spinner.Model
}

// NewApp creates the TUI model over a.
func NewApp(ctx context.Context, a *app.App) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		ctx:      ctx,
		data:     a,
		now:      time.Now,
		spinner:  sp,
		settings: newSettingsState(a.Config),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form.resize(a.contentWidth(), a.height)
		}
		a.adviceView = a.renderAdvice()
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case AdviceMsg:
		a.advising = false
		a.advice = msg.Text
		a.adviceView = a.renderAdvice()
		return a, nil

	case spinner.TickMsg:
		if !a.advising {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward cursor blinks and the like to whichever overlay owns focus.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.pin.active {
		var cmd tea.Cmd
		a.pin.input, cmd = a.pin.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Overlays intercept all keys, innermost first.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if _, ok := a.data.Gate.Pending(); ok {
		return a.updateConfirm(key)
	}
	if a.pin.active {
		return a.updatePIN(msg)
	}
	if a.budget.editing {
		return a.updateBudgetInput(msg)
	}
	if a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	a.flash = components.Flash{}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabNotes {
		if _, open := a.data.Notes.Editing(); open {
			return a.updateNoteViewer(key)
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	switch a.activeTab {
	case tabOverview:
		return a.updateOverview(key)
	case tabHistory:
		return a.updateHistory(key)
	case tabBudget:
		return a.updateBudget(key)
	case tabNotes:
		return a.updateNotes(key)
	case tabSettings:
		return a.updateSettings(key)
	}
	return a, nil
}

// updateConfirm resolves the gate's pending action.
func (a App) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		p, _ := a.data.Gate.Pending()
		if err := a.data.Gate.Confirm(); err != nil {
			a.flash = components.Flash{Text: err.Error(), Error: true}
			return a, nil
		}
		a.flash = components.Flash{Text: doneMessage(p.Effect)}
		a.history.clamp(a.data.Ledger.Len())
		a.notes.clamp(a.data.Notes.Len())
		if p.Effect == confirm.ResetAll {
			a.advice = ""
			a.adviceView = ""
		}
	case "n", "N", "esc", "q":
		a.data.Gate.Cancel()
		a.flash = components.Flash{Text: "Cancelled"}
	}
	return a, nil
}

func doneMessage(e confirm.Effect) string {
	switch e {
	case confirm.DeleteTransaction:
		return "Transaction deleted"
	case confirm.DeleteNote:
		return "Note deleted"
	case confirm.ClearPIN:
		return "PIN removed"
	case confirm.ResetAll:
		return "All data erased"
	}
	return "Done"
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.showHelp || a.form != nil || a.pin.active {
		return a, nil
	}
	if _, ok := a.data.Gate.Pending(); ok {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabHistory:
		a.history.move(delta, a.data.Ledger.Len())
	case tabBudget:
		a.budget.list.move(delta, len(a.data.Budget.Overview(a.now())))
	case tabNotes:
		a.notes.move(delta, a.data.Notes.Len())
	case tabSettings:
		a.settings.list.move(delta, settingsFieldCount)
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if p, ok := a.data.Gate.Pending(); ok {
		return a.viewConfirm(p)
	}
	if a.pin.active {
		return a.viewPIN()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  dompet needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewConfirm(p confirm.PendingAction) string {
	t := theme.Active
	border := t.Accent
	affirm := "confirm"
	switch p.Tone {
	case confirm.ToneDanger:
		border = t.Red
		affirm = "delete"
	case confirm.ToneWarning:
		border = t.Orange
	}
	hint := fmt.Sprintf("[y] %s   [n] cancel", affirm)
	return components.Modal(a.width, a.height, p.Title, p.Message, hint, border)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o h b n x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through lists"},
		}},
		{"Transactions & budgets", []struct{ key, desc string }{
			{"a", "Add transaction (History) / ask for advice (Overview)"},
			{"e", "Edit selected transaction or budget target"},
			{"d", "Delete selected transaction"},
			{"c", "Clear selected budget target"},
		}},
		{"Notes", []struct{ key, desc string }{
			{"a", "New note"},
			{"Enter", "Open note (asks for the PIN if private)"},
			{"e d", "Edit / delete note"},
			{"p", "Set or remove the PIN"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Back / Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.flash, a.statusRight())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabHistory:
		content = a.renderHistoryTab(cw, contentH)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabNotes:
		content = a.renderNotesTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case tabOverview:
		return "[a]dvice  [?]help  [q]uit"
	case tabHistory:
		return "[a]dd  [e]dit  [d]elete  [?]help  [q]uit"
	case tabBudget:
		return "[e]dit target  [c]lear  [?]help  [q]uit"
	case tabNotes:
		if _, open := a.data.Notes.Editing(); open {
			return "[e]dit  [d]elete  [esc] close"
		}
		return "[a]dd  [enter] open  [e]dit  [d]elete  [p]in  [?]help"
	case tabSettings:
		return "[enter] edit  [?]help  [q]uit"
	}
	return "[?]help  [q]uit"
}

func (a App) statusRight() string {
	return fmt.Sprintf("%d transactions · %d notes", a.data.Ledger.Len(), a.data.Notes.Len())
}

// ─── Helpers ────────────────────────────────────────────────────

// listState is a cursor over a list that is rendered in a scrolling window.
type listState struct {
	cursor int
	offset int
}

func (l *listState) move(delta, n int) {
	l.cursor += delta
	l.clamp(n)
}

func (l *listState) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// window returns the [start, end) slice of n rows to show in h lines with
// the cursor visible.
func (l *listState) window(n, h int) (int, int) {
	if h < 1 {
		h = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+h {
		l.offset = l.cursor - h + 1
	}
	if l.offset > max(0, n-h) {
		l.offset = max(0, n-h)
	}
	return l.offset, min(n, l.offset+h)
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

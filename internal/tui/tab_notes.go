package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/notes"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// notesChrome is the border and title overhead of the notes list card.
const notesChrome = 3

func (a App) updateNotes(key string) (tea.Model, tea.Cmd) {
	list := a.data.Notes.List()
	a.notes.clamp(len(list))
	switch key {
	case "j", "down":
		a.notes.move(1, len(list))
	case "k", "up":
		a.notes.move(-1, len(list))
	case "a":
		return a.openNoteForm(nil)
	case "p":
		if a.data.Notes.Guard().HasPIN() {
			a.data.RequestClearPIN()
			return a, nil
		}
		return a.openPIN(pinSet, "")
	}

	if len(list) == 0 {
		return a, nil
	}
	n := list[a.notes.cursor]
	switch key {
	case "enter":
		return a.openNote(n.ID)
	case "e":
		return a.editNote(n.ID)
	case "d", "delete":
		a.data.RequestDeleteNote(n.ID)
	}
	return a, nil
}

// openNote opens id in the viewer, or starts an unlock when it is locked.
func (a App) openNote(id string) (tea.Model, tea.Cmd) {
	_, err := a.data.Notes.Open(id)
	switch {
	case errors.Is(err, notes.ErrLocked):
		return a.openPIN(pinUnlock, "")
	case err != nil:
		a.flash = components.Flash{Text: err.Error(), Error: true}
	}
	return a, nil
}

// editNote opens the note form on id. Private notes still have to be
// unlocked; the viewer offers edit once they are open.
func (a App) editNote(id string) (tea.Model, tea.Cmd) {
	n, err := a.data.Notes.Open(id)
	switch {
	case errors.Is(err, notes.ErrLocked):
		return a.openPIN(pinUnlock, "")
	case err != nil:
		a.flash = components.Flash{Text: err.Error(), Error: true}
		return a, nil
	}
	return a.openNoteForm(&n)
}

func (a App) updateNoteViewer(key string) (tea.Model, tea.Cmd) {
	id, _ := a.data.Notes.Editing()
	switch key {
	case "esc", "q", "backspace":
		a.data.Notes.CloseEditor()
	case "e":
		n, ok := a.data.Notes.Get(id)
		if !ok {
			a.data.Notes.CloseEditor()
			return a, nil
		}
		return a.openNoteForm(&n)
	case "d", "delete":
		a.data.RequestDeleteNote(id)
	}
	return a, nil
}

func (a App) renderNotesTab(cw, h int) string {
	if id, open := a.data.Notes.Editing(); open {
		if n, ok := a.data.Notes.Get(id); ok {
			return a.renderNoteViewer(n, cw, h)
		}
	}

	t := theme.Active
	list := a.data.Notes.List()
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	lock := "no PIN set"
	if a.data.Notes.Guard().HasPIN() {
		lock = "PIN set"
	}
	title := fmt.Sprintf("Notes · %d · %s", len(list), lock)

	if len(list) == 0 {
		return components.ContentCard(title, muted.Render("No notes yet. Press a to write one."), cw)
	}

	cursor := a.notes
	cursor.clamp(len(list))
	start, end := cursor.window(len(list), h-notesChrome)

	inner := components.CardInnerWidth(cw)
	now := a.now()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, renderNoteRow(list[i], inner, i == cursor.cursor, now))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), cw)
}

func renderNoteRow(n model.Note, width int, selected bool, now time.Time) string {
	t := theme.Active
	bg := t.Surface
	if selected {
		bg = t.SurfaceHover
	}
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(n.TextColor)).
		Background(lipgloss.Color(n.BackgroundColor)).
		Render(" ✎ ")
	sp := lipgloss.NewStyle().Background(bg).Render(" ")

	title := noteTitle(n)
	preview := strings.ReplaceAll(n.Content, "\n", " ")
	if n.IsPrivate {
		title = "🔒 " + title
		preview = "Private note"
	}

	when := cli.FormatRelative(n.CreatedAt, now)
	titleW := min(30, width/3)
	previewW := max(10, width-titleW-lipgloss.Width(when)-7)

	return swatch + sp +
		text.Bold(true).Render(fmt.Sprintf("%-*s", titleW, cli.Truncate(title, titleW))) + sp +
		muted.Render(fmt.Sprintf("%-*s", previewW, cli.Truncate(preview, previewW))) + sp +
		muted.Render(when)
}

func (a App) renderNoteViewer(n model.Note, cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	page := lipgloss.NewStyle().
		Foreground(lipgloss.Color(n.TextColor)).
		Background(lipgloss.Color(n.BackgroundColor)).
		Width(inner).
		Padding(1, 2)

	meta := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	status := "public"
	if n.IsPrivate {
		status = "private"
	}

	body := page.Render(n.Content) + "\n" +
		meta.Render(fmt.Sprintf("%s · saved %s", status, cli.FormatRelative(n.CreatedAt, a.now())))

	return components.AccentCard(noteTitle(n), truncateHeight(body, max(1, h-3)), cw, t.BorderAccent)
}

func noteTitle(n model.Note) string {
	if strings.TrimSpace(n.Title) == "" {
		return "Untitled note"
	}
	return n.Title
}

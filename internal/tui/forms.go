package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/ledger"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/notes"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// entryForm is an embedded huh form for a transaction or a note. The value
// structs are pointers so they survive the model being copied on every Update.
type entryForm struct {
	form  *huh.Form
	title string
	tx    *txValues
	note  *noteValues
}

type txValues struct {
	id          string
	kind        model.Kind
	amount      string
	category    string
	description string
	date        string
}

type noteValues struct {
	id        string
	title     string
	content   string
	color     string
	isPrivate bool
}

func (f *entryForm) resize(w, h int) {
	f.form = f.form.WithWidth(min(w-8, 72)).WithHeight(max(h-6, 10))
}

// openTransactionForm opens the add form, or the edit form when tx is set.
func (a App) openTransactionForm(tx *model.Transaction) (tea.Model, tea.Cmd) {
	v := &txValues{
		kind:     model.Expense,
		category: config.DefaultCategory(model.Expense).ID,
		date:     a.now().Format(time.DateOnly),
	}
	title := "New transaction"
	if tx != nil {
		v = &txValues{
			id:          tx.ID,
			kind:        tx.Kind,
			amount:      tx.Amount.String(),
			category:    tx.Category,
			description: tx.Description,
			date:        tx.Date.Format(time.DateOnly),
		}
		title = "Edit transaction"
	}

	categoryOptions := func() []huh.Option[string] {
		cats := config.Categories(v.kind)
		opts := make([]huh.Option[string], 0, len(cats))
		for _, c := range cats {
			opts = append(opts, huh.NewOption(c.Name, c.ID))
		}
		return opts
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.Kind]().
				Title("Type").
				Options(
					huh.NewOption("Expense", model.Expense),
					huh.NewOption("Income", model.Income),
				).
				Value(&v.kind),
			huh.NewInput().
				Title("Amount").
				Placeholder("e.g. 25000").
				Validate(validateAmount).
				Value(&v.amount),
			huh.NewSelect[string]().
				Title("Category").
				OptionsFunc(categoryOptions, &v.kind).
				Value(&v.category),
			huh.NewInput().
				Title("Description").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return ledger.ErrEmptyDescription
					}
					return nil
				}).
				Value(&v.description),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, today or yesterday").
				Validate(func(s string) error {
					_, err := cli.ParseDate(strings.TrimSpace(s), a.now())
					return err
				}).
				Value(&v.date),
		),
	).WithShowHelp(true)

	a.form = &entryForm{form: form, title: title, tx: v}
	if a.width > 0 {
		a.form.resize(a.contentWidth(), a.height)
	}
	return a, a.form.form.Init()
}

func validateAmount(s string) error {
	d, err := ledger.ParseAmount(s)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return ledger.ErrNegativeAmount
	}
	return nil
}

// openNoteForm opens the note editor form, prefilled when n is set.
func (a App) openNoteForm(n *model.Note) (tea.Model, tea.Cmd) {
	v := &noteValues{color: config.NotePalette[0].Name}
	title := "New note"
	if n != nil {
		v = &noteValues{
			id:        n.ID,
			title:     n.Title,
			content:   n.Content,
			color:     paletteName(n.BackgroundColor),
			isPrivate: n.IsPrivate,
		}
		title = "Edit note"
	}

	colors := make([]huh.Option[string], 0, len(config.NotePalette))
	for _, c := range config.NotePalette {
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Text)).
			Background(lipgloss.Color(c.Background)).
			Render(" Aa ")
		colors = append(colors, huh.NewOption(swatch+" "+c.Name, c.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.title),
			huh.NewText().
				Title("Content").
				Lines(6).
				Value(&v.content),
			huh.NewSelect[string]().
				Title("Colour").
				Options(colors...).
				Value(&v.color),
			huh.NewConfirm().
				Title("Private").
				Description("Private notes ask for the PIN before opening.").
				Affirmative("Private").
				Negative("Public").
				Value(&v.isPrivate),
		),
	).WithShowHelp(true)

	a.form = &entryForm{form: form, title: title, note: v}
	if a.width > 0 {
		a.form.resize(a.contentWidth(), a.height)
	}
	return a, a.form.form.Init()
}

func paletteName(bg string) string {
	for _, c := range config.NotePalette {
		if strings.EqualFold(c.Background, bg) {
			return c.Name
		}
	}
	return config.NotePalette[0].Name
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.form = nil
		return a, nil
	}

	form, cmd := a.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form.form = f
	}

	switch a.form.form.State {
	case huh.StateCompleted:
		ef := a.form
		a.form = nil
		if ef.tx != nil {
			return a.submitTransaction(ef.tx)
		}
		return a.submitNote(ef.note)
	case huh.StateAborted:
		a.form = nil
		return a, nil
	}
	return a, cmd
}

func (a App) submitTransaction(v *txValues) (tea.Model, tea.Cmd) {
	amount, err := ledger.ParseAmount(v.amount)
	if err != nil {
		a.flash = components.Flash{Text: err.Error(), Error: true}
		return a, nil
	}
	date, err := cli.ParseDate(strings.TrimSpace(v.date), a.now())
	if err != nil {
		a.flash = components.Flash{Text: err.Error(), Error: true}
		return a, nil
	}
	// The category list follows the type; a stale pick from the other list
	// falls back to what the form showed first.
	if !config.ValidCategory(v.kind, v.category) {
		v.category = config.DefaultCategory(v.kind).ID
	}
	d := ledger.Draft{
		Amount:      amount,
		Kind:        v.kind,
		Category:    v.category,
		Description: v.description,
		Date:        date,
	}

	if v.id == "" {
		if _, err := a.data.Ledger.Add(d); err != nil {
			a.flash = components.Flash{Text: err.Error(), Error: true}
			return a, nil
		}
		a.history.cursor = 0
		a.flash = components.Flash{Text: "Added " + cli.FormatSigned(a.data.Config.Display, d.Kind, d.Amount)}
		return a, nil
	}
	if err := a.data.Ledger.Update(v.id, d); err != nil {
		a.flash = components.Flash{Text: err.Error(), Error: true}
		return a, nil
	}
	a.flash = components.Flash{Text: "Transaction updated"}
	return a, nil
}

func (a App) submitNote(v *noteValues) (tea.Model, tea.Cmd) {
	color, _ := config.LookupNoteColor(v.color)
	d := notes.Draft{
		ID:        v.id,
		Title:     v.title,
		Content:   v.content,
		Color:     color,
		IsPrivate: v.isPrivate,
	}

	_, err := a.data.Notes.Save(d)
	switch {
	case errors.Is(err, notes.ErrPINRequired):
		p := a.data.Notes.BeginPrivacyUpgrade(d)
		return a.openPIN(pinUpgrade, p.Token)
	case err != nil:
		a.flash = components.Flash{Text: err.Error(), Error: true}
		return a, nil
	}
	if v.id == "" {
		a.notes.cursor = 0
	}
	a.flash = components.Flash{Text: "Note saved"}
	return a, nil
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := titleStyle.Render(a.form.title) + "\n\n" +
		a.form.form.View() + "\n" +
		hintStyle.Render("esc to cancel · enter to continue")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

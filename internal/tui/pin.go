package tui

import (
	"errors"

	"github.com/theirongolddev/dompet/internal/notes"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pinMode int

const (
	pinUnlock  pinMode = iota // open a locked private note
	pinSet                    // establish the PIN on its own
	pinUpgrade                // establish the PIN, then finish a parked private save
)

// pinPrompt is the modal PIN entry shared by unlock and setup.
type pinPrompt struct {
	active bool
	mode   pinMode
	token  string
	input  textinput.Model
	err    error
}

// openPIN shows the PIN prompt. token is the pending-save token for pinUpgrade.
func (a App) openPIN(mode pinMode, token string) (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "PIN"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 32
	ti.Width = 24
	ti.Focus()

	a.pin = pinPrompt{active: true, mode: mode, token: token, input: ti}
	return a, textinput.Blink
}

func (a App) updatePIN(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.cancelPIN()
		return a, nil
	case "enter":
		return a.submitPIN()
	}

	var cmd tea.Cmd
	a.pin.input, cmd = a.pin.input.Update(msg)
	return a, cmd
}

func (a *App) cancelPIN() {
	switch a.pin.mode {
	case pinUnlock:
		a.data.Notes.Guard().CancelUnlock()
	case pinUpgrade:
		a.data.Notes.CancelPrivacyUpgrade()
		a.flash = components.Flash{Text: "Private note not saved"}
	}
	a.pin = pinPrompt{}
}

func (a App) submitPIN() (tea.Model, tea.Cmd) {
	secret := a.pin.input.Value()
	nb := a.data.Notes

	var err error
	switch a.pin.mode {
	case pinUnlock:
		_, err = nb.Unlock(secret)
	case pinSet:
		err = nb.Guard().Setup(secret)
		if err == nil {
			a.flash = components.Flash{Text: "PIN set"}
		}
	case pinUpgrade:
		_, err = nb.CompleteSetup(a.pin.token, secret)
		if err == nil {
			a.flash = components.Flash{Text: "PIN set and private note saved"}
		}
	}

	switch {
	case err == nil:
		a.pin = pinPrompt{}
	case errors.Is(err, notes.ErrUnknownPendingSave), errors.Is(err, notes.ErrNotUnlocking):
		// The request it belonged to is gone; nothing left to retry.
		a.pin = pinPrompt{}
		a.flash = components.Flash{Text: err.Error(), Error: true}
	default:
		a.pin.err = err
		a.pin.input.SetValue("")
	}
	return a, nil
}

func (a App) viewPIN() string {
	t := theme.Active

	title := "Enter PIN"
	body := "This note is private."
	switch a.pin.mode {
	case pinSet:
		title = "Set a PIN"
		body = "Private notes will ask for this PIN. At least 4 characters."
	case pinUpgrade:
		title = "Set a PIN to save this private note"
		body = "No PIN exists yet. At least 4 characters."
	}

	body += "\n\n" + a.pin.input.View()
	if a.pin.err != nil {
		body += "\n" + lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(pinErrorText(a.pin.err))
	}

	return components.Modal(a.width, a.height, title, body, "[enter] submit   [esc] cancel", t.BorderAccent)
}

func pinErrorText(err error) string {
	switch {
	case errors.Is(err, notes.ErrWrongPIN):
		return "Wrong PIN, try again."
	case errors.Is(err, notes.ErrPINTooShort):
		return "PIN must be at least 4 characters."
	}
	return err.Error()
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/confirm"

	"github.com/charmbracelet/huh"
)

// resolveGate asks the user about the gate's pending action and confirms or
// cancels it. --yes confirms without asking. It reports whether the action ran.
func resolveGate(a *app.App) (bool, error) {
	p, ok := a.Gate.Pending()
	if !ok {
		return false, confirm.ErrNothingPending
	}

	proceed := flagYes
	if !proceed {
		affirm := "Confirm"
		if p.Tone == confirm.ToneDanger {
			affirm = "Delete"
		}
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(p.Title).
				Description(p.Message).
				Affirmative(affirm).
				Negative("Cancel").
				Value(&proceed),
		)).Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			a.Gate.Cancel()
			return false, fmt.Errorf("prompt: %w", err)
		}
	}

	if !proceed {
		a.Gate.Cancel()
		fmt.Println("  Cancelled.")
		return false, nil
	}
	if err := a.Gate.Confirm(); err != nil {
		return false, err
	}
	return true, nil
}

// promptSecret reads a PIN without echo. A non-empty preset is returned as is.
func promptSecret(title, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	var secret string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(&secret),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", errAborted
	}
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return secret, nil
}

// Package confirm implements the two-step request/confirm protocol that every
// destructive action passes through.
package confirm

import (
	"errors"
	"fmt"
)

// ErrNothingPending is returned by Confirm when no request is open.
var ErrNothingPending = errors.New("nothing to confirm")

// Effect identifies what a confirmed action does.
type Effect int

const (
	// DeleteTransaction removes the transaction named by Target.
	DeleteTransaction Effect = iota + 1
	// DeleteNote removes the note named by Target.
	DeleteNote
	// ClearPIN removes the note PIN.
	ClearPIN
	// ResetAll erases every persisted collection.
	ResetAll
)

func (e Effect) String() string {
	switch e {
	case DeleteTransaction:
		return "delete-transaction"
	case DeleteNote:
		return "delete-note"
	case ClearPIN:
		return "clear-pin"
	case ResetAll:
		return "reset-all"
	}
	return fmt.Sprintf("Effect(%d)", int(e))
}

// Tone hints how prominently a UI should present the prompt.
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
)

// PendingAction describes an action awaiting a decision.
type PendingAction struct {
	Effect  Effect
	Target  string
	Title   string
	Message string
	Tone    Tone
}

// Dispatcher runs confirmed actions.
type Dispatcher interface {
	Dispatch(PendingAction) error
}

// Gate holds at most one pending action.
type Gate struct {
	d       Dispatcher
	pending *PendingAction
}

// NewGate returns a gate that runs confirmed actions through d.
func NewGate(d Dispatcher) *Gate {
	return &Gate{d: d}
}

// Request opens a; any earlier pending action is silently replaced.
func (g *Gate) Request(a PendingAction) {
	g.pending = &a
}

// Pending returns the open action.
func (g *Gate) Pending() (PendingAction, bool) {
	if g.pending == nil {
		return PendingAction{}, false
	}
	return *g.pending, true
}

// Confirm dispatches the pending action and closes the request. The request
// is closed even when dispatch fails.
func (g *Gate) Confirm() error {
	if g.pending == nil {
		return ErrNothingPending
	}
	a := *g.pending
	g.pending = nil
	if err := g.d.Dispatch(a); err != nil {
		return fmt.Errorf("%s: %w", a.Effect, err)
	}
	return nil
}

// Cancel discards the pending action without running it.
func (g *Gate) Cancel() {
	g.pending = nil
}

// Package app wires the stores together and is the single place where
// confirmed destructive actions are carried out.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/theirongolddev/dompet/internal/advisor"
	"github.com/theirongolddev/dompet/internal/budget"
	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/confirm"
	"github.com/theirongolddev/dompet/internal/ledger"
	"github.com/theirongolddev/dompet/internal/logging"
	"github.com/theirongolddev/dompet/internal/notes"
	"github.com/theirongolddev/dompet/internal/store"

	"go.uber.org/zap"
)

// ErrUnknownEffect is returned by Dispatch for an effect it cannot run.
var ErrUnknownEffect = errors.New("unknown effect")

// App owns every store for one data directory.
type App struct {
	Config  config.Config
	Ledger  *ledger.Ledger
	Budget  *budget.Planner
	Notes   *notes.Notebook
	Gate    *confirm.Gate
	Advisor *advisor.Advisor

	kv     store.KV
	log    *zap.Logger
	closer io.Closer
}

var _ confirm.Dispatcher = (*App)(nil)

// New builds an App over kv. gen may be nil.
func New(cfg config.Config, kv store.KV, gen advisor.Generator, log *zap.Logger) *App {
	log = logging.OrNop(log)
	l := ledger.Open(kv, log.Named("ledger"))
	a := &App{
		Config:  cfg,
		Ledger:  l,
		Budget:  budget.Open(kv, l, log.Named("budget")),
		Notes:   notes.Open(kv, log.Named("notes")),
		Advisor: advisor.New(gen, log.Named("advisor")),
		kv:      kv,
		log:     log,
	}
	a.Gate = confirm.NewGate(a)
	return a
}

// Open opens the SQLite store in the configured data directory. An advisor
// that fails to initialise is logged and left unconfigured.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	log = logging.OrNop(log)
	db, err := store.Open(config.DBPath(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	gen, err := advisor.FromConfig(ctx, cfg)
	if err != nil {
		log.Warn("advisor disabled", zap.Error(err))
		gen = nil
	}
	a := New(cfg, db, gen, log)
	a.closer = db
	return a, nil
}

// Close flushes nothing; every mutation is already written. It releases the store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Dispatch runs a confirmed action.
func (a *App) Dispatch(p confirm.PendingAction) error {
	a.log.Info("dispatching confirmed action",
		zap.Stringer("effect", p.Effect),
		zap.String("target", p.Target),
	)
	switch p.Effect {
	case confirm.DeleteTransaction:
		a.Ledger.Remove(p.Target)
	case confirm.DeleteNote:
		a.Notes.Remove(p.Target)
	case confirm.ClearPIN:
		a.Notes.Guard().Clear()
	case confirm.ResetAll:
		return a.ResetAll()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEffect, p.Effect)
	}
	return nil
}

// ResetAll deletes every persisted record in one atomic step and only then
// empties the in-memory stores. If the delete fails nothing changes.
func (a *App) ResetAll() error {
	if err := a.kv.Delete(store.AllKeys...); err != nil {
		a.log.Error("reset failed", zap.Error(err))
		return fmt.Errorf("clearing data: %w", err)
	}
	a.Ledger.Reset()
	a.Budget.Reset()
	a.Notes.Reset()
	return nil
}

// RequestDeleteTransaction asks the gate to confirm removing id.
func (a *App) RequestDeleteTransaction(id string) bool {
	t, ok := a.Ledger.Get(id)
	if !ok {
		return false
	}
	a.Gate.Request(confirm.PendingAction{
		Effect:  confirm.DeleteTransaction,
		Target:  id,
		Title:   "Delete transaction?",
		Message: fmt.Sprintf("%q (%s) will be removed permanently.", t.Description, cli.FormatCurrency(a.Config.Display, t.Amount)),
		Tone:    confirm.ToneDanger,
	})
	return true
}

// RequestDeleteNote asks the gate to confirm removing id.
func (a *App) RequestDeleteNote(id string) bool {
	n, ok := a.Notes.Get(id)
	if !ok {
		return false
	}
	title := n.Title
	if title == "" {
		title = "Untitled note"
	}
	a.Gate.Request(confirm.PendingAction{
		Effect:  confirm.DeleteNote,
		Target:  id,
		Title:   "Delete note?",
		Message: fmt.Sprintf("%q will be removed permanently.", title),
		Tone:    confirm.ToneDanger,
	})
	return true
}

// RequestClearPIN asks the gate to confirm removing the note PIN.
func (a *App) RequestClearPIN() bool {
	if !a.Notes.Guard().HasPIN() {
		return false
	}
	a.Gate.Request(confirm.PendingAction{
		Effect:  confirm.ClearPIN,
		Title:   "Remove PIN?",
		Message: "Private notes will open without a PIN until a new one is set.",
		Tone:    confirm.ToneWarning,
	})
	return true
}

// RequestResetAll asks the gate to confirm erasing all data.
func (a *App) RequestResetAll() {
	a.Gate.Request(confirm.PendingAction{
		Effect:  confirm.ResetAll,
		Title:   "Reset all data?",
		Message: "Every transaction, budget, note and the PIN will be erased. This cannot be undone.",
		Tone:    confirm.ToneDanger,
	})
}

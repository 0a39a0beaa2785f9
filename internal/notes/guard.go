package notes

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/theirongolddev/dompet/internal/logging"
	"github.com/theirongolddev/dompet/internal/store"

	"go.uber.org/zap"
)

// MinPINLength is the shortest secret Setup accepts.
const MinPINLength = 4

// Guard errors.
var (
	ErrPINTooShort   = fmt.Errorf("PIN must be at least %d characters", MinPINLength)
	ErrPINAlreadySet = errors.New("a PIN is already set")
	ErrNoPIN         = errors.New("no PIN is set")
	ErrWrongPIN      = errors.New("wrong PIN")
	ErrNotUnlocking  = errors.New("no unlock in progress")
)

// State is the privacy gate position.
type State int

const (
	// NoPINSet means private notes open freely.
	NoPINSet State = iota
	// Locked means a PIN exists and no verification is pending.
	Locked
	// Unlocking means a private note is waiting on Verify.
	Unlocking
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	default:
		return "no-pin"
	}
}

// Guard holds the single shared PIN. A successful Verify unlocks one open
// action only; the guard returns to Locked immediately.
type Guard struct {
	kv      store.KV
	log     *zap.Logger
	secret  string
	state   State
	pending string
}

// OpenGuard loads the persisted PIN. A corrupt or empty record means no PIN.
func OpenGuard(kv store.KV, log *zap.Logger) *Guard {
	g := &Guard{kv: kv, log: logging.OrNop(log)}
	var secret string
	if store.LoadJSON(kv, store.KeyPIN, &secret, g.log) && secret != "" {
		g.secret = secret
		g.state = Locked
	}
	return g
}

// State returns the current gate position.
func (g *Guard) State() State { return g.state }

// HasPIN reports whether a PIN is set.
func (g *Guard) HasPIN() bool { return g.state != NoPINSet }

// PendingNote returns the note awaiting verification, if any.
func (g *Guard) PendingNote() (string, bool) {
	return g.pending, g.state == Unlocking
}

// Setup stores the first PIN. There is no rotation: clear first.
func (g *Guard) Setup(secret string) error {
	if g.state != NoPINSet {
		return ErrPINAlreadySet
	}
	if utf8.RuneCountInString(secret) < MinPINLength {
		return ErrPINTooShort
	}
	g.secret = secret
	g.state = Locked
	if err := store.SaveJSON(g.kv, store.KeyPIN, secret); err != nil {
		g.log.Error("persisting PIN", zap.Error(err))
	}
	return nil
}

// BeginUnlock starts verification for noteID, replacing any earlier pending unlock.
func (g *Guard) BeginUnlock(noteID string) error {
	if g.state == NoPINSet {
		return ErrNoPIN
	}
	g.state = Unlocking
	g.pending = noteID
	return nil
}

// Verify compares input to the PIN. On a match it returns the pending note id
// and locks again. On a mismatch the unlock stays pending; there is no retry limit.
func (g *Guard) Verify(input string) (string, error) {
	if g.state != Unlocking {
		return "", ErrNotUnlocking
	}
	if input != g.secret {
		return "", ErrWrongPIN
	}
	id := g.pending
	g.state = Locked
	g.pending = ""
	return id, nil
}

// CancelUnlock abandons a pending verification.
func (g *Guard) CancelUnlock() {
	if g.state == Unlocking {
		g.state = Locked
		g.pending = ""
	}
}

// Clear removes the PIN. Notes already open stay open.
func (g *Guard) Clear() {
	g.Reset()
	if err := g.kv.Delete(store.KeyPIN); err != nil {
		g.log.Error("clearing PIN", zap.Error(err))
	}
}

// Reset forgets the PIN in memory without touching the store.
func (g *Guard) Reset() {
	g.secret = ""
	g.pending = ""
	g.state = NoPINSet
}

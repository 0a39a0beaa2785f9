// Package notes stores coloured free-text notes and gates private ones behind
// a single shared PIN.
//
// Known weakness: the PIN is stored and compared as plaintext, and private
// notes are stored unencrypted alongside public ones. IsPrivate obscures a
// note from casual viewing on an unlocked device; it does not make it
// confidential from anyone who can read the data directory.
package notes

import (
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/logging"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notebook errors.
var (
	ErrEmptyNote          = errors.New("note needs a title or content")
	ErrPINRequired        = errors.New("set a PIN before saving a private note")
	ErrLocked             = errors.New("note is locked")
	ErrNoteNotFound       = errors.New("note not found")
	ErrUnknownPendingSave = errors.New("no matching pending save")
)

// Draft is the editor content of a note. An empty ID creates a new note.
type Draft struct {
	ID        string
	Title     string
	Content   string
	Color     model.NoteColor
	IsPrivate bool
}

// DraftOf returns the editable fields of n.
func DraftOf(n model.Note) Draft {
	color := model.NoteColor{Background: n.BackgroundColor, Text: n.TextColor}
	return Draft{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Color:     color,
		IsPrivate: n.IsPrivate,
	}
}

// Validate reports ErrEmptyNote when both title and content are blank.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == "" {
		return ErrEmptyNote
	}
	return nil
}

// PendingSave is a private-note save parked until a PIN is established.
type PendingSave struct {
	Token string
	Draft Draft
}

// Notebook holds notes ordered newest insertion first, plus the editor and
// privacy state that belong with them.
type Notebook struct {
	kv    store.KV
	log   *zap.Logger
	guard *Guard
	notes []model.Note

	editing string
	pending *PendingSave

	now   func() time.Time
	newID func() string
}

// Open loads notes and the PIN. Missing or corrupt records yield an empty notebook.
func Open(kv store.KV, log *zap.Logger) *Notebook {
	log = logging.OrNop(log)
	nb := &Notebook{
		kv:    kv,
		log:   log,
		guard: OpenGuard(kv, log),
		now:   time.Now,
		newID: uuid.NewString,
	}
	var notes []model.Note
	if store.LoadJSON(kv, store.KeyNotes, &notes, log) {
		nb.notes = notes
	}
	return nb
}

// Guard exposes the PIN guard.
func (nb *Notebook) Guard() *Guard { return nb.guard }

// Save creates or replaces a note. Saving a private note while no PIN exists
// fails with ErrPINRequired; use BeginPrivacyUpgrade to park it instead.
// Replacing an unknown id is a no-op and returns a zero Note.
func (nb *Notebook) Save(d Draft) (model.Note, error) {
	if err := d.Validate(); err != nil {
		return model.Note{}, err
	}
	if d.IsPrivate && !nb.guard.HasPIN() {
		return model.Note{}, ErrPINRequired
	}

	color := d.Color
	if color.Background == "" || color.Text == "" {
		color = config.NotePalette[0]
	}
	n := model.Note{
		ID:              d.ID,
		Title:           strings.TrimSpace(d.Title),
		Content:         d.Content,
		BackgroundColor: color.Background,
		TextColor:       color.Text,
		IsPrivate:       d.IsPrivate,
		CreatedAt:       nb.now(),
	}

	if d.ID == "" {
		n.ID = nb.newID()
		nb.notes = append([]model.Note{n}, nb.notes...)
	} else {
		i := nb.index(d.ID)
		if i < 0 {
			return model.Note{}, nil
		}
		nb.notes[i] = n
	}
	nb.persist()
	return n, nil
}

// BeginPrivacyUpgrade parks d until a PIN is set, replacing any earlier
// pending save.
func (nb *Notebook) BeginPrivacyUpgrade(d Draft) PendingSave {
	p := PendingSave{Token: uuid.NewString(), Draft: d}
	nb.pending = &p
	return p
}

// Pending returns the parked save, if any.
func (nb *Notebook) Pending() (PendingSave, bool) {
	if nb.pending == nil {
		return PendingSave{}, false
	}
	return *nb.pending, true
}

// CompleteSetup sets the PIN and then completes the parked save. A rejected
// PIN or an invalid draft keeps the save parked and sets no PIN.
func (nb *Notebook) CompleteSetup(token, secret string) (model.Note, error) {
	if nb.pending == nil || nb.pending.Token != token {
		return model.Note{}, ErrUnknownPendingSave
	}
	if err := nb.pending.Draft.Validate(); err != nil {
		return model.Note{}, err
	}
	if err := nb.guard.Setup(secret); err != nil {
		return model.Note{}, err
	}
	d := nb.pending.Draft
	nb.pending = nil
	return nb.Save(d)
}

// CancelPrivacyUpgrade discards the parked save.
func (nb *Notebook) CancelPrivacyUpgrade() {
	nb.pending = nil
}

// Open opens the editor on id. A private note behind a PIN is not opened;
// the guard starts an unlock and ErrLocked is returned.
func (nb *Notebook) Open(id string) (model.Note, error) {
	n, ok := nb.Get(id)
	if !ok {
		return model.Note{}, ErrNoteNotFound
	}
	if n.IsPrivate && nb.guard.HasPIN() {
		if err := nb.guard.BeginUnlock(id); err != nil {
			return model.Note{}, err
		}
		return model.Note{}, ErrLocked
	}
	nb.editing = id
	return n, nil
}

// Unlock verifies input for the pending unlock and opens the note on success.
func (nb *Notebook) Unlock(input string) (model.Note, error) {
	id, err := nb.guard.Verify(input)
	if err != nil {
		return model.Note{}, err
	}
	n, ok := nb.Get(id)
	if !ok {
		return model.Note{}, ErrNoteNotFound
	}
	nb.editing = id
	return n, nil
}

// Editing returns the id of the note open in the editor.
func (nb *Notebook) Editing() (string, bool) {
	return nb.editing, nb.editing != ""
}

// CloseEditor closes the editor.
func (nb *Notebook) CloseEditor() {
	nb.editing = ""
}

// Remove deletes id if present. The editor is closed if it shows id.
func (nb *Notebook) Remove(id string) {
	if nb.editing == id {
		nb.editing = ""
	}
	if pid, ok := nb.guard.PendingNote(); ok && pid == id {
		nb.guard.CancelUnlock()
	}
	i := nb.index(id)
	if i < 0 {
		return
	}
	nb.notes = append(nb.notes[:i:i], nb.notes[i+1:]...)
	nb.persist()
}

// Get returns the note with id.
func (nb *Notebook) Get(id string) (model.Note, bool) {
	if i := nb.index(id); i >= 0 {
		return nb.notes[i], true
	}
	return model.Note{}, false
}

// Resolve finds a note by full id or unique id prefix.
func (nb *Notebook) Resolve(ref string) (model.Note, bool) {
	if n, ok := nb.Get(ref); ok {
		return n, true
	}
	if ref == "" {
		return model.Note{}, false
	}
	var found model.Note
	count := 0
	for _, n := range nb.notes {
		if strings.HasPrefix(n.ID, ref) {
			found = n
			count++
		}
	}
	return found, count == 1
}

// List returns a copy of all notes in insertion order.
func (nb *Notebook) List() []model.Note {
	out := make([]model.Note, len(nb.notes))
	copy(out, nb.notes)
	return out
}

// Len returns the number of notes.
func (nb *Notebook) Len() int { return len(nb.notes) }

// Flush writes the full collection.
func (nb *Notebook) Flush() error {
	return store.SaveJSON(nb.kv, store.KeyNotes, nb.notes)
}

// Reset empties notes, editor and guard in memory without writing.
func (nb *Notebook) Reset() {
	nb.notes = nil
	nb.editing = ""
	nb.pending = nil
	nb.guard.Reset()
}

func (nb *Notebook) index(id string) int {
	for i, n := range nb.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (nb *Notebook) persist() {
	if err := nb.Flush(); err != nil {
		nb.log.Error("persisting notes", zap.Error(err))
	}
}

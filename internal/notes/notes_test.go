package notes

import (
	"testing"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotebook(t *testing.T) (*Notebook, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return Open(kv, zap.NewNop()), kv
}

func TestPrivateNoteScenario(t *testing.T) {
	nb, kv := newTestNotebook(t)
	draft := Draft{Title: "Savings plan", Content: "secret", IsPrivate: true}

	_, err := nb.Save(draft)
	require.ErrorIs(t, err, ErrPINRequired)
	assert.Zero(t, nb.Len())
	assert.False(t, kv.Has(store.KeyNotes))

	pending := nb.BeginPrivacyUpgrade(draft)

	_, err = nb.CompleteSetup(pending.Token, "123")
	require.ErrorIs(t, err, ErrPINTooShort)
	_, stillPending := nb.Pending()
	assert.True(t, stillPending, "short PIN keeps the save parked")
	assert.Equal(t, NoPINSet, nb.Guard().State())

	saved, err := nb.CompleteSetup(pending.Token, "1234")
	require.NoError(t, err)
	assert.True(t, saved.IsPrivate)
	assert.Equal(t, Locked, nb.Guard().State())
	_, stillPending = nb.Pending()
	assert.False(t, stillPending)

	// A fresh process sees the persisted note and PIN.
	nb = Open(kv, zap.NewNop())
	require.Equal(t, 1, nb.Len())

	_, err = nb.Open(saved.ID)
	require.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, Unlocking, nb.Guard().State())

	_, err = nb.Unlock("0000")
	require.ErrorIs(t, err, ErrWrongPIN)
	assert.Equal(t, Unlocking, nb.Guard().State())
	_, open := nb.Editing()
	assert.False(t, open)

	n, err := nb.Unlock("1234")
	require.NoError(t, err)
	assert.Equal(t, "secret", n.Content)
	id, open := nb.Editing()
	assert.True(t, open)
	assert.Equal(t, saved.ID, id)
	assert.Equal(t, Locked, nb.Guard().State(), "unlock is one-shot")

	nb.CloseEditor()
	_, err = nb.Open(saved.ID)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestCompleteSetup_StaleToken(t *testing.T) {
	nb, _ := newTestNotebook(t)
	first := nb.BeginPrivacyUpgrade(Draft{Title: "a", IsPrivate: true})
	second := nb.BeginPrivacyUpgrade(Draft{Title: "b", IsPrivate: true})

	_, err := nb.CompleteSetup(first.Token, "1234")
	assert.ErrorIs(t, err, ErrUnknownPendingSave)
	assert.False(t, nb.Guard().HasPIN())

	n, err := nb.CompleteSetup(second.Token, "1234")
	require.NoError(t, err)
	assert.Equal(t, "b", n.Title)

	nb.BeginPrivacyUpgrade(Draft{Title: "c"})
	nb.CancelPrivacyUpgrade()
	_, ok := nb.Pending()
	assert.False(t, ok)
}

func TestCompleteSetup_EmptyDraftSetsNoPIN(t *testing.T) {
	nb, kv := newTestNotebook(t)
	pending := nb.BeginPrivacyUpgrade(Draft{IsPrivate: true})

	_, err := nb.CompleteSetup(pending.Token, "1234")
	require.ErrorIs(t, err, ErrEmptyNote)
	assert.False(t, nb.Guard().HasPIN())
	assert.False(t, kv.Has(store.KeyPIN))
	p, ok := nb.Pending()
	require.True(t, ok, "the parked save survives a failed completion")
	assert.Equal(t, pending.Token, p.Token)
}

func TestPrivateNoteWithoutPIN_OpensFreely(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, store.SaveJSON(kv, store.KeyNotes, []map[string]any{
		{"id": "n1", "title": "legacy", "isPrivate": true},
	}))
	nb := Open(kv, zap.NewNop())

	n, err := nb.Open("n1")
	require.NoError(t, err)
	assert.Equal(t, "legacy", n.Title)
}

func TestSave_UpdateKeepsPositionAndRestamps(t *testing.T) {
	nb, _ := newTestNotebook(t)
	clock := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	nb.now = func() time.Time { return clock }

	a, err := nb.Save(Draft{Title: "a"})
	require.NoError(t, err)
	b, err := nb.Save(Draft{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, config.NotePalette[0].Background, a.BackgroundColor)

	clock = clock.Add(time.Hour)
	d := DraftOf(a)
	d.Content = "edited"
	d.Color = config.NotePalette[2]
	updated, err := nb.Save(d)
	require.NoError(t, err)
	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, clock, updated.CreatedAt)
	assert.Equal(t, config.NotePalette[2].Text, updated.TextColor)

	list := nb.List()
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
	assert.Equal(t, "edited", list[1].Content)

	ghost, err := nb.Save(Draft{ID: "missing", Title: "x"})
	require.NoError(t, err)
	assert.Empty(t, ghost.ID)
	assert.Equal(t, 2, nb.Len())
}

func TestSave_Empty(t *testing.T) {
	nb, _ := newTestNotebook(t)
	_, err := nb.Save(Draft{Title: "  ", Content: "\n"})
	assert.ErrorIs(t, err, ErrEmptyNote)
}

func TestRemove_ClosesEditor(t *testing.T) {
	nb, _ := newTestNotebook(t)
	a, _ := nb.Save(Draft{Title: "a"})
	b, _ := nb.Save(Draft{Title: "b"})

	_, err := nb.Open(a.ID)
	require.NoError(t, err)

	nb.Remove(b.ID)
	id, open := nb.Editing()
	assert.True(t, open)
	assert.Equal(t, a.ID, id)

	nb.Remove(a.ID)
	_, open = nb.Editing()
	assert.False(t, open)
	assert.Zero(t, nb.Len())

	nb.Remove("missing")
}

func TestRemove_CancelsPendingUnlock(t *testing.T) {
	nb, _ := newTestNotebook(t)
	require.NoError(t, nb.Guard().Setup("4321"))
	n, err := nb.Save(Draft{Title: "p", IsPrivate: true})
	require.NoError(t, err)

	_, err = nb.Open(n.ID)
	require.ErrorIs(t, err, ErrLocked)
	nb.Remove(n.ID)
	assert.Equal(t, Locked, nb.Guard().State())
}

func TestGuard(t *testing.T) {
	kv := store.NewMemory()
	g := OpenGuard(kv, zap.NewNop())
	assert.Equal(t, NoPINSet, g.State())
	assert.ErrorIs(t, g.BeginUnlock("x"), ErrNoPIN)

	require.NoError(t, g.Setup("abcd"))
	assert.ErrorIs(t, g.Setup("efgh"), ErrPINAlreadySet)

	_, err := g.Verify("abcd")
	assert.ErrorIs(t, err, ErrNotUnlocking)

	require.NoError(t, g.BeginUnlock("n1"))
	g.CancelUnlock()
	assert.Equal(t, Locked, g.State())

	assert.Equal(t, Locked, OpenGuard(kv, zap.NewNop()).State())

	g.Clear()
	assert.Equal(t, NoPINSet, g.State())
	assert.False(t, kv.Has(store.KeyPIN))
	require.NoError(t, g.Setup("wxyz"))
}

func TestOpen_CorruptNotesYieldEmpty(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Put(store.KeyNotes, []byte("<<<")))
	require.NoError(t, kv.Put(store.KeyPIN, []byte("1234")))

	nb := Open(kv, zap.NewNop())
	assert.Zero(t, nb.Len())
	assert.False(t, nb.Guard().HasPIN(), "a PIN record that is not a JSON string is discarded")
}

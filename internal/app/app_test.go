package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/confirm"
	"github.com/theirongolddev/dompet/internal/ledger"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/notes"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seed(t *testing.T, a *App) {
	t.Helper()
	now := time.Now()
	for i := 0; i < 5; i++ {
		_, err := a.Ledger.Add(ledger.Draft{
			Amount:      decimal.NewFromInt(int64(10_000 * (i + 1))),
			Kind:        model.Expense,
			Category:    "food",
			Description: fmt.Sprintf("meal %d", i),
			Date:        now,
		})
		require.NoError(t, err)
	}
	require.NoError(t, a.Budget.Set("food", "100000"))
	require.NoError(t, a.Budget.Set("transport", "50000"))
	require.NoError(t, a.Notes.Guard().Setup("1234"))
	for i := 0; i < 3; i++ {
		_, err := a.Notes.Save(notes.Draft{Title: fmt.Sprintf("note %d", i), IsPrivate: i == 0})
		require.NoError(t, err)
	}
}

func assertEmpty(t *testing.T, a *App, kv *store.Memory) {
	t.Helper()
	assert.Zero(t, a.Ledger.Len())
	assert.True(t, a.Ledger.Summary().Balance.IsZero())
	assert.Empty(t, a.Budget.Targets())
	assert.Zero(t, a.Notes.Len())
	assert.False(t, a.Notes.Guard().HasPIN())
	for _, k := range store.AllKeys {
		assert.False(t, kv.Has(k), "record %s survived reset", k)
	}
}

func TestResetScenario(t *testing.T) {
	kv := store.NewMemory()
	a := New(config.DefaultConfig(), kv, nil, zap.NewNop())
	seed(t, a)
	for _, k := range store.AllKeys {
		require.True(t, kv.Has(k))
	}

	a.RequestResetAll()
	p, ok := a.Gate.Pending()
	require.True(t, ok)
	assert.Equal(t, confirm.ToneDanger, p.Tone)
	require.NoError(t, a.Gate.Confirm())

	assertEmpty(t, a, kv)

	fresh := New(config.DefaultConfig(), kv, nil, zap.NewNop())
	assertEmpty(t, fresh, kv)
}

func TestReset_CancelKeepsData(t *testing.T) {
	kv := store.NewMemory()
	a := New(config.DefaultConfig(), kv, nil, zap.NewNop())
	seed(t, a)

	a.RequestResetAll()
	a.Gate.Cancel()
	assert.Equal(t, 5, a.Ledger.Len())
	assert.Equal(t, 3, a.Notes.Len())
}

func TestReset_FailedDeleteChangesNothing(t *testing.T) {
	kv := store.NewMemory()
	a := New(config.DefaultConfig(), kv, nil, zap.NewNop())
	seed(t, a)
	kv.FailDelete = errors.New("locked")

	a.RequestResetAll()
	assert.Error(t, a.Gate.Confirm())
	assert.Equal(t, 5, a.Ledger.Len())
	assert.Len(t, a.Budget.Targets(), 2)
	assert.Equal(t, 3, a.Notes.Len())
	assert.True(t, a.Notes.Guard().HasPIN())
}

func TestDispatch_Deletes(t *testing.T) {
	kv := store.NewMemory()
	a := New(config.DefaultConfig(), kv, nil, zap.NewNop())
	seed(t, a)

	tx := a.Ledger.List()[0]
	require.True(t, a.RequestDeleteTransaction(tx.ID))
	p, _ := a.Gate.Pending()
	assert.Contains(t, p.Message, tx.Description)
	require.NoError(t, a.Gate.Confirm())
	_, ok := a.Ledger.Get(tx.ID)
	assert.False(t, ok)
	assert.False(t, a.RequestDeleteTransaction(tx.ID))

	n := a.Notes.List()[0]
	_, err := a.Notes.Open(n.ID)
	require.NoError(t, err)
	require.True(t, a.RequestDeleteNote(n.ID))
	require.NoError(t, a.Gate.Confirm())
	_, editing := a.Notes.Editing()
	assert.False(t, editing)
	assert.Equal(t, 2, a.Notes.Len())

	require.True(t, a.RequestClearPIN())
	require.NoError(t, a.Gate.Confirm())
	assert.False(t, a.Notes.Guard().HasPIN())
	assert.False(t, kv.Has(store.KeyPIN))
	assert.False(t, a.RequestClearPIN())

	assert.ErrorIs(t, a.Dispatch(confirm.PendingAction{Effect: 99}), ErrUnknownEffect)
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	cfg := config.DefaultConfig()
	cfg.General.DataDir = t.TempDir()
	t.Setenv("DOMPET_DATA_DIR", cfg.General.DataDir)

	a, err := Open(t.Context(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, a.Advisor.Configured())
	seed(t, a)
	require.NoError(t, a.Close())
	assert.FileExists(t, filepath.Join(cfg.General.DataDir, "dompet.db"))

	a, err = Open(t.Context(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, 5, a.Ledger.Len())
	assert.Equal(t, 3, a.Notes.Len())
	assert.True(t, a.Notes.Guard().HasPIN())

	require.NoError(t, a.ResetAll())
	assert.Zero(t, a.Ledger.Len())
}

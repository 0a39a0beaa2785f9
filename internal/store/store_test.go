package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "dompet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Get(KeyTransactions)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(KeyTransactions, []byte(`[]`)))
	require.NoError(t, kv.Put(KeyTransactions, []byte(`[{"id":"a"}]`)))
	require.NoError(t, kv.Put(KeyPIN, []byte(`"1234"`)))

	v, ok, err := kv.Get(KeyTransactions)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, string(v))

	require.NoError(t, kv.Delete(AllKeys...))
	for _, k := range AllKeys {
		_, ok, err := kv.Get(k)
		require.NoError(t, err)
		assert.False(t, ok, "key %s still present", k)
	}
}

func TestDB_KV(t *testing.T) {
	exerciseKV(t, openTestDB(t))
}

func TestMemory_KV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestDB_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dompet.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Put(KeyNotes, []byte(`[]`)))
	_, ok := db.UpdatedAt(KeyNotes)
	assert.True(t, ok)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := db.Get(KeyNotes)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(v))
}

func TestMemory_Failures(t *testing.T) {
	m := NewMemory()
	boom := errors.New("boom")

	m.FailPut = boom
	assert.ErrorIs(t, m.Put(KeyPIN, []byte("x")), boom)
	assert.False(t, m.Has(KeyPIN))

	m.FailPut = nil
	require.NoError(t, m.Put(KeyPIN, []byte("x")))
	m.FailDelete = boom
	assert.ErrorIs(t, m.Delete(KeyPIN), boom)
	assert.True(t, m.Has(KeyPIN))
}

func TestLoadJSON_CorruptAndMissing(t *testing.T) {
	kv := NewMemory()
	log := zap.NewNop()

	var got []string
	assert.False(t, LoadJSON(kv, KeyNotes, &got, log))
	assert.Nil(t, got)

	require.NoError(t, kv.Put(KeyNotes, []byte(`{not json`)))
	assert.False(t, LoadJSON(kv, KeyNotes, &got, log))

	require.NoError(t, SaveJSON(kv, KeyNotes, []string{"a", "b"}))
	assert.True(t, LoadJSON(kv, KeyNotes, &got, log))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestDB_UpdatedAt(t *testing.T) {
	db := openTestDB(t)

	_, ok := db.UpdatedAt(KeyBudgets)
	assert.False(t, ok)

	before := time.Now().Truncate(time.Second)
	require.NoError(t, db.Put(KeyBudgets, []byte(`{}`)))
	ts, ok := db.UpdatedAt(KeyBudgets)
	require.True(t, ok)
	assert.False(t, ts.Before(before), "updated_at %v is before the write at %v", ts, before)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	require.NoError(t, db.Delete(KeyBudgets))
	_, ok = db.UpdatedAt(KeyBudgets)
	assert.False(t, ok)
}

// Package store provides the durable on-device key-value store that backs every
// dompet collection.
package store

import "sync"

// Record keys. Each collection is persisted independently under one key.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
	KeyNotes        = "notes"
	KeyPIN          = "pin"
)

// AllKeys lists every record a full reset must clear.
var AllKeys = []string{KeyTransactions, KeyBudgets, KeyNotes, KeyPIN}

// KV is a durable keyed record store.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Put replaces the value stored under key.
	Put(key string, value []byte) error
	// Delete removes all keys as one atomic unit. Missing keys are ignored.
	Delete(keys ...string) error
}

// Memory is an in-process KV used by tests and by --ephemeral runs.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailPut and FailDelete, when set, are returned by the matching call.
	FailPut    error
	FailDelete error
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements KV.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Put implements KV.
func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut != nil {
		return m.FailPut
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// Delete implements KV.
func (m *Memory) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete != nil {
		return m.FailDelete
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Has reports whether key is present.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

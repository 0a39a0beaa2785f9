// Package ledger owns the transaction collection: validated add, in-place
// update, removal and the derived summary.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/logging"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/pipeline"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Validation errors returned by Add and Update. None of them mutate state.
var (
	ErrInvalidAmount    = errors.New("amount is not a number")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyDescription = errors.New("description is required")
	ErrMissingDate      = errors.New("date is required")
	ErrCategoryMismatch = errors.New("category does not belong to kind")
)

// Draft is a transaction without an id.
type Draft struct {
	Amount      decimal.Decimal
	Kind        model.Kind
	Category    string
	Description string
	Date        time.Time
}

// Validate checks the draft against the form rules.
func (d Draft) Validate() error {
	if d.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if d.Date.IsZero() {
		return ErrMissingDate
	}
	if !config.ValidCategory(d.Kind, d.Category) {
		return fmt.Errorf("%w: %q is not a %s category", ErrCategoryMismatch, d.Category, d.Kind)
	}
	return nil
}

// DraftOf returns the editable fields of t.
func DraftOf(t model.Transaction) Draft {
	return Draft{
		Amount:      t.Amount,
		Kind:        t.Kind,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}

// ParseAmount parses a user-entered amount. Digit grouping with commas or
// underscores is accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Ledger holds transactions ordered newest insertion first.
type Ledger struct {
	kv    store.KV
	log   *zap.Logger
	txs   []model.Transaction
	newID func() string
}

// Open reads the persisted collection. A missing or corrupt record yields an
// empty ledger.
func Open(kv store.KV, log *zap.Logger) *Ledger {
	l := &Ledger{kv: kv, log: logging.OrNop(log), newID: uuid.NewString}
	var txs []model.Transaction
	if store.LoadJSON(kv, store.KeyTransactions, &txs, l.log) {
		l.txs = txs
	}
	l.log.Debug("ledger loaded", zap.Int("transactions", len(l.txs)))
	return l
}

// Add validates d, assigns a fresh id and prepends the record.
func (l *Ledger) Add(d Draft) (model.Transaction, error) {
	if err := d.Validate(); err != nil {
		return model.Transaction{}, err
	}
	t := model.Transaction{
		ID:          l.newID(),
		Amount:      d.Amount,
		Kind:        d.Kind,
		Category:    d.Category,
		Description: strings.TrimSpace(d.Description),
		Date:        d.Date,
	}
	l.txs = append([]model.Transaction{t}, l.txs...)
	l.persist()
	return t, nil
}

// Update replaces every field of the transaction with id except the id
// itself. An unknown id is a no-op.
func (l *Ledger) Update(id string, d Draft) error {
	i := l.index(id)
	if i < 0 {
		return nil
	}
	if err := d.Validate(); err != nil {
		return err
	}
	l.txs[i] = model.Transaction{
		ID:          id,
		Amount:      d.Amount,
		Kind:        d.Kind,
		Category:    d.Category,
		Description: strings.TrimSpace(d.Description),
		Date:        d.Date,
	}
	l.persist()
	return nil
}

// Remove deletes the transaction with id if present.
func (l *Ledger) Remove(id string) {
	i := l.index(id)
	if i < 0 {
		return
	}
	l.txs = append(l.txs[:i:i], l.txs[i+1:]...)
	l.persist()
}

// Get returns the transaction with id.
func (l *Ledger) Get(id string) (model.Transaction, bool) {
	if i := l.index(id); i >= 0 {
		return l.txs[i], true
	}
	return model.Transaction{}, false
}

// Resolve finds a transaction by full id or unique id prefix.
func (l *Ledger) Resolve(ref string) (model.Transaction, bool) {
	if t, ok := l.Get(ref); ok {
		return t, true
	}
	if ref == "" {
		return model.Transaction{}, false
	}
	var found model.Transaction
	n := 0
	for _, t := range l.txs {
		if strings.HasPrefix(t.ID, ref) {
			found = t
			n++
		}
	}
	return found, n == 1
}

// List returns a copy of the collection in insertion order.
func (l *Ledger) List() []model.Transaction {
	out := make([]model.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Sorted returns a copy ordered by date, newest first.
func (l *Ledger) Sorted() []model.Transaction {
	return pipeline.SortByDate(l.txs)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.txs) }

// Summary recomputes totals over the current collection.
func (l *Ledger) Summary() model.Summary {
	return pipeline.Summarize(l.txs)
}

// Flush writes the full collection.
func (l *Ledger) Flush() error {
	return store.SaveJSON(l.kv, store.KeyTransactions, l.txs)
}

// Reset empties the in-memory collection without writing. The caller is
// responsible for clearing the persisted record.
func (l *Ledger) Reset() {
	l.txs = nil
}

func (l *Ledger) index(id string) int {
	for i, t := range l.txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) persist() {
	if err := l.Flush(); err != nil {
		l.log.Error("persisting transactions", zap.Error(err))
	}
}

// Package budget keeps per-category monthly spending targets and evaluates
// month-to-date spend against them.
package budget

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/ledger"
	"github.com/theirongolddev/dompet/internal/logging"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/pipeline"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Validation errors returned by Set.
var (
	ErrNegativeTarget  = errors.New("budget target must not be negative")
	ErrUnknownCategory = errors.New("not an expense category")
)

// Severity thresholds, in percent of target.
var (
	warnAbove = decimal.NewFromInt(80)
	hundred   = decimal.NewFromInt(100)
)

// Transactions is the read side of the ledger the planner evaluates against.
type Transactions interface {
	List() []model.Transaction
}

var _ Transactions = (*ledger.Ledger)(nil)

// Planner holds the sparse category -> target mapping.
type Planner struct {
	kv      store.KV
	log     *zap.Logger
	txs     Transactions
	targets map[string]decimal.Decimal
}

// Open reads the persisted targets. A missing or corrupt record yields no targets.
func Open(kv store.KV, txs Transactions, log *zap.Logger) *Planner {
	p := &Planner{kv: kv, log: logging.OrNop(log), txs: txs, targets: make(map[string]decimal.Decimal)}
	var targets map[string]decimal.Decimal
	if store.LoadJSON(kv, store.KeyBudgets, &targets, p.log) && targets != nil {
		p.targets = targets
	}
	return p
}

// Set parses amount and stores it as the target for categoryID. Invalid
// input leaves the targets unchanged.
func (p *Planner) Set(categoryID, amount string) error {
	if !config.ValidCategory(model.Expense, categoryID) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}
	target, err := ledger.ParseAmount(amount)
	if err != nil {
		return err
	}
	if target.IsNegative() {
		return ErrNegativeTarget
	}
	p.targets[categoryID] = target
	p.persist()
	return nil
}

// Clear removes the target for categoryID.
func (p *Planner) Clear(categoryID string) {
	if _, ok := p.targets[categoryID]; !ok {
		return
	}
	delete(p.targets, categoryID)
	p.persist()
}

// Target returns the target for categoryID and whether one is set.
func (p *Planner) Target(categoryID string) (decimal.Decimal, bool) {
	t, ok := p.targets[categoryID]
	return t, ok
}

// Targets returns a copy of all targets.
func (p *Planner) Targets() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(p.targets))
	for k, v := range p.targets {
		out[k] = v
	}
	return out
}

// MonthToDate sums expenses in categoryID dated in ref's calendar month.
func (p *Planner) MonthToDate(categoryID string, ref time.Time) decimal.Decimal {
	month := pipeline.FilterByMonth(p.txs.List(), ref)
	return pipeline.SumCategory(month, model.Expense, categoryID)
}

// Status evaluates categoryID for ref's month.
func (p *Planner) Status(categoryID string, ref time.Time) model.BudgetStatus {
	target, ok := p.targets[categoryID]
	return Evaluate(
		config.CategoryOrRaw(model.Expense, categoryID),
		p.MonthToDate(categoryID, ref),
		target, ok,
	)
}

// Overview returns one status per expense category in registry order.
func (p *Planner) Overview(ref time.Time) []model.BudgetStatus {
	month := pipeline.FilterByMonth(p.txs.List(), ref)
	cats := config.Categories(model.Expense)
	out := make([]model.BudgetStatus, 0, len(cats))
	for _, c := range cats {
		target, ok := p.targets[c.ID]
		spent := pipeline.SumCategory(month, model.Expense, c.ID)
		out = append(out, Evaluate(c, spent, target, ok))
	}
	return out
}

// Reset drops all targets in memory without writing.
func (p *Planner) Reset() {
	p.targets = make(map[string]decimal.Decimal)
}

// Flush writes the full mapping.
func (p *Planner) Flush() error {
	return store.SaveJSON(p.kv, store.KeyBudgets, p.targets)
}

func (p *Planner) persist() {
	if err := p.Flush(); err != nil {
		p.log.Error("persisting budgets", zap.Error(err))
	}
}

// Evaluate classifies spent against target. A zero target has no meaningful
// percentage and is reported like an unset one.
func Evaluate(cat model.Category, spent, target decimal.Decimal, hasTarget bool) model.BudgetStatus {
	s := model.BudgetStatus{
		Category:  cat,
		Spent:     spent,
		Target:    target,
		HasTarget: hasTarget,
		Percent:   decimal.Zero,
		Severity:  model.SeverityNone,
	}
	if !hasTarget || !target.IsPositive() {
		return s
	}
	// Percent is rounded by Div; severity compares exact values.
	s.Percent = spent.Mul(hundred).Div(target)
	switch {
	case spent.GreaterThan(target):
		s.Severity = model.SeverityOver
	case spent.Mul(hundred).GreaterThan(target.Mul(warnAbove)):
		s.Severity = model.SeverityWarning
	default:
		s.Severity = model.SeverityOK
	}
	return s
}

package budget

import (
	"testing"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/ledger"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var ref = time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)

func setup(t *testing.T) (*Planner, *ledger.Ledger, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	l := ledger.Open(kv, zap.NewNop())
	return Open(kv, l, zap.NewNop()), l, kv
}

func spend(t *testing.T, l *ledger.Ledger, cat, amount string, date time.Time) {
	t.Helper()
	a, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	_, err = l.Add(ledger.Draft{Amount: a, Kind: model.Expense, Category: cat, Description: "spend", Date: date})
	require.NoError(t, err)
}

func TestSeverityBoundaries(t *testing.T) {
	tests := []struct {
		spent string
		want  model.Severity
	}{
		{"0", model.SeverityOK},
		{"800", model.SeverityOK},
		{"800.1", model.SeverityWarning},
		{"1000", model.SeverityWarning},
		{"1000.1", model.SeverityOver},
	}
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			p, l, _ := setup(t)
			require.NoError(t, p.Set("food", "1000"))
			spend(t, l, "food", tt.spent, ref)

			st := p.Status("food", ref)
			assert.Equal(t, tt.want, st.Severity, "percent=%s", st.Percent)
		})
	}
}

func TestEvaluate_ExactAtTinyMargins(t *testing.T) {
	cat, _ := config.LookupCategory(model.Expense, "food")
	target := decimal.NewFromInt(3)
	tests := []struct {
		spent string
		want  model.Severity
	}{
		{"2.4", model.SeverityOK},
		{"2.4000000000000000001", model.SeverityWarning},
		{"3", model.SeverityWarning},
		{"3.0000000000000000001", model.SeverityOver},
	}
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			st := Evaluate(cat, decimal.RequireFromString(tt.spent), target, true)
			assert.Equal(t, tt.want, st.Severity, "percent=%s", st.Percent)
		})
	}
}

func TestStatus_NoTargetIsNone(t *testing.T) {
	p, l, _ := setup(t)
	spend(t, l, "food", "5000000", ref)

	st := p.Status("food", ref)
	assert.Equal(t, model.SeverityNone, st.Severity)
	assert.False(t, st.HasTarget)
	assert.True(t, st.Percent.IsZero())
	assert.True(t, st.Spent.Equal(decimal.NewFromInt(5_000_000)))

	require.NoError(t, p.Set("food", "0"))
	assert.Equal(t, model.SeverityNone, p.Status("food", ref).Severity)
}

func TestStatus_MonotonicInSpend(t *testing.T) {
	p, l, _ := setup(t)
	require.NoError(t, p.Set("transport", "250000"))

	prev := decimal.NewFromInt(-1)
	for i := 0; i < 30; i++ {
		spend(t, l, "transport", "12345.67", ref)
		pct := p.Status("transport", ref).Percent
		require.True(t, pct.GreaterThanOrEqual(prev), "percent dropped from %s to %s", prev, pct)
		prev = pct
	}
}

func TestMonthToDate_CalendarMonthExpensesOnly(t *testing.T) {
	p, l, _ := setup(t)
	spend(t, l, "food", "100", time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local))
	spend(t, l, "food", "200", time.Date(2025, 3, 31, 23, 0, 0, 0, time.Local))
	spend(t, l, "food", "400", time.Date(2025, 2, 28, 23, 0, 0, 0, time.Local))
	spend(t, l, "food", "800", time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local))
	spend(t, l, "shopping", "1600", ref)
	_, err := l.Add(ledger.Draft{
		Amount: decimal.NewFromInt(3200), Kind: model.Income, Category: "salary",
		Description: "pay", Date: ref,
	})
	require.NoError(t, err)

	assert.Equal(t, "300", p.MonthToDate("food", ref).String())
}

func TestSet_InvalidInputLeavesTargets(t *testing.T) {
	p, _, kv := setup(t)
	require.NoError(t, p.Set("food", "1,500,000"))
	before := p.Targets()

	assert.ErrorIs(t, p.Set("food", "lots"), ledger.ErrInvalidAmount)
	assert.ErrorIs(t, p.Set("food", "-5"), ErrNegativeTarget)
	assert.ErrorIs(t, p.Set("salary", "10"), ErrUnknownCategory)
	assert.ErrorIs(t, p.Set("nope", "10"), ErrUnknownCategory)

	assert.Equal(t, len(before), len(p.Targets()))
	got, ok := p.Target("food")
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(1_500_000)))

	reopened := Open(kv, ledger.Open(kv, zap.NewNop()), zap.NewNop())
	got, ok = reopened.Target("food")
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(1_500_000)))
}

func TestClear(t *testing.T) {
	p, _, kv := setup(t)
	require.NoError(t, p.Set("food", "10"))
	require.NoError(t, p.Set("health", "20"))

	p.Clear("food")
	p.Clear("food")
	_, ok := p.Target("food")
	assert.False(t, ok)

	reopened := Open(kv, ledger.Open(kv, zap.NewNop()), zap.NewNop())
	assert.Len(t, reopened.Targets(), 1)
}

func TestOpen_CorruptBudgetsYieldEmpty(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Put(store.KeyBudgets, []byte(`["food"]`)))
	p := Open(kv, ledger.Open(kv, zap.NewNop()), zap.NewNop())
	assert.Empty(t, p.Targets())
	require.NoError(t, p.Set("food", "1"))
}

func TestOverview_RegistryOrder(t *testing.T) {
	p, l, _ := setup(t)
	require.NoError(t, p.Set("housing", "100"))
	spend(t, l, "housing", "150", ref)

	rows := p.Overview(ref)
	require.Len(t, rows, 8)
	assert.Equal(t, "food", rows[0].Category.ID)
	assert.Equal(t, "other", rows[7].Category.ID)
	assert.Equal(t, model.SeverityOver, rows[3].Severity)
	assert.Equal(t, "150", rows[3].Percent.String())
}

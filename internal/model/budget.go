package model

import "github.com/shopspring/decimal"

// Severity classifies budget health from the spend/target ratio.
type Severity int

const (
	// SeverityNone means no target is set for the category.
	SeverityNone Severity = iota
	// SeverityOK means spend is at most 80% of target.
	SeverityOK
	// SeverityWarning means spend is above 80% and at most 100% of target.
	SeverityWarning
	// SeverityOver means spend exceeds the target.
	SeverityOver
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityOver:
		return "over"
	default:
		return "none"
	}
}

// BudgetStatus is the month-to-date evaluation of one category against its target.
type BudgetStatus struct {
	Category  Category
	Spent     decimal.Decimal
	Target    decimal.Decimal
	HasTarget bool
	Percent   decimal.Decimal // 0 when no target
	Severity  Severity
}

// PercentFloat returns Percent for display and progress bars.
func (b BudgetStatus) PercentFloat() float64 {
	return b.Percent.InexactFloat64()
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is the derived income/expense/balance projection over a set of transactions.
// It is never stored.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	Count        int
}

// CategoryTotal holds the summed amount of one category.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Amount     decimal.Decimal
	Count      int
}

// MonthlyStats holds income and expense for one calendar month.
type MonthlyStats struct {
	Month   time.Time // first day of the month, in the reference location
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense for the month.
func (m MonthlyStats) Net() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// Package pipeline holds the pure aggregations derived from a transaction list.
// Nothing here is cached; callers recompute after every mutation.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize walks txs once and classifies amounts by kind.
func Summarize(txs []model.Transaction) model.Summary {
	var s model.Summary
	for _, t := range txs {
		if t.Kind == model.Income {
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		} else {
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
		s.Count++
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// SameMonth reports whether t falls in the calendar month and year of ref,
// evaluated in ref's location.
func SameMonth(t, ref time.Time) bool {
	lt := t.In(ref.Location())
	return lt.Year() == ref.Year() && lt.Month() == ref.Month()
}

// FilterByMonth returns transactions dated in the same calendar month as ref.
func FilterByMonth(txs []model.Transaction, ref time.Time) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if SameMonth(t.Date, ref) {
			result = append(result, t)
		}
	}
	return result
}

// FilterByKind returns transactions of the given kind.
func FilterByKind(txs []model.Transaction, kind model.Kind) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if t.Kind == kind {
			result = append(result, t)
		}
	}
	return result
}

// CategoryTotals sums amounts per category for one kind, largest first.
// Ids missing from the registry keep their raw id as the display name.
func CategoryTotals(txs []model.Transaction, kind model.Kind) []model.CategoryTotal {
	byCat := make(map[string]*model.CategoryTotal)

	for _, t := range txs {
		if t.Kind != kind {
			continue
		}
		ct, ok := byCat[t.Category]
		if !ok {
			cat := config.CategoryOrRaw(kind, t.Category)
			ct = &model.CategoryTotal{CategoryID: t.Category, Name: cat.Name, Color: cat.Color}
			byCat[t.Category] = ct
		}
		ct.Amount = ct.Amount.Add(t.Amount)
		ct.Count++
	}

	totals := make([]model.CategoryTotal, 0, len(byCat))
	for _, ct := range byCat {
		totals = append(totals, *ct)
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Amount.Cmp(totals[j].Amount); c != 0 {
			return c > 0
		}
		return totals[i].CategoryID < totals[j].CategoryID
	})
	return totals
}

// SumCategory sums the amounts of one kind and category.
func SumCategory(txs []model.Transaction, kind model.Kind, categoryID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Kind == kind && t.Category == categoryID {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SortByDate returns a copy of txs ordered newest date first. Ties keep
// insertion order.
func SortByDate(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Recent returns at most n transactions, newest date first.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	sorted := SortByDate(txs)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MonthlyTotals computes income and expense for the last `months` calendar
// months ending with ref's month, most recent first. Empty months are included.
func MonthlyTotals(txs []model.Transaction, months int, ref time.Time) []model.MonthlyStats {
	if months <= 0 {
		return nil
	}
	loc := ref.Location()
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)

	stats := make([]model.MonthlyStats, months)
	index := make(map[string]int, months)
	for i := range stats {
		m := start.AddDate(0, -i, 0)
		stats[i].Month = m
		index[m.Format("2006-01")] = i
	}

	for _, t := range txs {
		key := t.Date.In(loc).Format("2006-01")
		i, ok := index[key]
		if !ok {
			continue
		}
		if t.Kind == model.Income {
			stats[i].Income = stats[i].Income.Add(t.Amount)
		} else {
			stats[i].Expense = stats[i].Expense.Add(t.Amount)
		}
	}
	return stats
}

package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/dompet/internal/model"

	"github.com/shopspring/decimal"
)

func syntheticTransactions(n int) []model.Transaction {
	cats := []string{"food", "transport", "shopping", "housing", "health"}
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	txs := make([]model.Transaction, n)
	for i := range txs {
		kind := model.Expense
		cat := cats[i%len(cats)]
		if i%7 == 0 {
			kind = model.Income
			cat = "salary"
		}
		txs[i] = model.Transaction{
			ID:       "tx",
			Amount:   decimal.NewFromInt(int64(1000 + i)),
			Kind:     kind,
			Category: cat,
			Date:     base.Add(time.Duration(i) * time.Hour),
		}
	}
	return txs
}

func BenchmarkSummarize(b *testing.B) {
	txs := syntheticTransactions(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(txs)
	}
}

func BenchmarkCategoryTotals(b *testing.B) {
	txs := syntheticTransactions(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CategoryTotals(txs, model.Expense)
	}
}

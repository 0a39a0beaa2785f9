package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var english = config.DisplayConfig{Locale: "en-US", CurrencySymbol: "Rp"}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Rp 0"},
		{"999", "Rp 999"},
		{"1234567", "Rp 1,234,567"},
		{"1500.5", "Rp 1,500.5"},
		{"-25000", "-Rp 25,000"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(english, decimal.RequireFromString(tt.amount)))
		})
	}

	bare := config.DisplayConfig{Locale: "not a locale"}
	assert.Equal(t, "1,000", FormatCurrency(bare, decimal.NewFromInt(1000)))
}

func TestFormatSigned(t *testing.T) {
	amount := decimal.NewFromInt(5000)
	assert.Equal(t, "+Rp 5,000", FormatSigned(english, model.Income, amount))
	assert.Equal(t, "-Rp 5,000", FormatSigned(english, model.Expense, amount))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestFormatPercentAndDates(t *testing.T) {
	assert.Equal(t, "80.0%", FormatPercent(decimal.NewFromInt(80)))
	assert.Equal(t, "100.1%", FormatPercent(decimal.RequireFromString("100.05")))

	d := time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "05 Mar 2025", FormatDate(d))
	assert.Equal(t, "March 2025", MonthLabel(d))
	assert.Equal(t, "just now", FormatRelative(d, d.Add(10*time.Second)))
	assert.Equal(t, "3 days ago", FormatRelative(d, d.Add(72*time.Hour)))
}

func TestTruncateAndShortID(t *testing.T) {
	assert.Equal(t, "groceries", Truncate("groceries", 20))
	assert.Equal(t, "groc…", Truncate("groceries", 5))
	assert.Equal(t, "0f8e1c2a", ShortID("0f8e1c2a-1111-4222-8333-944445555666"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Recent",
		Headers: []string{"Date", "Amount"},
		Rows: [][]string{
			{"05 Mar", "Rp 1,000"},
			{"---"},
			{"Total", "Rp 1,000"},
		},
	})
	assert.Contains(t, out, "Recent")
	assert.Contains(t, out, "Rp 1,000")
	assert.Equal(t, 8, strings.Count(out, "\n"))
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderBudgetBar(t *testing.T) {
	st := model.BudgetStatus{
		HasTarget: true,
		Percent:   decimal.NewFromInt(150),
		Severity:  model.SeverityOver,
	}
	bar := RenderBudgetBar(st, 10)
	assert.Contains(t, bar, "150.0%")
	assert.Equal(t, 10, strings.Count(bar, "█"))

	none := RenderBudgetBar(model.BudgetStatus{}, 4)
	assert.Equal(t, 4, strings.Count(none, "·"))
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "▁█", RenderSparkline([]float64{0, 10}))
	assert.Empty(t, RenderSparkline(nil))
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	d, err := ParseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, now, d)

	d, err = ParseDate("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, 9, d.Day())

	d, err = ParseDate("2025-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, time.January, d.Month())

	_, err = ParseDate("31/01/2025", now)
	assert.Error(t, err)

	m, err := ParseMonth("2024-12", now)
	require.NoError(t, err)
	assert.Equal(t, 2024, m.Year())
	_, err = ParseMonth("Dec", now)
	assert.Error(t, err)
}

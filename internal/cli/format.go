// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatAmount renders amount with the digit grouping of locale and at most
// two fraction digits. Unknown locales fall back to English grouping.
func FormatAmount(locale string, amount decimal.Decimal) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(amount.Abs().Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// FormatCurrency renders amount as a display currency string,
// e.g. "Rp 1.250.000" for id-ID. The stored value is never affected.
func FormatCurrency(d config.DisplayConfig, amount decimal.Decimal) string {
	s := FormatAmount(d.Locale, amount)
	if d.CurrencySymbol != "" {
		s = d.CurrencySymbol + " " + s
	}
	if amount.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatSigned renders amount with a sign for its kind: "+" for income, "-" for expense.
func FormatSigned(d config.DisplayConfig, kind model.Kind, amount decimal.Decimal) string {
	if kind == model.Income {
		return "+" + FormatCurrency(d, amount)
	}
	return "-" + FormatCurrency(d, amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a percentage value (80 -> "80.0%").
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// FormatDate renders a calendar date, e.g. "05 Mar 2025".
func FormatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// FormatRelative describes t relative to now, e.g. "3 days ago".
func FormatRelative(t, now time.Time) string {
	if now.Sub(t).Abs() < time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ShortID returns the first 8 characters of an id for table display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// KindLabel returns a short column label for a kind.
func KindLabel(k model.Kind) string {
	if k == model.Income {
		return "in"
	}
	return "out"
}

// MonthLabel renders a month heading, e.g. "March 2025".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}

// ParseDate accepts YYYY-MM-DD in local time, or "today"/"yesterday".
func ParseDate(s string, now time.Time) (time.Time, error) {
	switch s {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// ParseMonth accepts YYYY-MM; empty means the current month.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	m, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return m, nil
}

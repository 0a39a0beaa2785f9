// Package model defines domain types for dompet transactions, budgets and notes.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tags a transaction as money coming in or going out.
type Kind int

const (
	// Expense is money going out.
	Expense Kind = iota
	// Income is money coming in.
	Income
)

// ErrInvalidKind is returned when a kind string is neither INCOME nor EXPENSE.
var ErrInvalidKind = errors.New("invalid transaction kind")

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Income:
		return "INCOME"
	case Expense:
		return "EXPENSE"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts INCOME or EXPENSE, case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME":
		return Income, nil
	case "EXPENSE":
		return Expense, nil
	}
	return Expense, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != Income && k != Expense {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Category is a named, coloured bucket drawn from a kind-specific list.
type Category struct {
	ID    string
	Name  string
	Color string
	Kind  Kind
}

// Transaction is a single income or expense record. ID never changes after creation.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        Kind            `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// IsExpense reports whether t is an expense.
func (t Transaction) IsExpense() bool { return t.Kind == Expense }

// Package core holds the domain model of the tracker: entities, money and
// calendar-date handling, validation, and the pure derivations (transaction
// effect, goal progress) the services are built on.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are fixed-point decimals with two fractional digits. The store keeps
// them as integer cents so SQL sums stay exact; these helpers own the
// conversion in both directions.

// ParseAmount parses a decimal amount string, accepting both dot and comma as
// the decimal separator, and rounds half-up to two fractional digits.
// The result must be strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseNonNegativeAmount is ParseAmount for fields where zero is meaningful,
// such as budget caps and goal balances.
func ParseNonNegativeAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.Sign() < 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Cents converts an amount to integer cents for storage.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromCents converts stored integer cents back to a decimal amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// FormatAmount renders an amount with exactly two fractional digits, the wire
// representation used by the HTTP layer.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Package types provides shared value types for the domain layer.
package types

import "github.com/shopspring/decimal"

// Money is a monetary amount with exact decimal arithmetic.
// All currency math in the system goes through decimal.Decimal so that
// interest, totals and stock valuations never drift the way float64 would.
type Money = decimal.Decimal

// Quantity is a product quantity. The catalog stores quantities with two
// decimal places (NUMERIC(12,2)), matching fractional units like kilograms.
type Quantity = decimal.Decimal

// MustMoney parses a decimal literal, panicking on error. Constants and
// tests only.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero is the zero amount.
func Zero() Money {
	return decimal.Zero
}

// Round2 rounds an amount to two decimal places, the storage precision for
// all money columns.
func Round2(m Money) Money {
	return m.Round(2)
}

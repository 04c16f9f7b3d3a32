// Package documents provides the machinery shared by invoice and purchase
// documents: the stock polarity model and the reconciler that keeps product
// stock consistent with document lines.
package documents

import "github.com/shopspring/decimal"

// Polarity is the direction of a document's stock effect.
type Polarity int

const (
	// Sale decreases stock when the document is created
	Sale Polarity = iota

	// Purchase increases stock when the document is created
	Purchase
)

// String implements fmt.Stringer.
func (p Polarity) String() string {
	switch p {
	case Sale:
		return "sale"
	case Purchase:
		return "purchase"
	default:
		return "unknown"
	}
}

var (
	one    = decimal.NewFromInt(1)
	negOne = decimal.NewFromInt(-1)
)

// CreateFactor is the multiplier applied to line quantities when the
// document is created. Reversal (delete, void) uses the negation.
func (p Polarity) CreateFactor() decimal.Decimal {
	if p == Sale {
		return negOne
	}
	return one
}

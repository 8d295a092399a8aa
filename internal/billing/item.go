// Package billing holds the retail bill model: validated line items, the
// bill that accumulates them, and the receipt text derived from it.
//
// Monetary values are exact decimals. Nothing is rounded until a value is
// formatted for display.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// LineItem is one product entry on a bill.
// It is immutable; build one with NewLineItem.
type LineItem struct {
	name      string
	unitPrice decimal.Decimal
	quantity  int
}

// NewLineItem validates the inputs and returns the item.
// The name is trimmed and NFC-normalized before the empty check, so a
// whitespace-only name is rejected.
func NewLineItem(name string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return LineItem{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !unitPrice.IsPositive() {
		return LineItem{}, &ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if quantity <= 0 {
		return LineItem{}, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	return LineItem{name: name, unitPrice: unitPrice, quantity: quantity}, nil
}

// Name returns the product name.
func (i LineItem) Name() string { return i.name }

// UnitPrice returns the price of a single unit.
func (i LineItem) UnitPrice() decimal.Decimal { return i.unitPrice }

// Quantity returns the number of units.
func (i LineItem) Quantity() int { return i.quantity }

// LineTotal returns unit price × quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

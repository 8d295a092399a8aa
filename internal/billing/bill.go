package billing

import (
	"slices"

	"github.com/shopspring/decimal"
)

var (
	discountRate = decimal.RequireFromString("0.10")
	taxRate      = decimal.RequireFromString("0.05")
)

// DiscountRate returns the fraction of the subtotal taken off every bill.
func DiscountRate() decimal.Decimal { return discountRate }

// TaxRate returns the tax fraction applied to the discounted subtotal.
func TaxRate() decimal.Decimal { return taxRate }

// Summary holds the derived amounts of a bill.
type Summary struct {
	// Subtotal is the sum of all line totals.
	Subtotal decimal.Decimal

	// Discount is Subtotal × DiscountRate.
	Discount decimal.Decimal

	// Tax is (Subtotal - Discount) × TaxRate.
	Tax decimal.Decimal

	// NetAmount is Subtotal - Discount + Tax.
	NetAmount decimal.Decimal
}

// Bill is an ordered list of line items.
// A Bill is owned by a single caller and is not safe for concurrent use.
type Bill struct {
	items []LineItem
}

// NewBill returns an empty bill.
func NewBill() *Bill {
	return &Bill{}
}

// AddItem appends item. Insertion order is kept for display only.
func (b *Bill) AddItem(item LineItem) {
	b.items = append(b.items, item)
}

// Items returns a copy of the items in insertion order.
func (b *Bill) Items() []LineItem {
	return slices.Clone(b.items)
}

// Len returns the number of items on the bill.
func (b *Bill) Len() int {
	return len(b.items)
}

// Reset removes every item, starting a new bill.
func (b *Bill) Reset() {
	b.items = nil
}

// Compute derives the summary from the full item list.
// Nothing is cached, so the result always reflects the current items.
func (b *Bill) Compute() Summary {
	subtotal := decimal.Zero
	for _, item := range b.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return summarize(subtotal)
}

// ComputeAndRender returns the summary and the receipt built from it.
func (b *Bill) ComputeAndRender() (Summary, string) {
	summary := b.Compute()
	return summary, render(b.items, summary)
}

func summarize(subtotal decimal.Decimal) Summary {
	discount := subtotal.Mul(discountRate)
	tax := subtotal.Sub(discount).Mul(taxRate)
	return Summary{
		Subtotal:  subtotal,
		Discount:  discount,
		Tax:       tax,
		NetAmount: subtotal.Sub(discount).Add(tax),
	}
}

package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every monetary value on a receipt.
const CurrencySymbol = "₹"

const (
	receiptHeader = "========== Retail Store Bill =========="
	receiptRule   = "----------------------------------------"
	receiptFooter = "========================================"
)

// Render computes the bill and returns it as receipt text.
func (b *Bill) Render() string {
	_, text := b.ComputeAndRender()
	return text
}

// FormatMoney renders d with the currency symbol and two decimal places,
// rounding half away from zero.
func FormatMoney(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

func render(items []LineItem, s Summary) string {
	var sb strings.Builder

	sb.WriteString(receiptHeader + "\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "%s | Price: %s | Qty: %d | Total: %s\n",
			item.Name(),
			FormatMoney(item.UnitPrice()),
			item.Quantity(),
			FormatMoney(item.LineTotal()),
		)
	}
	sb.WriteString(receiptRule + "\n")
	fmt.Fprintf(&sb, "Subtotal: %s\n", FormatMoney(s.Subtotal))
	fmt.Fprintf(&sb, "Discount (%s%%): %s\n", percent(discountRate), FormatMoney(s.Discount))
	fmt.Fprintf(&sb, "Tax (%s%%): %s\n", percent(taxRate), FormatMoney(s.Tax))
	sb.WriteString(receiptRule + "\n")
	fmt.Fprintf(&sb, "Net Amount: %s\n", FormatMoney(s.NetAmount))
	sb.WriteString(receiptFooter + "\n")

	return sb.String()
}

// percent turns a rate like 0.10 into "10".
func percent(rate decimal.Decimal) string {
	return rate.Shift(2).String()
}

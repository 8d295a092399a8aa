package billing

import (
	"strings"
	"testing"
)

func TestRenderScenario(t *testing.T) {
	bill := NewBill()
	bill.AddItem(mustItem(t, "Pen", "10.00", 3))
	bill.AddItem(mustItem(t, "Notebook", "50.00", 2))

	want := "========== Retail Store Bill ==========\n" +
		"Pen | Price: ₹10.00 | Qty: 3 | Total: ₹30.00\n" +
		"Notebook | Price: ₹50.00 | Qty: 2 | Total: ₹100.00\n" +
		"----------------------------------------\n" +
		"Subtotal: ₹130.00\n" +
		"Discount (10%): ₹13.00\n" +
		"Tax (5%): ₹5.85\n" +
		"----------------------------------------\n" +
		"Net Amount: ₹122.85\n" +
		"========================================\n"

	if got := bill.Render(); got != want {
		t.Errorf("Render =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderEmptyBill(t *testing.T) {
	want := "========== Retail Store Bill ==========\n" +
		"----------------------------------------\n" +
		"Subtotal: ₹0.00\n" +
		"Discount (10%): ₹0.00\n" +
		"Tax (5%): ₹0.00\n" +
		"----------------------------------------\n" +
		"Net Amount: ₹0.00\n" +
		"========================================\n"

	if got := NewBill().Render(); got != want {
		t.Errorf("Render =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderReflectsItemsAddedAfterRender(t *testing.T) {
	bill := NewBill()
	bill.AddItem(mustItem(t, "Pen", "10.00", 3))
	if first := bill.Render(); !strings.Contains(first, "Net Amount: ₹28.35\n") {
		t.Errorf("First render missing net amount:\n%s", first)
	}

	bill.AddItem(mustItem(t, "Notebook", "50.00", 2))
	second := bill.Render()
	for _, want := range []string{"Notebook | Price: ₹50.00", "Net Amount: ₹122.85\n"} {
		if !strings.Contains(second, want) {
			t.Errorf("Second render missing %q:\n%s", want, second)
		}
	}
}

func TestRenderKeepsInsertionOrder(t *testing.T) {
	bill := NewBill()
	bill.AddItem(mustItem(t, "Zebra pen", "1.00", 1))
	bill.AddItem(mustItem(t, "Apple", "1.00", 1))

	text := bill.Render()
	if strings.Index(text, "Zebra pen") > strings.Index(text, "Apple") {
		t.Errorf("Items out of insertion order:\n%s", text)
	}
}

func TestComputeAndRenderAgree(t *testing.T) {
	bill := NewBill()
	bill.AddItem(mustItem(t, "Pen", "10.00", 3))

	summary, text := bill.ComputeAndRender()
	if text != bill.Render() {
		t.Errorf("ComputeAndRender text differs from Render")
	}
	if want := "Subtotal: " + FormatMoney(summary.Subtotal) + "\n"; !strings.Contains(text, want) {
		t.Errorf("Expected %q in:\n%s", want, text)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"5.85", "₹5.85"},
		{"5.855", "₹5.86"},
		{"-5.855", "₹-5.86"},
		{"1234567.1", "₹1234567.10"},
		{"0.004", "₹0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatMoney(dec(tt.in)); got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

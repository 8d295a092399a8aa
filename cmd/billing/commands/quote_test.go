package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/form"
)

func TestSplitItem(t *testing.T) {
	tests := []struct {
		spec    string
		want    form.Fields
		wantErr bool
	}{
		{"Pen,10.00,3", form.Fields{Name: "Pen", Price: "10.00", Quantity: "3"}, false},
		{"Salt, fine,20,1", form.Fields{Name: "Salt, fine", Price: "20", Quantity: "1"}, false},
		{",10,1", form.Fields{Name: "", Price: "10", Quantity: "1"}, false},
		{"Pen,10", form.Fields{}, true},
		{"Pen", form.Fields{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := splitItem(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitItem failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("splitItem(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	bill, err := quote([]string{"Pen,10.00,3", "Notebook,50.00,2"})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if got := bill.Compute().NetAmount.StringFixed(2); got != "122.85" {
		t.Errorf("NetAmount = %s, want 122.85", got)
	}

	_, err = quote([]string{"Pen,10.00,3", "Pen,0,1"})
	if !errors.Is(err, billing.ErrInvalidItem) {
		t.Errorf("Expected ErrInvalidItem, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), form.MsgInvalidDetails) {
		t.Errorf("Expected %q in %q", form.MsgInvalidDetails, err)
	}

	_, err = quote([]string{"Pen,ten,1"})
	if !errors.Is(err, form.ErrParse) {
		t.Errorf("Expected ErrParse, got %v", err)
	}

	_, err = quote([]string{"Pen,1e5000000,1"})
	if !errors.Is(err, form.ErrParse) {
		t.Errorf("Expected ErrParse for out of range price, got %v", err)
	}
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute %v failed: %v", args, err)
	}
	return out.String(), errOut.String()
}

func TestQuoteCommand(t *testing.T) {
	out, _ := execute(t, "", "quote", "--item", "Pen,10.00,3", "-i", "Notebook,50.00,2")

	if !strings.HasPrefix(out, "========== Retail Store Bill ==========\n") {
		t.Errorf("Missing receipt header: %q", out)
	}
	for _, want := range []string{
		"Notebook | Price: ₹50.00 | Qty: 2 | Total: ₹100.00\n",
		"Net Amount: ₹122.85\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestShellCommandReadsStdin(t *testing.T) {
	out, _ := execute(t, "Pen\n10\n3\n:quit\n", "shell")

	if !strings.Contains(out, form.MsgAdded) {
		t.Errorf("Expected %q in output", form.MsgAdded)
	}
	if !strings.Contains(out, "Subtotal: ₹30.00\n") {
		t.Errorf("Expected subtotal in output: %q", out)
	}
}

func TestCommandTreesDoNotShareState(t *testing.T) {
	t.Run("group", func(t *testing.T) {
		t.Run("verbose", func(t *testing.T) {
			t.Parallel()
			_, stderr := execute(t, "Pen\n10\n3\n", "shell", "-v")
			if !strings.Contains(stderr, "Item added") {
				t.Errorf("Expected debug log on stderr, got %q", stderr)
			}
		})
		t.Run("quiet", func(t *testing.T) {
			t.Parallel()
			_, stderr := execute(t, "Pen\n10\n3\n", "shell")
			if strings.Contains(stderr, "Item added") {
				t.Errorf("Unexpected debug log on stderr: %q", stderr)
			}
		})
	})
}

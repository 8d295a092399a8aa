// Package shell runs the interactive item entry form on a terminal.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/form"
)

// Commands accepted at the product name prompt.
const (
	CmdBill = ":bill"
	CmdNew  = ":new"
	CmdQuit = ":quit"
)

const (
	promptName     = "Product Name: "
	promptPrice    = "Price (" + billing.CurrencySymbol + "): "
	promptQuantity = "Quantity: "
)

// Shell reads form submissions from in and writes prompts and results to out.
type Shell struct {
	in     *bufio.Scanner
	out    io.Writer
	bill   *billing.Bill
	logger *slog.Logger
}

// New returns a shell operating on bill.
func New(in io.Reader, out io.Writer, bill *billing.Bill, logger *slog.Logger) *Shell {
	return &Shell{
		in:     bufio.NewScanner(in),
		out:    out,
		bill:   bill,
		logger: logger,
	}
}

// Run loops over form submissions until :quit or end of input, then prints
// the final bill.
func (s *Shell) Run() error {
	fmt.Fprintf(s.out, "Retail Store Billing System\nCommands: %s, %s, %s\n", CmdBill, CmdNew, CmdQuit)

	for {
		name, ok := s.ask(promptName)
		if !ok {
			break
		}

		switch strings.TrimSpace(name) {
		case CmdQuit:
			return s.finish()
		case CmdBill:
			fmt.Fprint(s.out, s.bill.Render())
			continue
		case CmdNew:
			s.bill.Reset()
			fmt.Fprintln(s.out, "Started a new bill.")
			continue
		}

		price, ok := s.ask(promptPrice)
		if !ok {
			break
		}
		quantity, ok := s.ask(promptQuantity)
		if !ok {
			break
		}

		s.submit(form.Fields{Name: name, Price: price, Quantity: quantity})
	}

	if err := s.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return s.finish()
}

func (s *Shell) submit(fields form.Fields) {
	item, err := form.Parse(fields)
	if err != nil {
		s.logger.Debug("Item rejected", "error", err)
	} else {
		s.bill.AddItem(item)
		s.logger.Debug("Item added", "name", item.Name(), "item_count", s.bill.Len())
	}
	fmt.Fprintln(s.out, form.Message(err))
}

func (s *Shell) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) finish() error {
	_, err := fmt.Fprint(s.out, s.bill.Render())
	return err
}

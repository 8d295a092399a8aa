package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/form"
)

// quote --item "name,price,qty" ...: print the bill for the given items.
func quoteCmd() *cobra.Command {
	var items []string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the bill for items given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bill, err := quote(items)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), bill.Render())
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, `item as "name,price,qty" (repeatable)`)
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func quote(specs []string) (*billing.Bill, error) {
	bill := billing.NewBill()
	for _, spec := range specs {
		fields, err := splitItem(spec)
		if err != nil {
			return nil, err
		}
		item, err := form.Parse(fields)
		if err != nil {
			return nil, fmt.Errorf("item %q: %s: %w", spec, form.Message(err), err)
		}
		bill.AddItem(item)
	}
	return bill, nil
}

// splitItem splits from the right so that product names may contain commas.
func splitItem(spec string) (form.Fields, error) {
	q := strings.LastIndex(spec, ",")
	if q < 0 {
		return form.Fields{}, fmt.Errorf("item %q: want name,price,qty", spec)
	}
	p := strings.LastIndex(spec[:q], ",")
	if p < 0 {
		return form.Fields{}, fmt.Errorf("item %q: want name,price,qty", spec)
	}
	return form.Fields{
		Name:     spec[:p],
		Price:    spec[p+1 : q],
		Quantity: spec[q+1:],
	}, nil
}

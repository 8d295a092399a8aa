// Package form turns the raw text of the item entry form into a validated
// billing.LineItem.
//
// Two kinds of failure come out of Parse: a *ParseError when a field is
// blank or not a number, and a *billing.ValidationError when the typed
// values break a line item rule. Message maps either to the text shown to
// the user.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/retailbill/internal/billing"
)

// User-facing messages.
const (
	MsgAdded          = "Product added successfully!"
	MsgInvalidDetails = "Enter valid product details!"
	MsgInvalidInput   = "Invalid input! Please check values."
)

// ErrParse is matched by every ParseError.
var ErrParse = errors.New("unparseable input")

var (
	errBlank      = errors.New("value is required")
	errOutOfRange = errors.New("value out of range")
)

// MaxPrice is the largest unit price Parse accepts.
var MaxPrice = decimal.New(1, 12)

// maxPriceExponent bounds the decimal exponent of a price in both directions.
// It is checked before any comparison, which would otherwise expand a short
// text like "1e5000000" to millions of digits.
const maxPriceExponent = 12

// ParseError reports a field whose text could not be turned into a value.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Fields is the raw text of one form submission.
// The name is not checked here; an empty name is a line item rule.
type Fields struct {
	Name     string
	Price    string `validate:"required"`
	Quantity string `validate:"required"`
}

var validate = validator.New()

// Parse validates the raw fields and builds the line item.
func Parse(f Fields) (billing.LineItem, error) {
	f.Price = strings.TrimSpace(f.Price)
	f.Quantity = strings.TrimSpace(f.Quantity)

	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return billing.LineItem{}, &ParseError{Field: strings.ToLower(fieldErrs[0].Field()), Err: errBlank}
		}
		return billing.LineItem{}, fmt.Errorf("validate form: %w", err)
	}

	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return billing.LineItem{}, &ParseError{Field: "price", Input: f.Price, Err: err}
	}
	if !priceInRange(price) {
		return billing.LineItem{}, &ParseError{Field: "price", Input: f.Price, Err: errOutOfRange}
	}
	qty, err := strconv.Atoi(f.Quantity)
	if err != nil {
		return billing.LineItem{}, &ParseError{Field: "quantity", Input: f.Quantity, Err: err}
	}

	return billing.NewLineItem(f.Name, price, qty)
}

func priceInRange(price decimal.Decimal) bool {
	exp := price.Exponent()
	if exp < -maxPriceExponent || exp > maxPriceExponent {
		return false
	}
	return price.Abs().LessThanOrEqual(MaxPrice)
}

// Message returns the text to show after a submission that returned err.
func Message(err error) string {
	switch {
	case err == nil:
		return MsgAdded
	case errors.Is(err, billing.ErrInvalidItem):
		return MsgInvalidDetails
	default:
		return MsgInvalidInput
	}
}

package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// maxCents keeps amounts far away from int64 overflow when summed.
const maxCents = int64(9e16)

// Amount is a monetary value held as int64 cents but carried on the wire as a
// plain decimal number (12.34), matching what clients display.
type Amount int64

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.New(int64(a), -2).String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents, err := centsFromDecimal(d)
	if err != nil {
		return err
	}
	*a = Amount(cents)
	return nil
}

// ToCents converts a user-entered decimal amount (e.g. 12.34) into int64
// cents. Amounts must be positive and carry at most two decimal places.
func ToCents(amount float64) (int64, error) {
	d := decimal.NewFromFloat(amount)
	if d.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return centsFromDecimal(d)
}

// ParseCents converts a decimal string (e.g. "12.34") into int64 cents,
// rejecting non-positive values.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return centsFromDecimal(d)
}

func centsFromDecimal(d decimal.Decimal) (int64, error) {
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("%w: more than two decimal places", ErrInvalidAmount)
	}
	n := cents.IntPart()
	if n > maxCents || n < -maxCents {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return n, nil
}

// Float renders cents as a major-unit float for spreadsheet cells.
func Float(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// String renders cents as a fixed two-decimal string, e.g. -1234 -> "-12.34".
func String(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

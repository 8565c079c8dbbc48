// Package money provides the ledger's single-currency amount type.
//
// Invariants:
//   - Amounts are stored as int64 in the smallest unit (paise).
//   - Input in major units (rupees) may carry at most two decimal places.
//   - Arithmetic never wraps: additions that would overflow return an error.
package money

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits of the ledger currency.
const Decimals = 2

// Symbol is the display symbol of the ledger currency.
const Symbol = "₹"

var unit = decimal.New(1, Decimals)

// Amount is a monetary value in paise.
type Amount int64

// FromDecimal converts a major-unit decimal (e.g. 12.50) into an Amount.
// It rejects values that need more than two decimal places or do not fit in int64.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	minor := d.Mul(unit)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, ErrTooManyDecimals
	}
	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) ||
		minor.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, ErrOverflow
	}
	return Amount(minor.IntPart()), nil
}

// Parse converts a major-unit string such as "300" or "12.5" into an Amount.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromDecimal(d)
}

// FromMajor builds an Amount from whole rupees.
func FromMajor(rupees int64) Amount {
	return Amount(rupees * 100)
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Decimals)
}

// Float returns the amount in major units as a float64, for JSON rendering.
func (a Amount) Float() float64 {
	return a.Decimal().InexactFloat64()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// Add returns a+b or ErrOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns a-b or ErrOverflow.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b == math.MinInt64 {
		return 0, ErrOverflow
	}
	return a.Add(-b)
}

// String renders the amount with the currency symbol, e.g. "₹300.00".
func (a Amount) String() string {
	return Symbol + a.Decimal().StringFixed(Decimals)
}

// MarshalJSON renders the amount as a JSON number in major units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(Decimals)), nil
}

// UnmarshalJSON accepts a JSON number or numeric string in major units.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

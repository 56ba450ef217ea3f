// Package money holds the two unit-tagged amounts used throughout kogaku:
// whole-yen monetary amounts and incomes expressed in ten-thousand-yen units.
// The types never convert into each other implicitly.
package money

import (
	"github.com/shopspring/decimal"
)

// Yen represents a monetary amount in yen.
type Yen struct {
	decimal.Decimal
}

// NewYen creates a Yen amount from an integer number of yen
func NewYen(value int64) Yen {
	return Yen{decimal.NewFromInt(value)}
}

// NewYenFromDecimal creates a Yen amount from a decimal.Decimal
func NewYenFromDecimal(d decimal.Decimal) Yen {
	return Yen{d}
}

// NewYenFromString parses a yen amount such as "80100" or "80100.5"
func NewYenFromString(value string) (Yen, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Yen{}, err
	}
	return Yen{d}, nil
}

// ZeroYen returns a zero amount
func ZeroYen() Yen {
	return Yen{decimal.Zero}
}

// Ceil rounds up to the next whole yen
func (y Yen) Ceil() Yen {
	return Yen{y.Decimal.Ceil()}
}

// Round rounds half away from zero to a whole yen
func (y Yen) Round() Yen {
	return Yen{y.Decimal.Round(0)}
}

// Add adds another yen amount
func (y Yen) Add(other Yen) Yen {
	return Yen{y.Decimal.Add(other.Decimal)}
}

// Sub subtracts another yen amount
func (y Yen) Sub(other Yen) Yen {
	return Yen{y.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (y Yen) Mul(factor decimal.Decimal) Yen {
	return Yen{y.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (y Yen) Div(factor decimal.Decimal) Yen {
	return Yen{y.Decimal.Div(factor)}
}

// GreaterThan checks if this amount is greater than another
func (y Yen) GreaterThan(other Yen) bool {
	return y.Decimal.GreaterThan(other.Decimal)
}

// GreaterThanOrEqual checks if this amount is greater than or equal to another
func (y Yen) GreaterThanOrEqual(other Yen) bool {
	return y.Decimal.GreaterThanOrEqual(other.Decimal)
}

// LessThan checks if this amount is less than another
func (y Yen) LessThan(other Yen) bool {
	return y.Decimal.LessThan(other.Decimal)
}

// Equal checks if this amount equals another
func (y Yen) Equal(other Yen) bool {
	return y.Decimal.Equal(other.Decimal)
}

// IntPart returns the amount as an int64, truncating any fraction
func (y Yen) IntPart() int64 {
	return y.Decimal.IntPart()
}

// String returns the amount without a fractional part when it is whole
func (y Yen) String() string {
	return y.Decimal.String()
}

// MaxYen returns the larger of two amounts
func MaxYen(a, b Yen) Yen {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// ManYen is an annual income in units of 10,000 yen (1160 means 11,600,000 yen).
type ManYen struct {
	decimal.Decimal
}

// NewManYenFromInt creates an income from an integer value in man-yen
func NewManYenFromInt(value int64) ManYen {
	return ManYen{decimal.NewFromInt(value)}
}

// NewManYenFromString parses an income such as "1159.999"
func NewManYenFromString(value string) (ManYen, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return ManYen{}, err
	}
	return ManYen{d}, nil
}

// GreaterThanOrEqual checks if this income is at or above another
func (m ManYen) GreaterThanOrEqual(other ManYen) bool {
	return m.Decimal.GreaterThanOrEqual(other.Decimal)
}

// LessThan checks if this income is below another
func (m ManYen) LessThan(other ManYen) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal checks if two incomes are equal
func (m ManYen) Equal(other ManYen) bool {
	return m.Decimal.Equal(other.Decimal)
}

// String returns the decimal representation in man-yen
func (m ManYen) String() string {
	return m.Decimal.String()
}

// ToYen converts the income to yen. Only use this for display.
func (m ManYen) ToYen() Yen {
	return Yen{m.Decimal.Mul(decimal.NewFromInt(10000))}
}

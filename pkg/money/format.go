package money

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// Format renders a whole-yen amount with Japanese digit grouping ("80,100").
// Fractions are rounded half away from zero first.
func (y Yen) Format() string {
	return printer.Sprintf("%d", y.Round().IntPart())
}

// FormatYen renders an amount followed by the yen unit ("80,100円")
func (y Yen) FormatYen() string {
	return y.Format() + "円"
}

// Format renders an income with grouping and the man-yen unit ("1,160万円").
// Fractions are truncated to one place so a figure never displays as
// reaching a category boundary it is below.
func (m ManYen) Format() string {
	if m.Decimal.Equal(m.Decimal.Truncate(0)) {
		return printer.Sprintf("%d万円", m.Decimal.IntPart())
	}
	abs := m.Decimal.Abs().Truncate(1)
	whole := abs.Truncate(0)
	tenths := abs.Sub(whole).Shift(1).IntPart()
	sign := ""
	if m.Decimal.IsNegative() {
		sign = "-"
	}
	return sign + printer.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(".%d万円", tenths)
}

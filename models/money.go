package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxPriceCents mirrors a DECIMAL(8,2) column.
const MaxPriceCents int64 = 99_999_999

var maxPrice = decimal.New(MaxPriceCents, -2)

// ParsePrice converts a decimal amount such as "49.99" into cents. More than
// two fractional digits, negative values and amounts above MaxPriceCents are
// rejected.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("ensure this value is greater than or equal to 0")
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("ensure that there are no more than 2 decimal places")
	}
	// Compared as a decimal: IntPart wraps for values beyond int64.
	if d.GreaterThan(maxPrice) {
		return 0, fmt.Errorf("ensure that there are no more than 8 digits in total")
	}
	return d.Shift(2).IntPart(), nil
}

// FormatCents renders cents as a fixed two-decimal amount, e.g. 5000 -> "50.00".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Package money converts between display dollars and the integer cents kept
// in the database and sent to the POS. All arithmetic is fixed-point; a float
// multiplied by 100 can land a cent off, which a price push would then sync
// back as a phantom change.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents converts a decimal dollar amount to integer cents, rounding half
// up at the second decimal place.
func ToCents(dollars decimal.Decimal) int64 {
	return dollars.Mul(hundred).Round(0).IntPart()
}

// FromCents converts integer cents back to a dollar amount for display.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

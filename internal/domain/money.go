package domain

import "github.com/shopspring/decimal"

// Milliunits is a fixed-point money amount: the displayed value times 1000.
type Milliunits int64

const milliunitExp = -3

// Decimal returns the amount in display units.
func (m Milliunits) Decimal() decimal.Decimal {
	return decimal.New(int64(m), milliunitExp)
}

// Float64 returns the amount in display units for JSON responses.
// Sums must be done on Milliunits, never on the float.
func (m Milliunits) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

func (m Milliunits) Abs() Milliunits {
	if m < 0 {
		return -m
	}
	return m
}

// MilliunitsFromDecimal converts a display amount, rounding half away from zero.
func MilliunitsFromDecimal(d decimal.Decimal) Milliunits {
	return Milliunits(d.Shift(-milliunitExp).Round(0).IntPart())
}

// Package money provides helpers for monetary amounts stored as int64 minor
// units (cents). Amounts only become floating point at the JSON boundary;
// all internal arithmetic is integral.
package money

import "math"

// FromDecimal converts a 2-decimal amount (as received on the wire) to cents.
func FromDecimal(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ToDecimal converts cents to a 2-decimal amount for API responses.
func ToDecimal(cents int64) float64 {
	return float64(cents) / 100
}

// ApplyRate multiplies cents by a fractional rate (e.g. a 0.21 tax rate or a
// 0.15 percentage discount), rounding half away from zero at the cent.
func ApplyRate(cents int64, rate float64) int64 {
	return int64(math.Round(float64(cents) * rate))
}

// MaxZero clamps a cent amount at zero. Used wherever a derived figure must
// not go negative (remaining balance, change due).
func MaxZero(cents int64) int64 {
	if cents < 0 {
		return 0
	}
	return cents
}

// Min returns the smaller of two cent amounts.
func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromDecimal(t *testing.T) {
	assert.Equal(t, int64(1050), FromDecimal(10.50))
	assert.Equal(t, int64(0), FromDecimal(0))
	assert.Equal(t, int64(-250), FromDecimal(-2.50))
	// float noise from JSON decoding must not lose a cent
	assert.Equal(t, int64(1999), FromDecimal(19.99))
	assert.Equal(t, int64(1), FromDecimal(0.01))
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, 10.50, ToDecimal(1050))
	assert.Equal(t, 0.0, ToDecimal(0))
	assert.Equal(t, -2.50, ToDecimal(-250))
}

func TestApplyRate_RoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(13), ApplyRate(125, 0.10), "12.5 rounds up")
	assert.Equal(t, int64(12), ApplyRate(124, 0.10))
	assert.Equal(t, int64(0), ApplyRate(1000, 0))
	assert.Equal(t, int64(210), ApplyRate(2100, 0.10))
	assert.Equal(t, int64(-13), ApplyRate(-125, 0.10), "negative amounts round away from zero too")
}

func TestMaxZero(t *testing.T) {
	assert.Equal(t, int64(5), MaxZero(5))
	assert.Equal(t, int64(0), MaxZero(0))
	assert.Equal(t, int64(0), MaxZero(-5))
}

func TestMin(t *testing.T) {
	assert.Equal(t, int64(3), Min(3, 7))
	assert.Equal(t, int64(3), Min(7, 3))
	assert.Equal(t, int64(3), Min(3, 3))
}

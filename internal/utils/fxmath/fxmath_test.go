package fxmath_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	"github.com/vendorfx/vendor_fx_app/internal/utils/fxmath"
)

func TestConvertToBase(t *testing.T) {
	testCases := []struct {
		name      string
		amount    string
		rate      string
		precision int32
		want      string
	}{
		{"eur to gbp at 1.17", "100.00", "1.17", 2, "85.47"},
		{"repriced eur to gbp", "120.00", "1.17", 2, "102.56"},
		{"identity rate", "19.99", "1", 2, "19.99"},
		{"rounds half up", "10.00", "3.2", 2, "3.13"}, // 3.125 -> 3.13
		{"zero amount", "0", "1.17", 2, "0.00"},
		{"zero precision currency", "1000", "151.44", 0, "7"},
		{"rate above amount", "0.50", "1.17", 2, "0.43"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			rate := decimal.RequireFromString(tc.rate)

			got, err := fxmath.ConvertToBase(amount, rate, tc.precision)

			require.NoError(t, err)
			assert.Equal(t, tc.want, fxmath.Format(got, tc.precision))
		})
	}
}

func TestConvertToBase_RejectsNonPositiveRate(t *testing.T) {
	amount := decimal.RequireFromString("10.00")

	_, err := fxmath.ConvertToBase(amount, decimal.Zero, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = fxmath.ConvertToBase(amount, decimal.RequireFromString("-1.17"), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestConvertToBase_RejectsNegativeAmount(t *testing.T) {
	_, err := fxmath.ConvertToBase(decimal.RequireFromString("-1"), decimal.RequireFromString("1.17"), 2)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// Re-deriving the vendor amount from the converted output must land within
// one unit of the rounding precision of the original.
func TestConvertToBase_RoundTrip(t *testing.T) {
	amounts := []string{"100.00", "120.00", "0.01", "9999.99", "3.33"}
	rates := []string{"1.17", "0.85", "4.67", "151.44"}
	precision := int32(2)
	tolerance := decimal.New(1, -precision) // one minor unit

	for _, a := range amounts {
		for _, r := range rates {
			amount := decimal.RequireFromString(a)
			rate := decimal.RequireFromString(r)

			converted, err := fxmath.ConvertToBase(amount, rate, precision)
			require.NoError(t, err)

			rederived := converted.Mul(rate)
			diff := rederived.Sub(amount).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance.Mul(rate)),
				"amount %s rate %s rederived %s diff %s", a, r, rederived, diff)
		}
	}
}

func TestEqualAtPrecision(t *testing.T) {
	a := decimal.RequireFromString("85.47")
	b := decimal.RequireFromString("85.470")
	c := decimal.RequireFromString("85.474")
	d := decimal.RequireFromString("85.48")

	assert.True(t, fxmath.EqualAtPrecision(a, b, 2))
	assert.True(t, fxmath.EqualAtPrecision(a, c, 2)) // 85.474 rounds to 85.47
	assert.False(t, fxmath.EqualAtPrecision(a, d, 2))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "85.47", fxmath.Format(decimal.RequireFromString("85.47"), 2))
	assert.Equal(t, "85.40", fxmath.Format(decimal.RequireFromString("85.4"), 2))
	assert.Equal(t, "85.00", fxmath.Format(decimal.RequireFromString("85"), 2))
	assert.Equal(t, "0.00", fxmath.Format(decimal.Zero, 2))
}

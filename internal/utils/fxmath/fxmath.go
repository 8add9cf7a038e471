// Package fxmath holds the conversion arithmetic shared by every code path
// that turns a vendor-currency amount into a base-currency amount. Rates are
// stored as units of quote (vendor) currency per 1 unit of the base currency,
// so conversion into the base currency divides by the rate.
package fxmath

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
)

// guardDigits is the extra precision carried through the division before the
// final half-up round, so the round sees enough of the quotient.
const guardDigits = 8

// ConvertToBase converts amount (vendor currency) into the base currency
// using rate (vendor units per 1 base unit), rounded half-up to precision
// decimal places. Callers must have rejected non-positive rates already;
// a non-positive rate here is reported as a validation error.
func ConvertToBase(amount, rate decimal.Decimal, precision int32) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("%w: fx rate must be positive, got %s", apperrors.ErrValidation, rate)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must not be negative, got %s", apperrors.ErrValidation, amount)
	}
	quotient := amount.DivRound(rate, precision+guardDigits)
	// Round is half-away-from-zero, which is half-up for the non-negative
	// amounts allowed here.
	return quotient.Round(precision), nil
}

// Format renders an amount as a fixed-point decimal string at the given
// precision. Stored and displayed prices always go through this so the same
// value never serialises two different ways.
func Format(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// EqualAtPrecision reports whether two amounts are the same value once both
// are rounded to the given precision.
func EqualAtPrecision(a, b decimal.Decimal, precision int32) bool {
	return a.Round(precision).Equal(b.Round(precision))
}

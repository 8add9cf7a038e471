package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateQuote is one batch of rates fetched from a remote FX source.
// Rates are keyed by quote currency code, each expressed as units of that
// currency per 1 unit of Base.
type RateQuote struct {
	Base   string
	Date   string
	Rates  map[string]decimal.Decimal
	Source string
}

// RateProvider fetches current rates from a remote FX API.
type RateProvider interface {
	// FetchRates retrieves rates from base to each of the symbols.
	FetchRates(ctx context.Context, base string, symbols []string) (*RateQuote, error)
}

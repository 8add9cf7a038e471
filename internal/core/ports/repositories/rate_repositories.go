package repositories

import (
	"context"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// RateReader defines read operations for exchange rate data
type RateReader interface {
	// FindRate retrieves the current rate row for an exact (base, quote) pair.
	FindRate(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error)

	// ListRates retrieves all stored rate rows, ordered by pair.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateWriter defines write operations for exchange rate data
type RateWriter interface {
	// UpsertRate inserts the rate row or overwrites the existing row for its pair.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
}

// RateRepositoryFacade combines all rate-related repository interfaces
// This is a facade for clients that need access to all operations
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}

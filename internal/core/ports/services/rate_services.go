package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	"github.com/vendorfx/vendor_fx_app/internal/dto"
)

// RateReaderSvc defines read operations for exchange rate data
type RateReaderSvc interface {
	// GetRateToBase resolves the rate used to convert quote-currency amounts
	// into the base currency. The identity pair resolves to 1 without a lookup.
	// A missing pair returns apperrors.ErrNotFound; the caller must not guess
	// or invert a reverse-direction rate.
	GetRateToBase(ctx context.Context, quoteCurrencyCode, baseCurrencyCode string) (decimal.Decimal, error)

	// GetRate retrieves the stored rate row for an exact (base, quote) pair.
	GetRate(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error)

	// ListRates retrieves all stored rate rows.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateWriterSvc defines write operations for exchange rate data
type RateWriterSvc interface {
	// UpsertRate stores or overwrites the rate for a currency pair.
	UpsertRate(ctx context.Context, req dto.UpsertRateRequest, updaterID string) (*domain.ExchangeRate, error)
}

// RateSvcFacade combines all rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}

// RateRefresherSvc pulls fresh rates from the configured provider and stores them.
type RateRefresherSvc interface {
	// RefreshRates fetches quotes for the configured target currencies and
	// upserts each one. It returns the number of rates stored.
	RefreshRates(ctx context.Context) (int, error)
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	portsrepo "github.com/vendorfx/vendor_fx_app/internal/core/ports/repositories"
	"github.com/vendorfx/vendor_fx_app/internal/dto"
)

// RateService provides business logic for exchange rates.
type RateService struct {
	BaseService
	rateRepo portsrepo.RateRepositoryFacade
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade) *RateService {
	return &RateService{rateRepo: rateRepo}
}

// GetRateToBase resolves the rate for converting quote-currency amounts into
// the base currency. The identity pair is always 1 and never hits storage.
// A missing pair surfaces apperrors.ErrNotFound; there is deliberately no
// fallback to the inverse pair.
func (s *RateService) GetRateToBase(ctx context.Context, quoteCurrencyCode, baseCurrencyCode string) (decimal.Decimal, error) {
	quote := normalizeCurrencyCode(quoteCurrencyCode)
	base := normalizeCurrencyCode(baseCurrencyCode)

	if quote == base {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindRate(ctx, base, quote)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to get rate %s->%s: %w", base, quote, err)
	}
	return rate.Rate, nil
}

// GetRate retrieves the stored rate row for a specific currency pair.
func (s *RateService) GetRate(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error) {
	base := normalizeCurrencyCode(baseCurrencyCode)
	quote := normalizeCurrencyCode(quoteCurrencyCode)
	if len(base) != 3 || len(quote) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindRate(ctx, base, quote)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListRates retrieves all stored rate rows.
func (s *RateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	return rates, nil
}

// UpsertRate stores or overwrites the rate for a currency pair.
func (s *RateService) UpsertRate(ctx context.Context, req dto.UpsertRateRequest, updaterID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	base := normalizeCurrencyCode(req.BaseCurrencyCode)
	quote := normalizeCurrencyCode(req.QuoteCurrencyCode)
	if base == quote {
		return nil, fmt.Errorf("%w: base and quote currency codes cannot be the same", apperrors.ErrValidation)
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		BaseCurrencyCode:  base,
		QuoteCurrencyCode: quote,
		Rate:              req.Rate,
		ObservedAt:        now,
		Source:            source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterID,
		},
	}

	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate in service: %w", err)
	}
	return &rate, nil
}

func normalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

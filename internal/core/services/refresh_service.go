package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	"github.com/vendorfx/vendor_fx_app/internal/core/ports/providers"
	portsrepo "github.com/vendorfx/vendor_fx_app/internal/core/ports/repositories"
)

// refreshActor labels row audit writes made by the scheduled refresh job.
const refreshActor = "fx-refresh"

// RefreshService pulls current rates from the configured provider and stores
// them. It runs from the cron schedule and from the manual refresh endpoint.
type RefreshService struct {
	BaseService
	provider     providers.RateProvider
	rateRepo     portsrepo.RateWriter
	baseCurrency string
	targets      []string
}

// NewRefreshService creates a new RefreshService. targets is the full set of
// currencies vendors may price in; the base currency is filtered out of the
// fetch since its rate is the identity.
func NewRefreshService(provider providers.RateProvider, rateRepo portsrepo.RateWriter, baseCurrency string, targets []string) *RefreshService {
	return &RefreshService{
		provider:     provider,
		rateRepo:     rateRepo,
		baseCurrency: normalizeCurrencyCode(baseCurrency),
		targets:      targets,
	}
}

// RefreshRates fetches quotes for every configured target currency and
// upserts each one, finishing with a self-rate of 1 for the base currency so
// diagnostics listings always show the full set. Individual upsert failures
// are logged and skipped; only a failed fetch aborts the run.
func (s *RefreshService) RefreshRates(ctx context.Context) (int, error) {
	symbols := make([]string, 0, len(s.targets))
	seen := make(map[string]struct{}, len(s.targets))
	for _, t := range s.targets {
		code := normalizeCurrencyCode(t)
		if code == "" || code == s.baseCurrency {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		symbols = append(symbols, code)
	}
	if len(symbols) == 0 {
		return 0, nil
	}

	quote, err := s.provider.FetchRates(ctx, s.baseCurrency, symbols)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rates from provider: %w", err)
	}

	now := time.Now().UTC()
	stored := 0
	for code, rate := range quote.Rates {
		code = normalizeCurrencyCode(code)
		if rate.LessThanOrEqual(decimal.Zero) {
			s.LogWarn(ctx, "Skipping non-positive rate from provider",
				slog.String("quote_currency", code),
				slog.String("rate", rate.String()),
			)
			continue
		}
		if err := s.rateRepo.UpsertRate(ctx, s.newRateRow(code, rate, quote.Source, now)); err != nil {
			s.LogError(ctx, err, "Failed to store refreshed rate", slog.String("quote_currency", code))
			continue
		}
		stored++
	}

	selfRate := s.newRateRow(s.baseCurrency, decimal.NewFromInt(1), quote.Source, now)
	if err := s.rateRepo.UpsertRate(ctx, selfRate); err != nil {
		s.LogError(ctx, err, "Failed to store base self-rate")
	} else {
		stored++
	}

	s.LogInfo(ctx, "Refreshed exchange rates",
		slog.Int("stored", stored),
		slog.Int("requested", len(symbols)),
		slog.String("source", quote.Source),
	)
	return stored, nil
}

func (s *RefreshService) newRateRow(quoteCode string, rate decimal.Decimal, source string, now time.Time) domain.ExchangeRate {
	return domain.ExchangeRate{
		BaseCurrencyCode:  s.baseCurrency,
		QuoteCurrencyCode: quoteCode,
		Rate:              rate,
		ObservedAt:        now,
		Source:            source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     refreshActor,
			LastUpdatedAt: now,
			LastUpdatedBy: refreshActor,
		},
	}
}

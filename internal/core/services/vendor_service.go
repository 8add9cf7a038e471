package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	portsrepo "github.com/vendorfx/vendor_fx_app/internal/core/ports/repositories"
)

// VendorService resolves and manages per-vendor currency settings.
type VendorService struct {
	BaseService
	vendorRepo   portsrepo.VendorRepositoryFacade
	baseCurrency string
	allowed      map[string]struct{}
}

// NewVendorService creates a new VendorService. allowedCurrencies is the set
// an administrator may assign; the base currency is always part of it.
func NewVendorService(vendorRepo portsrepo.VendorRepositoryFacade, baseCurrency string, allowedCurrencies []string) *VendorService {
	base := normalizeCurrencyCode(baseCurrency)
	allowed := make(map[string]struct{}, len(allowedCurrencies)+1)
	allowed[base] = struct{}{}
	for _, code := range allowedCurrencies {
		if c := normalizeCurrencyCode(code); c != "" {
			allowed[c] = struct{}{}
		}
	}
	return &VendorService{
		vendorRepo:   vendorRepo,
		baseCurrency: base,
		allowed:      allowed,
	}
}

// GetCurrency resolves the currency a vendor prices in. Unset, unreadable or
// blank settings all resolve to the base currency; conversion callers never
// see an error from here.
func (s *VendorService) GetCurrency(ctx context.Context, vendorID string) string {
	if vendorID == "" {
		return s.baseCurrency
	}

	setting, err := s.vendorRepo.FindCurrencySetting(ctx, vendorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Failed to read vendor currency setting, defaulting to base currency",
				slog.String("vendor_id", vendorID),
				slog.String("error", err.Error()),
			)
		}
		return s.baseCurrency
	}

	code := normalizeCurrencyCode(setting.CurrencyCode)
	if code == "" {
		return s.baseCurrency
	}
	return code
}

// SetCurrency stores a vendor's currency setting. A code outside the allowed
// set is coerced to the base currency rather than rejected, so a bad admin
// input can never leave a vendor priced in an unconvertible currency.
func (s *VendorService) SetCurrency(ctx context.Context, vendorID, currencyCode, updaterID string) (*domain.VendorCurrencySetting, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("%w: vendor id is required", apperrors.ErrValidation)
	}

	code := normalizeCurrencyCode(currencyCode)
	if _, ok := s.allowed[code]; !ok {
		s.LogWarn(ctx, "Unrecognized vendor currency, coercing to base currency",
			slog.String("vendor_id", vendorID),
			slog.String("requested_currency", currencyCode),
		)
		code = s.baseCurrency
	}

	now := time.Now().UTC()
	setting := domain.VendorCurrencySetting{
		VendorID:     vendorID,
		CurrencyCode: code,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterID,
		},
	}

	if err := s.vendorRepo.SaveCurrencySetting(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to save vendor currency setting: %w", err)
	}
	return &setting, nil
}

package services

import (
	"context"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// VendorReaderSvc defines read operations for vendor currency settings
type VendorReaderSvc interface {
	// GetCurrency resolves the currency a vendor prices in. Vendors without a
	// setting (or with an unreadable one) resolve to the base currency.
	GetCurrency(ctx context.Context, vendorID string) string
}

// VendorWriterSvc defines write operations for vendor currency settings
type VendorWriterSvc interface {
	// SetCurrency stores a vendor's currency. Codes outside the allowed set
	// are coerced to the base currency rather than rejected.
	SetCurrency(ctx context.Context, vendorID, currencyCode, updaterID string) (*domain.VendorCurrencySetting, error)
}

// VendorSvcFacade combines all vendor-related service interfaces
type VendorSvcFacade interface {
	VendorReaderSvc
	VendorWriterSvc
}

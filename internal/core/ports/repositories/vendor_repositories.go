package repositories

import (
	"context"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// VendorReader defines read operations for vendor currency settings
type VendorReader interface {
	// FindCurrencySetting retrieves a vendor's currency setting.
	FindCurrencySetting(ctx context.Context, vendorID string) (*domain.VendorCurrencySetting, error)
}

// VendorWriter defines write operations for vendor currency settings
type VendorWriter interface {
	// SaveCurrencySetting persists a vendor's currency setting, overwriting any previous one.
	SaveCurrencySetting(ctx context.Context, setting domain.VendorCurrencySetting) error
}

// VendorRepositoryFacade combines all vendor-related repository interfaces
type VendorRepositoryFacade interface {
	VendorReader
	VendorWriter
}

package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// ConversionSvcFacade is the price-conversion decision engine.
//
// ConvertIncoming is a pure transform: the caller persists the returned
// draft. ReconcileProduct decides on its own whether a persisted entity
// still needs conversion and commits its own mutation when it does.
type ConversionSvcFacade interface {
	// ConvertIncoming converts proposed vendor-currency prices arriving as
	// part of an external write, before they are persisted. Prices and audit
	// fields are set on the returned draft; the input is not persisted here.
	// An unresolvable vendor or unknown rate returns the draft unchanged.
	ConvertIncoming(ctx context.Context, draft domain.Product, vendorID string, proposedRegular, proposedSale *decimal.Decimal) (domain.Product, error)

	// ReconcileProduct decides whether an already-persisted product's prices
	// are still pending conversion, converts them if so, and saves the result.
	// A product whose prices match the last converted outputs is left alone.
	ReconcileProduct(ctx context.Context, productID string) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
	portsrepo "github.com/vendorfx/vendor_fx_app/internal/core/ports/repositories"
	portssvc "github.com/vendorfx/vendor_fx_app/internal/core/ports/services"
	"github.com/vendorfx/vendor_fx_app/internal/utils/fxmath"
)

// reconcileActor labels row audit writes made by the reconcile pass.
const reconcileActor = "fx-reconcile"

// ConversionService is the price-conversion decision engine. It decides, for
// a priced entity, whether its vendor-currency prices need (re-)conversion
// into the base currency, performs the conversion and maintains the fx audit
// trail. Rate lookup and vendor currency resolution are injected read ports;
// the engine owns all writes to price and audit fields.
type ConversionService struct {
	BaseService
	vendorSvc    portssvc.VendorReaderSvc
	rateSvc      portssvc.RateReaderSvc
	productRepo  portsrepo.ProductRepositoryFacade
	baseCurrency string
	precision    int32
}

// NewConversionService creates a new ConversionService. precision is the
// base currency's minor-unit precision used for rounding and for baseline
// comparison.
func NewConversionService(
	vendorSvc portssvc.VendorReaderSvc,
	rateSvc portssvc.RateReaderSvc,
	productRepo portsrepo.ProductRepositoryFacade,
	baseCurrency string,
	precision int32,
) *ConversionService {
	return &ConversionService{
		vendorSvc:    vendorSvc,
		rateSvc:      rateSvc,
		productRepo:  productRepo,
		baseCurrency: normalizeCurrencyCode(baseCurrency),
		precision:    precision,
	}
}

// ConvertIncoming converts proposed vendor-currency prices arriving as part
// of an external write, before the caller persists them. The draft is a pure
// transform: nothing is saved here, the caller applies the returned entity.
//
// When the vendor prices in the base currency the proposed values pass
// through untouched and only audit metadata is stamped. When no usable rate
// exists the draft is returned unchanged so the enclosing write is never
// blocked.
func (s *ConversionService) ConvertIncoming(ctx context.Context, draft domain.Product, vendorID string, proposedRegular, proposedSale *decimal.Decimal) (domain.Product, error) {
	now := time.Now().UTC()
	vendorCurrency := s.vendorSvc.GetCurrency(ctx, vendorID)

	proposedRegular = usablePrice(proposedRegular)
	proposedSale = usablePrice(proposedSale)

	if vendorCurrency == s.baseCurrency {
		if proposedRegular == nil && proposedSale == nil {
			return draft, nil
		}
		draft.OriginalCurrency = vendorCurrency
		draft.OriginalRegularPrice = clonePrice(proposedRegular)
		draft.OriginalSalePrice = clonePrice(proposedSale)
		one := decimal.NewFromInt(1)
		draft.FxRateUsed = &one
		draft.FxConvertedAt = &now
		return draft, nil
	}

	rate, err := s.rateSvc.GetRateToBase(ctx, vendorCurrency, s.baseCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "No usable fx rate, leaving incoming prices untouched",
				slog.String("vendor_currency", vendorCurrency),
				slog.String("base_currency", s.baseCurrency),
			)
			return draft, nil
		}
		return draft, fmt.Errorf("failed to resolve fx rate for incoming write: %w", err)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return draft, nil
	}

	if proposedRegular == nil && proposedSale == nil {
		return draft, nil
	}

	if proposedRegular != nil {
		converted, err := fxmath.ConvertToBase(*proposedRegular, rate, s.precision)
		if err != nil {
			return draft, fmt.Errorf("failed to convert regular price: %w", err)
		}
		draft.OriginalRegularPrice = clonePrice(proposedRegular)
		draft.RegularPrice = &converted
	}
	if proposedSale != nil {
		converted, err := fxmath.ConvertToBase(*proposedSale, rate, s.precision)
		if err != nil {
			return draft, fmt.Errorf("failed to convert sale price: %w", err)
		}
		draft.OriginalSalePrice = clonePrice(proposedSale)
		draft.SalePrice = &converted
	}

	draft.RecomputeActivePrice()
	draft.OriginalCurrency = vendorCurrency
	rateUsed := rate
	draft.FxRateUsed = &rateUsed
	draft.FxConvertedAt = &now

	s.LogInfo(ctx, "Converted incoming prices to base currency",
		slog.String("product_id", draft.ProductID),
		slog.String("vendor_currency", vendorCurrency),
		slog.String("rate", rate.String()),
	)
	return draft, nil
}

// ReconcileProduct decides whether an already-persisted product's stored
// prices are still pending conversion and, if so, converts and saves them.
//
// There is no explicit "these are new vendor prices" signal in this trigger
// context, so the decision rests on the baseline comparison: a stored price
// equal to the last converted output was not re-supplied in vendor currency
// and must not be divided again, otherwise every stock-count update would
// compound the conversion and corrupt the price.
//
// Known limitation, kept deliberately: a vendor re-supplying a vendor-currency
// price that happens to equal the last converted output is indistinguishable
// from an untouched price and is skipped.
func (s *ConversionService) ReconcileProduct(ctx context.Context, productID string) error {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load product for reconciliation: %w", err)
	}

	vendorID, err := s.resolveOwner(ctx, product)
	if err != nil {
		return err
	}
	if vendorID == "" {
		// Not a vendor entity; absence of an owner is common and not an error.
		return nil
	}

	vendorCurrency := s.vendorSvc.GetCurrency(ctx, vendorID)
	if vendorCurrency == s.baseCurrency {
		return nil
	}

	rate, err := s.rateSvc.GetRateToBase(ctx, vendorCurrency, s.baseCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "No usable fx rate, skipping reconciliation",
				slog.String("product_id", productID),
				slog.String("vendor_currency", vendorCurrency),
			)
			return nil
		}
		return fmt.Errorf("failed to resolve fx rate for reconciliation: %w", err)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	// Whatever is stored right now is the candidate vendor-currency input.
	regular := usablePrice(product.RegularPrice)
	sale := usablePrice(product.SalePrice)
	if regular == nil && sale == nil {
		return nil
	}

	// Idempotence guard: a candidate equal to its baseline (at base-currency
	// precision) is already converted. A candidate without a baseline still
	// needs its first conversion.
	sameRegular := true
	if regular != nil {
		sameRegular = product.LastConvertedRegularOutput != nil &&
			fxmath.EqualAtPrecision(*regular, *product.LastConvertedRegularOutput, s.precision)
	}
	sameSale := true
	if sale != nil {
		sameSale = product.LastConvertedSaleOutput != nil &&
			fxmath.EqualAtPrecision(*sale, *product.LastConvertedSaleOutput, s.precision)
	}
	if product.FxConvertedAt != nil && sameRegular && sameSale {
		s.LogDebug(ctx, "Prices match last converted outputs, treating as non-price update",
			slog.String("product_id", productID),
		)
		return nil
	}

	now := time.Now().UTC()
	if regular != nil {
		converted, err := fxmath.ConvertToBase(*regular, rate, s.precision)
		if err != nil {
			return fmt.Errorf("failed to convert regular price: %w", err)
		}
		product.OriginalRegularPrice = clonePrice(regular)
		product.RegularPrice = &converted
		product.LastConvertedRegularOutput = clonePrice(&converted)
	}
	if sale != nil {
		converted, err := fxmath.ConvertToBase(*sale, rate, s.precision)
		if err != nil {
			return fmt.Errorf("failed to convert sale price: %w", err)
		}
		product.OriginalSalePrice = clonePrice(sale)
		product.SalePrice = &converted
		product.LastConvertedSaleOutput = clonePrice(&converted)
	} else {
		// Sale price is gone this pass: drop its baselines so a reintroduced
		// sale price is not mistaken for an unchanged converted one.
		product.OriginalSalePrice = nil
		product.LastConvertedSaleOutput = nil
	}

	product.RecomputeActivePrice()
	product.OriginalCurrency = vendorCurrency
	rateUsed := rate
	product.FxRateUsed = &rateUsed
	product.FxConvertedAt = &now
	product.LastUpdatedAt = now
	product.LastUpdatedBy = reconcileActor

	if err := s.productRepo.SaveProduct(ctx, *product); err != nil {
		return fmt.Errorf("failed to save reconciled product: %w", err)
	}

	s.LogInfo(ctx, "Reconciled product prices to base currency",
		slog.String("product_id", productID),
		slog.String("vendor_currency", vendorCurrency),
		slog.String("rate", rate.String()),
	)
	return nil
}

// resolveOwner returns the product's owning vendor, falling back to the
// parent product's owner for variants saved without one.
func (s *ConversionService) resolveOwner(ctx context.Context, product *domain.Product) (string, error) {
	if product.VendorID != "" {
		return product.VendorID, nil
	}
	if product.ParentID == "" {
		return "", nil
	}

	parent, err := s.productRepo.FindProductByID(ctx, product.ParentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load parent product: %w", err)
	}
	return parent.VendorID, nil
}

// usablePrice filters out absent and malformed (negative) price inputs.
// A skipped field is simply left out of the conversion, never an error.
func usablePrice(p *decimal.Decimal) *decimal.Decimal {
	if p == nil || p.IsNegative() {
		return nil
	}
	return p
}

func clonePrice(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

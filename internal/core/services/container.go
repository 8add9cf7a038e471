package services

import (
	"github.com/vendorfx/vendor_fx_app/internal/core/ports/providers"
	portsrepo "github.com/vendorfx/vendor_fx_app/internal/core/ports/repositories"
	portssvc "github.com/vendorfx/vendor_fx_app/internal/core/ports/services"
	"github.com/vendorfx/vendor_fx_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider providers.RateProvider) *portssvc.ServiceContainer {
	rateSvc := NewRateService(repos.RateRepo)
	vendorSvc := NewVendorService(repos.VendorRepo, cfg.BaseCurrency, cfg.AllowedCurrencies)
	conversionSvc := NewConversionService(vendorSvc, rateSvc, repos.ProductRepo, cfg.BaseCurrency, cfg.PriceDecimals)
	refresher := NewRefreshService(provider, repos.RateRepo, cfg.BaseCurrency, cfg.AllowedCurrencies)

	return &portssvc.ServiceContainer{
		Rate:       rateSvc,
		Vendor:     vendorSvc,
		Conversion: conversionSvc,
		Refresher:  refresher,
	}
}

// Compile-time checks that the concrete services satisfy their facades.
var (
	_ portssvc.RateSvcFacade       = (*RateService)(nil)
	_ portssvc.VendorSvcFacade     = (*VendorService)(nil)
	_ portssvc.ConversionSvcFacade = (*ConversionService)(nil)
	_ portssvc.RateRefresherSvc    = (*RefreshService)(nil)
)

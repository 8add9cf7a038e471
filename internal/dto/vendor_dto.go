package dto

import "github.com/vendorfx/vendor_fx_app/internal/core/domain"

// SetVendorCurrencyRequest defines the structure for setting a vendor's currency.
// Codes outside the allowed set are stored as the base currency, not rejected.
type SetVendorCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// VendorCurrencyResponse defines the structure for vendor currency API responses.
type VendorCurrencyResponse struct {
	VendorID     string `json:"vendorID"`
	CurrencyCode string `json:"currencyCode"`
}

// ToVendorCurrencyResponse converts a domain.VendorCurrencySetting to its response DTO.
func ToVendorCurrencyResponse(setting *domain.VendorCurrencySetting) VendorCurrencyResponse {
	return VendorCurrencyResponse{
		VendorID:     setting.VendorID,
		CurrencyCode: setting.CurrencyCode,
	}
}

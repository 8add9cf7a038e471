package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// UpsertRateRequest defines the structure for manually storing an exchange rate.
type UpsertRateRequest struct {
	BaseCurrencyCode  string          `json:"baseCurrencyCode" binding:"required,currencycode"`
	QuoteCurrencyCode string          `json:"quoteCurrencyCode" binding:"required,currencycode"`
	Rate              decimal.Decimal `json:"rate" binding:"required"`
	Source            string          `json:"source"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	BaseCurrencyCode  string          `json:"baseCurrencyCode"`
	QuoteCurrencyCode string          `json:"quoteCurrencyCode"`
	Rate              decimal.Decimal `json:"rate"`
	ObservedAt        time.Time       `json:"observedAt"`
	Source            string          `json:"source,omitempty"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy     string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		BaseCurrencyCode:  rate.BaseCurrencyCode,
		QuoteCurrencyCode: rate.QuoteCurrencyCode,
		Rate:              rate.Rate,
		ObservedAt:        rate.ObservedAt,
		Source:            rate.Source,
		LastUpdatedAt:     rate.LastUpdatedAt,
		LastUpdatedBy:     rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// RefreshRatesResponse reports the outcome of a manual rate refresh.
type RefreshRatesResponse struct {
	RatesStored int `json:"ratesStored"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the single current conversion rate for a currency pair.
// Rate is expressed as units of QuoteCurrencyCode per 1 unit of BaseCurrencyCode,
// so converting a quote-currency amount into the base currency divides by Rate.
// A pair holds at most one row; refreshes supersede it in place.
type ExchangeRate struct {
	BaseCurrencyCode  string          `json:"baseCurrencyCode"`
	QuoteCurrencyCode string          `json:"quoteCurrencyCode"`
	Rate              decimal.Decimal `json:"rate"`
	ObservedAt        time.Time       `json:"observedAt"`
	Source            string          `json:"source,omitempty"`
	AuditFields
}

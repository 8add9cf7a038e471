package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a vendor-priced catalog entity (a product or one of its variants).
// Price fields are nullable: importers routinely send entities without prices.
type Product struct {
	ProductID    string           `json:"productID"`
	VendorID     string           `json:"vendorID,omitempty"` // owning vendor; may be empty on variants
	ParentID     string           `json:"parentID,omitempty"` // parent product for variants
	RegularPrice *decimal.Decimal `json:"regularPrice,omitempty"`
	SalePrice    *decimal.Decimal `json:"salePrice,omitempty"`
	ActivePrice  *decimal.Decimal `json:"activePrice,omitempty"` // sale price if set, else regular price
	FxAudit
	AuditFields
}

// FxAudit is the conversion audit trail persisted alongside a product's prices.
// The field names below are a stable contract with external tooling; do not rename.
type FxAudit struct {
	OriginalCurrency           string           `json:"original_currency,omitempty"`
	OriginalRegularPrice       *decimal.Decimal `json:"original_regular_price,omitempty"`
	OriginalSalePrice          *decimal.Decimal `json:"original_sale_price,omitempty"`
	FxRateUsed                 *decimal.Decimal `json:"fx_rate_used,omitempty"`
	FxConvertedAt              *time.Time       `json:"fx_converted_at,omitempty"`
	LastConvertedRegularOutput *decimal.Decimal `json:"last_converted_regular_output,omitempty"`
	LastConvertedSaleOutput    *decimal.Decimal `json:"last_converted_sale_output,omitempty"`
}

// RecomputeActivePrice aligns ActivePrice with the sale-else-regular rule.
func (p *Product) RecomputeActivePrice() {
	switch {
	case p.SalePrice != nil:
		v := *p.SalePrice
		p.ActivePrice = &v
	case p.RegularPrice != nil:
		v := *p.RegularPrice
		p.ActivePrice = &v
	default:
		p.ActivePrice = nil
	}
}

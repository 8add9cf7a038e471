package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// ConvertIncomingRequest carries proposed vendor-currency prices arriving as
// part of an external write, before the caller persists them.
type ConvertIncomingRequest struct {
	ProductID    string           `json:"productID" binding:"required"`
	VendorID     string           `json:"vendorID"`
	ParentID     string           `json:"parentID"`
	RegularPrice *decimal.Decimal `json:"regularPrice"`
	SalePrice    *decimal.Decimal `json:"salePrice"`
}

// ConvertedProductResponse returns the transformed draft for the caller to persist.
type ConvertedProductResponse struct {
	Product domain.Product `json:"product"`
}

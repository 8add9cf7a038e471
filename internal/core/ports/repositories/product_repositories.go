package repositories

import (
	"context"

	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// ProductReader defines read operations for priced catalog entities
type ProductReader interface {
	// FindProductByID retrieves a product or variant with its price and audit fields.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// ProductWriter defines write operations for priced catalog entities
type ProductWriter interface {
	// SaveProduct commits the product's mutated price and fx audit fields.
	SaveProduct(ctx context.Context, product domain.Product) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

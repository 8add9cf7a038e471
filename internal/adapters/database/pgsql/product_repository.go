package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendorfx/vendor_fx_app/internal/apperrors"
	"github.com/vendorfx/vendor_fx_app/internal/core/domain"
)

// PgxProductRepository implements the repositories.ProductRepositoryFacade interface using pgxpool.
type PgxProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new PgxProductRepository.
func NewProductRepository(db *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{db: db}
}

// FindProductByID retrieves a product or variant with its price and fx audit fields.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT
			product_id, vendor_id, parent_id,
			regular_price, sale_price, active_price,
			original_currency, original_regular_price, original_sale_price,
			fx_rate_used, fx_converted_at,
			last_converted_regular_output, last_converted_sale_output,
			created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = $1
	`
	product := &domain.Product{}
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&product.ProductID, &product.VendorID, &product.ParentID,
		&product.RegularPrice, &product.SalePrice, &product.ActivePrice,
		&product.OriginalCurrency, &product.OriginalRegularPrice, &product.OriginalSalePrice,
		&product.FxRateUsed, &product.FxConvertedAt,
		&product.LastConvertedRegularOutput, &product.LastConvertedSaleOutput,
		&product.CreatedAt, &product.CreatedBy, &product.LastUpdatedAt, &product.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding product: %w", err)
	}
	return product, nil
}

// SaveProduct commits the product's price and fx audit fields. Products are
// created by external importers, so the write is an upsert keyed on product_id.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (
			product_id, vendor_id, parent_id,
			regular_price, sale_price, active_price,
			original_currency, original_regular_price, original_sale_price,
			fx_rate_used, fx_converted_at,
			last_converted_regular_output, last_converted_sale_output,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (product_id) DO UPDATE SET
			vendor_id = EXCLUDED.vendor_id,
			parent_id = EXCLUDED.parent_id,
			regular_price = EXCLUDED.regular_price,
			sale_price = EXCLUDED.sale_price,
			active_price = EXCLUDED.active_price,
			original_currency = EXCLUDED.original_currency,
			original_regular_price = EXCLUDED.original_regular_price,
			original_sale_price = EXCLUDED.original_sale_price,
			fx_rate_used = EXCLUDED.fx_rate_used,
			fx_converted_at = EXCLUDED.fx_converted_at,
			last_converted_regular_output = EXCLUDED.last_converted_regular_output,
			last_converted_sale_output = EXCLUDED.last_converted_sale_output,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.db.Exec(ctx, query,
		product.ProductID, product.VendorID, product.ParentID,
		product.RegularPrice, product.SalePrice, product.ActivePrice,
		product.OriginalCurrency, product.OriginalRegularPrice, product.OriginalSalePrice,
		product.FxRateUsed, product.FxConvertedAt,
		product.LastConvertedRegularOutput, product.LastConvertedSaleOutput,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error saving product: %w", err)
	}
	return nil
}

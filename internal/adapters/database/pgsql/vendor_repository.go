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

// PgxVendorRepository implements the repositories.VendorRepositoryFacade interface using pgxpool.
type PgxVendorRepository struct {
	db *pgxpool.Pool
}

// NewVendorRepository creates a new PgxVendorRepository.
func NewVendorRepository(db *pgxpool.Pool) *PgxVendorRepository {
	return &PgxVendorRepository{db: db}
}

// SaveCurrencySetting persists a vendor's currency setting, overwriting any
// previous value. No history is kept.
func (r *PgxVendorRepository) SaveCurrencySetting(ctx context.Context, setting domain.VendorCurrencySetting) error {
	query := `
		INSERT INTO vendor_settings (
			vendor_id, currency_code, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vendor_id) DO UPDATE SET
			currency_code = EXCLUDED.currency_code,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.db.Exec(ctx, query,
		setting.VendorID, setting.CurrencyCode,
		setting.CreatedAt, setting.CreatedBy, setting.LastUpdatedAt, setting.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error saving vendor currency setting: %w", err)
	}
	return nil
}

// FindCurrencySetting retrieves a vendor's currency setting.
func (r *PgxVendorRepository) FindCurrencySetting(ctx context.Context, vendorID string) (*domain.VendorCurrencySetting, error) {
	query := `
		SELECT vendor_id, currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM vendor_settings
		WHERE vendor_id = $1
	`
	setting := &domain.VendorCurrencySetting{}
	err := r.db.QueryRow(ctx, query, vendorID).Scan(
		&setting.VendorID, &setting.CurrencyCode,
		&setting.CreatedAt, &setting.CreatedBy, &setting.LastUpdatedAt, &setting.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding vendor currency setting: %w", err)
	}
	return setting, nil
}

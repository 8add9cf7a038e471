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

// PgxRateRepository implements the repositories.RateRepositoryFacade interface using pgxpool.
type PgxRateRepository struct {
	db *pgxpool.Pool
}

// NewRateRepository creates a new PgxRateRepository.
func NewRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{db: db}
}

// UpsertRate inserts the rate row or overwrites the existing row for its pair.
// A pair only ever has one current row; refreshes supersede it in place.
func (r *PgxRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO fx_rates (
			base_currency, quote_currency, rate, observed_at, source,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (base_currency, quote_currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			observed_at = EXCLUDED.observed_at,
			source = EXCLUDED.source,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.db.Exec(ctx, query,
		rate.BaseCurrencyCode, rate.QuoteCurrencyCode, rate.Rate, rate.ObservedAt, rate.Source,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error upserting exchange rate: %w", err)
	}
	return nil
}

// FindRate retrieves the current rate row for an exact (base, quote) pair.
func (r *PgxRateRepository) FindRate(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT
			base_currency, quote_currency, rate, observed_at, source,
			created_at, created_by, last_updated_at, last_updated_by
		FROM fx_rates
		WHERE base_currency = $1 AND quote_currency = $2
	`
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, baseCurrencyCode, quoteCurrencyCode).Scan(
		&rate.BaseCurrencyCode, &rate.QuoteCurrencyCode, &rate.Rate, &rate.ObservedAt, &rate.Source,
		&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}

// ListRates retrieves all stored rate rows ordered by pair.
func (r *PgxRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT
			base_currency, quote_currency, rate, observed_at, source,
			created_at, created_by, last_updated_at, last_updated_by
		FROM fx_rates
		ORDER BY base_currency, quote_currency
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(
			&rate.BaseCurrencyCode, &rate.QuoteCurrencyCode, &rate.Rate, &rate.ObservedAt, &rate.Source,
			&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning exchange rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rate rows: %w", err)
	}
	return rates, nil
}

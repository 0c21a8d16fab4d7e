package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/settings"
)

// Both tables hold at most one row, keyed id = 1 by a CHECK constraint; writes are
// upserts on that key so concurrent first writes cannot create a second row.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetExchangeRate(ctx context.Context) (*settings.ExchangeRate, error) {
	var r settings.ExchangeRate

	query := `SELECT buy_rate, sell_rate, updated_at FROM exchange_rates WHERE id = 1`
	if err := s.db.QueryRowContext(ctx, query).Scan(&r.BuyRate, &r.SellRate, &r.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate", apperr.ErrNotFound)
		}

		return nil, fmt.Errorf("getting exchange rate: %w", err)
	}

	return &r, nil
}

func (s *Store) PutExchangeRate(ctx context.Context, r *settings.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (id, buy_rate, sell_rate, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET buy_rate = EXCLUDED.buy_rate, sell_rate = EXCLUDED.sell_rate, updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, r.BuyRate, r.SellRate).Scan(&r.UpdatedAt); err != nil {
		return fmt.Errorf("saving exchange rate: %w", err)
	}

	return nil
}

func (s *Store) GetBusiness(ctx context.Context) (*settings.Business, error) {
	var (
		b              settings.Business
		currency, mode string
	)

	query := `SELECT name, email, default_currency, exchange_update_mode, updated_at FROM businesses WHERE id = 1`
	if err := s.db.QueryRowContext(ctx, query).Scan(&b.Name, &b.Email, &currency, &mode, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: business profile", apperr.ErrNotFound)
		}

		return nil, fmt.Errorf("getting business profile: %w", err)
	}

	b.DefaultCurrency = settings.Currency(currency)
	b.ExchangeUpdateMode = settings.UpdateMode(mode)

	return &b, nil
}

func (s *Store) PutBusiness(ctx context.Context, b *settings.Business) error {
	query := `
		INSERT INTO businesses (id, name, email, default_currency, exchange_update_mode, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, default_currency = EXCLUDED.default_currency,
			exchange_update_mode = EXCLUDED.exchange_update_mode, updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, b.Name, b.Email, b.DefaultCurrency, b.ExchangeUpdateMode).Scan(&b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving business profile: %w", err)
	}

	return nil
}

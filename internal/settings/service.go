package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

// Repository reads and upserts the singleton rows. Get methods return
// apperr.ErrNotFound until the row is first written.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetExchangeRate(ctx context.Context) (*ExchangeRate, error)
	PutExchangeRate(ctx context.Context, rate *ExchangeRate) error
	GetBusiness(ctx context.Context) (*Business, error)
	PutBusiness(ctx context.Context, b *Business) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ExchangeRateParams struct {
	BuyRate  *decimal.Decimal
	SellRate *decimal.Decimal
}

type BusinessParams struct {
	Name               *string
	Email              *string
	DefaultCurrency    *Currency
	ExchangeUpdateMode *UpdateMode
}

func (s *Service) ExchangeRate(ctx context.Context) (*ExchangeRate, error) {
	rate, err := s.repo.GetExchangeRate(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		def := DefaultExchangeRate()
		return &def, nil
	}

	return rate, err
}

func (s *Service) SetExchangeRate(ctx context.Context, params ExchangeRateParams) (*ExchangeRate, error) {
	rate, err := s.ExchangeRate(ctx)
	if err != nil {
		return nil, err
	}

	if params.BuyRate != nil {
		rate.BuyRate = *params.BuyRate
	}

	if params.SellRate != nil {
		rate.SellRate = *params.SellRate
	}

	if rate.BuyRate.IsNegative() || rate.SellRate.IsNegative() {
		return nil, fmt.Errorf("%w: exchange rates must not be negative", apperr.ErrBadRequest)
	}

	if err := s.repo.PutExchangeRate(ctx, rate); err != nil {
		return nil, err
	}

	return rate, nil
}

func (s *Service) Business(ctx context.Context) (*Business, error) {
	b, err := s.repo.GetBusiness(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		def := DefaultBusiness()
		return &def, nil
	}

	return b, err
}

func (s *Service) SetBusiness(ctx context.Context, params BusinessParams) (*Business, error) {
	b, err := s.Business(ctx)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		b.Name = strings.TrimSpace(*params.Name)
	}

	if params.Email != nil {
		b.Email = strings.ToLower(strings.TrimSpace(*params.Email))
	}

	if params.DefaultCurrency != nil {
		if !params.DefaultCurrency.Valid() {
			return nil, fmt.Errorf("%w: unsupported currency %q", apperr.ErrBadRequest, *params.DefaultCurrency)
		}

		b.DefaultCurrency = *params.DefaultCurrency
	}

	if params.ExchangeUpdateMode != nil {
		if !params.ExchangeUpdateMode.Valid() {
			return nil, fmt.Errorf("%w: invalid exchange update mode %q", apperr.ErrBadRequest, *params.ExchangeUpdateMode)
		}

		b.ExchangeUpdateMode = *params.ExchangeUpdateMode
	}

	if err := s.repo.PutBusiness(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyNGN Currency = "NGN"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool {
	return c == CurrencyNGN || c == CurrencyUSD
}

type UpdateMode string

const (
	UpdateManual    UpdateMode = "manual"
	UpdateAutomatic UpdateMode = "automatic"
)

func (m UpdateMode) Valid() bool {
	return m == UpdateManual || m == UpdateAutomatic
}

// ExchangeRate is the single NGN/USD rate pair of the business.
type ExchangeRate struct {
	BuyRate   decimal.Decimal
	SellRate  decimal.Decimal
	UpdatedAt time.Time
}

// Business is the single profile row of the business.
type Business struct {
	Name               string
	Email              string
	DefaultCurrency    Currency
	ExchangeUpdateMode UpdateMode
	UpdatedAt          time.Time
}

func DefaultExchangeRate() ExchangeRate {
	return ExchangeRate{BuyRate: decimal.Zero, SellRate: decimal.Zero}
}

func DefaultBusiness() Business {
	return Business{DefaultCurrency: CurrencyNGN, ExchangeUpdateMode: UpdateManual}
}

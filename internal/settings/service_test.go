package settings_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/settings"
)

func TestService_ExchangeRate_DefaultWhenUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settings.NewMockRepository(ctrl)
	repo.EXPECT().GetExchangeRate(gomock.Any()).Return(nil, apperr.ErrNotFound)

	got, err := settings.NewService(repo).ExchangeRate(context.Background())
	require.NoError(t, err)
	assert.True(t, got.BuyRate.IsZero())
	assert.True(t, got.SellRate.IsZero())
}

func TestService_SetExchangeRate(t *testing.T) {
	type testCase struct {
		name      string
		params    settings.ExchangeRateParams
		setupMock func(m *settings.MockRepository)
		wantBuy   string
		wantSell  string
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "FirstWriteFillsDefaults",
			params: settings.ExchangeRateParams{BuyRate: ptr(decimal.RequireFromString("1500.5"))},
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().GetExchangeRate(gomock.Any()).Return(nil, apperr.ErrNotFound)
				m.EXPECT().PutExchangeRate(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantBuy:  "1500.5",
			wantSell: "0",
		},
		{
			name:   "PartialUpdateKeepsOtherRate",
			params: settings.ExchangeRateParams{SellRate: ptr(decimal.RequireFromString("1610"))},
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().GetExchangeRate(gomock.Any()).Return(&settings.ExchangeRate{
					BuyRate:  decimal.RequireFromString("1550"),
					SellRate: decimal.RequireFromString("1600"),
				}, nil)
				m.EXPECT().PutExchangeRate(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantBuy:  "1550",
			wantSell: "1610",
		},
		{
			name:   "NegativeRate",
			params: settings.ExchangeRateParams{BuyRate: ptr(decimal.RequireFromString("-1"))},
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().GetExchangeRate(gomock.Any()).Return(nil, apperr.ErrNotFound)
			},
			wantErr: apperr.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settings.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := settings.NewService(repo).SetExchangeRate(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.wantBuy).Equal(got.BuyRate))
			assert.True(t, decimal.RequireFromString(tt.wantSell).Equal(got.SellRate))
		})
	}
}

func TestService_SetBusiness(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := settings.NewMockRepository(ctrl)
		repo.EXPECT().GetBusiness(gomock.Any()).Return(nil, apperr.ErrNotFound)
		repo.EXPECT().PutBusiness(gomock.Any(), gomock.Any()).Return(nil)

		got, err := settings.NewService(repo).SetBusiness(context.Background(), settings.BusinessParams{
			Name:  ptr(" Tally Ventures "),
			Email: ptr("Owner@Tally.NG"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Tally Ventures", got.Name)
		assert.Equal(t, "owner@tally.ng", got.Email)
		assert.Equal(t, settings.CurrencyNGN, got.DefaultCurrency)
		assert.Equal(t, settings.UpdateManual, got.ExchangeUpdateMode)
	})

	t.Run("BadCurrency", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := settings.NewMockRepository(ctrl)
		repo.EXPECT().GetBusiness(gomock.Any()).Return(&settings.Business{DefaultCurrency: settings.CurrencyNGN}, nil)

		eur := settings.Currency("EUR")
		_, err := settings.NewService(repo).SetBusiness(context.Background(), settings.BusinessParams{DefaultCurrency: &eur})
		assert.ErrorIs(t, err, apperr.ErrBadRequest)
	})
}

func ptr[T any](v T) *T { return &v }

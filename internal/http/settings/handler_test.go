package settings_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	httpsettings "github.com/MrJamesThe3rd/tally/internal/http/settings"
	"github.com/MrJamesThe3rd/tally/internal/settings"
)

func allow(access.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newRouter(t *testing.T) (*settings.MockRepository, chi.Router) {
	t.Helper()

	repo := settings.NewMockRepository(gomock.NewController(t))
	h := httpsettings.NewHandler(settings.NewService(repo), allow, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Route("/settings", h.Routes)

	return repo, r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, rd))

	return rec
}

func TestHandler_GetExchangeRate_DefaultsWhenUnset(t *testing.T) {
	repo, r := newRouter(t)
	repo.EXPECT().GetExchangeRate(gomock.Any()).Return(nil, apperr.ErrNotFound)

	rec := serve(r, http.MethodGet, "/settings/exchange-rate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{"data":{"buyRate":"0","sellRate":"0"}}`, rec.Body.String())
}

func TestHandler_PutExchangeRate(t *testing.T) {
	repo, r := newRouter(t)

	repo.EXPECT().GetExchangeRate(gomock.Any()).Return(&settings.ExchangeRate{
		BuyRate:  decimal.NewFromInt(1400),
		SellRate: decimal.NewFromInt(1450),
	}, nil)
	repo.EXPECT().PutExchangeRate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rate *settings.ExchangeRate) error {
		assert.True(t, decimal.RequireFromString("1500.5").Equal(rate.BuyRate))
		assert.True(t, decimal.NewFromInt(1450).Equal(rate.SellRate))
		return nil
	})

	rec := serve(r, http.MethodPut, "/settings/exchange-rate", `{"buyRate":"1500.5"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			BuyRate decimal.Decimal `json:"buyRate"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, decimal.RequireFromString("1500.5").Equal(body.Data.BuyRate))
}

func TestHandler_PutExchangeRate_Negative(t *testing.T) {
	repo, r := newRouter(t)
	repo.EXPECT().GetExchangeRate(gomock.Any()).Return(nil, apperr.ErrNotFound)

	rec := serve(r, http.MethodPut, "/settings/exchange-rate", `{"sellRate":"-1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_PutBusiness(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "Valid", body: `{"name":" Tally Ltd ","defaultCurrency":"USD"}`, wantStatus: http.StatusOK},
		{name: "UnknownCurrency", body: `{"defaultCurrency":"EUR"}`, wantStatus: http.StatusBadRequest},
		{name: "BadEmail", body: `{"email":"nope"}`, wantStatus: http.StatusBadRequest},
		{name: "BadMode", body: `{"exchangeUpdateMode":"hourly"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, r := newRouter(t)

			if tt.wantStatus == http.StatusOK {
				repo.EXPECT().GetBusiness(gomock.Any()).Return(nil, apperr.ErrNotFound)
				repo.EXPECT().PutBusiness(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec := serve(r, http.MethodPut, "/settings/business", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t,
					`{"data":{"name":"Tally Ltd","email":"","defaultCurrency":"USD","exchangeUpdateMode":"manual"}}`,
					rec.Body.String())
			}
		})
	}
}

package transaction_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	httptx "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/settings"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func allow(access.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

type fixture struct {
	repo     *transaction.MockRepository
	settings *settings.MockRepository
	router   chi.Router
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	settingsRepo := settings.NewMockRepository(ctrl)
	clock := func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	h := httptx.NewHandler(
		transaction.NewService(repo, transaction.WithClock(clock)),
		settings.NewService(settingsRepo),
		allow,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	r := chi.NewRouter()
	r.Route("/transactions", h.Routes)
	r.Route("/customers/{id}/transactions", h.CounterpartyRoutes(transaction.TypeCustomer))

	return fixture{repo: repo, settings: settingsRepo, router: r}
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func (f fixture) expectInsert(partyName string) {
	var created *transaction.Transaction

	f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
		tx.ID = uuid.New()
		created = tx
		return nil
	})
	f.repo.EXPECT().GetTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, uuid.UUID) (*transaction.Transaction, error) {
		row := *created
		row.CounterpartyName = partyName
		return &row, nil
	})
}

func TestHandler_CreateCustomerTransaction(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()

	f.repo.EXPECT().CounterpartyExists(gomock.Any(), transaction.TypeCustomer, customerID).Return(true, nil)
	f.expectInsert("Jane Doe")

	rec := f.do(http.MethodPost, "/customers/"+customerID.String()+"/transactions",
		`{"itemPurchased":"Rice","priceNgn":"5000","amountPaid":"2000","transactionDate":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			CustomerID         uuid.UUID       `json:"customerId"`
			CounterpartyName   string          `json:"counterpartyName"`
			OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
			PaymentStatus      string          `json:"paymentStatus"`
			ReferenceNumber    string          `json:"referenceNumber"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, customerID, body.Data.CustomerID)
	assert.Equal(t, "Jane Doe", body.Data.CounterpartyName)
	assert.True(t, decimal.NewFromInt(3000).Equal(body.Data.OutstandingBalance))
	assert.Equal(t, "unpaid", body.Data.PaymentStatus)
	assert.Regexp(t, `^TXN-\d+-[a-z0-9]{6}$`, body.Data.ReferenceNumber)
}

func TestHandler_TransactionDateFormats(t *testing.T) {
	epoch := time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{name: "EpochMillisNumber", date: `1718000000000`, want: epoch},
		{name: "EpochMillisString", date: `"1718000000000"`, want: epoch},
		{name: "DateOnly", date: `"2024-06-10"`, want: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{name: "Null", date: `null`, want: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
	}

	type dated struct {
		Data struct {
			TransactionDate time.Time `json:"transactionDate"`
		} `json:"data"`
	}

	for _, tt := range tests {
		t.Run("Create"+tt.name, func(t *testing.T) {
			f := newFixture(t)
			customerID := uuid.New()

			f.repo.EXPECT().CounterpartyExists(gomock.Any(), transaction.TypeCustomer, customerID).Return(true, nil)
			f.expectInsert("Jane Doe")

			rec := f.do(http.MethodPost, "/customers/"+customerID.String()+"/transactions",
				`{"itemPurchased":"Rice","transactionDate":`+tt.date+`}`)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var body dated
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.True(t, tt.want.Equal(body.Data.TransactionDate), "got %s", body.Data.TransactionDate)
		})
	}

	t.Run("UpdateEpochMillisNumber", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		customerID := uuid.New()

		f.repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{
			ID:              id,
			Type:            transaction.TypeCustomer,
			CustomerID:      &customerID,
			TransactionDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PaymentStatus:   transaction.PaymentUnpaid,
		}, nil)
		f.repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		rec := f.do(http.MethodPut, "/transactions/"+id.String(), `{"transactionDate":1718000000000}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body dated
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.True(t, epoch.Equal(body.Data.TransactionDate), "got %s", body.Data.TransactionDate)
	})

	t.Run("RejectsBoolean", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/customers/"+uuid.NewString()+"/transactions",
			`{"itemPurchased":"Rice","transactionDate":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing item", `{"priceNgn":"10"}`},
		{"bad status", `{"itemPurchased":"Rice","paymentStatus":"refunded"}`},
		{"unknown field", `{"itemPurchased":"Rice","colour":"red"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/customers/"+uuid.NewString()+"/transactions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, int, error) {
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, 5, filter.Limit)
			require.NotNil(t, filter.Type)
			assert.Equal(t, transaction.TypeVendor, *filter.Type)
			require.NotNil(t, filter.EndDate)
			assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *filter.EndDate)

			return []*transaction.Transaction{{ID: uuid.New(), Type: transaction.TypeVendor}}, 6, nil
		})

	rec := f.do(http.MethodGet, "/transactions/?type=vendor&page=2&limit=5&startDate=2024-01-01&endDate=2024-01-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pagination":{"page":2,"limit":5,"total":6}`)
}

func TestHandler_GetAndDelete(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, fmt.Errorf("%w: transaction %s", apperr.ErrNotFound, id))
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/transactions/"+id.String(), "").Code)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/transactions/not-a-uuid", "").Code)

	f.repo.EXPECT().SoftDeleteTransaction(gomock.Any(), id, nil).Return(nil)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/transactions/"+id.String(), "").Code)
}

func TestHandler_InvoicePDF(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	customerID := uuid.New()

	f.repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{
		ID:               id,
		Type:             transaction.TypeCustomer,
		CustomerID:       &customerID,
		CounterpartyName: "Jane Doe",
		ItemPurchased:    "Rice",
		Quantity:         decimal.NewFromInt(1),
		TransactionDate:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		ReferenceNumber:  "INV-7",
		PriceNGN:         decimal.NewFromInt(5000),
		TotalNGN:         decimal.NewFromInt(5000),
		PaymentStatus:    transaction.PaymentUnpaid,
	}, nil)
	f.settings.EXPECT().GetBusiness(gomock.Any()).Return(nil, apperr.ErrNotFound)

	rec := f.do(http.MethodGet, "/transactions/"+id.String()+"/invoice.pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

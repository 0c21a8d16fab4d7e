package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestService_SummaryCards(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	february := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		setupMock func(m *report.MockRepository)
		want      *report.Summary
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().CountContacts(gomock.Any()).Return(12, 4, nil)
				m.EXPECT().CountTransactions(gomock.Any(), transaction.TypeCustomer, report.Range{}).Return(40, nil)
				m.EXPECT().CountTransactions(gomock.Any(), transaction.TypeVendor, report.Range{}).Return(9, nil)
				m.EXPECT().CountTransactions(gomock.Any(), transaction.TypeCustomer, report.Range{From: &march, To: &april}).Return(5, nil)
				m.EXPECT().CountTransactions(gomock.Any(), transaction.TypeCustomer, report.Range{From: &february, To: &march}).Return(0, nil)
				m.EXPECT().CountTransactions(gomock.Any(), transaction.TypeVendor, report.Range{From: &march, To: &april}).Return(8, nil)
				m.EXPECT().CountTransactions(gomock.Any(), transaction.TypeVendor, report.Range{From: &february, To: &march}).Return(10, nil)
			},
			want: &report.Summary{
				TotalCustomers:    12,
				TotalVendors:      4,
				TotalInvoices:     40,
				TotalBills:        9,
				InvoicesThisMonth: 5,
				InvoicesLastMonth: 0,
				BillsThisMonth:    8,
				BillsLastMonth:    10,
				InvoiceChange:     "+100%",
				BillChange:        "-20%",
			},
		},
		{
			name: "RepoError",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().CountContacts(gomock.Any()).Return(0, 0, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := report.NewService(repo).WithClock(func() time.Time { return now })
			got, err := svc.SummaryCards(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CashflowTrend_DefaultsToCurrentYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().Entries(gomock.Any(), report.EntryFilter{Range: report.Range{From: &from, To: &to}}).Return(nil, nil)

	svc := report.NewService(repo).WithClock(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })
	got, err := svc.CashflowTrend(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 2025, got.Year)
	assert.Len(t, got.Months, 12)
}

func TestService_CustomerBalances_PassesStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	customer := transaction.TypeCustomer

	repo.EXPECT().Customers(gomock.Any(), "active").Return([]report.Party{{ID: jane, Name: "Jane Doe"}}, nil)
	repo.EXPECT().Entries(gomock.Any(), report.EntryFilter{Type: &customer}).Return([]report.Entry{
		sale(jane, "Jane Doe", day(2024, 1, 1), "100", "0", "100"),
	}, nil)

	got, err := report.NewService(repo).CustomerBalances(context.Background(), "active")
	require.NoError(t, err)
	require.Len(t, got.Customers, 1)
	decEqual(t, "100", got.Summary.TotalOutstanding)
}

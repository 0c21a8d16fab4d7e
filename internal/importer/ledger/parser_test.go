package ledger_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/importer/ledger"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"date,type,party,item,quantity,price_ngn,price_usd,exchange_rate,other_expenses_ngn,other_expenses_usd,total_ngn,total_usd,amount_paid,payment_status,reference",
		`2024-03-01,customer,Jane Doe,Rice,2,"1,250,000.50",800,1562.5,0,0,"1,250,000.50",800,250000,Partial,INV-1`,
		"",
		"2024-03-02,VENDOR,Acme Supplies,Cement,,0,$120,,,,,,0,,",
	}, "\n")

	rows, err := ledger.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	sale := rows[0]
	assert.Equal(t, 2, sale.Line)
	assert.Equal(t, transaction.TypeCustomer, sale.Type)
	assert.Equal(t, "Jane Doe", sale.Party)
	assert.Equal(t, "2024-03-01", sale.Params.TransactionDate)
	assert.Equal(t, "INV-1", sale.Params.ReferenceNumber)
	assert.Equal(t, transaction.PaymentPartial, sale.Params.PaymentStatus)
	assert.True(t, decimal.RequireFromString("1250000.50").Equal(sale.Params.PriceNGN))
	require.NotNil(t, sale.Params.Quantity)
	assert.True(t, decimal.NewFromInt(2).Equal(*sale.Params.Quantity))

	purchase := rows[1]
	assert.Equal(t, 4, purchase.Line)
	assert.Equal(t, transaction.TypeVendor, purchase.Type)
	assert.Nil(t, purchase.Params.Quantity)
	assert.True(t, decimal.NewFromInt(120).Equal(purchase.Params.PriceUSD))
	assert.Empty(t, purchase.Params.ReferenceNumber)
}

func TestParser_SemicolonHeadersAnyCase(t *testing.T) {
	input := "Date;Type;Party;Item;Price NGN;Amount Paid\n2024-01-05;customer;Jane;Beans;500;100\n"

	rows, err := ledger.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Beans", rows[0].Params.ItemPurchased)
	assert.True(t, decimal.NewFromInt(500).Equal(rows[0].Params.PriceNGN))
	assert.True(t, decimal.NewFromInt(100).Equal(rows[0].Params.AmountPaid))
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{name: "Empty", input: "", contains: "empty file"},
		{name: "MissingParty", input: "date,type,item\n2024-01-01,customer,Rice\n", contains: `missing column "party"`},
		{name: "BadType", input: "type,party\nsupplier,Acme\n", contains: "line 2"},
		{name: "BlankParty", input: "type,party\ncustomer,\n", contains: "party is required"},
		{name: "BadAmount", input: "type,party,price_ngn\ncustomer,Jane,12abc\n", contains: "pricengn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewParser().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrBadRequest)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

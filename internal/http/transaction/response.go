package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type transactionResponse struct {
	ID                 uuid.UUID                 `json:"id"`
	TransactionType    transaction.Type          `json:"transactionType"`
	CustomerID         *uuid.UUID                `json:"customerId,omitempty"`
	VendorID           *uuid.UUID                `json:"vendorId,omitempty"`
	CounterpartyName   string                    `json:"counterpartyName"`
	ItemPurchased      string                    `json:"itemPurchased"`
	Quantity           decimal.Decimal           `json:"quantity"`
	TransactionDate    time.Time                 `json:"transactionDate"`
	ReferenceNumber    string                    `json:"referenceNumber"`
	PriceNGN           decimal.Decimal           `json:"priceNgn"`
	PriceUSD           decimal.Decimal           `json:"priceUsd"`
	ExchangeRate       decimal.Decimal           `json:"exchangeRate"`
	OtherExpensesNGN   decimal.Decimal           `json:"otherExpensesNgn"`
	OtherExpensesUSD   decimal.Decimal           `json:"otherExpensesUsd"`
	TotalNGN           decimal.Decimal           `json:"totalNgn"`
	TotalUSD           decimal.Decimal           `json:"totalUsd"`
	AmountPaid         decimal.Decimal           `json:"amountPaid"`
	OutstandingBalance decimal.Decimal           `json:"outstandingBalance"`
	PaymentStatus      transaction.PaymentStatus `json:"paymentStatus"`
	CreatedBy          *uuid.UUID                `json:"createdBy,omitempty"`
	UpdatedBy          *uuid.UUID                `json:"updatedBy,omitempty"`
	CreatedAt          time.Time                 `json:"createdAt"`
	UpdatedAt          *time.Time                `json:"updatedAt,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                 tx.ID,
		TransactionType:    tx.Type,
		CustomerID:         tx.CustomerID,
		VendorID:           tx.VendorID,
		CounterpartyName:   tx.CounterpartyName,
		ItemPurchased:      tx.ItemPurchased,
		Quantity:           tx.Quantity,
		TransactionDate:    tx.TransactionDate,
		ReferenceNumber:    tx.ReferenceNumber,
		PriceNGN:           tx.PriceNGN,
		PriceUSD:           tx.PriceUSD,
		ExchangeRate:       tx.ExchangeRate,
		OtherExpensesNGN:   tx.OtherExpensesNGN,
		OtherExpensesUSD:   tx.OtherExpensesUSD,
		TotalNGN:           tx.TotalNGN,
		TotalUSD:           tx.TotalUSD,
		AmountPaid:         tx.AmountPaid,
		OutstandingBalance: tx.OutstandingBalance,
		PaymentStatus:      tx.PaymentStatus,
		CreatedBy:          tx.CreatedBy,
		UpdatedBy:          tx.UpdatedBy,
		CreatedAt:          tx.CreatedAt,
		UpdatedAt:          tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

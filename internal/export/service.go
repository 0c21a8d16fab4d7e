// Package export writes ledger rows back out, either as a ledger CSV that the
// importer accepts or as a zip archive of that CSV plus one PDF per row.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
	"github.com/MrJamesThe3rd/tally/internal/pagination"
	"github.com/MrJamesThe3rd/tally/internal/settings"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Lister is the read side of the ledger. transaction.Service implements it.
type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, int, error)
}

type Service struct {
	transactions Lister
}

func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions}
}

// Collect pages through every live row matching filter. Page and Limit on the
// filter are ignored.
func (s *Service) Collect(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var all []*transaction.Transaction

	filter.Limit = pagination.MaxLimit

	for page := 1; ; page++ {
		filter.Page = page

		txs, total, err := s.transactions.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("listing transactions: %w", err)
		}

		all = append(all, txs...)

		if len(txs) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

var header = []string{
	"date", "type", "party", "item", "quantity",
	"price_ngn", "price_usd", "exchange_rate",
	"other_expenses_ngn", "other_expenses_usd",
	"total_ngn", "total_usd", "amount_paid", "outstanding_balance",
	"payment_status", "reference",
}

// WriteCSV writes txs in the ledger import layout.
func (s *Service) WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if err := cw.Write(record(tx)); err != nil {
			return fmt.Errorf("writing %s: %w", tx.ReferenceNumber, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func record(tx *transaction.Transaction) []string {
	amounts := []decimal.Decimal{
		tx.PriceNGN, tx.PriceUSD, tx.ExchangeRate,
		tx.OtherExpensesNGN, tx.OtherExpensesUSD,
		tx.TotalNGN, tx.TotalUSD, tx.AmountPaid, tx.OutstandingBalance,
	}

	rec := make([]string, 0, len(header))
	rec = append(rec,
		tx.TransactionDate.UTC().Format(time.DateOnly),
		string(tx.Type),
		tx.CounterpartyName,
		tx.ItemPurchased,
		tx.Quantity.String(),
	)

	for _, a := range amounts {
		rec = append(rec, a.String())
	}

	return append(rec, string(tx.PaymentStatus), tx.ReferenceNumber)
}

// WriteArchive writes a zip holding ledger.csv and invoices/<name>.pdf for every row.
func (s *Service) WriteArchive(w io.Writer, txs []*transaction.Transaction, biz settings.Business) error {
	zw := zip.NewWriter(w)

	f, err := zw.Create("ledger.csv")
	if err != nil {
		return fmt.Errorf("creating ledger.csv: %w", err)
	}

	if err := s.WriteCSV(f, txs); err != nil {
		return err
	}

	for _, tx := range txs {
		f, err := zw.Create("invoices/" + invoice.Filename(tx))
		if err != nil {
			return fmt.Errorf("creating invoice entry: %w", err)
		}

		if err := invoice.Render(f, tx, biz); err != nil {
			return fmt.Errorf("rendering invoice %s: %w", tx.ReferenceNumber, err)
		}
	}

	return zw.Close()
}

package ledger

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Column names of the ledger layout. Matching ignores case, spaces and underscores,
// so "Price NGN" and "price_ngn" are the same column.
const (
	colDate             = "date"
	colType             = "type"
	colParty            = "party"
	colItem             = "item"
	colQuantity         = "quantity"
	colPriceNGN         = "pricengn"
	colPriceUSD         = "priceusd"
	colExchangeRate     = "exchangerate"
	colOtherExpensesNGN = "otherexpensesngn"
	colOtherExpensesUSD = "otherexpensesusd"
	colTotalNGN         = "totalngn"
	colTotalUSD         = "totalusd"
	colAmountPaid       = "amountpaid"
	colOutstanding      = "outstandingbalance"
	colPaymentStatus    = "paymentstatus"
	colReference        = "reference"
)

var required = []string{colType, colParty}

// Parser reads the ledger CSV layout: one transaction per line, counterparties by
// name, comma or semicolon separated.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.ImportRow, error) {
	br := bufio.NewReader(r)

	reader := csv.NewReader(br)
	reader.Comma = sniffComma(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", apperr.ErrBadRequest)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", apperr.ErrBadRequest, err)
	}

	cols := columns(header)
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", apperr.ErrBadRequest, c)
		}
	}

	var rows []transaction.ImportRow

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrBadRequest, err)
		}

		line, _ := reader.FieldPos(0)

		if blank(record) {
			continue
		}

		row, err := parseRecord(cols, record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperr.ErrBadRequest, line, err)
		}

		row.Line = line
		rows = append(rows, row)
	}

	return rows, nil
}

// sniffComma picks ';' when the header line has more semicolons than commas.
func sniffComma(br *bufio.Reader) rune {
	peek, _ := br.Peek(br.Size())

	first, _, _ := strings.Cut(string(peek), "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}

	return ','
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

type colIndex map[string]int

func columns(header []string) colIndex {
	cols := make(colIndex, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}

	return cols
}

func (c colIndex) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}

func parseRecord(cols colIndex, record []string) (transaction.ImportRow, error) {
	row := transaction.ImportRow{
		Type:  transaction.Type(strings.ToLower(cols.get(record, colType))),
		Party: cols.get(record, colParty),
	}

	if !row.Type.Valid() {
		return row, fmt.Errorf("type must be customer or vendor, got %q", row.Type)
	}

	if row.Party == "" {
		return row, errors.New("party is required")
	}

	params := transaction.CreateParams{
		TransactionDate: cols.get(record, colDate),
		ItemPurchased:   cols.get(record, colItem),
		ReferenceNumber: cols.get(record, colReference),
		PaymentStatus:   transaction.PaymentStatus(strings.ToLower(cols.get(record, colPaymentStatus))),
	}

	amounts := []struct {
		col string
		dst *decimal.Decimal
	}{
		{colPriceNGN, &params.PriceNGN},
		{colPriceUSD, &params.PriceUSD},
		{colExchangeRate, &params.ExchangeRate},
		{colOtherExpensesNGN, &params.OtherExpensesNGN},
		{colOtherExpensesUSD, &params.OtherExpensesUSD},
		{colTotalNGN, &params.TotalNGN},
		{colTotalUSD, &params.TotalUSD},
		{colAmountPaid, &params.AmountPaid},
	}

	for _, a := range amounts {
		v, err := parseAmount(cols.get(record, a.col))
		if err != nil {
			return row, fmt.Errorf("%s: %w", a.col, err)
		}

		*a.dst = v
	}

	if q := cols.get(record, colQuantity); q != "" {
		v, err := parseAmount(q)
		if err != nil {
			return row, fmt.Errorf("%s: %w", colQuantity, err)
		}

		params.Quantity = &v
	}

	if o := cols.get(record, colOutstanding); o != "" {
		v, err := parseAmount(o)
		if err != nil {
			return row, fmt.Errorf("%s: %w", colOutstanding, err)
		}

		params.OutstandingBalance = &v
	}

	row.Params = params

	return row, nil
}

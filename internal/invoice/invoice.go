// Package invoice renders a single ledger transaction as a PDF invoice (customer
// rows) or bill (vendor rows).
package invoice

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/settings"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const (
	font      = "Helvetica"
	pageWidth = 182.0
)

func title(tx *transaction.Transaction) string {
	if tx.Type == transaction.TypeVendor {
		return "BILL"
	}

	return "INVOICE"
}

// Filename is the download name of tx's document.
func Filename(tx *transaction.Transaction) string {
	return strings.ToLower(title(tx)) + "-" + tx.ReferenceNumber + ".pdf"
}

// Render writes the document for tx with biz as the issuer header.
func Render(w io.Writer, tx *transaction.Transaction, biz settings.Business) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(title(tx)+" "+tx.ReferenceNumber, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	issuer := biz.Name
	if issuer == "" {
		issuer = "Tally"
	}

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont(font, "B", 18)
	pdf.CellFormat(pageWidth/2, 10, tr(issuer), "", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth/2, 10, title(tx), "", 1, "R", false, 0, "")

	pdf.SetFont(font, "", 10)
	pdf.SetTextColor(80, 80, 80)

	if biz.Email != "" {
		pdf.CellFormat(0, 6, tr(biz.Email), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)

	party := "Bill to"
	if tx.Type == transaction.TypeVendor {
		party = "Supplier"
	}

	meta := [][2]string{
		{"Reference", tx.ReferenceNumber},
		{"Date", tx.TransactionDate.UTC().Format("02 Jan 2006")},
		{party, tx.CounterpartyName},
		{"Status", strings.ToUpper(string(tx.PaymentStatus))},
	}

	for _, m := range meta {
		pdf.SetFont(font, "B", 10)
		pdf.CellFormat(30, 6, m[0], "", 0, "L", false, 0, "")
		pdf.SetFont(font, "", 10)
		pdf.CellFormat(0, 6, tr(m[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)

	cols := []float64{80, 22, 40, 40}

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont(font, "B", 10)
	pdf.CellFormat(cols[0], 8, "ITEM", "1", 0, "L", true, 0, "")
	pdf.CellFormat(cols[1], 8, "QTY", "1", 0, "C", true, 0, "")
	pdf.CellFormat(cols[2], 8, "PRICE (NGN)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(cols[3], 8, "PRICE (USD)", "1", 1, "R", true, 0, "")

	pdf.SetFont(font, "", 10)
	pdf.CellFormat(cols[0], 8, tr(tx.ItemPurchased), "1", 0, "L", false, 0, "")
	pdf.CellFormat(cols[1], 8, tx.Quantity.String(), "1", 0, "C", false, 0, "")
	pdf.CellFormat(cols[2], 8, Money(tx.PriceNGN), "1", 0, "R", false, 0, "")
	pdf.CellFormat(cols[3], 8, Money(tx.PriceUSD), "1", 1, "R", false, 0, "")

	pdf.Ln(4)

	totals := [][2]string{
		{"Other expenses (NGN)", Money(tx.OtherExpensesNGN)},
		{"Exchange rate", tx.ExchangeRate.String()},
		{"Total (NGN)", Money(tx.TotalNGN)},
		{"Total (USD)", Money(tx.TotalUSD)},
		{"Amount paid", Money(tx.AmountPaid)},
		{"Outstanding", Money(tx.OutstandingBalance)},
	}

	for i, t := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}

		pdf.SetFont(font, style, 10)
		pdf.CellFormat(pageWidth-50, 7, t[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, t[1], "", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont(font, "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, tr("Generated by "+issuer), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering %s: %w", strings.ToLower(title(tx)), err)
	}

	return nil
}

// Money formats an amount with two decimals and thousands separators: 1,250,000.50.
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}

		b.WriteRune(r)
	}

	return sign + b.String() + "." + frac
}

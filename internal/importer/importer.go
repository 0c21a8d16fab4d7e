// Package importer turns uploaded files into ledger rows ready for
// transaction.Service.ImportBatch.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Format string

const (
	FormatLedger Format = "ledger"
)

// Parser reads UTF-8 input. Encoding detection happens before a Parser sees it.
type Parser interface {
	Parse(r io.Reader) ([]transaction.ImportRow, error)
}

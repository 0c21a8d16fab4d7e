package importer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/importer/ledger"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Service struct {
	parsers map[Format]Parser
}

func NewService() *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatLedger: ledger.NewParser(),
		},
	}
}

// Import decodes r to UTF-8 and parses it with the parser registered for format.
// An empty format selects the ledger layout.
func (s *Service) Import(format Format, r io.Reader) ([]transaction.ImportRow, error) {
	if format == "" {
		format = FormatLedger
	}

	parser, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w: unknown import format %q", apperr.ErrBadRequest, format)
	}

	utf8r, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	slog.Debug("decoding import", "format", format, "charset", charset)

	return parser.Parse(utf8r)
}

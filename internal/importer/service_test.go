package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const ledgerCSV = "type,party,item,price_ngn\ncustomer,Café Lagos,Rice,1500\n"

func TestService_Import(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(ledgerCSV))
	require.NoError(t, err)

	tests := []struct {
		name   string
		format importer.Format
		input  []byte
	}{
		{name: "DefaultFormat", input: []byte(ledgerCSV)},
		{name: "ExplicitLedger", format: importer.FormatLedger, input: []byte(ledgerCSV)},
		{name: "UTF8BOMDoesNotLeakIntoHeader", input: append([]byte{0xEF, 0xBB, 0xBF}, ledgerCSV...)},
		{name: "UTF16", input: utf16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := importer.NewService().Import(tt.format, bytes.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, rows, 1)

			assert.Equal(t, transaction.TypeCustomer, rows[0].Type)
			assert.Equal(t, "Café Lagos", rows[0].Party)
			assert.Equal(t, "Rice", rows[0].Params.ItemPurchased)
		})
	}
}

func TestService_Import_UnknownFormat(t *testing.T) {
	_, err := importer.NewService().Import("ofx", strings.NewReader(ledgerCSV))
	require.ErrorIs(t, err, apperr.ErrBadRequest)
}

package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
)

// dateInput holds transactionDate as sent by clients, either a string
// (RFC 3339, YYYY-MM-DD, or digits) or a JSON number of epoch milliseconds.
type dateInput string

func (d *dateInput) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*d = dateInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("transactionDate must be a string or epoch milliseconds")
	}

	*d = dateInput(n.String())
	return nil
}

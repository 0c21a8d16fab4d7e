package transaction

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

// NormalizeDate turns the accepted client date forms into an instant: RFC 3339
// timestamps (with or without fractional seconds), calendar dates (YYYY-MM-DD, taken
// as UTC midnight) and epoch milliseconds. An empty value means now.
func NormalizeDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC(), nil
	}

	if isDigits(raw) {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid transaction date %q", apperr.ErrBadRequest, raw)
		}

		return time.UnixMilli(ms).UTC(), nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: invalid transaction date %q", apperr.ErrBadRequest, raw)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewReference builds a reference of the form TXN-<epoch millis>-<6 base36 chars>.
// Uniqueness is not enforced.
func NewReference(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}

	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), suffix)
}

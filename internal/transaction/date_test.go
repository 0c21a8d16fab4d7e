package transaction_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "Empty", raw: "", want: now},
		{name: "DateOnly", raw: "2024-03-15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339", raw: "2024-03-15T10:20:30Z", want: time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)},
		{name: "RFC3339Fraction", raw: "2024-03-15T10:20:30.250Z", want: time.Date(2024, 3, 15, 10, 20, 30, 250_000_000, time.UTC)},
		{name: "RFC3339Offset", raw: "2024-03-15T11:20:30+01:00", want: time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)},
		{name: "EpochMillis", raw: "1710498030000", want: time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)},
		{name: "Garbage", raw: "next tuesday", wantErr: true},
		{name: "BadCalendarDate", raw: "2024-13-40", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transaction.NormalizeDate(tt.raw, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrBadRequest)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestNewReference(t *testing.T) {
	now := time.UnixMilli(1710498030123)
	pattern := regexp.MustCompile(`^TXN-1710498030123-[0-9a-z]{6}$`)

	for range 50 {
		assert.Regexp(t, pattern, transaction.NewReference(now))
	}
}

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/pagination"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{name: "Defaults", page: 0, limit: 0, wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "Clamped", page: -3, limit: 1000, wantPage: 1, wantLimit: pagination.MaxLimit},
		{name: "PassThrough", page: 4, limit: 10, wantPage: 4, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := pagination.Normalize(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Offset(1, 10))
	assert.Equal(t, 30, pagination.Offset(4, 10))
	assert.Equal(t, 0, pagination.Offset(0, 0))
}

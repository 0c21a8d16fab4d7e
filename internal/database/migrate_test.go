package database

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_UserDeleteKeepsTransactions(t *testing.T) {
	body, err := migrations.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)

	for _, column := range []string{"created_by", "updated_by"} {
		t.Run(column, func(t *testing.T) {
			re := regexp.MustCompile(`(?m)^\s*` + column + `\s+UUID REFERENCES users \(id\) ON DELETE SET NULL,`)
			assert.Regexp(t, re, string(body))
		})
	}
}

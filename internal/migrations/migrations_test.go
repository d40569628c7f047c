// AngelaMos | 2026
// migrations_test.go

package migrations

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, name string) string {
	t.Helper()
	b, err := fs.ReadFile(FS, name)
	require.NoError(t, err)
	return string(b)
}

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_users.sql",
		"00002_create_time_entries.sql",
	}, names)

	for _, name := range names {
		sql := read(t, name)
		assert.Contains(t, sql, "-- +goose Up", name)
		assert.Contains(t, sql, "-- +goose Down", name)
	}
}

// Hours and rates are unbounded decimals; a scaled NUMERIC would round
// 7.125 to 7.13 and reject large values with an overflow.
func TestMigrations_DecimalColumnsUnbounded(t *testing.T) {
	scaled := regexp.MustCompile(`(?i)NUMERIC\s*\(`)

	users := read(t, "00001_create_users.sql")
	entries := read(t, "00002_create_time_entries.sql")

	assert.Regexp(t, `hourly_rate\s+DOUBLE PRECISION`, users)
	assert.Regexp(t, `hours\s+DOUBLE PRECISION`, entries)
	assert.False(t, scaled.MatchString(users))
	assert.False(t, scaled.MatchString(entries))
}

package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.Equal(t, "migrations/001_init.sql", names[0])
	assert.IsIncreasing(t, names)
}

func TestInitMigration_DefinesDiscountCounter(t *testing.T) {
	raw, err := migrationFiles.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)

	sql := string(raw)
	for _, table := range []string{"users", "members", "schedules", "discounts", "bookings", "booking_items"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table, table)
	}
	assert.True(t, strings.Contains(sql, "remaining_uses"))
}

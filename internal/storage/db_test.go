package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite untouched", SQLite, "SELECT * FROM flight WHERE id = ?", "SELECT * FROM flight WHERE id = ?"},
		{"postgres numbered", Postgres, "UPDATE flight SET price = ?, code = ? WHERE id = ?", "UPDATE flight SET price = $1, code = $2 WHERE id = $3"},
		{"postgres quoted literal", Postgres, "SELECT '?' FROM flight WHERE id = ?", "SELECT '?' FROM flight WHERE id = $1"},
		{"postgres no params", Postgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rebind(tt.dialect, tt.query))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestResolveDriver(t *testing.T) {
	dialect, name, err := resolveDriver("")
	require.NoError(t, err)
	assert.Equal(t, SQLite, dialect)
	assert.Equal(t, "sqlite", name)

	dialect, name, err = resolveDriver("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, Postgres, dialect)
	assert.Equal(t, "pgx", name)

	_, _, err = resolveDriver("oracle")
	assert.Error(t, err)
}

func TestSQLiteDSNTakesWriteLockAtBegin(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fleet.db", "fleet.db?_txlock=immediate"},
		{"fleet.db?_pragma=foreign_keys(1)", "fleet.db?_pragma=foreign_keys(1)&_txlock=immediate"},
		{"fleet.db?_txlock=exclusive", "fleet.db?_txlock=exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.in))
		})
	}
}

func TestUpdateStatement(t *testing.T) {
	query, args, err := updateStatement(42, []Assignment{
		{Column: "code", Value: "special"},
		{Column: "price", Value: 99.5},
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE flight SET code = ?, price = ? WHERE id = ?", query)
	assert.Equal(t, []any{"special", 99.5, int64(42)}, args)
}

func TestUpdateStatementRejects(t *testing.T) {
	_, _, err := updateStatement(1, nil)
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, _, err = updateStatement(1, []Assignment{{Column: "id; DROP TABLE flight", Value: 1}})
	assert.Error(t, err)
}

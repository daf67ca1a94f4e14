// Package storage is the database gateway: connection lifecycle, scoped
// transactions and the per-table storages built on them.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/yegors/heliflight/pkg/logger"
)

// Dialect identifies the SQL flavour of the connected database
type Dialect string

const (
	// SQLite is served by modernc.org/sqlite
	SQLite Dialect = "sqlite"
	// Postgres is served by pgx through database/sql
	Postgres Dialect = "postgres"
)

// Config describes how to reach the database
type Config struct {
	Driver         string
	DSN            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
}

// Querier runs positional statements. Both *DB and a transaction implement it.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Dialect() Dialect
}

// DB is the gateway over a database/sql pool
type DB struct {
	conn    *sql.DB
	dialect Dialect
	logger  *logger.Logger
}

// Open connects to the configured database and verifies the connection
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	dialect, driverName, err := resolveDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if dialect == SQLite {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		conn:    conn,
		dialect: dialect,
		logger:  log.Named("storage"),
	}
	db.logger.Debug("Database connected", logger.String("dialect", string(dialect)))
	return db, nil
}

func resolveDriver(driver string) (Dialect, string, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite":
		return SQLite, "sqlite", nil
	case "postgres", "postgresql", "pgx":
		return Postgres, "pgx", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// sqliteDSN makes transactions take the write lock at BEGIN unless the DSN
// already chooses a lock mode
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_txlock=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_txlock=immediate"
}

// Close releases the pool
func (db *DB) Close() error {
	return db.conn.Close()
}

// Dialect returns the SQL flavour
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Query runs a read statement
func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, rebind(db.dialect, query), args...)
}

// QueryRow runs a read statement expected to return at most one row
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, rebind(db.dialect, query), args...)
}

// Exec runs a write statement and returns the number of affected rows
func (db *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := db.conn.ExecContext(ctx, rebind(db.dialect, query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including on panic.
func (db *DB) WithTx(ctx context.Context, fn func(q Querier) error) error {
	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.Warn("Failed to roll back transaction", logger.Error(rbErr))
		}
	}()

	if err := fn(&tx{tx: sqlTx, dialect: db.dialect}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// tx adapts *sql.Tx to Querier
type tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, rebind(t.dialect, query), args...)
}

func (t *tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, rebind(t.dialect, query), args...)
}

func (t *tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := t.tx.ExecContext(ctx, rebind(t.dialect, query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (t *tx) Dialect() Dialect {
	return t.dialect
}

// rebind rewrites ? placeholders to $n for postgres, leaving quoted literals alone
func rebind(dialect Dialect, query string) string {
	if dialect != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// placeholders returns "?, ?, ?" for n bound values
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

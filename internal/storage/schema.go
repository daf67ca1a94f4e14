package storage

import (
	"context"
	"fmt"

	"github.com/yegors/heliflight/pkg/logger"
)

var sqliteTables = []string{
	`CREATE TABLE IF NOT EXISTS helicopter (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seria_num TEXT NOT NULL,
		mark TEXT NOT NULL,
		hours_before_repair REAL NOT NULL CHECK (hours_before_repair >= 0),
		repair_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flight (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		helicopter_id INTEGER NOT NULL REFERENCES helicopter(id),
		code TEXT NOT NULL CHECK (code IN ('usual', 'special')),
		goods_weight REAL NOT NULL DEFAULT 0 CHECK (goods_weight >= 0),
		passangers INTEGER NOT NULL DEFAULT 0 CHECK (passangers >= 0),
		flight_hours REAL NOT NULL CHECK (flight_hours > 0),
		price REAL NOT NULL DEFAULT 0 CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS pilot (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tabel_num TEXT NOT NULL,
		last_name TEXT NOT NULL,
		position TEXT NOT NULL,
		helicopter_id INTEGER REFERENCES helicopter(id)
	)`,
	`CREATE TABLE IF NOT EXISTS auth (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		login TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		pilot_id INTEGER REFERENCES pilot(id)
	)`,
}

var postgresTables = []string{
	`CREATE TABLE IF NOT EXISTS helicopter (
		id SERIAL PRIMARY KEY,
		seria_num VARCHAR(64) NOT NULL,
		mark VARCHAR(128) NOT NULL,
		hours_before_repair DOUBLE PRECISION NOT NULL CHECK (hours_before_repair >= 0),
		repair_date DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flight (
		id SERIAL PRIMARY KEY,
		date DATE NOT NULL,
		helicopter_id INTEGER NOT NULL REFERENCES helicopter(id),
		code VARCHAR(16) NOT NULL CHECK (code IN ('usual', 'special')),
		goods_weight DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (goods_weight >= 0),
		passangers INTEGER NOT NULL DEFAULT 0 CHECK (passangers >= 0),
		flight_hours DOUBLE PRECISION NOT NULL CHECK (flight_hours > 0),
		price DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS pilot (
		id SERIAL PRIMARY KEY,
		tabel_num VARCHAR(32) NOT NULL,
		last_name VARCHAR(128) NOT NULL,
		position VARCHAR(64) NOT NULL,
		helicopter_id INTEGER REFERENCES helicopter(id)
	)`,
	`CREATE TABLE IF NOT EXISTS auth (
		id SERIAL PRIMARY KEY,
		login VARCHAR(64) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL,
		pilot_id INTEGER REFERENCES pilot(id)
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_flight_helicopter_date ON flight(helicopter_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_flight_code ON flight(code)`,
	`CREATE INDEX IF NOT EXISTS idx_pilot_helicopter ON pilot(helicopter_id)`,
}

// InitSchema creates the fleet tables and indexes when they do not exist
func (db *DB) InitSchema(ctx context.Context) error {
	tables := sqliteTables
	if db.dialect == Postgres {
		tables = postgresTables
	}

	for _, tableSQL := range tables {
		if _, err := db.conn.ExecContext(ctx, tableSQL); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.conn.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	db.logger.Debug("Schema ready", logger.Int("tables", len(tables)), logger.Int("indexes", len(indexes)))
	return nil
}

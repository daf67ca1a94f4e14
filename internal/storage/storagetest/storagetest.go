// Package storagetest opens throwaway SQLite fleets for tests.
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/pkg/logger"
)

// DSN returns a SQLite DSN for a file inside a fresh temp directory
func DSN(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "fleet.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

// Open returns a migrated empty database closed at test cleanup
func Open(t testing.TB) *storage.DB {
	t.Helper()

	db, err := storage.Open(context.Background(), storage.Config{Driver: "sqlite", DSN: DSN(t)}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.InitSchema(context.Background()))
	return db
}

// Helicopter inserts a helicopter, keeping h.ID when it is set, and returns its ID
func Helicopter(t testing.TB, db *storage.DB, h model.Helicopter) int64 {
	t.Helper()
	id, err := storage.NewHelicopterStorage(db, logger.NewNop()).Insert(context.Background(), &h)
	require.NoError(t, err)
	return id
}

// Flight inserts a flight as-is, bypassing the resource check, and returns its ID
func Flight(t testing.TB, db *storage.DB, f model.Flight) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO flight (date, helicopter_id, code, goods_weight, passangers, flight_hours, price)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		f.Date, f.HelicopterID, string(f.Code), f.GoodsWeight, f.Passengers, f.FlightHours, f.Price,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// Pilot inserts a pilot, keeping p.ID when it is set, and returns its ID
func Pilot(t testing.TB, db *storage.DB, p model.Pilot) int64 {
	t.Helper()
	id, err := storage.NewPilotStorage(db, logger.NewNop()).Insert(context.Background(), &p)
	require.NoError(t, err)
	return id
}

// Credential inserts a login record with a plain text password
func Credential(t testing.TB, db *storage.DB, login, password string, role model.Role, pilotID int64) {
	t.Helper()
	_, err := storage.NewCredentialStorage(db, logger.NewNop()).Insert(context.Background(), login, password, role, pilotID)
	require.NoError(t, err)
}

// CountFlights returns the number of flight rows
func CountFlights(t testing.TB, db *storage.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(), `SELECT COUNT(*) FROM flight`).Scan(&n))
	return n
}

// Standard seeds two helicopters, three pilots and a few flights:
//
//	helicopter 7 "RA-0007": limit 100h since 2024-01-01, pilots 1 and 2,
//	  flights on 2023-12-20 (10h), 2024-02-01 (40h) and 2024-03-01 (55h)
//	helicopter 9 "RA-0009": limit 50h since 2024-01-01, pilot 3, no flights
func Standard(t testing.TB, db *storage.DB) {
	t.Helper()

	Helicopter(t, db, model.Helicopter{ID: 7, SeriaNum: "RA-0007", Mark: "Mi-8", HoursBeforeRepair: 100, RepairDate: "2024-01-01"})
	Helicopter(t, db, model.Helicopter{ID: 9, SeriaNum: "RA-0009", Mark: "Ka-32", HoursBeforeRepair: 50, RepairDate: "2024-01-01"})

	Pilot(t, db, model.Pilot{ID: 1, TabelNum: "T-001", LastName: "Ivanov", Position: "captain", HelicopterID: 7})
	Pilot(t, db, model.Pilot{ID: 2, TabelNum: "T-002", LastName: "Petrov", Position: "copilot", HelicopterID: 7})
	Pilot(t, db, model.Pilot{ID: 3, TabelNum: "T-003", LastName: "Sidorov", Position: "captain", HelicopterID: 9})

	Flight(t, db, model.Flight{Date: "2023-12-20", HelicopterID: 7, Code: model.FlightUsual, GoodsWeight: 100, Passengers: 4, FlightHours: 10, Price: 1000})
	Flight(t, db, model.Flight{Date: "2024-02-01", HelicopterID: 7, Code: model.FlightSpecial, GoodsWeight: 250.5, Passengers: 2, FlightHours: 40, Price: 5000})
	Flight(t, db, model.Flight{Date: "2024-03-01", HelicopterID: 7, Code: model.FlightUsual, GoodsWeight: 0, Passengers: 10, FlightHours: 55, Price: 3000})
}

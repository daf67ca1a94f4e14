package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/pkg/logger"
)

// ErrEmptyUpdate is returned when an update carries no assignments
var ErrEmptyUpdate = errors.New("update has no assignments")

// Assignment is one column = value pair of a flight update
type Assignment struct {
	Column string
	Value  any
}

// flightColumns is the closed set of writable flight columns
var flightColumns = map[string]bool{
	"date":          true,
	"helicopter_id": true,
	"code":          true,
	"goods_weight":  true,
	"passangers":    true,
	"flight_hours":  true,
	"price":         true,
}

const flightSelect = `
	SELECT f.id, f.date, f.helicopter_id, f.code, f.goods_weight, f.passangers, f.flight_hours, f.price
	FROM flight f`

// FlightStorage handles flight persistence
type FlightStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewFlightStorage creates a new flight storage
func NewFlightStorage(db *DB, logger *logger.Logger) *FlightStorage {
	return &FlightStorage{
		db:     db,
		logger: logger.Named("flights"),
	}
}

// Insert writes a flight and returns the number of affected rows
func (s *FlightStorage) Insert(ctx context.Context, q Querier, f *model.Flight) (int64, error) {
	affected, err := q.Exec(ctx,
		`INSERT INTO flight (date, helicopter_id, code, goods_weight, passangers, flight_hours, price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Date, f.HelicopterID, string(f.Code), f.GoodsWeight, f.Passengers, f.FlightHours, f.Price,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert flight: %w", err)
	}
	return affected, nil
}

// Update applies the assignments to one flight in a single statement and
// returns the number of affected rows
func (s *FlightStorage) Update(ctx context.Context, id int64, assignments []Assignment) (int64, error) {
	query, args, err := updateStatement(id, assignments)
	if err != nil {
		return 0, err
	}

	affected, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update flight: %w", err)
	}

	s.logger.Debug("Flight updated",
		logger.Int64("flight_id", id),
		logger.Int("columns", len(assignments)),
		logger.Int64("affected", affected))
	return affected, nil
}

// updateStatement renders UPDATE flight SET c1 = ?, ... WHERE id = ? with the
// values bound in assignment order and the id last
func updateStatement(id int64, assignments []Assignment) (string, []any, error) {
	if len(assignments) == 0 {
		return "", nil, ErrEmptyUpdate
	}

	sets := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		if !flightColumns[a.Column] {
			return "", nil, fmt.Errorf("unknown flight column %q", a.Column)
		}
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	args = append(args, id)

	return "UPDATE flight SET " + strings.Join(sets, ", ") + " WHERE id = ?", args, nil
}

// Delete removes a flight and returns the number of affected rows
func (s *FlightStorage) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := s.db.Exec(ctx, `DELETE FROM flight WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete flight: %w", err)
	}
	return affected, nil
}

// Get returns one flight, or nil when it does not exist
func (s *FlightStorage) Get(ctx context.Context, id int64) (*model.Flight, error) {
	flights, err := s.list(ctx, flightSelect+` WHERE f.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, nil
	}
	return flights[0], nil
}

// ListByHelicopter returns all flights of a helicopter ordered by date
func (s *FlightStorage) ListByHelicopter(ctx context.Context, helicopterID int64) ([]*model.Flight, error) {
	return s.list(ctx, flightSelect+`
		WHERE f.helicopter_id = ?
		ORDER BY f.date, f.id`,
		helicopterID,
	)
}

// ListByHelicopterPeriod returns the flights of a helicopter within an inclusive period
func (s *FlightStorage) ListByHelicopterPeriod(ctx context.Context, helicopterID int64, period Period) ([]*model.Flight, error) {
	return s.list(ctx, flightSelect+`
		WHERE f.helicopter_id = ? AND f.date BETWEEN ? AND ?
		ORDER BY f.date, f.id`,
		helicopterID, period.From, period.To,
	)
}

// ListByPilot returns the flights of the helicopter a pilot is assigned to
func (s *FlightStorage) ListByPilot(ctx context.Context, pilotID int64) ([]*CrewFlight, error) {
	rows, err := s.db.Query(ctx, `
		SELECT f.id, f.date, f.helicopter_id, f.code, f.goods_weight, f.passangers, f.flight_hours, f.price,
			h.seria_num
		FROM flight f
		JOIN helicopter h ON f.helicopter_id = h.id
		JOIN pilot p ON h.id = p.helicopter_id
		WHERE p.id = ?
		ORDER BY f.date, f.id`,
		pilotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pilot flights: %w", err)
	}
	defer rows.Close()

	var flights []*CrewFlight
	for rows.Next() {
		var cf CrewFlight
		if err := rows.Scan(&cf.ID, &cf.Date, &cf.HelicopterID, &cf.Code, &cf.GoodsWeight,
			&cf.Passengers, &cf.FlightHours, &cf.Price, &cf.HelicopterSeria); err != nil {
			return nil, fmt.Errorf("failed to scan pilot flight: %w", err)
		}
		flights = append(flights, &cf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pilot flights: %w", err)
	}
	return flights, nil
}

// SummaryByCode aggregates all flights of one code
func (s *FlightStorage) SummaryByCode(ctx context.Context, code model.FlightCode) (*CodeSummary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT COUNT(id), COALESCE(SUM(goods_weight), 0.0), COALESCE(SUM(price), 0.0)
		FROM flight
		WHERE code = ?`,
		string(code),
	)

	summary := CodeSummary{Code: code}
	if err := row.Scan(&summary.Flights, &summary.GoodsWeight, &summary.Earned); err != nil {
		return nil, fmt.Errorf("failed to summarize %s flights: %w", code, err)
	}
	return &summary, nil
}

// Totals aggregates passengers and goods over all flights of a helicopter
func (s *FlightStorage) Totals(ctx context.Context, helicopterID int64) (*FlightTotals, error) {
	row := s.db.QueryRow(ctx, `
		SELECT COUNT(id), COALESCE(SUM(passangers), 0), COALESCE(SUM(goods_weight), 0.0)
		FROM flight
		WHERE helicopter_id = ?`,
		helicopterID,
	)

	var totals FlightTotals
	if err := row.Scan(&totals.Flights, &totals.Passengers, &totals.GoodsWeight); err != nil {
		return nil, fmt.Errorf("failed to query flight totals: %w", err)
	}
	return &totals, nil
}

func (s *FlightStorage) list(ctx context.Context, query string, args ...any) ([]*model.Flight, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []*model.Flight
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(&f.ID, &f.Date, &f.HelicopterID, &f.Code, &f.GoodsWeight,
			&f.Passengers, &f.FlightHours, &f.Price); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flights: %w", err)
	}
	return flights, nil
}

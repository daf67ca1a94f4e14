package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/pkg/logger"
)

// PilotStorage handles pilot queries
type PilotStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewPilotStorage creates a new pilot storage
func NewPilotStorage(db *DB, logger *logger.Logger) *PilotStorage {
	return &PilotStorage{
		db:     db,
		logger: logger.Named("pilots"),
	}
}

// Insert stores a pilot and returns its ID. A non-zero p.ID is written as
// given; a zero HelicopterID leaves the pilot unassigned.
func (s *PilotStorage) Insert(ctx context.Context, p *model.Pilot) (int64, error) {
	var helicopterID sql.NullInt64
	if p.HelicopterID > 0 {
		helicopterID = sql.NullInt64{Int64: p.HelicopterID, Valid: true}
	}

	var row *sql.Row
	if p.ID > 0 {
		row = s.db.QueryRow(ctx,
			`INSERT INTO pilot (id, tabel_num, last_name, position, helicopter_id)
			VALUES (?, ?, ?, ?, ?) RETURNING id`,
			p.ID, p.TabelNum, p.LastName, p.Position, helicopterID,
		)
	} else {
		row = s.db.QueryRow(ctx,
			`INSERT INTO pilot (tabel_num, last_name, position, helicopter_id)
			VALUES (?, ?, ?, ?) RETURNING id`,
			p.TabelNum, p.LastName, p.Position, helicopterID,
		)
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert pilot: %w", err)
	}
	return id, nil
}

// CrewByHelicopter returns the pilots assigned to a helicopter
func (s *PilotStorage) CrewByHelicopter(ctx context.Context, helicopterID int64) ([]*model.Pilot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, tabel_num, last_name, position, helicopter_id
		FROM pilot
		WHERE helicopter_id = ?
		ORDER BY id`,
		helicopterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query crew: %w", err)
	}
	defer rows.Close()

	var crew []*model.Pilot
	for rows.Next() {
		var p model.Pilot
		if err := rows.Scan(&p.ID, &p.TabelNum, &p.LastName, &p.Position, &p.HelicopterID); err != nil {
			return nil, fmt.Errorf("failed to scan pilot: %w", err)
		}
		crew = append(crew, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crew: %w", err)
	}
	return crew, nil
}

// HelicopterEarnings sums the prices of flights of the helicopter the pilot is
// assigned to within the period, narrowed by filter. The second result is
// false when no flight matched.
func (s *PilotStorage) HelicopterEarnings(ctx context.Context, pilotID int64, period Period, filter CrewFlightFilter) (float64, bool, error) {
	query := `
		SELECT SUM(f.price)
		FROM flight f
		JOIN pilot p ON f.helicopter_id = p.helicopter_id
		WHERE p.id = ? AND f.date BETWEEN ? AND ?`
	args := []any{pilotID, period.From, period.To}

	switch {
	case len(filter.FlightIDs) > 0:
		query += ` AND f.id IN (` + placeholders(len(filter.FlightIDs)) + `)`
		for _, id := range filter.FlightIDs {
			args = append(args, id)
		}
	case filter.Code != "":
		query += ` AND f.code = ?`
		args = append(args, string(filter.Code))
	}

	var total sql.NullFloat64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, false, fmt.Errorf("failed to query pilot earnings: %w", err)
	}
	return total.Float64, total.Valid, nil
}

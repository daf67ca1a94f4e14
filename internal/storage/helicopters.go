package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/pkg/logger"
)

// HelicopterStorage handles helicopter queries
type HelicopterStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewHelicopterStorage creates a new helicopter storage
func NewHelicopterStorage(db *DB, logger *logger.Logger) *HelicopterStorage {
	return &HelicopterStorage{
		db:     db,
		logger: logger.Named("helicopters"),
	}
}

const resourceUsageSelect = `
	SELECT h.id, h.seria_num, h.hours_before_repair, h.repair_date,
		COALESCE(SUM(f.flight_hours), 0.0) AS flown_after_repair
	FROM helicopter h
	LEFT JOIN flight f ON f.helicopter_id = h.id AND f.date >= h.repair_date`

// Insert stores a helicopter and returns its ID. A non-zero h.ID is written
// as given; on postgres the id sequence does not advance past it.
func (s *HelicopterStorage) Insert(ctx context.Context, h *model.Helicopter) (int64, error) {
	var row *sql.Row
	if h.ID > 0 {
		row = s.db.QueryRow(ctx,
			`INSERT INTO helicopter (id, seria_num, mark, hours_before_repair, repair_date)
			VALUES (?, ?, ?, ?, ?) RETURNING id`,
			h.ID, h.SeriaNum, h.Mark, h.HoursBeforeRepair, h.RepairDate,
		)
	} else {
		row = s.db.QueryRow(ctx,
			`INSERT INTO helicopter (seria_num, mark, hours_before_repair, repair_date)
			VALUES (?, ?, ?, ?) RETURNING id`,
			h.SeriaNum, h.Mark, h.HoursBeforeRepair, h.RepairDate,
		)
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert helicopter: %w", err)
	}
	s.logger.Debug("Helicopter stored", logger.Int64("helicopter_id", id), logger.String("seria_num", h.SeriaNum))
	return id, nil
}

// Lock takes a row lock on the helicopter for the rest of the transaction.
// SQLite serialises writers at BEGIN, so there it is a no-op.
func (s *HelicopterStorage) Lock(ctx context.Context, q Querier, id int64) error {
	if q.Dialect() != Postgres {
		return nil
	}

	var locked int64
	err := q.QueryRow(ctx, `SELECT id FROM helicopter WHERE id = ? FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHelicopterNotFound
		}
		return fmt.Errorf("failed to lock helicopter: %w", err)
	}
	return nil
}

// ResourceUsage returns the rated resource and the hours flown since the
// last repair of one helicopter
func (s *HelicopterStorage) ResourceUsage(ctx context.Context, q Querier, id int64) (*ResourceUsage, error) {
	row := q.QueryRow(ctx, resourceUsageSelect+`
		WHERE h.id = ?
		GROUP BY h.id, h.seria_num, h.hours_before_repair, h.repair_date`,
		id,
	)

	var usage ResourceUsage
	err := row.Scan(&usage.HelicopterID, &usage.SeriaNum, &usage.HoursBeforeRepair, &usage.RepairDate, &usage.FlownAfterRepair)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHelicopterNotFound
		}
		return nil, fmt.Errorf("failed to query helicopter resource: %w", err)
	}
	return &usage, nil
}

// ListResourceUsage returns the resource usage of every helicopter ordered by serial number
func (s *HelicopterStorage) ListResourceUsage(ctx context.Context) ([]*ResourceUsage, error) {
	rows, err := s.db.Query(ctx, resourceUsageSelect+`
		GROUP BY h.id, h.seria_num, h.hours_before_repair, h.repair_date
		ORDER BY h.seria_num, h.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query helicopter resources: %w", err)
	}
	defer rows.Close()

	var usages []*ResourceUsage
	for rows.Next() {
		var usage ResourceUsage
		if err := rows.Scan(&usage.HelicopterID, &usage.SeriaNum, &usage.HoursBeforeRepair, &usage.RepairDate, &usage.FlownAfterRepair); err != nil {
			return nil, fmt.Errorf("failed to scan helicopter resource: %w", err)
		}
		usages = append(usages, &usage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate helicopter resources: %w", err)
	}
	return usages, nil
}

// Summary returns a helicopter with the sum of all its flight prices
func (s *HelicopterStorage) Summary(ctx context.Context, id int64) (*HelicopterSummary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT h.id, h.seria_num, h.mark,
			COALESCE((SELECT SUM(f.price) FROM flight f WHERE f.helicopter_id = h.id), 0.0) AS total_earned
		FROM helicopter h
		WHERE h.id = ?`,
		id,
	)

	var summary HelicopterSummary
	if err := row.Scan(&summary.ID, &summary.SeriaNum, &summary.Mark, &summary.TotalEarned); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHelicopterNotFound
		}
		return nil, fmt.Errorf("failed to query helicopter summary: %w", err)
	}
	return &summary, nil
}

// MostFlights returns the helicopter with the largest number of flights.
// When several share the maximum, the first row the database returns wins.
func (s *HelicopterStorage) MostFlights(ctx context.Context) (*FlightCount, error) {
	row := s.db.QueryRow(ctx, `
		SELECT helicopter_id, COUNT(id) AS flight_count
		FROM flight
		GROUP BY helicopter_id
		ORDER BY flight_count DESC
		LIMIT 1`)

	var count FlightCount
	if err := row.Scan(&count.HelicopterID, &count.Flights); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoFlights
		}
		return nil, fmt.Errorf("failed to rank helicopters by flights: %w", err)
	}
	return &count, nil
}

// MostEarnings returns the helicopter crew with the largest sum of flight prices.
// When several share the maximum, the first row the database returns wins.
func (s *HelicopterStorage) MostEarnings(ctx context.Context) (*HelicopterEarnings, error) {
	row := s.db.QueryRow(ctx, `
		SELECT helicopter_id, SUM(price) AS total_earnings
		FROM flight
		GROUP BY helicopter_id
		ORDER BY total_earnings DESC
		LIMIT 1`)

	var earnings HelicopterEarnings
	if err := row.Scan(&earnings.HelicopterID, &earnings.Earnings); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoFlights
		}
		return nil, fmt.Errorf("failed to rank helicopters by earnings: %w", err)
	}
	return &earnings, nil
}

// EarningsForPeriod returns the earnings of every helicopter crew that flew in the period
func (s *HelicopterStorage) EarningsForPeriod(ctx context.Context, q Querier, period Period) ([]*HelicopterEarnings, error) {
	rows, err := q.Query(ctx, `
		SELECT helicopter_id, SUM(price) AS earnings
		FROM flight
		WHERE date BETWEEN ? AND ?
		GROUP BY helicopter_id
		ORDER BY helicopter_id`,
		period.From, period.To,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query crew earnings: %w", err)
	}
	defer rows.Close()

	var result []*HelicopterEarnings
	for rows.Next() {
		var e HelicopterEarnings
		if err := rows.Scan(&e.HelicopterID, &e.Earnings); err != nil {
			return nil, fmt.Errorf("failed to scan crew earnings: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crew earnings: %w", err)
	}
	return result, nil
}

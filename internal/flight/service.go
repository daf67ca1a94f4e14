// Package flight is the resource-checked mutation engine for flight rows.
package flight

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/internal/validate"
	"github.com/yegors/heliflight/pkg/logger"
)

var (
	// ErrInvalidFlight is returned when a new flight fails field validation
	ErrInvalidFlight = errors.New("invalid flight")
	// ErrNotInserted is returned when the insert affected no rows
	ErrNotInserted = errors.New("flight was not inserted")
	// ErrNothingToUpdate is returned for a patch with no fields
	ErrNothingToUpdate = errors.New("nothing to update")
)

// ResourceExceededError reports a flight that would overrun the helicopter's
// resource since its last repair
type ResourceExceededError struct {
	HelicopterID int64
	Limit        float64
	Flown        float64
	Requested    float64
}

func (e *ResourceExceededError) Error() string {
	return fmt.Sprintf("helicopter %d resource exceeded: limit %.2f, flown %.2f, requested %.2f",
		e.HelicopterID, e.Limit, e.Flown, e.Requested)
}

// Remaining returns the hours left before the limit
func (e *ResourceExceededError) Remaining() float64 {
	return e.Limit - e.Flown
}

// Service adds, updates and deletes flights
type Service struct {
	db          *storage.DB
	helicopters *storage.HelicopterStorage
	flights     *storage.FlightStorage
	validate    *validator.Validate
	logger      *logger.Logger
}

// NewService creates a flight service over the database
func NewService(db *storage.DB, log *logger.Logger) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	// the tag is registered before any Struct call, the error cannot occur
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		return validate.IsDate(fl.Field().String())
	})

	return &Service{
		db:          db,
		helicopters: storage.NewHelicopterStorage(db, log),
		flights:     storage.NewFlightStorage(db, log),
		validate:    v,
		logger:      log.Named("flight-service"),
	}
}

// Add inserts the flight if the helicopter's flown hours since its last
// repair plus the new flight's hours stay within its resource. The check and
// the insert share one transaction; on any failure nothing is written.
func (s *Service) Add(ctx context.Context, f *model.Flight) error {
	if err := s.validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlight, err)
	}

	err := s.db.WithTx(ctx, func(q storage.Querier) error {
		if err := s.helicopters.Lock(ctx, q, f.HelicopterID); err != nil {
			return err
		}

		usage, err := s.helicopters.ResourceUsage(ctx, q, f.HelicopterID)
		if err != nil {
			return err
		}

		if usage.FlownAfterRepair+f.FlightHours > usage.HoursBeforeRepair {
			return &ResourceExceededError{
				HelicopterID: f.HelicopterID,
				Limit:        usage.HoursBeforeRepair,
				Flown:        usage.FlownAfterRepair,
				Requested:    f.FlightHours,
			}
		}

		affected, err := s.flights.Insert(ctx, q, f)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotInserted
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Flight added",
		logger.Int64("helicopter_id", f.HelicopterID),
		logger.String("date", f.Date.String()),
		logger.Float64("flight_hours", f.FlightHours))
	return nil
}

// Update writes the patched fields of one flight and returns the number of
// affected rows. An empty patch issues no statement.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (int64, error) {
	if patch.Empty() {
		return 0, ErrNothingToUpdate
	}
	return s.flights.Update(ctx, id, patch.Assignments())
}

// Delete removes one flight and returns the number of affected rows
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := s.flights.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.logger.Info("Flight deleted", logger.Int64("flight_id", id))
	}
	return affected, nil
}

// CrewEarnings computes the earnings of every helicopter crew over the
// period inside a read transaction. The result is not persisted.
func (s *Service) CrewEarnings(ctx context.Context, period storage.Period) ([]*storage.HelicopterEarnings, error) {
	var earnings []*storage.HelicopterEarnings
	err := s.db.WithTx(ctx, func(q storage.Querier) error {
		var err error
		earnings, err = s.helicopters.EarningsForPeriod(ctx, q, period)
		return err
	})
	if err != nil {
		return nil, err
	}
	return earnings, nil
}

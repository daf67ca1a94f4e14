package report

import (
	"context"
	"errors"

	"github.com/yegors/heliflight/internal/storage"
)

// PilotFlights prints every flight of the pilot's helicopter
func (e *Engine) PilotFlights(ctx context.Context, helicopterID int64) error {
	flights, err := e.flights.ListByHelicopter(ctx, helicopterID)
	if err != nil {
		return err
	}
	if len(flights) == 0 {
		e.out.Print("Data not found")
		e.out.Print("")
		return nil
	}

	e.out.Print("date|code|goods_weight|passengers|flight_hours|price")
	for _, f := range flights {
		e.out.Printf("%s|%s|%.2f|%d|%.2f|%.2f", f.Date, f.Code, f.GoodsWeight, f.Passengers, f.FlightHours, f.Price)
	}
	e.out.Print("")
	return nil
}

// FlightLimit prints the resource, the hours flown since the last repair and
// the difference for the pilot's helicopter
func (e *Engine) FlightLimit(ctx context.Context, helicopterID int64) error {
	usage, err := e.helicopters.ResourceUsage(ctx, e.db, helicopterID)
	if err != nil {
		if errors.Is(err, storage.ErrHelicopterNotFound) {
			e.out.Print("Helicopter not found")
			e.out.Print("")
			return nil
		}
		return err
	}

	e.out.Print("limit|flied|difference")
	e.out.Printf("%.2f|%.2f|%.2f", usage.HoursBeforeRepair, usage.FlownAfterRepair, usage.Remaining())
	e.out.Print("")
	return nil
}

// FlightStatistic prints the all-time passenger and goods totals of the pilot's helicopter
func (e *Engine) FlightStatistic(ctx context.Context, helicopterID int64) error {
	totals, err := e.flights.Totals(ctx, helicopterID)
	if err != nil {
		return err
	}

	e.out.Print("passengers|goods_weight")
	e.out.Printf("%d|%.2f", totals.Passengers, totals.GoodsWeight)
	e.out.Print("")
	return nil
}

package report

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
)

// EarningsBasis tells what an earnings figure is summed over
type EarningsBasis string

// BasisHelicopter means the figure is the total of the pilot's helicopter;
// individual pilot accruals are not stored
const BasisHelicopter EarningsBasis = "helicopter"

const helicopterBasisNote = "(This is the total of the helicopter's flights. Individual pilot accruals are not stored.)"

// PilotEarnings is the earnings figure attributed to a pilot
type PilotEarnings struct {
	PilotID int64
	Period  storage.Period
	Filter  storage.CrewFlightFilter
	Total   float64
	Found   bool
	Basis   EarningsBasis
}

// Resources prints the resource and hours flown since the last repair of every helicopter
func (e *Engine) Resources(ctx context.Context) error {
	e.out.Print("Flight hours and resource by helicopter:")
	usages, err := e.helicopters.ListResourceUsage(ctx)
	if err != nil {
		return err
	}
	if len(usages) == 0 {
		e.out.Print("No helicopters found.")
		return nil
	}

	e.out.Print("Serial number | Resource (h) | Flown since repair (h) | Remaining (h)")
	for _, u := range usages {
		e.out.Printf("%s | %.2f | %.2f | %.2f", u.SeriaNum, u.HoursBeforeRepair, u.FlownAfterRepair, u.Remaining())
	}
	e.out.Print("")
	return nil
}

// HelicopterFlights prints the flights of a helicopter within the period
func (e *Engine) HelicopterFlights(ctx context.Context, helicopterID int64, period storage.Period) error {
	flights, err := e.flights.ListByHelicopterPeriod(ctx, helicopterID, period)
	if err != nil {
		return err
	}
	if len(flights) == 0 {
		e.out.Printf("No flights found for helicopter %d between %s and %s.", helicopterID, period.From, period.To)
		return nil
	}

	e.out.Printf("Flights of helicopter %d from %s to %s:", helicopterID, period.From, period.To)
	e.printFlights(flights)
	e.out.Print("")
	return nil
}

// CodeSummary prints the number of flights, goods weight and earnings of one flight type
func (e *Engine) CodeSummary(ctx context.Context, code model.FlightCode) error {
	name := "regular"
	if code == model.FlightSpecial {
		name = "special"
	}

	e.out.Printf("%s flights summary:", capitalize(name))
	summary, err := e.flights.SummaryByCode(ctx, code)
	if err != nil {
		return err
	}
	if summary.Flights == 0 {
		e.out.Printf("No %s flights recorded.", name)
	} else {
		e.out.Printf("Total %s flights: %d", name, summary.Flights)
		e.out.Printf("Total goods weight (%s flights): %.2f kg", name, summary.GoodsWeight)
		e.out.Printf("Total earned (%s flights): %.2f", name, summary.Earned)
	}
	e.out.Print("")
	return nil
}

// MostFlights prints the helicopter with the most flights, its earnings and its crew
func (e *Engine) MostFlights(ctx context.Context) error {
	e.out.Print("Helicopter with the most flights:")
	top, err := e.helicopters.MostFlights(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoFlights) {
			e.out.Print("No flights recorded to rank helicopters.")
			return nil
		}
		return err
	}
	e.out.Printf("Helicopter %d made the most flights: %d", top.HelicopterID, top.Flights)

	summary, err := e.helicopters.Summary(ctx, top.HelicopterID)
	switch {
	case err == nil:
		e.out.Printf("Serial number: %s", summary.SeriaNum)
		e.out.Printf("Mark: %s", summary.Mark)
		e.out.Printf("Total earned by this helicopter: %.2f", summary.TotalEarned)
	case !errors.Is(err, storage.ErrHelicopterNotFound):
		return err
	}

	crew, err := e.pilots.CrewByHelicopter(ctx, top.HelicopterID)
	if err != nil {
		return err
	}
	e.out.Print("")
	e.out.Printf("Crew of helicopter %d:", top.HelicopterID)
	if len(crew) == 0 {
		e.out.Print("No crew found.")
	} else {
		e.out.Print("Tabel number | Last name | Position")
		for _, p := range crew {
			e.out.Printf("%s | %s | %s", p.TabelNum, p.LastName, p.Position)
		}
	}
	e.out.Print("")
	return nil
}

// MostEarnings prints the crew with the highest earnings and its flights
func (e *Engine) MostEarnings(ctx context.Context) error {
	e.out.Print("Crew (helicopter) with the highest earnings:")
	top, err := e.helicopters.MostEarnings(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoFlights) {
			e.out.Print("No flights recorded to rank crews.")
			return nil
		}
		return err
	}
	e.out.Printf("Crew of helicopter %d earned the most: %.2f", top.HelicopterID, top.Earnings)

	flights, err := e.flights.ListByHelicopter(ctx, top.HelicopterID)
	if err != nil {
		return err
	}
	e.out.Print("")
	e.out.Print("Flights of this crew:")
	if len(flights) == 0 {
		e.out.Print("No flights found for this crew.")
	} else {
		e.printFlights(flights)
	}
	e.out.Print("")
	return nil
}

// CrewFlights prints all flights of a helicopter crew
func (e *Engine) CrewFlights(ctx context.Context, helicopterID int64) error {
	flights, err := e.flights.ListByHelicopter(ctx, helicopterID)
	if err != nil {
		return err
	}

	e.out.Printf("Flights of helicopter %d crew:", helicopterID)
	if len(flights) == 0 {
		e.out.Print("No flights found.")
	} else {
		e.printFlights(flights)
	}
	e.out.Print("")
	return nil
}

// MemberFlights prints the flights of the helicopter a pilot is assigned to
func (e *Engine) MemberFlights(ctx context.Context, pilotID int64) error {
	flights, err := e.flights.ListByPilot(ctx, pilotID)
	if err != nil {
		return err
	}

	e.out.Printf("Flights of the helicopter pilot %d is assigned to:", pilotID)
	if len(flights) == 0 {
		e.out.Print("No flights found for this pilot (or the pilot's helicopter has no flights).")
		e.out.Print("")
		return nil
	}

	e.out.Print(flightHeader + " | Helicopter (serial)")
	var (
		totalGoods      float64
		totalPassengers int
	)
	for _, f := range flights {
		e.out.Printf(flightRow+" | %s", f.ID, f.Date, f.Code, f.GoodsWeight, f.Passengers, f.FlightHours, f.Price, f.HelicopterSeria)
		totalGoods += f.GoodsWeight
		totalPassengers += f.Passengers
	}
	e.printTotals(totalGoods, totalPassengers)
	e.out.Print("")
	return nil
}

// CrewEarnings calculates and prints the earnings of every crew over the period
func (e *Engine) CrewEarnings(ctx context.Context, period storage.Period) error {
	earnings, err := e.earnings.CrewEarnings(ctx, period)
	if err != nil {
		return err
	}
	if len(earnings) == 0 {
		e.out.Printf("No flights between %s and %s to calculate earnings.", period.From, period.To)
		e.out.Print("")
		return nil
	}

	e.out.Print("Helicopter ID|Crew earnings")
	for _, row := range earnings {
		e.out.Printf("%d|%.2f", row.HelicopterID, row.Earnings)
	}
	e.out.Printf("Calculated earnings of %d crews from %s to %s.", len(earnings), period.From, period.To)
	e.out.Print("")
	return nil
}

// QueryPilotEarnings returns the earnings attributed to a pilot. The figure
// is always the total of the pilot's helicopter, see PilotEarnings.Basis.
func (e *Engine) QueryPilotEarnings(ctx context.Context, pilotID int64, period storage.Period, filter storage.CrewFlightFilter) (*PilotEarnings, error) {
	total, found, err := e.pilots.HelicopterEarnings(ctx, pilotID, period, filter)
	if err != nil {
		return nil, err
	}
	return &PilotEarnings{
		PilotID: pilotID,
		Period:  period,
		Filter:  filter,
		Total:   total,
		Found:   found,
		Basis:   BasisHelicopter,
	}, nil
}

// PilotEarnings prints the earnings attributed to a pilot over the period
func (e *Engine) PilotEarnings(ctx context.Context, pilotID int64, period storage.Period, filter storage.CrewFlightFilter) error {
	result, err := e.QueryPilotEarnings(ctx, pilotID, period, filter)
	if err != nil {
		return err
	}

	scope := describeFilter(result.Filter)
	if result.Found {
		e.out.Printf("Total earned by the helicopter of pilot %d%s from %s to %s: %.2f",
			result.PilotID, scope, period.From, period.To, result.Total)
	} else {
		e.out.Printf("No earnings found for the helicopter of pilot %d%s from %s to %s.",
			result.PilotID, scope, period.From, period.To)
	}
	if result.Basis == BasisHelicopter {
		e.out.Print(helicopterBasisNote)
	}
	e.out.Print("")
	return nil
}

func describeFilter(filter storage.CrewFlightFilter) string {
	switch {
	case len(filter.FlightIDs) > 0:
		ids := make([]string, len(filter.FlightIDs))
		for i, id := range filter.FlightIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		return " for flights (" + strings.Join(ids, ",") + ")"
	case filter.Code != "":
		return " for '" + string(filter.Code) + "' flights"
	default:
		return ""
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

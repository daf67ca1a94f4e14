package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/command"
	"github.com/yegors/heliflight/internal/flight"
	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/report"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/internal/validate"
	"github.com/yegors/heliflight/pkg/logger"
)

// Admin is the unrestricted command set
type Admin struct {
	prompter
	reports  *report.Engine
	flights  *flight.Service
	registry *command.Registry
}

// NewAdmin creates the admin command set
func NewAdmin(con Console, reports *report.Engine, flights *flight.Service, log *logger.Logger) *Admin {
	a := &Admin{
		prompter: prompter{con: con, logger: log.Named("admin")},
		reports:  reports,
		flights:  flights,
	}

	r := command.NewRegistry()
	r.Register(command.HelicopterFlightHoursResource, "resource and hours flown since repair per helicopter", a.resources)
	r.Register(command.HelicopterFlightsPeriod, "flights of a helicopter over a period", a.helicopterFlights)
	r.Register(command.SpecialFlightsSummary, "totals of special flights", a.codeSummary(model.FlightSpecial))
	r.Register(command.RegularFlightsSummary, "totals of regular flights", a.codeSummary(model.FlightUsual))
	r.Register(command.HelicopterMaxFlightsInfo, "helicopter with the most flights and its crew", a.mostFlights)
	r.Register(command.CrewMaxEarningsFlights, "flights of the crew with the highest earnings", a.mostEarnings)
	r.Register(command.CrewMemberFlightsInfo, "flights of a crew or of a crew member", a.crewMemberFlights)
	r.Register(command.AddFlight, "add a flight within the helicopter resource", a.addFlight)
	r.Register(command.UpdateFlightInfo, "change selected fields of a flight", a.updateFlight)
	r.Register(command.DeleteFlight, "delete a flight", a.deleteFlight)
	r.Register(command.CalculateCrewEarningsPeriod, "earnings of every crew over a period", a.crewEarnings)
	r.Register(command.PilotEarningsPeriod, "earnings of a pilot over a period", a.pilotEarnings)
	r.Register(command.PilotEarningsSpecificFlights, "earnings of a pilot for chosen flights or a flight type", a.pilotEarningsSpecific)
	r.Register(command.Help, "list available commands", command.HelpAction(r, con))
	r.Register(command.Out, "log out", command.Logout)
	a.registry = r

	return a
}

// Commands implements command.Handler
func (a *Admin) Commands() *command.Registry {
	return a.registry
}

func (a *Admin) resources(ctx context.Context, s *auth.Session) bool {
	if err := a.reports.Resources(ctx); err != nil {
		a.fail(s, string(command.HelicopterFlightHoursResource), err)
	}
	return false
}

func (a *Admin) helicopterFlights(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Flights of a helicopter over a period.")
	id, ok := a.id("Helicopter ID (or /back to cancel):")
	if !ok {
		return false
	}
	period, ok := a.period()
	if !ok {
		return false
	}

	if err := a.reports.HelicopterFlights(ctx, id, period); err != nil {
		a.fail(s, string(command.HelicopterFlightsPeriod), err)
	}
	return false
}

func (a *Admin) codeSummary(code model.FlightCode) command.Action {
	return func(ctx context.Context, s *auth.Session) bool {
		if err := a.reports.CodeSummary(ctx, code); err != nil {
			a.fail(s, "summary "+string(code), err)
		}
		return false
	}
}

func (a *Admin) mostFlights(ctx context.Context, s *auth.Session) bool {
	if err := a.reports.MostFlights(ctx); err != nil {
		a.fail(s, string(command.HelicopterMaxFlightsInfo), err)
	}
	return false
}

func (a *Admin) mostEarnings(ctx context.Context, s *auth.Session) bool {
	if err := a.reports.MostEarnings(ctx); err != nil {
		a.fail(s, string(command.CrewMaxEarningsFlights), err)
	}
	return false
}

func (a *Admin) crewMemberFlights(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Flights of a crew (helicopter) or of a crew member (pilot).")
	choice, ok := a.field("Search by helicopter ID ('H') or pilot ID ('P')? (/back to cancel):", "Invalid choice.", validate.OneOf("H", "P"))
	if !ok {
		return false
	}

	var err error
	if strings.EqualFold(choice, "H") {
		id, ok := a.id("Helicopter (crew) ID (or /back to cancel):")
		if !ok {
			return false
		}
		err = a.reports.CrewFlights(ctx, id)
	} else {
		id, ok := a.id("Pilot ID (or /back to cancel):")
		if !ok {
			return false
		}
		err = a.reports.MemberFlights(ctx, id)
	}
	if err != nil {
		a.fail(s, string(command.CrewMemberFlightsInfo), err)
	}
	return false
}

func (a *Admin) addFlight(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Adding a new flight:")

	date, ok := a.field("Flight date (YYYY-MM-DD or /back):", "Invalid date format.", validate.Field(validate.Date))
	if !ok {
		return false
	}
	helicopterID, ok := a.id("Helicopter ID (or /back):")
	if !ok {
		return false
	}
	rawCode, ok := a.field("Flight type (usual/special or /back):", "Invalid type.", validate.Field(validate.FlightCode))
	if !ok {
		return false
	}
	rawGoods, ok := a.field("Goods weight, kg (or /back):", "Invalid value.", validate.Field(validate.Amount))
	if !ok {
		return false
	}
	rawPassengers, ok := a.field("Passenger count (or /back):", "Invalid value.", validate.Field(validate.Count))
	if !ok {
		return false
	}
	rawHours, ok := a.field("Flight duration, hours (or /back):", "Invalid value.", validate.Field(validate.Hours))
	if !ok {
		return false
	}
	rawPrice, ok := a.field("Flight price (or /back):", "Invalid value.", validate.Field(validate.Amount))
	if !ok {
		return false
	}

	code, _ := model.ParseFlightCode(rawCode)
	goods, _ := validate.ParseDecimal(rawGoods)
	passengers, _ := validate.ParseCount(rawPassengers)
	hours, _ := validate.ParseDecimal(rawHours)
	price, _ := validate.ParseDecimal(rawPrice)
	f := &model.Flight{
		Date:         model.Date(date),
		HelicopterID: helicopterID,
		Code:         code,
		GoodsWeight:  goods,
		Passengers:   passengers,
		FlightHours:  hours,
		Price:        price,
	}

	var exceeded *flight.ResourceExceededError
	err := a.flights.Add(ctx, f)
	switch {
	case err == nil:
		a.con.Print("Flight added.")
	case errors.As(err, &exceeded):
		a.con.Print("Error: this flight would exceed the helicopter's flight hour resource.")
		a.con.Printf("Resource: %.2f, flown since repair: %.2f, planned: %.2f", exceeded.Limit, exceeded.Flown, exceeded.Requested)
		a.con.Printf("Remaining resource: %.2f", exceeded.Remaining())
	case errors.Is(err, storage.ErrHelicopterNotFound):
		a.con.Printf("Helicopter %d not found.", helicopterID)
	case errors.Is(err, flight.ErrNotInserted):
		a.con.Print("Failed to add the flight.")
	case errors.Is(err, flight.ErrInvalidFlight):
		a.con.Printf("Invalid flight: %v", err)
	default:
		a.fail(s, string(command.AddFlight), err)
		return false
	}
	a.con.Print("")
	return false
}

func (a *Admin) updateFlight(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Updating flight information:")
	id, ok := a.id("Flight ID to update (or /back):")
	if !ok {
		return false
	}

	a.con.Print("Enter new values (leave empty to keep the current value, /back to cancel):")
	var patch flight.Patch
	for _, field := range flight.Fields {
		raw, ok := a.field(fmt.Sprintf("New %s (or /back):", field.Label()), "Invalid value.", validate.Optional(field.Kind()))
		if !ok {
			return false
		}
		if err := patch.Set(field, raw); err != nil {
			a.con.Printf("Invalid value: %v", err)
			return false
		}
	}

	affected, err := a.flights.Update(ctx, id, patch)
	switch {
	case errors.Is(err, flight.ErrNothingToUpdate):
		a.con.Print("Nothing to update.")
	case err != nil:
		a.fail(s, string(command.UpdateFlightInfo), err)
		return false
	case affected > 0:
		a.con.Printf("Flight %d updated.", id)
	default:
		a.con.Printf("Flight %d not found or unchanged.", id)
	}
	a.con.Print("")
	return false
}

func (a *Admin) deleteFlight(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Deleting a flight:")
	id, ok := a.id("Flight ID to delete (or /back):")
	if !ok {
		return false
	}

	answer, ok := a.field(fmt.Sprintf("Delete flight %d? (yes/no or /back):", id),
		"Invalid input. Enter 'yes' or 'no'.", validate.Field(validate.YesNo))
	if !ok || !validate.IsYes(answer) {
		a.con.Print("Deletion cancelled.")
		return false
	}

	affected, err := a.flights.Delete(ctx, id)
	switch {
	case err != nil:
		a.fail(s, string(command.DeleteFlight), err)
		return false
	case affected > 0:
		a.con.Printf("Flight %d deleted.", id)
	default:
		a.con.Printf("Flight %d not found.", id)
	}
	a.con.Print("")
	return false
}

func (a *Admin) crewEarnings(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Earnings of crews (helicopters) over a period.")
	period, ok := a.period()
	if !ok {
		return false
	}

	if err := a.reports.CrewEarnings(ctx, period); err != nil {
		a.fail(s, string(command.CalculateCrewEarningsPeriod), err)
	}
	return false
}

func (a *Admin) pilotEarnings(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Earnings of a pilot over a period.")
	pilotID, ok := a.id("Pilot ID (or /back):")
	if !ok {
		return false
	}
	period, ok := a.period()
	if !ok {
		return false
	}

	if err := a.reports.PilotEarnings(ctx, pilotID, period, storage.CrewFlightFilter{}); err != nil {
		a.fail(s, string(command.PilotEarningsPeriod), err)
	}
	return false
}

func (a *Admin) pilotEarningsSpecific(ctx context.Context, s *auth.Session) bool {
	a.con.Print("Earnings of a pilot for chosen flights or a flight type over a period.")
	pilotID, ok := a.id("Pilot ID (or /back):")
	if !ok {
		return false
	}
	period, ok := a.period()
	if !ok {
		return false
	}
	choice, ok := a.field("Give flight IDs ('ids') or a flight type ('type')? (or /back):", "Invalid choice.", validate.OneOf("ids", "type"))
	if !ok {
		return false
	}

	var filter storage.CrewFlightFilter
	if strings.EqualFold(choice, "ids") {
		raw, ok := a.field("Flight IDs separated by commas, e.g. 1,2,3 (or /back):", "Invalid input.", validate.Field(validate.IDList))
		if !ok {
			return false
		}
		filter.FlightIDs, _ = validate.ParseIDList(raw)
	} else {
		raw, ok := a.field("Flight type (usual/special or /back):", "Invalid type.", validate.Field(validate.FlightCode))
		if !ok {
			return false
		}
		filter.Code, _ = model.ParseFlightCode(raw)
	}

	if err := a.reports.PilotEarnings(ctx, pilotID, period, filter); err != nil {
		a.fail(s, string(command.PilotEarningsSpecificFlights), err)
	}
	return false
}

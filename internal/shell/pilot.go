package shell

import (
	"context"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/command"
	"github.com/yegors/heliflight/internal/report"
	"github.com/yegors/heliflight/pkg/logger"
)

// Pilot is the command set scoped to the session's helicopter
type Pilot struct {
	prompter
	reports  *report.Engine
	registry *command.Registry
}

// NewPilot creates the pilot command set
func NewPilot(con Console, reports *report.Engine, log *logger.Logger) *Pilot {
	p := &Pilot{
		prompter: prompter{con: con, logger: log.Named("pilot")},
		reports:  reports,
	}

	r := command.NewRegistry()
	r.Register(command.FlightsInfo, "get information about completed flights", p.flightsInfo)
	r.Register(command.FlightLimit, "get information about limit and hours", p.flightLimit)
	r.Register(command.FlightStatistic, "get all time passengers count and goods sum", p.flightStatistic)
	r.Register(command.Help, "get available commands", command.HelpAction(r, con))
	r.Register(command.Out, "log out", command.Logout)
	p.registry = r

	return p
}

// Commands implements command.Handler
func (p *Pilot) Commands() *command.Registry {
	return p.registry
}

func (p *Pilot) flightsInfo(ctx context.Context, s *auth.Session) bool {
	if err := p.reports.PilotFlights(ctx, s.HelicopterID); err != nil {
		p.fail(s, string(command.FlightsInfo), err)
	}
	return false
}

func (p *Pilot) flightLimit(ctx context.Context, s *auth.Session) bool {
	if err := p.reports.FlightLimit(ctx, s.HelicopterID); err != nil {
		p.fail(s, string(command.FlightLimit), err)
	}
	return false
}

func (p *Pilot) flightStatistic(ctx context.Context, s *auth.Session) bool {
	if err := p.reports.FlightStatistic(ctx, s.HelicopterID); err != nil {
		p.fail(s, string(command.FlightStatistic), err)
	}
	return false
}

// Package command maps console command tokens to actions and runs the
// session read-eval loop.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/console"
)

// Token is a console command
type Token string

// Admin commands
const (
	HelicopterFlightHoursResource Token = "/helicopter_flight_hours_resource"
	HelicopterFlightsPeriod       Token = "/helicopter_flights_period"
	SpecialFlightsSummary         Token = "/special_flights_summary"
	RegularFlightsSummary         Token = "/regular_flights_summary"
	HelicopterMaxFlightsInfo      Token = "/helicopter_max_flights_info"
	CrewMaxEarningsFlights        Token = "/crew_max_earnings_flights"
	CrewMemberFlightsInfo         Token = "/crew_member_flights_info"
	AddFlight                     Token = "/add_flight"
	UpdateFlightInfo              Token = "/update_flight_info"
	DeleteFlight                  Token = "/delete_flight"
	CalculateCrewEarningsPeriod   Token = "/calculate_crew_earnings_period"
	PilotEarningsPeriod           Token = "/pilot_earnings_period"
	PilotEarningsSpecificFlights  Token = "/pilot_earnings_specific_flights"
)

// Pilot commands
const (
	FlightsInfo     Token = "/flights_info"
	FlightLimit     Token = "/flight_limit"
	FlightStatistic Token = "/flight_statistic"
)

// Shared commands
const (
	Help Token = "/help"
	Out  Token = "/out"
)

// Action runs a command and reports whether the session should end
type Action func(ctx context.Context, session *auth.Session) bool

// Handler is a role-specific command set
type Handler interface {
	Commands() *Registry
}

type entry struct {
	token   Token
	summary string
	action  Action
}

// Registry is an insertion-ordered token to action table
type Registry struct {
	entries []entry
	index   map[Token]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[Token]int)}
}

// Register appends a command. Registering a token twice panics.
func (r *Registry) Register(token Token, summary string, action Action) *Registry {
	if _, exists := r.index[token]; exists {
		panic(fmt.Sprintf("command %s registered twice", token))
	}
	r.index[token] = len(r.entries)
	r.entries = append(r.entries, entry{token: token, summary: summary, action: action})
	return r
}

// Lookup returns the action registered for the raw input
func (r *Registry) Lookup(raw string) (Action, bool) {
	i, ok := r.index[Token(raw)]
	if !ok {
		return nil, false
	}
	return r.entries[i].action, true
}

// Has reports whether raw is a registered token
func (r *Registry) Has(raw string) bool {
	_, ok := r.index[Token(raw)]
	return ok
}

// Tokens returns the registered tokens in registration order
func (r *Registry) Tokens() []Token {
	tokens := make([]Token, len(r.entries))
	for i, e := range r.entries {
		tokens[i] = e.token
	}
	return tokens
}

// HelpText lists the registered commands in registration order
func (r *Registry) HelpText() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, e := range r.entries {
		b.WriteString(" - ")
		b.WriteString(string(e.token))
		if e.summary != "" {
			b.WriteString(" - ")
			b.WriteString(e.summary)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HelpAction prints the help text of r
func HelpAction(r *Registry, out console.Printer) Action {
	return func(context.Context, *auth.Session) bool {
		out.Print(r.HelpText())
		return false
	}
}

// Logout ends the session
func Logout(context.Context, *auth.Session) bool {
	return true
}

package storage

import (
	"errors"

	"github.com/yegors/heliflight/internal/model"
)

var (
	// ErrHelicopterNotFound is returned when a helicopter does not exist
	ErrHelicopterNotFound = errors.New("helicopter not found")
	// ErrNoFlights is returned by ranking queries when no flights exist
	ErrNoFlights = errors.New("no flights recorded")
	// ErrCredentialNotFound is returned when a login does not exist
	ErrCredentialNotFound = errors.New("credential not found")
)

// ResourceUsage is a helicopter's rated resource against the hours flown
// since its last repair
type ResourceUsage struct {
	HelicopterID      int64      `json:"helicopter_id"`
	SeriaNum          string     `json:"seria_num"`
	HoursBeforeRepair float64    `json:"hours_before_repair"`
	RepairDate        model.Date `json:"repair_date"`
	FlownAfterRepair  float64    `json:"flown_after_repair"`
}

// Remaining returns the hours left before the resource is exhausted
func (u ResourceUsage) Remaining() float64 {
	return u.HoursBeforeRepair - u.FlownAfterRepair
}

// HelicopterSummary is a helicopter with its lifetime earnings
type HelicopterSummary struct {
	ID          int64   `json:"id"`
	SeriaNum    string  `json:"seria_num"`
	Mark        string  `json:"mark"`
	TotalEarned float64 `json:"total_earned"`
}

// FlightCount is the number of flights of a helicopter
type FlightCount struct {
	HelicopterID int64 `json:"helicopter_id"`
	Flights      int64 `json:"flights"`
}

// HelicopterEarnings is the sum of flight prices of a helicopter
type HelicopterEarnings struct {
	HelicopterID int64   `json:"helicopter_id"`
	Earnings     float64 `json:"earnings"`
}

// CodeSummary aggregates all flights of one code
type CodeSummary struct {
	Code        model.FlightCode `json:"code"`
	Flights     int64            `json:"flights"`
	GoodsWeight float64          `json:"goods_weight"`
	Earned      float64          `json:"earned"`
}

// FlightTotals aggregates passengers and goods of a helicopter's flights
type FlightTotals struct {
	Flights     int64   `json:"flights"`
	Passengers  int64   `json:"passengers"`
	GoodsWeight float64 `json:"goods_weight"`
}

// CrewFlight is a flight joined with the serial number of its helicopter
type CrewFlight struct {
	model.Flight
	HelicopterSeria string `json:"helicopter_seria"`
}

// CrewFlightFilter narrows a pilot earnings query.
// FlightIDs wins over Code when both are set; an empty filter matches all flights.
type CrewFlightFilter struct {
	FlightIDs []int64
	Code      model.FlightCode
}

// Period is an inclusive date range
type Period struct {
	From model.Date
	To   model.Date
}

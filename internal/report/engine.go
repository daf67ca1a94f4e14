// Package report renders the read-only fleet reports.
package report

import (
	"context"

	"github.com/yegors/heliflight/internal/console"
	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/pkg/logger"
)

const (
	flightHeader = "Flight ID | Date | Type | Goods (kg) | Passengers | Flight hours | Price"
	flightRow    = "%d | %s | %s | %.2f | %d | %.2f | %.2f"
	separator    = "----------------------------------------------------"
)

// EarningsCalculator computes crew earnings over a period
type EarningsCalculator interface {
	CrewEarnings(ctx context.Context, period storage.Period) ([]*storage.HelicopterEarnings, error)
}

// Engine runs report queries and prints the results
type Engine struct {
	db          *storage.DB
	out         console.Printer
	helicopters *storage.HelicopterStorage
	flights     *storage.FlightStorage
	pilots      *storage.PilotStorage
	earnings    EarningsCalculator
	logger      *logger.Logger
}

// NewEngine creates a report engine printing to out
func NewEngine(db *storage.DB, earnings EarningsCalculator, out console.Printer, log *logger.Logger) *Engine {
	return &Engine{
		db:          db,
		out:         out,
		helicopters: storage.NewHelicopterStorage(db, log),
		flights:     storage.NewFlightStorage(db, log),
		pilots:      storage.NewPilotStorage(db, log),
		earnings:    earnings,
		logger:      log.Named("reports"),
	}
}

// printFlights prints the flight table followed by the goods and passengers totals
func (e *Engine) printFlights(flights []*model.Flight) {
	e.out.Print(flightHeader)
	var (
		totalGoods      float64
		totalPassengers int
	)
	for _, f := range flights {
		e.out.Printf(flightRow, f.ID, f.Date, f.Code, f.GoodsWeight, f.Passengers, f.FlightHours, f.Price)
		totalGoods += f.GoodsWeight
		totalPassengers += f.Passengers
	}
	e.printTotals(totalGoods, totalPassengers)
}

func (e *Engine) printTotals(goods float64, passengers int) {
	e.out.Print(separator)
	e.out.Printf("Total: goods weight = %.2f kg, passengers = %d", goods, passengers)
}

package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/heliflight/internal/console"
	"github.com/yegors/heliflight/internal/flight"
	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/report"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/internal/storage/storagetest"
	"github.com/yegors/heliflight/pkg/logger"
)

func newEngine(t *testing.T, seed bool) (*report.Engine, *bytes.Buffer) {
	t.Helper()
	db := storagetest.Open(t)
	if seed {
		storagetest.Standard(t, db)
	}

	var out bytes.Buffer
	printer := console.New(strings.NewReader(""), &out)
	log := logger.NewNop()
	return report.NewEngine(db, flight.NewService(db, log), printer, log), &out
}

func lines(out *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestPilotFlights(t *testing.T) {
	engine, out := newEngine(t, true)

	require.NoError(t, engine.PilotFlights(context.Background(), 7))
	assert.Equal(t, []string{
		"date|code|goods_weight|passengers|flight_hours|price",
		"2023-12-20|usual|100.00|4|10.00|1000.00",
		"2024-02-01|special|250.50|2|40.00|5000.00",
		"2024-03-01|usual|0.00|10|55.00|3000.00",
	}, lines(out))
}

func TestPilotFlightsNotFound(t *testing.T) {
	engine, out := newEngine(t, true)

	require.NoError(t, engine.PilotFlights(context.Background(), 9))
	assert.Equal(t, []string{"Data not found"}, lines(out))
}

func TestFlightLimitAndStatistic(t *testing.T) {
	engine, out := newEngine(t, true)
	ctx := context.Background()

	require.NoError(t, engine.FlightLimit(ctx, 7))
	require.NoError(t, engine.FlightStatistic(ctx, 7))
	assert.Equal(t, []string{
		"limit|flied|difference",
		"100.00|95.00|5.00",
		"",
		"passengers|goods_weight",
		"16|350.50",
	}, lines(out))

	out.Reset()
	require.NoError(t, engine.FlightLimit(ctx, 404))
	assert.Equal(t, []string{"Helicopter not found"}, lines(out))
}

func TestHelicopterFlightsTotals(t *testing.T) {
	engine, out := newEngine(t, true)

	period := storage.Period{From: "2024-01-01", To: "2024-12-31"}
	require.NoError(t, engine.HelicopterFlights(context.Background(), 7, period))
	got := out.String()
	assert.Contains(t, got, "Flights of helicopter 7 from 2024-01-01 to 2024-12-31:")
	assert.Contains(t, got, "2 | 2024-02-01 | special | 250.50 | 2 | 40.00 | 5000.00")
	assert.Contains(t, got, "Total: goods weight = 250.50 kg, passengers = 12")
	assert.NotContains(t, got, "2023-12-20")

	out.Reset()
	require.NoError(t, engine.HelicopterFlights(context.Background(), 9, period))
	assert.Contains(t, out.String(), "No flights found for helicopter 9")
}

func TestReportsAreIdempotent(t *testing.T) {
	engine, out := newEngine(t, true)
	ctx := context.Background()

	runAll := func() string {
		out.Reset()
		require.NoError(t, engine.Resources(ctx))
		require.NoError(t, engine.CodeSummary(ctx, model.FlightSpecial))
		require.NoError(t, engine.CodeSummary(ctx, model.FlightUsual))
		require.NoError(t, engine.MostFlights(ctx))
		require.NoError(t, engine.MostEarnings(ctx))
		require.NoError(t, engine.CrewFlights(ctx, 7))
		require.NoError(t, engine.MemberFlights(ctx, 1))
		require.NoError(t, engine.CrewEarnings(ctx, storage.Period{From: "2024-01-01", To: "2024-12-31"}))
		return out.String()
	}

	first := runAll()
	assert.Equal(t, first, runAll())
	assert.Contains(t, first, "RA-0007 | 100.00 | 95.00 | 5.00")
	assert.Contains(t, first, "Total special flights: 1")
	assert.Contains(t, first, "Helicopter 7 made the most flights: 3")
	assert.Contains(t, first, "T-002 | Petrov | copilot")
	assert.Contains(t, first, "7|8000.00")
}

func TestEmptyFleet(t *testing.T) {
	engine, out := newEngine(t, false)
	ctx := context.Background()

	require.NoError(t, engine.Resources(ctx))
	require.NoError(t, engine.MostFlights(ctx))
	require.NoError(t, engine.MostEarnings(ctx))
	require.NoError(t, engine.CodeSummary(ctx, model.FlightSpecial))

	got := out.String()
	assert.Contains(t, got, "No helicopters found.")
	assert.Contains(t, got, "No flights recorded to rank helicopters.")
	assert.Contains(t, got, "No flights recorded to rank crews.")
	assert.Contains(t, got, "No special flights recorded.")
}

func TestPilotEarningsCarriesBasis(t *testing.T) {
	engine, out := newEngine(t, true)
	ctx := context.Background()
	period := storage.Period{From: "2024-01-01", To: "2024-12-31"}

	result, err := engine.QueryPilotEarnings(ctx, 1, period, storage.CrewFlightFilter{})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, report.BasisHelicopter, result.Basis)
	assert.InDelta(t, 8000.0, result.Total, 1e-9)

	require.NoError(t, engine.PilotEarnings(ctx, 1, period, storage.CrewFlightFilter{FlightIDs: []int64{2, 3}}))
	assert.Contains(t, out.String(), "pilot 1 for flights (2,3) from 2024-01-01 to 2024-12-31: 8000.00")
	assert.Contains(t, out.String(), "Individual pilot accruals are not stored.")

	out.Reset()
	require.NoError(t, engine.PilotEarnings(ctx, 3, period, storage.CrewFlightFilter{Code: model.FlightSpecial}))
	assert.Contains(t, out.String(), "No earnings found for the helicopter of pilot 3 for 'special' flights")
}

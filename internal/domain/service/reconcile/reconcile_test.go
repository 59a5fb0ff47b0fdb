package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/domain/service/reconcile"
	"bumpwatch/internal/domain/value"
	"bumpwatch/internal/infrastructure/reference"
	"bumpwatch/internal/infrastructure/source"
)

type fakeSchedule struct {
	res   source.Result
	calls int
}

func (f *fakeSchedule) FetchDepartures(_ context.Context, _ string, _ time.Time) source.Result {
	f.calls++
	return f.res
}

type fakeLive struct {
	res source.Result
}

func (f *fakeLive) FetchRoute(_ context.Context, _, _ string) source.Result {
	return f.res
}

type fakeHistorical struct {
	res   source.Result
	calls int
}

func (f *fakeHistorical) FetchDepartures(_ context.Context, _ value.AirportCode, _ time.Time) source.Result {
	f.calls++
	return f.res
}

type fakeRoutes struct {
	lookups map[string]source.RouteLookup
	calls   int
}

func (f *fakeRoutes) Lookup(_ context.Context, callsign string) source.RouteLookup {
	f.calls++
	return f.lookups[callsign]
}

func mustAirport(t *testing.T, code string) value.AirportCode {
	t.Helper()

	a, err := value.ParseAirportCode(code)
	require.NoError(t, err)

	return a
}

func newTestEngine(sched *fakeSchedule, live *fakeLive, hist *fakeHistorical, routes *fakeRoutes) *reconcile.Engine {
	if sched == nil {
		sched = &fakeSchedule{}
	}
	if live == nil {
		live = &fakeLive{}
	}
	if hist == nil {
		hist = &fakeHistorical{}
	}
	if routes == nil {
		routes = &fakeRoutes{}
	}

	return reconcile.NewEngine(sched, live, hist, routes, reference.NewStore())
}

func TestReconcileRoute_ScheduleAuthoritative(t *testing.T) {
	rq := require.New(t)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	sched := &fakeSchedule{res: source.Result{Records: []entity.RawFlight{
		{
			FlightNumber: value.FlightNumber{IATA: "DL", Number: 123},
			CarrierIATA:  "DL",
			Origin:       "ATL",
			Destination:  "LGA",
			Departure:    date.Add(18 * time.Hour),
		},
		{
			FlightNumber: value.FlightNumber{IATA: "DL", Number: 404},
			CarrierIATA:  "DL",
			Origin:       "ATL",
			Destination:  "BOS", // other route, counted but not returned
			Departure:    date.Add(12 * time.Hour),
		},
	}}}
	hist := &fakeHistorical{res: source.Result{Records: []entity.RawFlight{
		{Callsign: "DAL9999", CarrierICAO: "DAL", Origin: "ATL", EstimatedDestination: "LGA"},
	}}}

	e := newTestEngine(sched, nil, hist, nil)
	res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

	rq.Empty(res.Error)
	rq.Len(res.Flights, 1)
	rq.Equal("DL123", res.Flights[0].FlightNumber.String())
	rq.True(res.Flights[0].Verified)
	rq.Equal(entity.VerifiedBySchedule, res.Flights[0].VerificationSource)
	rq.Equal([]entity.DataSource{entity.SourceSchedule}, res.DataSources)
	rq.Equal(2, res.TotalDepartures)
	rq.Equal(1, res.VerifiedCount)

	rq.Zero(hist.calls, "historical tier must not run when the schedule matched")
}

func TestReconcileRoute_LiveEnrichesScheduledFlight(t *testing.T) {
	rq := require.New(t)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	sched := &fakeSchedule{res: source.Result{Records: []entity.RawFlight{
		{
			FlightNumber: value.FlightNumber{IATA: "DL", Number: 123},
			CarrierIATA:  "DL",
			Origin:       "ATL",
			Destination:  "LGA",
			Departure:    date.Add(18 * time.Hour),
		},
	}}}
	live := &fakeLive{res: source.Result{Records: []entity.RawFlight{
		{
			Callsign:     "DAL123",
			FlightNumber: value.FlightNumber{IATA: "DL", Number: 123},
			CarrierICAO:  "DAL",
			Origin:       "ATL",
			Destination:  "LGA",
			AircraftCode: "B738",
			TailNumber:   "N301DN",
			Live:         true,
			TrackingRef:  "2f8a1c",
		},
	}}}

	e := newTestEngine(sched, live, nil, nil)
	res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

	rq.Len(res.Flights, 1)

	f := res.Flights[0]
	rq.Equal("airborne", f.LiveStatus)
	rq.Equal("N301DN", f.TailNumber)
	rq.Equal("B738", f.AircraftCode)
	rq.Equal("2f8a1c", f.TrackingRef)
	rq.Equal(entity.VerifiedBySchedule, f.VerificationSource, "enrichment must not demote the tier")
	rq.ElementsMatch([]entity.DataSource{entity.SourceSchedule, entity.SourceLive}, res.DataSources)
}

func TestReconcileRoute_LiveInsertsUnscheduledFlight(t *testing.T) {
	rq := require.New(t)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	sched := &fakeSchedule{res: source.Result{Records: []entity.RawFlight{
		{
			FlightNumber: value.FlightNumber{IATA: "DL", Number: 123},
			CarrierIATA:  "DL",
			Origin:       "ATL",
			Destination:  "LGA",
			Departure:    date.Add(18 * time.Hour),
		},
	}}}
	live := &fakeLive{res: source.Result{Records: []entity.RawFlight{
		{
			Callsign:    "DAL2716",
			CarrierICAO: "DAL",
			Origin:      "ATL",
			Destination: "LGA",
			Departure:   date.Add(11 * time.Hour),
			Live:        true,
		},
		{
			Callsign:    "XXX123", // unknown carrier, rejected
			Origin:      "ATL",
			Destination: "LGA",
			Live:        true,
		},
	}}}

	e := newTestEngine(sched, live, nil, nil)
	res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

	rq.Len(res.Flights, 2)

	// sorted by departure: the live insert leaves before the scheduled one
	rq.Equal("DL2716", res.Flights[0].FlightNumber.String())
	rq.True(res.Flights[0].Verified)
	rq.Equal(entity.VerifiedByLive, res.Flights[0].VerificationSource)
	rq.Equal("airborne", res.Flights[0].LiveStatus)
	rq.Equal("DL123", res.Flights[1].FlightNumber.String())
}

func TestReconcileRoute_HistoricalFallback(t *testing.T) {
	rq := require.New(t)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	hist := &fakeHistorical{res: source.Result{Records: []entity.RawFlight{
		{Callsign: "DAL488", CarrierICAO: "DAL", Origin: "ATL", Departure: date.Add(13 * time.Hour), EstimatedDestination: "JFK"},
		{Callsign: "EDV5214", CarrierICAO: "EDV", Origin: "ATL", Departure: date.Add(15 * time.Hour), EstimatedDestination: "LGA"},
		{Callsign: "DAL721", CarrierICAO: "DAL", Origin: "ATL", Departure: date.Add(16 * time.Hour), EstimatedDestination: "LGA"},
		{Callsign: "ZZZ99", Origin: "ATL", EstimatedDestination: "LGA"}, // unknown carrier, never verified
	}}}
	routes := &fakeRoutes{lookups: map[string]source.RouteLookup{
		"DAL488": {Found: true, Origin: "ATL", Destination: "LGA"}, // confirmed despite wrong estimate
		"DAL721": {Found: true, Origin: "ATL", Destination: "BOS"}, // confirmed elsewhere, rejected
		// EDV5214 absent: no route on file, estimate decides
	}}

	e := newTestEngine(&fakeSchedule{}, nil, hist, routes)
	res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

	rq.Len(res.Flights, 2)

	rq.Equal("DL488", res.Flights[0].FlightNumber.String())
	rq.True(res.Flights[0].Verified)
	rq.Equal(entity.VerifiedByRoute, res.Flights[0].VerificationSource)

	rq.Equal("DL5214", res.Flights[1].FlightNumber.String())
	rq.False(res.Flights[1].Verified)
	rq.Equal(entity.VerifiedByEstimate, res.Flights[1].VerificationSource)
	rq.True(res.Flights[1].IsRegional)

	rq.Equal(3, routes.calls, "only scorable carriers are verified")
	rq.Equal([]entity.DataSource{entity.SourceHistorical}, res.DataSources)
	rq.Equal(1, res.VerifiedCount)
	rq.Equal(3, res.TotalDepartures)
}

func TestReconcileRoute_DedupAcrossTiers(t *testing.T) {
	rq := require.New(t)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	hist := &fakeHistorical{res: source.Result{Records: []entity.RawFlight{
		{Callsign: "DAL488", CarrierICAO: "DAL", Origin: "ATL", Departure: date.Add(13 * time.Hour), EstimatedDestination: "LGA"},
		{Callsign: "DAL0488", CarrierICAO: "DAL", Origin: "ATL", Departure: date.Add(13 * time.Hour), EstimatedDestination: "LGA"},
	}}}
	routes := &fakeRoutes{lookups: map[string]source.RouteLookup{
		"DAL488":  {Found: true, Origin: "ATL", Destination: "LGA"},
		"DAL0488": {Found: true, Origin: "ATL", Destination: "LGA"},
	}}

	e := newTestEngine(&fakeSchedule{}, nil, hist, routes)
	res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

	rq.Len(res.Flights, 1, "callsigns normalizing to the same flight must merge")
}

func TestReconcileRoute_RateLimitFlags(t *testing.T) {
	rq := require.New(t)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("schedule rate limited still tries other tiers", func(t *testing.T) {
		sched := &fakeSchedule{res: source.Result{RateLimited: true}}
		hist := &fakeHistorical{res: source.Result{RateLimited: true}}

		e := newTestEngine(sched, nil, hist, nil)
		res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

		rq.True(res.RateLimited)
		rq.True(res.HistoricalRateLimited)
		rq.Equal(1, hist.calls)
		rq.Empty(res.Flights)
		rq.Contains(res.Error, "rate limited")
	})

	t.Run("no data and no throttling reads as empty route", func(t *testing.T) {
		e := newTestEngine(nil, nil, nil, nil)
		res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

		rq.False(res.RateLimited)
		rq.Equal("no flight data available for this route and date", res.Error)
	})
}

func TestReconcileRoute_SortedByDeparture(t *testing.T) {
	rq := require.New(t)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	sched := &fakeSchedule{res: source.Result{Records: []entity.RawFlight{
		{FlightNumber: value.FlightNumber{IATA: "DL", Number: 3}, CarrierIATA: "DL", Origin: "ATL", Destination: "LGA", Departure: date.Add(20 * time.Hour)},
		{FlightNumber: value.FlightNumber{IATA: "DL", Number: 1}, CarrierIATA: "DL", Origin: "ATL", Destination: "LGA", Departure: date.Add(8 * time.Hour)},
		{FlightNumber: value.FlightNumber{IATA: "DL", Number: 2}, CarrierIATA: "DL", Origin: "ATL", Destination: "LGA", Departure: date.Add(14 * time.Hour)},
	}}}

	e := newTestEngine(sched, nil, nil, nil)
	res := e.ReconcileRoute(context.Background(), mustAirport(t, "ATL"), mustAirport(t, "LGA"), date)

	rq.Len(res.Flights, 3)
	for i := 1; i < len(res.Flights); i++ {
		rq.False(res.Flights[i].Departure.Before(res.Flights[i-1].Departure))
	}
}

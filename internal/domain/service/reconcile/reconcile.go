// Package reconcile merges the four upstream adapters into one deduplicated
// departure list for a route. Schedule data is authoritative; the live feed
// enriches or extends it; historical data with route verification is a
// fallback used only when the schedule produced nothing.
package reconcile

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/domain/value"
	"bumpwatch/internal/infrastructure/source"
	"bumpwatch/pkg/contextx"
	"bumpwatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultVerifyConcurrency = 5

type ScheduleSource interface {
	FetchDepartures(ctx context.Context, origin string, date time.Time) source.Result
}

type LiveSource interface {
	FetchRoute(ctx context.Context, origin, destination string) source.Result
}

type HistoricalSource interface {
	FetchDepartures(ctx context.Context, origin value.AirportCode, date time.Time) source.Result
}

type RouteVerifier interface {
	Lookup(ctx context.Context, callsign string) source.RouteLookup
}

// CarrierDirectory is the slice of reference data reconciliation needs:
// resolving operating codes to marketing carriers and filtering out
// carriers this system does not score.
type CarrierDirectory interface {
	CarrierByIATA(code string) (entity.CarrierStats, bool)
	CarrierByICAO(code string) (entity.CarrierStats, bool)
	IsRegionalOperator(icao string) bool
}

// Result is the reconciled outcome for one route and date. Flights are
// unique by identity and sorted by departure. RateLimited covers the
// schedule and live feeds; HistoricalRateLimited is kept separate because
// the historical upstream throttles far more aggressively and the caller
// words its guidance differently.
type Result struct {
	Flights               []entity.Flight     `json:"flights"`
	RateLimited           bool                `json:"rateLimited"`
	HistoricalRateLimited bool                `json:"openskyRateLimited"`
	Error                 string              `json:"error,omitempty"`
	DataSources           []entity.DataSource `json:"dataSources"`
	VerifiedCount         int                 `json:"verifiedCount"`
	TotalDepartures       int                 `json:"totalDepartures"`
}

type Engine struct {
	schedule   ScheduleSource
	live       LiveSource
	historical HistoricalSource
	routes     RouteVerifier
	carriers   CarrierDirectory

	verifyConcurrency int
}

func NewEngine(
	schedule ScheduleSource,
	live LiveSource,
	historical HistoricalSource,
	routes RouteVerifier,
	carriers CarrierDirectory,
) *Engine {
	return &Engine{
		schedule:          schedule,
		live:              live,
		historical:        historical,
		routes:            routes,
		carriers:          carriers,
		verifyConcurrency: defaultVerifyConcurrency,
	}
}

func (e *Engine) WithVerifyConcurrency(n int) *Engine {
	if n > 0 {
		e.verifyConcurrency = n
	}
	return e
}

// ReconcileRoute builds the departure list for origin->destination on the
// given date. Adapter failures never abort the merge: each tier contributes
// what it can and the flags record what was unavailable.
func (e *Engine) ReconcileRoute(ctx context.Context, origin, destination value.AirportCode, date time.Time) Result {
	var res Result

	index := newFlightIndex()

	scheduleHits := e.mergeSchedule(ctx, &res, index, origin, destination, date)
	e.mergeLive(ctx, &res, index, origin, destination)

	// The historical tier only runs when the schedule produced nothing for
	// this route. Historical candidates are noisier than a single missing
	// schedule row, so a non-empty schedule always wins.
	if scheduleHits == 0 {
		e.mergeHistorical(ctx, &res, index, origin, destination, date)
	}

	res.Flights = index.sorted()
	for _, f := range res.Flights {
		if f.Verified {
			res.VerifiedCount++
		}
	}

	if len(res.Flights) == 0 {
		res.Error = e.emptyMessage(res)
	}

	logger(ctx).Info("route reconciled",
		logx.FieldOrigin, origin.String(),
		logx.FieldDestination, destination.String(),
		logx.FieldFlights, len(res.Flights),
		"verified", res.VerifiedCount,
		"rate_limited", res.RateLimited || res.HistoricalRateLimited,
	)

	return res
}

// mergeSchedule runs the authoritative tier and returns how many flights it
// contributed; that count decides whether the historical fallback runs.
func (e *Engine) mergeSchedule(
	ctx context.Context,
	res *Result,
	index *flightIndex,
	origin, destination value.AirportCode,
	date time.Time,
) int {
	sched := e.schedule.FetchDepartures(ctx, origin.String(), date)

	res.RateLimited = res.RateLimited || sched.RateLimited
	if sched.Error != "" {
		logger(ctx).Warn("schedule source failed", "error", sched.Error, logx.FieldOrigin, origin.String())
	}

	res.TotalDepartures += len(sched.Records)

	hits := 0
	for _, raw := range sched.Records {
		if raw.Destination != destination.String() {
			continue
		}

		f, ok := e.newFlight(raw, entity.SourceSchedule, entity.VerifiedBySchedule, true)
		if !ok {
			continue
		}

		if index.insert(f) {
			hits++
		}
	}

	if hits > 0 {
		res.DataSources = append(res.DataSources, entity.SourceSchedule)
	}

	return hits
}

// mergeLive overlays the live feed: records matching an indexed flight
// enrich it in place, unmatched scorable records are inserted as already
// airborne departures the schedule missed.
func (e *Engine) mergeLive(
	ctx context.Context,
	res *Result,
	index *flightIndex,
	origin, destination value.AirportCode,
) {
	live := e.live.FetchRoute(ctx, origin.String(), destination.String())

	res.RateLimited = res.RateLimited || live.RateLimited
	if live.Error != "" {
		logger(ctx).Warn("live source failed", "error", live.Error, logx.FieldOrigin, origin.String())
	}

	contributed := false

	for _, raw := range live.Records {
		f, ok := e.newFlight(raw, entity.SourceLive, entity.VerifiedByLive, true)
		if !ok {
			continue
		}

		if existing := index.find(f); existing != nil {
			enrichFromLive(existing, raw)
			contributed = true
			continue
		}

		f.LiveStatus = "airborne"
		if index.insert(f) {
			contributed = true
		}
	}

	if contributed {
		res.DataSources = append(res.DataSources, entity.SourceLive)
	}
}

// mergeHistorical runs the fallback tier: historical departures from the
// origin, filtered to scorable carriers, each verified against the route
// directory with bounded concurrency. A confirmed route yields a verified
// flight; when the directory has nothing, the feed's own destination
// estimate is accepted as an unverified last resort.
func (e *Engine) mergeHistorical(
	ctx context.Context,
	res *Result,
	index *flightIndex,
	origin, destination value.AirportCode,
	date time.Time,
) {
	hist := e.historical.FetchDepartures(ctx, origin, date)

	res.HistoricalRateLimited = hist.RateLimited
	if hist.Error != "" {
		logger(ctx).Warn("historical source failed", "error", hist.Error, logx.FieldOrigin, origin.String())
	}

	candidates := make([]entity.RawFlight, 0, len(hist.Records))
	for _, raw := range hist.Records {
		if _, ok := e.carriers.CarrierByICAO(raw.CarrierICAO); ok {
			candidates = append(candidates, raw)
		}
	}

	res.TotalDepartures += len(candidates)

	lookups := make([]source.RouteLookup, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.verifyConcurrency)

	for i, raw := range candidates {
		g.Go(func() error {
			lookups[i] = e.routes.Lookup(gctx, raw.Callsign)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // lookups never return errors

	contributed := false

	for i, raw := range candidates {
		lk := lookups[i]

		switch {
		case lk.Found && lk.Origin == origin.String() && lk.Destination == destination.String():
			if f, ok := e.newFlight(raw, entity.SourceHistorical, entity.VerifiedByRoute, true); ok && index.insert(f) {
				contributed = true
			}

		case !lk.Found && raw.EstimatedDestination == destination.String():
			if f, ok := e.newFlight(raw, entity.SourceHistorical, entity.VerifiedByEstimate, false); ok && index.insert(f) {
				contributed = true
			}
		}
	}

	if contributed {
		res.DataSources = append(res.DataSources, entity.SourceHistorical)
	}
}

// newFlight normalizes a raw adapter record into a flight, resolving the
// marketing carrier. Records whose carrier this system does not score are
// rejected here, at the single choke point every tier passes through.
func (e *Engine) newFlight(
	raw entity.RawFlight,
	src entity.DataSource,
	verification entity.VerificationSource,
	verified bool,
) (entity.Flight, bool) {
	cs := value.ParseCallsign(raw.Callsign)

	carrier, ok := e.resolveCarrier(raw, cs)
	if !ok {
		return entity.Flight{}, false
	}

	number := raw.FlightNumber
	if number.IsZero() && cs.Type == value.IcaoFlightNumber {
		number = value.FlightNumber{IATA: carrier.IATA, Number: cs.Number}
	}

	operating := raw.CarrierICAO
	if operating == "" {
		operating = cs.IcaoPrefix
	}

	return entity.Flight{
		FlightNumber:       number,
		Callsign:           cs.String(),
		OperatingCarrier:   operating,
		MarketingCarrier:   carrier.IATA,
		Origin:             raw.Origin,
		Destination:        raw.Destination,
		Departure:          raw.Departure,
		AircraftCode:       raw.AircraftCode,
		TailNumber:         raw.TailNumber,
		Verified:           verified,
		VerificationSource: verification,
		IsRegional:         e.carriers.IsRegionalOperator(operating),
		DataSource:         src,
		TrackingRef:        raw.TrackingRef,
	}, true
}

func (e *Engine) resolveCarrier(raw entity.RawFlight, cs value.Callsign) (entity.CarrierStats, bool) {
	if raw.CarrierIATA != "" {
		return e.carriers.CarrierByIATA(raw.CarrierIATA)
	}
	if raw.FlightNumber.IATA != "" {
		return e.carriers.CarrierByIATA(raw.FlightNumber.IATA)
	}
	if raw.CarrierICAO != "" {
		return e.carriers.CarrierByICAO(raw.CarrierICAO)
	}
	if cs.Type == value.IcaoFlightNumber {
		return e.carriers.CarrierByICAO(cs.IcaoPrefix)
	}

	return entity.CarrierStats{}, false
}

// enrichFromLive folds a live track into an already indexed flight without
// demoting its verification tier.
func enrichFromLive(f *entity.Flight, raw entity.RawFlight) {
	f.LiveStatus = "airborne"

	if f.TailNumber == "" {
		f.TailNumber = raw.TailNumber
	}
	if f.AircraftCode == "" {
		f.AircraftCode = raw.AircraftCode
	}
	if f.TrackingRef == "" {
		f.TrackingRef = raw.TrackingRef
	}
}

func (e *Engine) emptyMessage(res Result) string {
	switch {
	case res.HistoricalRateLimited && !res.RateLimited:
		return "historical flight data is rate limited right now; results may appear after a few minutes"
	case res.RateLimited || res.HistoricalRateLimited:
		return "flight data sources are rate limited right now; try again in a few minutes"
	default:
		return "no flight data available for this route and date"
	}
}

// flightIndex enforces the identity invariant: at most one flight per
// flight number and at most one per normalized callsign.
type flightIndex struct {
	byNumber   map[string]*entity.Flight
	byCallsign map[string]*entity.Flight
	flights    []*entity.Flight
}

func newFlightIndex() *flightIndex {
	return &flightIndex{
		byNumber:   map[string]*entity.Flight{},
		byCallsign: map[string]*entity.Flight{},
	}
}

func (ix *flightIndex) find(f entity.Flight) *entity.Flight {
	if key := f.FlightNumber.String(); key != "" {
		if existing, ok := ix.byNumber[key]; ok {
			return existing
		}
	}
	if f.Callsign != "" {
		if existing, ok := ix.byCallsign[f.Callsign]; ok {
			return existing
		}
	}

	return nil
}

// insert adds the flight unless an equivalent one is already indexed.
func (ix *flightIndex) insert(f entity.Flight) bool {
	if ix.find(f) != nil {
		return false
	}

	stored := &f
	ix.flights = append(ix.flights, stored)

	if key := f.FlightNumber.String(); key != "" {
		ix.byNumber[key] = stored
	}
	if f.Callsign != "" {
		ix.byCallsign[f.Callsign] = stored
	}

	return true
}

func (ix *flightIndex) sorted() []entity.Flight {
	out := make([]entity.Flight, len(ix.flights))
	for i, f := range ix.flights {
		out[i] = *f
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Departure.Before(out[j].Departure)
	})

	return out
}

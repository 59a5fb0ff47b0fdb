// Package score turns reconciled flights into bounded bump-risk scores.
// Every input signal is injected; the engine itself is deterministic given
// its providers, and every factor it weighs is kept on the result even at
// zero points so a score can always be explained.
package score

import (
	"context"
	"sort"
	"time"

	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/domain/service/reconcile"
	"bumpwatch/internal/domain/value"
	"bumpwatch/internal/infrastructure/reference"
	"bumpwatch/pkg/contextx"
	"bumpwatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	basePoints = 25

	minScore = 5
	maxScore = 98
)

type Reconciler interface {
	ReconcileRoute(ctx context.Context, origin, destination value.AirportCode, date time.Time) reconcile.Result
}

// WeatherProvider reports weather severity at an airport in [0,10].
type WeatherProvider interface {
	Severity(ctx context.Context, airport string) float64
}

// DisruptionProvider reports operational disruption at an airport in [0,10].
type DisruptionProvider interface {
	Disruption(ctx context.Context, airport string) float64
}

// CalendarProvider reports holiday travel pressure for a date.
type CalendarProvider interface {
	Intensity(date time.Time) float64
	IsPeakDay(date time.Time) bool
}

type Engine struct {
	recon      Reconciler
	ref        *reference.Store
	weather    WeatherProvider
	disruption DisruptionProvider
	calendar   CalendarProvider
}

func NewEngine(
	recon Reconciler,
	ref *reference.Store,
	weather WeatherProvider,
	disruption DisruptionProvider,
	calendar CalendarProvider,
) *Engine {
	return &Engine{
		recon:      recon,
		ref:        ref,
		weather:    weather,
		disruption: disruption,
		calendar:   calendar,
	}
}

// RouteScores is the scored view of a route: flights ordered by descending
// bump score, plus the reconciliation metadata the caller surfaces.
type RouteScores struct {
	Flights         []entity.ScoredFlight `json:"flights"`
	DataSources     []entity.DataSource   `json:"dataSources"`
	VerifiedCount   int                   `json:"verifiedCount"`
	TotalDepartures int                   `json:"totalDepartures"`
	Message         string                `json:"message,omitempty"`
}

// ScoreRoute reconciles the route and scores every flight on it.
func (e *Engine) ScoreRoute(ctx context.Context, origin, destination value.AirportCode, date time.Time) RouteScores {
	rec := e.recon.ReconcileRoute(ctx, origin, destination, date)

	out := RouteScores{
		Flights:         make([]entity.ScoredFlight, 0, len(rec.Flights)),
		DataSources:     rec.DataSources,
		VerifiedCount:   rec.VerifiedCount,
		TotalDepartures: rec.TotalDepartures,
		Message:         rec.Error,
	}

	for _, f := range rec.Flights {
		out.Flights = append(out.Flights, e.ScoreFlight(ctx, f))
	}

	sort.SliceStable(out.Flights, func(i, j int) bool {
		return out.Flights[i].BumpScore > out.Flights[j].BumpScore
	})

	logger(ctx).Info("route scored",
		logx.FieldOrigin, origin.String(),
		logx.FieldDestination, destination.String(),
		logx.FieldFlights, len(out.Flights),
	)

	return out
}

// ScoreFlight computes the bump score for a single flight. The score is the
// clamped sum of independent factors; the factor list always has the same
// shape so two scores are comparable line by line.
func (e *Engine) ScoreFlight(ctx context.Context, f entity.Flight) entity.ScoredFlight {
	aircraft := e.resolveAircraft(f)
	f.Aircraft = aircraft

	load := e.ref.RouteLoadFactor(f.Origin, f.Destination)
	peak := e.calendar.IsPeakDay(f.Departure)

	factors := []entity.Factor{
		baseFactor(),
		e.carrierFactor(f.MarketingCarrier),
		loadFactorFactor(load, peak),
		dayOfWeekFactor(f.Departure, load.Leisure),
		timeOfDayFactor(f.Departure),
		aircraftFactor(aircraft),
		weatherFactor(e.weather.Severity(ctx, f.Origin), e.weather.Severity(ctx, f.Destination)),
		disruptionFactor(e.disruption.Disruption(ctx, f.Origin)),
		holidayFactor(e.calendar.Intensity(f.Departure)),
		hubFactor(e.ref.IsFortressHub(f.MarketingCarrier, f.Origin), f.MarketingCarrier, f.Origin),
	}

	total := 0
	for _, fc := range factors {
		total += fc.Points
	}

	return entity.ScoredFlight{
		Flight:    f,
		BumpScore: clamp(total, minScore, maxScore),
		Factors:   factors,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

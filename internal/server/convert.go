package server

import (
	"time"

	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/domain/service/reconcile"
	"bumpwatch/internal/domain/service/score"
	"bumpwatch/pkg/lox"
	"bumpwatch/pkg/rest"
)

func newRESTFlight(f entity.Flight) rest.Flight {
	out := rest.Flight{
		FlightNumber:       f.FlightNumber.String(),
		Callsign:           f.Callsign,
		OperatingCarrier:   f.OperatingCarrier,
		MarketingCarrier:   f.MarketingCarrier,
		Origin:             f.Origin,
		Destination:        f.Destination,
		Aircraft:           f.Aircraft.Name,
		AircraftSeats:      f.Aircraft.Seats,
		TailNumber:         f.TailNumber,
		Verified:           f.Verified,
		VerificationSource: string(f.VerificationSource),
		IsRegional:         f.IsRegional,
		DataSource:         string(f.DataSource),
		LiveStatus:         f.LiveStatus,
	}

	if f.Aircraft.Name == "" {
		out.Aircraft = f.AircraftCode
	}

	if !f.Departure.IsZero() {
		out.Departure = f.Departure.UTC().Format(time.RFC3339)
	}

	return out
}

func newRESTRouteFlights(result reconcile.Result) rest.RouteFlights {
	return rest.RouteFlights{
		Flights:            lox.Map(result.Flights, newRESTFlight),
		DataSources:        dataSourceNames(result.DataSources),
		VerifiedCount:      result.VerifiedCount,
		TotalDepartures:    result.TotalDepartures,
		RateLimited:        result.RateLimited,
		OpenskyRateLimited: result.HistoricalRateLimited,
		Message:            result.Error,
	}
}

func newRESTRouteScores(scores score.RouteScores) rest.RouteScores {
	out := rest.RouteScores{
		Flights:         make([]rest.ScoredFlight, 0, len(scores.Flights)),
		DataSources:     dataSourceNames(scores.DataSources),
		VerifiedCount:   scores.VerifiedCount,
		TotalDepartures: scores.TotalDepartures,
		Message:         scores.Message,
	}

	for _, f := range scores.Flights {
		out.Flights = append(out.Flights, rest.ScoredFlight{
			Flight:    newRESTFlight(f.Flight),
			BumpScore: f.BumpScore,
			Factors:   lox.Map(f.Factors, func(fc entity.Factor) rest.Factor { return rest.Factor(fc) }),
		})
	}

	return out
}

func dataSourceNames(sources []entity.DataSource) []string {
	return lox.Map(sources, func(s entity.DataSource) string { return string(s) })
}

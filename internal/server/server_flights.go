package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"git.appkode.ru/pub/go/failure"

	"bumpwatch/internal/domain/service/reconcile"
	"bumpwatch/internal/domain/service/score"
	"bumpwatch/internal/domain/value"
	"bumpwatch/pkg/errcodes"
	"bumpwatch/pkg/httpx/reply"
	"bumpwatch/pkg/httpx/req"
	"bumpwatch/pkg/rest"
)

const dateLayout = "2006-01-02"

type reconcileService interface {
	ReconcileRoute(ctx context.Context, origin, destination value.AirportCode, date time.Time) reconcile.Result
}

type scoreService interface {
	ScoreRoute(ctx context.Context, origin, destination value.AirportCode, date time.Time) score.RouteScores
}

// prefetchService accepts cache-warming work; the call returns immediately
// and the warm happens in the background.
type prefetchService interface {
	Enqueue(origin, destination value.AirportCode, date time.Time) bool
}

type FlightServer struct {
	reconcileService reconcileService
	scoreService     scoreService
	prefetchService  prefetchService
}

func NewFlightServer(
	reconcileService reconcileService,
	scoreService scoreService,
	prefetchService prefetchService,
) FlightServer {
	return FlightServer{
		reconcileService: reconcileService,
		scoreService:     scoreService,
		prefetchService:  prefetchService,
	}
}

func (s FlightServer) getV1RouteFlights(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	origin, destination, err := routeFromPath(r)
	if err != nil {
		return err
	}

	date, err := dateFromQuery(r)
	if err != nil {
		return err
	}

	result := s.reconcileService.ReconcileRoute(ctx, origin, destination, date)

	reply.JSON(ctx, w, http.StatusOK, newRESTRouteFlights(result))

	return nil
}

func (s FlightServer) getV1RouteScores(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	origin, destination, err := routeFromPath(r)
	if err != nil {
		return err
	}

	date, err := dateFromQuery(r)
	if err != nil {
		return err
	}

	scores := s.scoreService.ScoreRoute(ctx, origin, destination, date)

	reply.JSON(ctx, w, http.StatusOK, newRESTRouteScores(scores))

	return nil
}

func (s FlightServer) postV1Prefetch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PrefetchRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	date := time.Now().UTC()
	if request.Date != "" {
		parsed, err := time.Parse(dateLayout, request.Date)
		if err != nil {
			return failure.NewInvalidArgumentErrorFromError(
				fmt.Errorf("time.Parse: %w", err),
				failure.WithCode(errcodes.InvalidFlightDate),
			)
		}
		date = parsed
	}

	accepted := 0

	for _, route := range request.Routes {
		origin, destination, err := parseRoutePair(route)
		if err != nil {
			return failure.NewInvalidArgumentErrorFromError(
				fmt.Errorf("parseRoutePair: %w", err),
				failure.WithCode(errcodes.InvalidRoute),
			)
		}

		if s.prefetchService.Enqueue(origin, destination, date) {
			accepted++
		}
	}

	reply.JSON(ctx, w, http.StatusAccepted, rest.PrefetchResponse{Accepted: accepted})

	return nil
}

func routeFromPath(r *http.Request) (origin, destination value.AirportCode, err error) {
	origin, err = value.ParseAirportCode(r.PathValue("origin"))
	if err != nil {
		return origin, destination, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseAirportCode: %w", err),
			failure.WithCode(errcodes.InvalidAirportCode),
		)
	}

	destination, err = value.ParseAirportCode(r.PathValue("destination"))
	if err != nil {
		return origin, destination, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseAirportCode: %w", err),
			failure.WithCode(errcodes.InvalidAirportCode),
		)
	}

	if origin == destination {
		return origin, destination, failure.NewInvalidArgumentError(
			"origin and destination match",
			failure.WithCode(errcodes.InvalidRoute),
			failure.WithDescription("Origin and destination must differ"),
		)
	}

	return origin, destination, nil
}

func dateFromQuery(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("time.Parse: %w", err),
			failure.WithCode(errcodes.InvalidFlightDate),
		)
	}

	return date, nil
}

func parseRoutePair(route string) (origin, destination value.AirportCode, err error) {
	from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(route)), "-")
	if !ok {
		return origin, destination, fmt.Errorf("route %q is not ORG-DST", route)
	}

	origin, err = value.ParseAirportCode(from)
	if err != nil {
		return origin, destination, fmt.Errorf("value.ParseAirportCode: %w", err)
	}

	destination, err = value.ParseAirportCode(to)
	if err != nil {
		return origin, destination, fmt.Errorf("value.ParseAirportCode: %w", err)
	}

	return origin, destination, nil
}

// Package worker runs the background route scanner: it keeps the caches for
// a configured set of routes warm and absorbs prefetch requests from the
// API so an interactive lookup almost always lands on cached data.
package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"bumpwatch/internal/domain/service/reconcile"
	"bumpwatch/internal/domain/value"
	"bumpwatch/pkg/contextx"
	"bumpwatch/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const prefetchQueueSize = 64

type flightWarmer interface {
	ReconcileRoute(ctx context.Context, origin, destination value.AirportCode, date time.Time) reconcile.Result
}

type prefetchJob struct {
	origin      value.AirportCode
	destination value.AirportCode
	date        time.Time
}

// RouteScanner periodically reconciles a fixed route list and drains
// one-off prefetch jobs in between. Warming goes through the same engine
// the API uses, so every adapter's own cache and pacing applies.
type RouteScanner struct {
	warmer flightWarmer

	routes   []prefetchJob
	interval time.Duration
	queue    chan prefetchJob

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewRouteScanner(warmer flightWarmer) *RouteScanner {
	return &RouteScanner{
		warmer:   warmer,
		interval: 30 * time.Minute,
		queue:    make(chan prefetchJob, prefetchQueueSize),
	}
}

// WithRoutes sets the standing scan list from "ORG-DST" strings; entries
// that do not parse are dropped with a warning at scan time, not here.
func (w *RouteScanner) WithRoutes(routes []string) *RouteScanner {
	for _, route := range routes {
		job, ok := parseRoute(route)
		if ok {
			w.routes = append(w.routes, job)
		}
	}

	return w
}

func (w *RouteScanner) WithInterval(interval time.Duration) *RouteScanner {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

// Enqueue hands the scanner a one-off warming job. Returns false when the
// queue is full; prefetching is best effort and never blocks the caller.
func (w *RouteScanner) Enqueue(origin, destination value.AirportCode, date time.Time) bool {
	select {
	case w.queue <- prefetchJob{origin: origin, destination: destination, date: date}:
		return true
	default:
		return false
	}
}

func (w *RouteScanner) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("scanner is already running")
	}

	scanCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		w.run(scanCtx)
	}()

	return nil
}

func (w *RouteScanner) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *RouteScanner) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

func (w *RouteScanner) run(ctx context.Context) {
	logger(ctx).Info("route scanner started", "routes", len(w.routes), "interval", w.interval.String())

	// Warm the standing list once on startup instead of waiting a full tick.
	w.scanAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("route scanner stopped")
			return
		case job := <-w.queue:
			w.warm(ctx, job)
		case <-ticker.C:
			w.scanAll(ctx)
		}
	}
}

func (w *RouteScanner) scanAll(ctx context.Context) {
	for _, job := range w.routes {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job.date = time.Now().UTC()
		w.warm(ctx, job)
	}
}

func (w *RouteScanner) warm(ctx context.Context, job prefetchJob) {
	res := w.warmer.ReconcileRoute(ctx, job.origin, job.destination, job.date)

	logger(ctx).Debug("route warmed",
		logx.FieldOrigin, job.origin.String(),
		logx.FieldDestination, job.destination.String(),
		logx.FieldFlights, len(res.Flights),
		"rate_limited", res.RateLimited || res.HistoricalRateLimited,
	)
}

func parseRoute(route string) (prefetchJob, bool) {
	from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(route)), "-")
	if !ok {
		return prefetchJob{}, false
	}

	origin, err := value.ParseAirportCode(from)
	if err != nil {
		return prefetchJob{}, false
	}

	destination, err := value.ParseAirportCode(to)
	if err != nil {
		return prefetchJob{}, false
	}

	if origin == destination {
		return prefetchJob{}, false
	}

	return prefetchJob{origin: origin, destination: destination}, true
}

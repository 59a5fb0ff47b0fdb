package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"bumpwatch/internal/config"
	"bumpwatch/internal/domain/service/reconcile"
	"bumpwatch/internal/domain/service/score"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/internal/infrastructure/reference"
	"bumpwatch/internal/infrastructure/signals"
	"bumpwatch/internal/infrastructure/source"
	"bumpwatch/internal/server"
	"bumpwatch/internal/worker"
	"bumpwatch/pkg/application/connectors"
	"bumpwatch/pkg/application/modules"
	"bumpwatch/pkg/contextx"
	"bumpwatch/pkg/httpx"
	"bumpwatch/pkg/logx"
	"bumpwatch/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const memoryCacheSweepInterval = 10 * time.Minute

// Run wires the whole service and blocks until the context is canceled or a
// module fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	store, closeStore := newCacheStore(ctx, cfg.Redis)
	defer closeStore()

	masker := logx.NewSensitiveDataMasker()
	httpClient := func(timeout time.Duration) *http.Client {
		return &http.Client{
			Timeout: timeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithLogFieldMaxLen(cfg.App.LogRequestMaxLen),
				httpx.WithSensitiveDataMasker(masker),
			),
		}
	}

	ref := reference.NewStore()

	scheduleClient := source.NewScheduleClient(cfg.Sources.Schedule, store, httpClient(cfg.Sources.Schedule.Timeout))
	liveClient := source.NewLiveClient(cfg.Sources.Live, store, httpClient(cfg.Sources.Live.Timeout))
	historicalClient := source.NewHistoricalClient(
		cfg.Sources.Historical,
		store,
		source.NewPacer(cfg.Sources.Historical.MinInterval),
		httpClient(cfg.Sources.Historical.Timeout),
	)
	routeClient := source.NewRouteClient(cfg.Sources.Route, store, httpClient(cfg.Sources.Route.Timeout))

	weatherClient := signals.NewWeatherClient(cfg.Sources.Weather, store, httpClient(cfg.Sources.Weather.Timeout))
	airportClient := signals.NewAirportStatusClient(cfg.Sources.Airport, store, httpClient(cfg.Sources.Airport.Timeout))

	reconcileEngine := reconcile.NewEngine(scheduleClient, liveClient, historicalClient, routeClient, ref)
	scoreEngine := score.NewEngine(reconcileEngine, ref, weatherClient, airportClient, signals.NewCalendar())

	// The scanner always runs so it can drain API prefetch jobs; the
	// standing scan list is opt-in.
	scanner := worker.NewRouteScanner(reconcileEngine).WithInterval(cfg.Scanner.Interval)
	if cfg.Scanner.Enabled {
		scanner = scanner.WithRoutes(cfg.Scanner.Routes)
	}

	if err := scanner.Start(ctx); err != nil {
		return fmt.Errorf("scanner.Start: %w", err)
	}
	defer scanner.Stop()

	srv := server.NewServer(server.NewFlightServer(reconcileEngine, scoreEngine, scanner))

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.App.LogRequestMaxLen),
		middlewarex.ResponseLogging(masker, cfg.App.LogRequestMaxLen),
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.App.ShutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.App.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.App.MetricListenAddress}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// newCacheStore picks the cache backend: Redis when an address is
// configured, an in-process store otherwise.
func newCacheStore(ctx context.Context, cfg config.Redis) (cache.Store, func()) {
	if cfg.Address == "" {
		logger(ctx).Info("using in-process cache")
		return cache.NewMemory(memoryCacheSweepInterval), func() {}
	}

	rd := &connectors.Redis{ //nolint:exhaustruct
		Address:            cfg.Address,
		Username:           cfg.Username,
		Password:           cfg.Password,
		DatabaseNumber:     cfg.DatabaseNumber,
		PoolSize:           cfg.PoolSize,
		MinIdleConnections: cfg.MinIdleConnections,
		MaxIdleConnections: cfg.MaxIdleConnections,
	}

	return cache.NewRedis(rd.Client(ctx)), func() { rd.Close(ctx) }
}

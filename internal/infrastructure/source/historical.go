package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bumpwatch/internal/config"
	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/domain/value"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/pkg/logx"
)

const historicalSourceName = "historical"

// HistoricalClient is the per-airport recent-departures adapter, the
// scarcest of the four feeds. Every call in the process, regardless of
// airport, waits on one shared Pacer before touching the network. A 429
// reports rateLimited with zero records and is never retried synchronously.
type HistoricalClient struct {
	cfg    config.HistoricalSource
	store  cache.Store
	pacer  *Pacer
	client *http.Client
}

func NewHistoricalClient(cfg config.HistoricalSource, store cache.Store, pacer *Pacer, client *http.Client) *HistoricalClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &HistoricalClient{cfg: cfg, store: store, pacer: pacer, client: client}
}

// FetchDepartures returns observed departures from origin across the given
// day, with the upstream's own estimated arrival airports attached.
func (c *HistoricalClient) FetchDepartures(ctx context.Context, origin value.AirportCode, date time.Time) Result {
	day := date.UTC().Truncate(24 * time.Hour)
	key := cache.Key(historicalSourceName, origin.Icao(), day.Format("2006-01-02"))

	var cached []entity.RawFlight
	if c.store.Get(ctx, key, &cached) {
		cacheHitsTotal.WithLabelValues(historicalSourceName).Inc()
		return Result{Records: cached}
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return failed(fmt.Errorf("pacer.Wait: %w", err))
	}

	url := fmt.Sprintf("%s/flights/departure?airport=%s&begin=%d&end=%d",
		c.cfg.BaseURL, origin.Icao(), day.Unix(), day.Add(24*time.Hour).Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return failed(fmt.Errorf("http.NewRequest: %w", err))
	}

	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	var departures []historicalDeparture
	if err := getJSON(ctx, c.client, req, &departures); err != nil {
		if errors.Is(err, errUpstreamRateLimited) {
			logger(ctx).Warn("historical source rate limited", logx.FieldOrigin, origin.String())

			res := rateLimited()
			observeFetch(historicalSourceName, res)
			return res
		}

		logger(ctx).Warn("historical fetch failed",
			logx.Error(err),
			logx.FieldOrigin, origin.String(),
		)

		res := failed(err)
		observeFetch(historicalSourceName, res)
		return res
	}

	records := make([]entity.RawFlight, 0, len(departures))
	for _, dep := range departures {
		if rec, ok := mapHistoricalDeparture(origin, dep); ok {
			records = append(records, rec)
		}
	}

	c.store.Set(ctx, key, records, c.cfg.CacheTTL)

	res := Result{Records: records}
	observeFetch(historicalSourceName, res)
	return res
}

type historicalDeparture struct {
	Callsign            string `json:"callsign"`
	FirstSeen           int64  `json:"firstSeen"`
	EstDepartureAirport string `json:"estDepartureAirport"`
	EstArrivalAirport   string `json:"estArrivalAirport"`
}

func mapHistoricalDeparture(origin value.AirportCode, dep historicalDeparture) (entity.RawFlight, bool) {
	callsign := strings.TrimSpace(dep.Callsign)
	if callsign == "" {
		return entity.RawFlight{}, false
	}

	cs := value.ParseCallsign(callsign)
	if cs.Type == value.JunkCallsign || cs.Type == value.Registration {
		return entity.RawFlight{}, false
	}

	return entity.RawFlight{
		Callsign:             cs.String(),
		CarrierICAO:          cs.IcaoPrefix,
		Origin:               origin.String(),
		Departure:            time.Unix(dep.FirstSeen, 0).UTC(),
		EstimatedDestination: iataFromIcao(dep.EstArrivalAirport),
	}, true
}

// iataFromIcao strips the K prefix off contiguous-US ICAO airport codes;
// anything else (foreign, or missing) passes through empty.
func iataFromIcao(icao string) string {
	if len(icao) == 4 && strings.HasPrefix(icao, "K") {
		return icao[1:]
	}

	return ""
}

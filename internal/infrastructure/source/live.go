package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsonpkg "encoding/json"

	"bumpwatch/internal/config"
	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/domain/value"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/pkg/logx"
)

const (
	liveSourceName = "live"
	liveFeedKey    = "live:feed"
)

// LiveClient is the live-position adapter: one bulk feed of everything
// airborne, keyed by the upstream's opaque internal ids. A single fetch
// serves every route query inside the TTL window; filtering down to a route
// happens client-side.
type LiveClient struct {
	cfg    config.LiveSource
	store  cache.Store
	client *http.Client
}

func NewLiveClient(cfg config.LiveSource, store cache.Store, client *http.Client) *LiveClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &LiveClient{cfg: cfg, store: store, client: client}
}

// FetchRoute returns the airborne flights currently tracking between origin
// and destination.
func (c *LiveClient) FetchRoute(ctx context.Context, origin, destination string) Result {
	feed, res := c.feed(ctx)
	if res.Failed() {
		return res
	}

	matched := make([]entity.RawFlight, 0, 4)
	for _, rec := range feed {
		if rec.Origin == origin && rec.Destination == destination {
			matched = append(matched, rec)
		}
	}

	return Result{Records: matched}
}

// feed returns the full normalized live feed, from cache when fresh.
func (c *LiveClient) feed(ctx context.Context) ([]entity.RawFlight, Result) {
	var cached []entity.RawFlight
	if c.store.Get(ctx, liveFeedKey, &cached) {
		cacheHitsTotal.WithLabelValues(liveSourceName).Inc()
		return cached, Result{}
	}

	url := fmt.Sprintf("%s/zones/fcgi/feed.json?array=1&estimated=1", c.cfg.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, failed(fmt.Errorf("http.NewRequest: %w", err))
	}

	var raw map[string]jsonpkg.RawMessage
	if err := getJSON(ctx, c.client, req, &raw); err != nil {
		logger(ctx).Warn("live feed fetch failed", logx.Error(err))

		res := failed(err)
		observeFetch(liveSourceName, res)
		return nil, res
	}

	records := parseLiveFeed(raw)

	c.store.Set(ctx, liveFeedKey, records, c.cfg.CacheTTL)

	observeFetch(liveSourceName, Result{})
	return records, Result{}
}

// parseLiveFeed walks the feed object. Non-array values are feed metadata
// ("full_count", "version"); array values are position vectors keyed by the
// upstream's internal id. Records missing a callsign or either endpoint are
// discarded, per the adapter's minimum-field rule.
func parseLiveFeed(raw map[string]jsonpkg.RawMessage) []entity.RawFlight {
	records := make([]entity.RawFlight, 0, len(raw))

	for id, msg := range raw {
		var fields []any
		if err := json.Unmarshal(msg, &fields); err != nil {
			continue // metadata key, not a position vector
		}

		rec, ok := mapLiveVector(id, fields)
		if !ok {
			continue
		}

		records = append(records, rec)
	}

	return records
}

// Position vector layout, by index:
//
//	0 icao24 hex, 8 aircraft type, 9 registration, 10 timestamp,
//	11 origin IATA, 12 destination IATA, 13 IATA flight number,
//	16 callsign
const liveVectorLen = 17

func mapLiveVector(id string, fields []any) (entity.RawFlight, bool) {
	if len(fields) < liveVectorLen {
		return entity.RawFlight{}, false
	}

	callsign := stringAt(fields, 16)
	origin := stringAt(fields, 11)
	destination := stringAt(fields, 12)

	if callsign == "" || origin == "" || destination == "" {
		return entity.RawFlight{}, false
	}

	var departure time.Time
	if ts, ok := fields[10].(float64); ok && ts > 0 {
		departure = time.Unix(int64(ts), 0).UTC()
	}

	flightNumber, _ := value.ParseFlightNumber(stringAt(fields, 13))

	return entity.RawFlight{
		Callsign:     callsign,
		FlightNumber: flightNumber,
		CarrierIATA:  flightNumber.IATA,
		CarrierICAO:  value.ParseCallsign(callsign).IcaoPrefix,
		Origin:       origin,
		Destination:  destination,
		Departure:    departure,
		AircraftCode: stringAt(fields, 8),
		TailNumber:   stringAt(fields, 9),
		Live:         true,
		TrackingRef:  id,
	}, true
}

func stringAt(fields []any, i int) string {
	s, _ := fields[i].(string)
	return s
}

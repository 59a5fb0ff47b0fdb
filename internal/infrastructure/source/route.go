package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bumpwatch/internal/config"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/pkg/logx"
)

const routeSourceName = "route"

// RouteLookup is the outcome of one callsign route verification.
//
// Found with endpoints means the route is confirmed. Found=false with empty
// Err means the upstream definitively knows no route for the callsign.
// A non-empty Err means the lookup itself failed and nothing was learned.
type RouteLookup struct {
	Found       bool   `json:"found"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Err         string `json:"err,omitempty"`
}

// RouteClient is the route-verification adapter: a per-callsign lookup used
// only to confirm a historical candidate's destination. Confirmed and
// definitively-unknown routes cache for a long TTL (routes rarely change);
// failed lookups cache briefly, long enough not to hammer a transient
// outage, short enough to retry well before a real route would expire.
type RouteClient struct {
	cfg    config.RouteSource
	store  cache.Store
	client *http.Client
}

func NewRouteClient(cfg config.RouteSource, store cache.Store, client *http.Client) *RouteClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &RouteClient{cfg: cfg, store: store, client: client}
}

func (c *RouteClient) Lookup(ctx context.Context, callsign string) RouteLookup {
	key := cache.Key(routeSourceName, callsign)

	var cached RouteLookup
	if c.store.Get(ctx, key, &cached) {
		cacheHitsTotal.WithLabelValues(routeSourceName).Inc()
		return cached
	}

	lookup := c.fetch(ctx, callsign)

	ttl := c.cfg.CacheTTL
	if lookup.Err != "" {
		ttl = c.cfg.NegativeCacheTTL
	}
	c.store.Set(ctx, key, lookup, ttl)

	return lookup
}

type routeResponse struct {
	Response struct {
		FlightRoute *struct {
			Callsign string `json:"callsign"`
			Origin   struct {
				IataCode string `json:"iata_code"`
			} `json:"origin"`
			Destination struct {
				IataCode string `json:"iata_code"`
			} `json:"destination"`
		} `json:"flightroute"`
	} `json:"response"`
}

func (c *RouteClient) fetch(ctx context.Context, callsign string) RouteLookup {
	url := fmt.Sprintf("%s/v0/callsign/%s", c.cfg.BaseURL, callsign)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return RouteLookup{Err: err.Error()}
	}

	var resp routeResponse
	if err := getJSON(ctx, c.client, req, &resp); err != nil {
		// The upstream answers 404 for "no route on file"; that is a
		// definitive miss, not a failure.
		if isNotFound(err) {
			observeFetch(routeSourceName, Result{})
			return RouteLookup{}
		}

		logger(ctx).Warn("route lookup failed",
			logx.Error(err),
			"callsign", callsign,
		)

		observeFetch(routeSourceName, failed(err))
		return RouteLookup{Err: err.Error()}
	}

	observeFetch(routeSourceName, Result{})

	fr := resp.Response.FlightRoute
	if fr == nil || fr.Origin.IataCode == "" || fr.Destination.IataCode == "" {
		return RouteLookup{}
	}

	return RouteLookup{
		Found:       true,
		Origin:      fr.Origin.IataCode,
		Destination: fr.Destination.IataCode,
	}
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

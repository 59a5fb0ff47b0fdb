package signals

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"bumpwatch/internal/config"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/pkg/logx"
)

// AirportStatusClient reads the FAA national airspace status feed and folds
// an airport's active programs into a disruption score in [0,10].
type AirportStatusClient struct {
	cfg    config.AirportStatusSource
	store  cache.Store
	client *http.Client
}

func NewAirportStatusClient(cfg config.AirportStatusSource, store cache.Store, client *http.Client) *AirportStatusClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &AirportStatusClient{cfg: cfg, store: store, client: client}
}

type airportStatusResponse struct {
	Delay  bool `json:"delay"`
	Status []struct {
		Type       string `json:"type"`
		Reason     string `json:"reason"`
		AvgDelay   string `json:"avgDelay"`
		ClosureEnd string `json:"closureEnd"`
	} `json:"status"`
}

// Disruption returns the current disruption score for the airport, 0 when
// nothing is going on or the status feed is unreachable.
func (c *AirportStatusClient) Disruption(ctx context.Context, airport string) float64 {
	key := cache.Key("airport-status", airport)

	var cached float64
	if c.store.Get(ctx, key, &cached) {
		return cached
	}

	url := fmt.Sprintf("%s/api/airport-status/%s", c.cfg.BaseURL, airport)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger(ctx).Warn("airport status fetch failed", logx.Error(err), "airport", airport)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	var status airportStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		logger(ctx).Warn("airport status unreadable", logx.Error(err), "airport", airport)
		return 0
	}

	score := disruptionScore(status)
	c.store.Set(ctx, key, score, c.cfg.CacheTTL)

	return score
}

func disruptionScore(status airportStatusResponse) float64 {
	var score float64

	for _, s := range status.Status {
		switch {
		case strings.EqualFold(s.Type, "Ground Stop"):
			score = max(score, 10)
		case strings.EqualFold(s.Type, "Ground Delay"):
			score = max(score, 7)
		case strings.EqualFold(s.Type, "Departure Delay"):
			score = max(score, 5)
		case strings.EqualFold(s.Type, "Arrival Delay"):
			score = max(score, 4)
		case strings.EqualFold(s.Type, "Closure"):
			score = max(score, 10)
		}
	}

	if score == 0 && status.Delay {
		score = 3
	}

	return score
}

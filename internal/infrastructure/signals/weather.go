// Package signals supplies the external scoring inputs: weather severity,
// airport disruption status and the holiday calendar. Everything here
// degrades to a zero signal on failure; a missing signal never blocks a
// score.
package signals

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"bumpwatch/internal/config"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/internal/infrastructure/reference"
	"bumpwatch/pkg/contextx"
	"bumpwatch/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// WeatherClient classifies forecast weather at an airport into a severity
// score in [0,10].
type WeatherClient struct {
	cfg    config.WeatherSource
	store  cache.Store
	client *http.Client
}

func NewWeatherClient(cfg config.WeatherSource, store cache.Store, client *http.Client) *WeatherClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &WeatherClient{cfg: cfg, store: store, client: client}
}

type forecastResponse struct {
	Current struct {
		PrecipitationMm float64 `json:"precipitation"`
		SnowfallCm      float64 `json:"snowfall"`
		WindSpeedKmh    float64 `json:"wind_speed_10m"`
		VisibilityM     float64 `json:"visibility"`
	} `json:"current"`
}

// Severity returns the weather severity at the airport right now, 0 when
// the airport is unknown or the forecast source is down.
func (c *WeatherClient) Severity(ctx context.Context, airport string) float64 {
	coords, ok := reference.Coordinates(airport)
	if !ok {
		return 0
	}

	key := cache.Key("weather", airport)

	var cached float64
	if c.store.Get(ctx, key, &cached) {
		return cached
	}

	url := fmt.Sprintf(
		"%s/v1/forecast?latitude=%.4f&longitude=%.4f&current=precipitation,snowfall,wind_speed_10m,visibility",
		c.cfg.BaseURL, coords[0], coords[1])

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger(ctx).Warn("weather fetch failed", logx.Error(err), "airport", airport)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		logger(ctx).Warn("weather response unreadable", logx.Error(err), "airport", airport)
		return 0
	}

	severity := classify(forecast)
	c.store.Set(ctx, key, severity, c.cfg.CacheTTL)

	return severity
}

// classify folds the raw observations into [0,10]. Snow dominates: one
// centimeter on the ground disrupts a hub harder than a thunderstorm.
func classify(f forecastResponse) float64 {
	var severity float64

	severity += min(f.Current.SnowfallCm*4, 6)
	severity += min(f.Current.PrecipitationMm*0.5, 3)

	if f.Current.WindSpeedKmh > 40 {
		severity += min((f.Current.WindSpeedKmh-40)/10, 3)
	}

	if f.Current.VisibilityM > 0 && f.Current.VisibilityM < 1600 {
		severity += 2
	}

	return min(severity, 10)
}


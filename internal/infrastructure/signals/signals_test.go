package signals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bumpwatch/internal/config"
	"bumpwatch/internal/infrastructure/cache"
)

func TestWeatherClient_Severity(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/v1/forecast", r.URL.Path)
		rq.NotEmpty(r.URL.Query().Get("latitude"))

		_, _ = w.Write([]byte(`{"current": {"precipitation": 2.0, "snowfall": 1.0, "wind_speed_10m": 55, "visibility": 1200}}`))
	}))
	defer ts.Close()

	cfg := config.WeatherSource{BaseURL: ts.URL, Timeout: time.Second, CacheTTL: time.Hour}
	c := NewWeatherClient(cfg, cache.NewMemory(time.Hour), nil)

	severity := c.Severity(context.Background(), "ORD")

	// snow 4 + rain 1 + wind 1.5 + low visibility 2
	rq.InDelta(8.5, severity, 0.01)
}

func TestWeatherClient_Degrades(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cfg := config.WeatherSource{BaseURL: ts.URL, Timeout: time.Second, CacheTTL: time.Hour}
	c := NewWeatherClient(cfg, cache.NewMemory(time.Hour), nil)

	rq.Zero(c.Severity(context.Background(), "ORD"), "a dead forecast source is a zero signal")
	rq.Zero(c.Severity(context.Background(), "ZZZ"), "unknown airports score zero")
}

func TestWeatherClassify(t *testing.T) {
	rq := require.New(t)

	tests := []struct {
		name     string
		forecast forecastResponse
		want     float64
	}{
		{name: "clear", want: 0},
		{name: "heavy snow saturates its band", forecast: weatherWith(0, 5, 0, 0), want: 6},
		{name: "everything at once caps at ten", forecast: weatherWith(20, 5, 90, 500), want: 10},
		{name: "light rain", forecast: weatherWith(2, 0, 0, 0), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq.InDelta(tt.want, classify(tt.forecast), 0.01)
		})
	}
}

func weatherWith(precipMm, snowCm, windKmh, visibilityM float64) forecastResponse {
	var f forecastResponse
	f.Current.PrecipitationMm = precipMm
	f.Current.SnowfallCm = snowCm
	f.Current.WindSpeedKmh = windKmh
	f.Current.VisibilityM = visibilityM

	return f
}

func TestAirportStatusClient_Disruption(t *testing.T) {
	rq := require.New(t)

	var requests atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		rq.Equal("/api/airport-status/EWR", r.URL.Path)

		_, _ = w.Write([]byte(`{"delay": true, "status": [{"type": "Ground Stop", "reason": "WX"}]}`))
	}))
	defer ts.Close()

	cfg := config.AirportStatusSource{BaseURL: ts.URL, Timeout: time.Second, CacheTTL: time.Hour}
	c := NewAirportStatusClient(cfg, cache.NewMemory(time.Hour), nil)

	rq.InDelta(10, c.Disruption(context.Background(), "EWR"), 0.01)

	c.Disruption(context.Background(), "EWR")
	rq.Equal(int32(1), requests.Load(), "status is cached")
}

func TestDisruptionScore(t *testing.T) {
	rq := require.New(t)

	tests := []struct {
		name   string
		status airportStatusResponse
		want   float64
	}{
		{name: "nothing active", want: 0},
		{name: "generic delay flag", status: statusWith(true), want: 3},
		{name: "ground delay", status: statusWith(false, "Ground Delay"), want: 7},
		{name: "departure delay", status: statusWith(false, "Departure Delay"), want: 5},
		{name: "worst program wins", status: statusWith(true, "Arrival Delay", "Closure"), want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq.InDelta(tt.want, disruptionScore(tt.status), 0.01)
		})
	}
}

func statusWith(delay bool, types ...string) airportStatusResponse {
	var s airportStatusResponse
	s.Delay = delay

	for _, typ := range types {
		s.Status = append(s.Status, struct {
			Type       string `json:"type"`
			Reason     string `json:"reason"`
			AvgDelay   string `json:"avgDelay"`
			ClosureEnd string `json:"closureEnd"`
		}{Type: typ})
	}

	return s
}

package source_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bumpwatch/internal/config"
	"bumpwatch/internal/infrastructure/cache"
	"bumpwatch/internal/infrastructure/source"
)

func scheduleConfig(baseURL string) config.ScheduleSource {
	return config.ScheduleSource{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		Timeout:  time.Second,
		CacheTTL: time.Hour,
		MaxPages: 5,
	}
}

const fidsPage = `{
	"totalPages": %d,
	"departures": [
		{
			"number": "DL 123",
			"callSign": "DAL123",
			"codeshareStatus": "IsOperator",
			"isCargo": false,
			"airline": {"name": "Delta Air Lines", "iata": "DL", "icao": "DAL"},
			"movement": {
				"airport": {"iata": "LGA"},
				"scheduledTime": {"utc": "2026-09-14T18:05:00Z"}
			},
			"aircraft": {"model": "Boeing 737-800", "reg": "N301DN"}
		},
		{
			"number": "AF 8623",
			"codeshareStatus": "IsCodeshared",
			"airline": {"iata": "AF"},
			"movement": {"airport": {"iata": "LGA"}, "scheduledTime": {"utc": "2026-09-14T18:05:00Z"}}
		},
		{
			"number": "5X 107",
			"isCargo": true,
			"airline": {"iata": "5X"},
			"movement": {"airport": {"iata": "SDF"}, "scheduledTime": {"utc": "2026-09-14T19:00:00Z"}}
		},
		{
			"number": "DL 777",
			"airline": {"iata": "DL"},
			"movement": {"airport": {"iata": "BOS"}, "scheduledTime": {"utc": "not a time"}}
		}
	]
}`

func TestScheduleClient_FetchDepartures(t *testing.T) {
	rq := require.New(t)

	var requests atomic.Int32

	// Tomorrow is always inside the provider's supported window, so the
	// requested date passes through unclamped.
	date := time.Now().UTC().AddDate(0, 0, 1)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		rq.Equal("test-key", r.Header.Get("X-Rapidapi-Key"))
		rq.Contains(r.URL.Path, "/airports/iata/ATL/departures")
		rq.Equal(date.Format("2006-01-02"), r.URL.Query().Get("date"))

		fmt.Fprintf(w, fidsPage, 1)
	}))
	defer ts.Close()

	c := source.NewScheduleClient(scheduleConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	res := c.FetchDepartures(context.Background(), "ATL", date)

	rq.False(res.Failed())
	rq.Len(res.Records, 1, "codeshare, cargo and unparseable rows are dropped")

	rec := res.Records[0]
	rq.Equal("DL123", rec.FlightNumber.String())
	rq.Equal("DAL123", rec.Callsign)
	rq.Equal("ATL", rec.Origin)
	rq.Equal("LGA", rec.Destination)
	rq.Equal("Boeing 737-800", rec.AircraftCode)
	rq.Equal("N301DN", rec.TailNumber)
	rq.Equal(time.Date(2026, 9, 14, 18, 5, 0, 0, time.UTC), rec.Departure)
}

func TestScheduleClient_Pagination(t *testing.T) {
	rq := require.New(t)

	var requests atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprintf(w, fidsPage, 3)
	}))
	defer ts.Close()

	t.Run("walks all pages", func(t *testing.T) {
		c := source.NewScheduleClient(scheduleConfig(ts.URL), cache.NewMemory(time.Hour), nil)

		res := c.FetchDepartures(context.Background(), "ATL", time.Now())
		rq.False(res.Failed())
		rq.Len(res.Records, 3)
		rq.Equal(int32(3), requests.Load())
	})

	t.Run("page bound caps runaway pagination", func(t *testing.T) {
		requests.Store(0)

		cfg := scheduleConfig(ts.URL)
		cfg.MaxPages = 2

		c := source.NewScheduleClient(cfg, cache.NewMemory(time.Hour), nil)

		res := c.FetchDepartures(context.Background(), "ATL", time.Now())
		rq.False(res.Failed())
		rq.Equal(int32(2), requests.Load())
	})
}

func TestScheduleClient_CacheIdempotence(t *testing.T) {
	rq := require.New(t)

	var requests atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		fmt.Fprintf(w, fidsPage, 1)
	}))
	defer ts.Close()

	c := source.NewScheduleClient(scheduleConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	first := c.FetchDepartures(context.Background(), "ATL", date)
	second := c.FetchDepartures(context.Background(), "ATL", date)

	rq.Equal(int32(1), requests.Load(), "repeat lookups inside the TTL hit the cache")
	rq.Equal(first.Records, second.Records)
}

func TestScheduleClient_RateLimited(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := source.NewScheduleClient(scheduleConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	res := c.FetchDepartures(context.Background(), "ATL", time.Now())
	rq.True(res.RateLimited)
	rq.Empty(res.Records)
	rq.Empty(res.Error, "a rate limit is not a generic failure")
}

func TestScheduleClient_FarFutureDateClampsToToday(t *testing.T) {
	rq := require.New(t)

	today := time.Now().UTC().Format("2006-01-02")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal(today, r.URL.Query().Get("date"))
		fmt.Fprintf(w, fidsPage, 1)
	}))
	defer ts.Close()

	c := source.NewScheduleClient(scheduleConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	res := c.FetchDepartures(context.Background(), "ATL", time.Now().AddDate(0, 6, 0))
	rq.False(res.Failed())
}

package source

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

// Two tracked flights plus the metadata keys every feed snapshot carries.
const liveFeed = `{
	"full_count": 14211,
	"version": 4,
	"2f8a1c": ["A0B1C2", 33.6, -84.4, 120, 35000, 450, "1234", "F-KATL1", "B738",
		"N301DN", 1757851200, "ATL", "LGA", "DL123", 0, 0, "DAL123", 0],
	"2f8a1d": ["A0B1C3", 41.9, -87.9, 90, 34000, 440, "4321", "F-KORD2", "E75L",
		"N605UX", 1757851500, "ORD", "DCA", "UA4405", 0, 0, "SKW4405", 0],
	"2f8a1e": ["A0B1C4", 25.7, -80.2, 10, 2000, 180, "7777", "F-KMIA1", "A321",
		"", 0, "", "", "", 0, 0, "AAL77", 0]
}`

func liveConfig(baseURL string) config.LiveSource {
	return config.LiveSource{
		BaseURL:  baseURL,
		Timeout:  time.Second,
		CacheTTL: 5 * time.Minute,
	}
}

func TestLiveClient_FetchRoute(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/zones/fcgi/feed.json", r.URL.Path)
		_, _ = w.Write([]byte(liveFeed))
	}))
	defer ts.Close()

	c := NewLiveClient(liveConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	res := c.FetchRoute(context.Background(), "ATL", "LGA")
	rq.False(res.Failed())
	rq.Len(res.Records, 1)

	rec := res.Records[0]
	rq.Equal("DAL123", rec.Callsign)
	rq.Equal("DL123", rec.FlightNumber.String())
	rq.Equal("DAL", rec.CarrierICAO)
	rq.Equal("B738", rec.AircraftCode)
	rq.Equal("N301DN", rec.TailNumber)
	rq.Equal("2f8a1c", rec.TrackingRef)
	rq.True(rec.Live)
	rq.Equal(time.Unix(1757851200, 0).UTC(), rec.Departure)
}

func TestLiveClient_OneFeedFetchServesAllRoutes(t *testing.T) {
	rq := require.New(t)

	var requests atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(liveFeed))
	}))
	defer ts.Close()

	c := NewLiveClient(liveConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	atl := c.FetchRoute(context.Background(), "ATL", "LGA")
	ord := c.FetchRoute(context.Background(), "ORD", "DCA")
	none := c.FetchRoute(context.Background(), "SEA", "BOS")

	rq.Equal(int32(1), requests.Load(), "route filtering happens client-side on one cached feed")
	rq.Len(atl.Records, 1)
	rq.Len(ord.Records, 1)
	rq.Empty(none.Records)
	rq.False(none.Failed(), "an empty route match is not a failure")
}

func TestLiveClient_DiscardsIncompleteVectors(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(liveFeed))
	}))
	defer ts.Close()

	c := NewLiveClient(liveConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	feed, res := c.feed(context.Background())
	rq.False(res.Failed())
	rq.Len(feed, 2, "metadata keys and vectors without both endpoints are discarded")

	// AAL77 has no origin or destination and must not surface.
	for _, rec := range feed {
		rq.NotEqual("AAL77", rec.Callsign)
	}
}

func TestLiveClient_UpstreamFailure(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewLiveClient(liveConfig(ts.URL), cache.NewMemory(time.Hour), nil)

	res := c.FetchRoute(context.Background(), "ATL", "LGA")
	rq.True(res.Failed())
	rq.NotEmpty(res.Error)
	rq.False(res.RateLimited)
}

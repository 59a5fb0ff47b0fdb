package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bumpwatch/internal/infrastructure/cache"
)

type payload struct {
	Airport string   `json:"airport"`
	Flights []string `json:"flights"`
}

func TestMemoryRoundTrip(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := cache.NewMemory(time.Minute)

	stored := payload{Airport: "ATL", Flights: []string{"DL2047", "DL88"}}
	store.Set(ctx, cache.Key("schedule", "ATL", "2026-08-31"), stored, time.Hour)

	var got payload
	rq.True(store.Get(ctx, "schedule:ATL:2026-08-31", &got))
	rq.Equal(stored, got)

	// Same key again stays identical.
	var second payload
	rq.True(store.Get(ctx, "schedule:ATL:2026-08-31", &second))
	rq.Equal(got, second)
}

func TestMemoryMiss(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := cache.NewMemory(time.Minute)

	var got payload
	rq.False(store.Get(ctx, "schedule:SFO:2026-08-31", &got))
}

func TestMemoryExpiry(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	// Sweep interval far beyond the test: expiry must come from the read
	// path alone.
	store := cache.NewMemory(time.Hour)

	store.Set(ctx, "live:feed", payload{Airport: "LGA"}, 20*time.Millisecond)

	var got payload
	rq.True(store.Get(ctx, "live:feed", &got))

	time.Sleep(60 * time.Millisecond)

	rq.False(store.Get(ctx, "live:feed", &got))
}

func TestKey(t *testing.T) {
	rq := require.New(t)

	rq.Equal("route:DAL2047", cache.Key("route", "DAL2047"))
	rq.Equal("schedule:ATL:2026-08-31", cache.Key("schedule", "ATL", "2026-08-31"))
}

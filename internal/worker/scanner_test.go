package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bumpwatch/internal/domain/service/reconcile"
	"bumpwatch/internal/domain/value"
)

type recordingWarmer struct {
	warmed chan string
}

func (r *recordingWarmer) ReconcileRoute(_ context.Context, origin, destination value.AirportCode, _ time.Time) reconcile.Result {
	r.warmed <- origin.String() + "-" + destination.String()
	return reconcile.Result{}
}

func TestRouteScanner_WarmsConfiguredRoutesOnStart(t *testing.T) {
	rq := require.New(t)

	warmer := &recordingWarmer{warmed: make(chan string, 8)}

	scanner := NewRouteScanner(warmer).
		WithRoutes([]string{"ATL-LGA", "bad route", "ORD-LGA", "ATL-ATL"}).
		WithInterval(time.Hour)

	rq.NoError(scanner.Start(context.Background()))
	defer scanner.Stop()

	rq.Equal("ATL-LGA", <-warmer.warmed)
	rq.Equal("ORD-LGA", <-warmer.warmed)

	select {
	case route := <-warmer.warmed:
		t.Fatalf("unparseable routes must be dropped, got %s", route)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRouteScanner_DrainsPrefetchQueue(t *testing.T) {
	rq := require.New(t)

	warmer := &recordingWarmer{warmed: make(chan string, 8)}

	scanner := NewRouteScanner(warmer).WithInterval(time.Hour)

	rq.NoError(scanner.Start(context.Background()))
	defer scanner.Stop()

	origin, err := value.ParseAirportCode("DFW")
	rq.NoError(err)
	destination, err := value.ParseAirportCode("LGA")
	rq.NoError(err)

	rq.True(scanner.Enqueue(origin, destination, time.Now()))
	rq.Equal("DFW-LGA", <-warmer.warmed)
}

func TestRouteScanner_Lifecycle(t *testing.T) {
	rq := require.New(t)

	scanner := NewRouteScanner(&recordingWarmer{warmed: make(chan string, 1)})

	rq.NoError(scanner.Start(context.Background()))
	rq.True(scanner.IsRunning())
	rq.Error(scanner.Start(context.Background()), "double start must fail")

	scanner.Stop()
	rq.False(scanner.IsRunning())

	rq.NoError(scanner.Start(context.Background()), "scanner restarts after stop")
	scanner.Stop()
}

func TestRouteScanner_EnqueueRejectsWhenFull(t *testing.T) {
	rq := require.New(t)

	// Never started: nothing drains the queue.
	scanner := NewRouteScanner(&recordingWarmer{warmed: make(chan string, 1)})

	origin, err := value.ParseAirportCode("ATL")
	rq.NoError(err)
	destination, err := value.ParseAirportCode("LGA")
	rq.NoError(err)

	for range prefetchQueueSize {
		rq.True(scanner.Enqueue(origin, destination, time.Now()))
	}

	rq.False(scanner.Enqueue(origin, destination, time.Now()))
}

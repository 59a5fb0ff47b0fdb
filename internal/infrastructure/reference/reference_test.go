package reference_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/infrastructure/reference"
)

func TestCarrierLookups(t *testing.T) {
	rq := require.New(t)

	store := reference.NewStore()

	dl, ok := store.CarrierByIATA("dl")
	rq.True(ok)
	rq.Equal("DAL", dl.ICAO)
	rq.Positive(dl.BumpRate)

	// Mainline ICAO resolves to itself.
	c, ok := store.CarrierByICAO("DAL")
	rq.True(ok)
	rq.Equal("DL", c.IATA)

	// Regional operator resolves to the mainline brand.
	c, ok = store.CarrierByICAO("EDV")
	rq.True(ok)
	rq.Equal("DL", c.IATA)
	rq.True(store.IsRegionalOperator("EDV"))
	rq.False(store.IsRegionalOperator("DAL"))

	_, ok = store.CarrierByICAO("XXX")
	rq.False(ok)

	rq.True(store.IsScorable("WN"))
	rq.False(store.IsScorable("ZZ"))
}

func TestAircraftResolution(t *testing.T) {
	rq := require.New(t)

	store := reference.NewStore()

	a, ok := store.Aircraft("crj9")
	rq.True(ok)
	rq.Equal(entity.CategoryRegional, a.Category)

	_, ok = store.Aircraft("CONC")
	rq.False(ok)

	rq.Equal(entity.CategoryRegional, store.SmallestRegional().Category)
	rq.Equal(entity.CategoryNarrowbody, store.GenericNarrowbody().Category)
}

func TestDefaultAircraftByDuration(t *testing.T) {
	rq := require.New(t)

	store := reference.NewStore()

	short := store.DefaultAircraft("DL", time.Hour)
	rq.Equal(entity.CategoryRegional, short.Category)

	medium := store.DefaultAircraft("DL", 2*time.Hour)
	rq.Equal("B738", medium.Code)

	long := store.DefaultAircraft("DL", 5*time.Hour)
	rq.Equal("B739", long.Code)

	// Unknown carrier falls through to the generic defaults, never fails.
	unknown := store.DefaultAircraft("ZZ", 2*time.Hour)
	rq.NotEmpty(unknown.Code)
}

func TestRouteLoadFactor(t *testing.T) {
	rq := require.New(t)

	store := reference.NewStore()

	lf := store.RouteLoadFactor("ATL", "MCO")
	rq.InDelta(0.91, lf.LoadFactor, 0.001)
	rq.True(lf.Leisure)

	// Unknown route gets the network default, leisure inferred from the
	// destination airport.
	lf = store.RouteLoadFactor("BNA", "LAS")
	rq.InDelta(0.84, lf.LoadFactor, 0.001)
	rq.True(lf.Leisure)

	lf = store.RouteLoadFactor("BNA", "CLE")
	rq.False(lf.Leisure)
}

func TestFortressHubs(t *testing.T) {
	rq := require.New(t)

	store := reference.NewStore()

	rq.True(store.IsFortressHub("DL", "ATL"))
	rq.True(store.IsFortressHub("aa", "dfw"))
	rq.False(store.IsFortressHub("DL", "DFW"))
	rq.False(store.IsFortressHub("B6", "JFK"))
}

package score

import (
	"bumpwatch/internal/domain/entity"
	"bumpwatch/internal/infrastructure/reference"
)

// resolveAircraft maps a flight to a concrete aircraft type. The cascade
// never fails: feed equipment wins when it is mappable, a regional operator
// defaults to the smallest regional jet, otherwise the carrier's customary
// equipment for the route length, and finally a generic narrowbody.
func (e *Engine) resolveAircraft(f entity.Flight) entity.AircraftType {
	if f.Aircraft.Code != "" {
		return f.Aircraft
	}

	if a, ok := e.ref.ResolveAircraft(f.AircraftCode); ok {
		return a
	}

	if f.IsRegional {
		return e.ref.SmallestRegional()
	}

	if f.MarketingCarrier != "" {
		return e.ref.DefaultAircraft(f.MarketingCarrier, reference.RouteDuration(f.Origin, f.Destination))
	}

	return e.ref.GenericNarrowbody()
}

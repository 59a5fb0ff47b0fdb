package entity

// Read-only reference data the scoring engine consumes as injected,
// immutable lookup tables. Refresh cadence is outside this repo.

// CarrierStats carries the historical denied-boarding record for one
// marketing carrier.
type CarrierStats struct {
	IATA string
	ICAO string
	Name string

	// BumpRate is involuntary plus voluntary denied boardings per 10,000
	// enplaned passengers, DOT Air Travel Consumer Report style.
	BumpRate float64
}

// AircraftCategory bands aircraft by bump exposure: small metal on a full
// route bumps first.
type AircraftCategory string

const (
	CategoryRegional       AircraftCategory = "regional"
	CategoryNarrowbodySm   AircraftCategory = "narrowbody-small"
	CategoryNarrowbody     AircraftCategory = "narrowbody"
	CategoryNarrowbodyLg   AircraftCategory = "narrowbody-large"
	CategoryWidebody       AircraftCategory = "widebody"
)

type AircraftType struct {
	Code     string           `json:"code"` // ICAO type designator, e.g. B738
	Name     string           `json:"name"`
	Seats    int              `json:"seats"`
	Category AircraftCategory `json:"category"`
}

// RouteLoadFactor is the observed average load factor for one directional
// route, with a flag for leisure-heavy routes where Saturdays fill up.
type RouteLoadFactor struct {
	LoadFactor float64
	Leisure    bool
}

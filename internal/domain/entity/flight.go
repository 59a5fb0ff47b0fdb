package entity

import (
	"time"

	"bumpwatch/internal/domain/value"
)

// DataSource names the upstream adapter that ultimately supplied a record.
type DataSource string

const (
	SourceSchedule   DataSource = "schedule"
	SourceLive       DataSource = "live"
	SourceHistorical DataSource = "historical"
)

// VerificationSource is the ranked confidence tier attached to a reconciled
// flight: schedule > live > verified-route > estimated.
type VerificationSource string

const (
	VerifiedBySchedule VerificationSource = "schedule"
	VerifiedByLive     VerificationSource = "live"
	VerifiedByRoute    VerificationSource = "verified-route"
	VerifiedByEstimate VerificationSource = "estimated"
)

func (v VerificationSource) Rank() int {
	switch v {
	case VerifiedBySchedule:
		return 4
	case VerifiedByLive:
		return 3
	case VerifiedByRoute:
		return 2
	case VerifiedByEstimate:
		return 1
	default:
		return 0
	}
}

// RawFlight is the one normalized shape every adapter maps its upstream
// records into, so the reconciliation engine stays adapter-agnostic.
type RawFlight struct {
	Callsign     string
	FlightNumber value.FlightNumber
	CarrierIATA  string
	CarrierICAO  string
	Origin       string
	Destination  string
	Departure    time.Time
	AircraftCode string
	TailNumber   string

	// Live is set when the record came off a live radar track rather than
	// a schedule or an after-the-fact estimate.
	Live bool

	// EstimatedDestination is the historical feed's own guess at the
	// arrival airport. A heuristic, never treated as verification.
	EstimatedDestination string

	// TrackingRef is the upstream's opaque id for this record.
	TrackingRef string
}

// Flight is the canonical, deduplicated unit consumed by scoring.
type Flight struct {
	FlightNumber       value.FlightNumber `json:"flightNumber"`
	Callsign           string             `json:"callsign"`
	OperatingCarrier   string             `json:"operatingCarrier"` // ICAO code
	MarketingCarrier   string             `json:"marketingCarrier"` // IATA code
	Origin             string             `json:"origin"`
	Destination        string             `json:"destination"`
	Departure          time.Time          `json:"departure"`
	AircraftCode       string             `json:"aircraftCode,omitempty"`
	Aircraft           AircraftType       `json:"aircraft"`
	TailNumber         string             `json:"tailNumber,omitempty"`
	Verified           bool               `json:"verified"`
	VerificationSource VerificationSource `json:"verificationSource"`
	IsRegional         bool               `json:"isRegional"`
	DataSource         DataSource         `json:"dataSource"`
	LiveStatus         string             `json:"liveStatus,omitempty"`
	TrackingRef        string             `json:"trackingRef,omitempty"`
}

// IdentityKey is the dedup key: the flight number where one exists, the
// normalized callsign otherwise.
func (f Flight) IdentityKey() string {
	if !f.FlightNumber.IsZero() {
		return f.FlightNumber.String()
	}

	return value.ParseCallsign(f.Callsign).String()
}

// Factor is one scored contribution, retained even at zero points so the
// final score is auditable.
type Factor struct {
	Name        string `json:"name"`
	Points      int    `json:"points"`
	MaxPoints   int    `json:"maxPoints"`
	Description string `json:"description"`
}

type ScoredFlight struct {
	Flight

	BumpScore int      `json:"bumpScore"`
	Factors   []Factor `json:"factors"`
}

// Package reference holds the static lookup tables the scoring engine treats
// as injected, immutable reference data: carrier denied-boarding statistics,
// aircraft characteristics, route load factors and hub dominance. Refreshing
// these datasets is an offline concern; the process only ever reads them.
package reference

import (
	"strings"
	"time"

	"bumpwatch/internal/domain/entity"
)

type Store struct {
	carriers    map[string]entity.CarrierStats // by IATA
	byICAO      map[string]string              // operating ICAO -> marketing IATA
	regionals   map[string]string              // regional operator ICAO -> mainline IATA
	aircraft    map[string]entity.AircraftType // by ICAO type designator
	loadFactors map[string]entity.RouteLoadFactor
	hubs        map[string]map[string]bool // carrier IATA -> airports
	defaults    map[string]routeDefaults   // carrier IATA -> default equipment
}

type routeDefaults struct {
	short  string // under 90 minutes
	medium string
	long   string // over 4 hours
}

func NewStore() *Store {
	s := &Store{
		carriers:    carrierTable,
		byICAO:      map[string]string{},
		regionals:   regionalOperators,
		aircraft:    aircraftTable,
		loadFactors: loadFactorTable,
		hubs:        fortressHubs,
		defaults:    defaultEquipment,
	}

	for iata, c := range s.carriers {
		s.byICAO[c.ICAO] = iata
	}
	for icao, iata := range s.regionals {
		s.byICAO[icao] = iata
	}

	return s
}

// CarrierByIATA returns the stats for a marketing carrier.
func (s *Store) CarrierByIATA(code string) (entity.CarrierStats, bool) {
	c, ok := s.carriers[strings.ToUpper(code)]
	return c, ok
}

// CarrierByICAO resolves an operating ICAO code, including regional
// affiliates, to the marketing carrier whose stats apply.
func (s *Store) CarrierByICAO(code string) (entity.CarrierStats, bool) {
	iata, ok := s.byICAO[strings.ToUpper(code)]
	if !ok {
		return entity.CarrierStats{}, false
	}
	return s.CarrierByIATA(iata)
}

// IsScorable reports whether this system scores the given marketing carrier.
func (s *Store) IsScorable(iata string) bool {
	_, ok := s.carriers[strings.ToUpper(iata)]
	return ok
}

// IsRegionalOperator reports whether the ICAO code belongs to a regional
// affiliate flying under a mainline brand.
func (s *Store) IsRegionalOperator(icao string) bool {
	_, ok := s.regionals[strings.ToUpper(icao)]
	return ok
}

func (s *Store) Aircraft(code string) (entity.AircraftType, bool) {
	a, ok := s.aircraft[strings.ToUpper(code)]
	return a, ok
}

// ResolveAircraft maps a raw equipment string from an upstream feed, either
// an ICAO type designator or a free-form model name like "Boeing 737-800",
// to a known type.
func (s *Store) ResolveAircraft(raw string) (entity.AircraftType, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return entity.AircraftType{}, false
	}

	if a, ok := s.aircraft[code]; ok {
		return a, true
	}

	for _, alias := range modelAliases {
		if strings.Contains(code, alias.fragment) {
			return s.Aircraft(alias.designator)
		}
	}

	return entity.AircraftType{}, false
}

// SmallestRegional is the default for flights flagged regional with no
// usable equipment code.
func (s *Store) SmallestRegional() entity.AircraftType {
	return s.aircraft["CRJ2"]
}

// GenericNarrowbody is the terminal fallback of the aircraft resolution
// cascade; resolution must never fail.
func (s *Store) GenericNarrowbody() entity.AircraftType {
	return s.aircraft["B738"]
}

// DefaultAircraft picks the carrier's customary equipment for a route of
// the given duration.
func (s *Store) DefaultAircraft(carrierIATA string, duration time.Duration) entity.AircraftType {
	d, ok := s.defaults[strings.ToUpper(carrierIATA)]
	if !ok {
		d = defaultEquipment["*"]
	}

	var code string
	switch {
	case duration > 0 && duration < 90*time.Minute:
		code = d.short
	case duration > 4*time.Hour:
		code = d.long
	default:
		code = d.medium
	}

	if a, ok := s.aircraft[code]; ok {
		return a
	}
	return s.GenericNarrowbody()
}

// RouteLoadFactor returns the observed load factor for a directional route,
// falling back to the network-wide average.
func (s *Store) RouteLoadFactor(origin, destination string) entity.RouteLoadFactor {
	if lf, ok := s.loadFactors[origin+"-"+destination]; ok {
		return lf
	}
	return entity.RouteLoadFactor{LoadFactor: defaultLoadFactor, Leisure: leisureAirports[destination]}
}

// IsFortressHub reports whether the carrier dominates the origin airport.
func (s *Store) IsFortressHub(carrierIATA, origin string) bool {
	return s.hubs[strings.ToUpper(carrierIATA)][strings.ToUpper(origin)]
}

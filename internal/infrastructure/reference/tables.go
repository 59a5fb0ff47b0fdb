package reference

import "bumpwatch/internal/domain/entity"

// Denied boardings (voluntary plus involuntary) per 10,000 enplaned
// passengers, trailing-year figures in the style of the DOT Air Travel
// Consumer Report.
//
//nolint:gochecknoglobals
var carrierTable = map[string]entity.CarrierStats{
	"AA": {IATA: "AA", ICAO: "AAL", Name: "American Airlines", BumpRate: 4.9},
	"AS": {IATA: "AS", ICAO: "ASA", Name: "Alaska Airlines", BumpRate: 2.7},
	"B6": {IATA: "B6", ICAO: "JBU", Name: "JetBlue Airways", BumpRate: 0.4},
	"DL": {IATA: "DL", ICAO: "DAL", Name: "Delta Air Lines", BumpRate: 7.1},
	"F9": {IATA: "F9", ICAO: "FFT", Name: "Frontier Airlines", BumpRate: 5.2},
	"G4": {IATA: "G4", ICAO: "AAY", Name: "Allegiant Air", BumpRate: 1.0},
	"HA": {IATA: "HA", ICAO: "HAL", Name: "Hawaiian Airlines", BumpRate: 0.6},
	"NK": {IATA: "NK", ICAO: "NKS", Name: "Spirit Airlines", BumpRate: 2.1},
	"UA": {IATA: "UA", ICAO: "UAL", Name: "United Airlines", BumpRate: 3.8},
	"WN": {IATA: "WN", ICAO: "SWA", Name: "Southwest Airlines", BumpRate: 6.6},
}

// Regional operators flying under mainline brands. Their callsigns carry
// the operator's ICAO prefix, their bump exposure is the mainline's.
//
//nolint:gochecknoglobals
var regionalOperators = map[string]string{
	"ASH": "AA", // Mesa (American Eagle, also United Express historically)
	"EDV": "DL", // Endeavor Air
	"ENY": "AA", // Envoy Air
	"GJS": "UA", // GoJet
	"JIA": "AA", // PSA Airlines
	"QXE": "AS", // Horizon Air
	"RPA": "AA", // Republic Airways (multi-brand; American is the largest share)
	"SKW": "UA", // SkyWest (multi-brand; United is the largest share)
}

//nolint:gochecknoglobals
var aircraftTable = map[string]entity.AircraftType{
	"CRJ2": {Code: "CRJ2", Name: "Bombardier CRJ200", Seats: 50, Category: entity.CategoryRegional},
	"CRJ7": {Code: "CRJ7", Name: "Bombardier CRJ700", Seats: 70, Category: entity.CategoryRegional},
	"CRJ9": {Code: "CRJ9", Name: "Bombardier CRJ900", Seats: 76, Category: entity.CategoryRegional},
	"E145": {Code: "E145", Name: "Embraer ERJ145", Seats: 50, Category: entity.CategoryRegional},
	"E170": {Code: "E170", Name: "Embraer E170", Seats: 70, Category: entity.CategoryRegional},
	"E175": {Code: "E175", Name: "Embraer E175", Seats: 76, Category: entity.CategoryRegional},
	"E75L": {Code: "E75L", Name: "Embraer E175 (long wing)", Seats: 76, Category: entity.CategoryRegional},

	"A19N": {Code: "A19N", Name: "Airbus A319neo", Seats: 130, Category: entity.CategoryNarrowbodySm},
	"A319": {Code: "A319", Name: "Airbus A319", Seats: 128, Category: entity.CategoryNarrowbodySm},
	"B712": {Code: "B712", Name: "Boeing 717-200", Seats: 110, Category: entity.CategoryNarrowbodySm},
	"E190": {Code: "E190", Name: "Embraer E190", Seats: 100, Category: entity.CategoryNarrowbodySm},

	"A20N": {Code: "A20N", Name: "Airbus A320neo", Seats: 150, Category: entity.CategoryNarrowbody},
	"A320": {Code: "A320", Name: "Airbus A320", Seats: 150, Category: entity.CategoryNarrowbody},
	"B737": {Code: "B737", Name: "Boeing 737-700", Seats: 143, Category: entity.CategoryNarrowbody},
	"B738": {Code: "B738", Name: "Boeing 737-800", Seats: 175, Category: entity.CategoryNarrowbody},
	"B38M": {Code: "B38M", Name: "Boeing 737 MAX 8", Seats: 175, Category: entity.CategoryNarrowbody},

	"A21N": {Code: "A21N", Name: "Airbus A321neo", Seats: 194, Category: entity.CategoryNarrowbodyLg},
	"A321": {Code: "A321", Name: "Airbus A321", Seats: 190, Category: entity.CategoryNarrowbodyLg},
	"B739": {Code: "B739", Name: "Boeing 737-900ER", Seats: 179, Category: entity.CategoryNarrowbodyLg},
	"B39M": {Code: "B39M", Name: "Boeing 737 MAX 9", Seats: 179, Category: entity.CategoryNarrowbodyLg},
	"B752": {Code: "B752", Name: "Boeing 757-200", Seats: 199, Category: entity.CategoryNarrowbodyLg},

	"A332": {Code: "A332", Name: "Airbus A330-200", Seats: 234, Category: entity.CategoryWidebody},
	"A333": {Code: "A333", Name: "Airbus A330-300", Seats: 293, Category: entity.CategoryWidebody},
	"A359": {Code: "A359", Name: "Airbus A350-900", Seats: 306, Category: entity.CategoryWidebody},
	"B763": {Code: "B763", Name: "Boeing 767-300ER", Seats: 261, Category: entity.CategoryWidebody},
	"B772": {Code: "B772", Name: "Boeing 777-200ER", Seats: 276, Category: entity.CategoryWidebody},
	"B77W": {Code: "B77W", Name: "Boeing 777-300ER", Seats: 368, Category: entity.CategoryWidebody},
	"B788": {Code: "B788", Name: "Boeing 787-8", Seats: 248, Category: entity.CategoryWidebody},
	"B789": {Code: "B789", Name: "Boeing 787-9", Seats: 296, Category: entity.CategoryWidebody},
}

const defaultLoadFactor = 0.84

// Observed directional load factors for the routes the dashboard watches
// most. Anything absent falls back to defaultLoadFactor.
//
//nolint:gochecknoglobals
var loadFactorTable = map[string]entity.RouteLoadFactor{
	"ATL-LGA": {LoadFactor: 0.88},
	"ATL-MCO": {LoadFactor: 0.91, Leisure: true},
	"BOS-DCA": {LoadFactor: 0.85},
	"DEN-LAS": {LoadFactor: 0.90, Leisure: true},
	"DFW-LGA": {LoadFactor: 0.87},
	"JFK-LAX": {LoadFactor: 0.89},
	"LAX-JFK": {LoadFactor: 0.89},
	"LGA-ATL": {LoadFactor: 0.88},
	"LGA-ORD": {LoadFactor: 0.86},
	"ORD-LGA": {LoadFactor: 0.86},
	"SFO-LAX": {LoadFactor: 0.83},
}

// Destinations that fill up on Saturdays.
//
//nolint:gochecknoglobals
var leisureAirports = map[string]bool{
	"CUN": true,
	"FLL": true,
	"HNL": true,
	"LAS": true,
	"MCO": true,
	"MIA": true,
	"OGG": true,
	"PBI": true,
	"RSW": true,
	"TPA": true,
}

// Fortress hubs: airports where one carrier's share is dominant enough to
// correlate with aggressive overselling.
//
//nolint:gochecknoglobals
var fortressHubs = map[string]map[string]bool{
	"AA": {"CLT": true, "DFW": true, "MIA": true, "PHL": true, "PHX": true},
	"AS": {"SEA": true, "PDX": true},
	"DL": {"ATL": true, "DTW": true, "MSP": true, "SLC": true},
	"HA": {"HNL": true},
	"UA": {"EWR": true, "IAH": true, "ORD": true},
	"WN": {"DAL": true, "MDW": true},
}

//nolint:gochecknoglobals
var defaultEquipment = map[string]routeDefaults{
	"*":  {short: "CRJ9", medium: "B738", long: "B739"},
	"AA": {short: "E175", medium: "B738", long: "A321"},
	"AS": {short: "E175", medium: "B738", long: "B739"},
	"B6": {short: "E190", medium: "A320", long: "A321"},
	"DL": {short: "CRJ9", medium: "B738", long: "B739"},
	"F9": {short: "A319", medium: "A320", long: "A21N"},
	"G4": {short: "A319", medium: "A320", long: "A320"},
	"HA": {short: "B712", medium: "A21N", long: "A332"},
	"NK": {short: "A319", medium: "A20N", long: "A21N"},
	"UA": {short: "CRJ7", medium: "B738", long: "B739"},
	"WN": {short: "B737", medium: "B737", long: "B738"},
}

// Free-form model names seen in schedule feeds, keyed by a distinctive
// uppercase fragment. Checked in order so the more specific fragment wins
// ("A321NEO" before "A321").
//
//nolint:gochecknoglobals
var modelAliases = []struct {
	fragment   string
	designator string
}{
	{"737 MAX 8", "B38M"},
	{"737 MAX 9", "B39M"},
	{"737-700", "B737"},
	{"737-800", "B738"},
	{"737-900", "B739"},
	{"757-200", "B752"},
	{"767-300", "B763"},
	{"777-300", "B77W"},
	{"787-8", "B788"},
	{"787-9", "B789"},
	{"A320NEO", "A20N"},
	{"A321NEO", "A21N"},
	{"A319", "A319"},
	{"A320", "A320"},
	{"A321", "A321"},
	{"A330-200", "A332"},
	{"A350", "A359"},
	{"CRJ-200", "CRJ2"},
	{"CRJ-700", "CRJ7"},
	{"CRJ-900", "CRJ9"},
	{"E170", "E170"},
	{"E175", "E175"},
	{"E190", "E190"},
	{"717", "B712"},
}

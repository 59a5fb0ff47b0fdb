package reference

import (
	"math"
	"time"
)

// Coordinates returns the lat/lon for an airport this system scores.
func Coordinates(airport string) ([2]float64, bool) {
	c, ok := airportCoordinates[airport]
	return c, ok
}

// RouteDuration estimates block time for a route from great-circle
// distance: cruise around 800 km/h plus taxi and climb overhead. Unknown
// airports get a zero duration, which callers treat as "medium".
func RouteDuration(origin, destination string) time.Duration {
	from, ok := airportCoordinates[origin]
	if !ok {
		return 0
	}
	to, ok := airportCoordinates[destination]
	if !ok {
		return 0
	}

	km := haversineKm(from[0], from[1], to[0], to[1])

	return time.Duration(km/800*float64(time.Hour)) + 30*time.Minute
}

const earthRadiusKm = 6371

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

//nolint:gochecknoglobals
var airportCoordinates = map[string][2]float64{
	"ATL": {33.6407, -84.4277},
	"BOS": {42.3656, -71.0096},
	"CLT": {35.2144, -80.9473},
	"DAL": {32.8471, -96.8518},
	"DCA": {38.8512, -77.0402},
	"DEN": {39.8561, -104.6737},
	"DFW": {32.8998, -97.0403},
	"DTW": {42.2162, -83.3554},
	"EWR": {40.6895, -74.1745},
	"FLL": {26.0742, -80.1506},
	"HNL": {21.3187, -157.9225},
	"IAH": {29.9902, -95.3368},
	"JFK": {40.6413, -73.7781},
	"LAS": {36.0840, -115.1537},
	"LAX": {33.9416, -118.4085},
	"LGA": {40.7769, -73.8740},
	"MCO": {28.4312, -81.3081},
	"MDW": {41.7868, -87.7522},
	"MIA": {25.7959, -80.2870},
	"MSP": {44.8848, -93.2223},
	"ORD": {41.9742, -87.9073},
	"PHL": {39.8744, -75.2424},
	"PHX": {33.4373, -112.0078},
	"SEA": {47.4502, -122.3088},
	"SFO": {37.6213, -122.3790},
	"SLC": {40.7899, -111.9791},
	"TPA": {27.9772, -82.5311},
}

// Wire models for the public HTTP API.
package rest

// Flight is one reconciled departure on a route.
type Flight struct {
	FlightNumber       string `json:"flightNumber,omitempty"`
	Callsign           string `json:"callsign,omitempty"`
	OperatingCarrier   string `json:"operatingCarrier,omitempty"`
	MarketingCarrier   string `json:"marketingCarrier"`
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	Departure          string `json:"departure,omitempty"` // RFC 3339
	Aircraft           string `json:"aircraft,omitempty"`
	AircraftSeats      int    `json:"aircraftSeats,omitempty"`
	TailNumber         string `json:"tailNumber,omitempty"`
	Verified           bool   `json:"verified"`
	VerificationSource string `json:"verificationSource"`
	IsRegional         bool   `json:"isRegional"`
	DataSource         string `json:"dataSource"`
	LiveStatus         string `json:"liveStatus,omitempty"`
}

// Factor is one scored contribution to a flight's bump score.
type Factor struct {
	Name        string `json:"name"`
	Points      int    `json:"points"`
	MaxPoints   int    `json:"maxPoints"`
	Description string `json:"description"`
}

// ScoredFlight is a flight with its bump score and the full factor
// breakdown behind it.
type ScoredFlight struct {
	Flight

	BumpScore int      `json:"bumpScore"`
	Factors   []Factor `json:"factors"`
}

// RouteFlights is the response of the reconciliation endpoint.
type RouteFlights struct {
	Flights            []Flight `json:"flights"`
	DataSources        []string `json:"dataSources"`
	VerifiedCount      int      `json:"verifiedCount"`
	TotalDepartures    int      `json:"totalDepartures"`
	RateLimited        bool     `json:"rateLimited"`
	OpenskyRateLimited bool     `json:"openskyRateLimited"`
	Message            string   `json:"message,omitempty"`
}

// RouteScores is the response of the scoring endpoint.
type RouteScores struct {
	Flights         []ScoredFlight `json:"flights"`
	DataSources     []string       `json:"dataSources"`
	VerifiedCount   int            `json:"verifiedCount"`
	TotalDepartures int            `json:"totalDepartures"`
	Message         string         `json:"message,omitempty"`
}

// PrefetchRequest asks the service to warm its caches for a set of routes.
type PrefetchRequest struct {
	// Routes like "ATL-LGA".
	Routes []string `json:"routes" validate:"required,min=1,max=20,dive,len=7"`

	// Date in YYYY-MM-DD, defaults to today.
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type PrefetchResponse struct {
	Accepted int `json:"accepted"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

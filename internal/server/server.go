package server

// Server bundles the entity-specific HTTP servers. Flights is the only one
// today; the split keeps room for more surfaces without touching routing.
type Server struct {
	FlightServer
}

func NewServer(flightServer FlightServer) Server {
	return Server{
		FlightServer: flightServer,
	}
}

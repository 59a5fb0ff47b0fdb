package config

import "time"

// Sources configures the four upstream flight data adapters plus the signal
// providers. Base URLs are overridable so tests can point adapters at local
// fakes.
type Sources struct {
	Schedule   ScheduleSource
	Live       LiveSource
	Historical HistoricalSource
	Route      RouteSource
	Weather    WeatherSource
	Airport    AirportStatusSource
}

type ScheduleSource struct {
	BaseURL  string        `env:"SCHEDULE_BASE_URL" envDefault:"https://aerodatabox.p.rapidapi.com"`
	APIKey   string        `env:"SCHEDULE_API_KEY"`
	Timeout  time.Duration `env:"SCHEDULE_TIMEOUT" envDefault:"15s"`
	CacheTTL time.Duration `env:"SCHEDULE_CACHE_TTL" envDefault:"1h"`
	MaxPages int           `env:"SCHEDULE_MAX_PAGES" envDefault:"5" validate:"min=1"`
}

type LiveSource struct {
	BaseURL  string        `env:"LIVE_BASE_URL" envDefault:"https://data-live.flightradar24.com"`
	Timeout  time.Duration `env:"LIVE_TIMEOUT" envDefault:"20s"`
	CacheTTL time.Duration `env:"LIVE_CACHE_TTL" envDefault:"5m"`
}

type HistoricalSource struct {
	BaseURL  string        `env:"HISTORICAL_BASE_URL" envDefault:"https://opensky-network.org/api"`
	Username string        `env:"HISTORICAL_USERNAME"`
	Password string        `env:"HISTORICAL_PASSWORD"`
	Timeout  time.Duration `env:"HISTORICAL_TIMEOUT" envDefault:"20s"`
	CacheTTL time.Duration `env:"HISTORICAL_CACHE_TTL" envDefault:"1h"`

	// MinInterval is the process-wide spacing between requests, shared
	// across all airports.
	MinInterval time.Duration `env:"HISTORICAL_MIN_INTERVAL" envDefault:"6s"`
}

type RouteSource struct {
	BaseURL          string        `env:"ROUTE_BASE_URL" envDefault:"https://api.adsbdb.com"`
	Timeout          time.Duration `env:"ROUTE_TIMEOUT" envDefault:"10s"`
	CacheTTL         time.Duration `env:"ROUTE_CACHE_TTL" envDefault:"24h"`
	NegativeCacheTTL time.Duration `env:"ROUTE_NEGATIVE_CACHE_TTL" envDefault:"45m"`
}

type WeatherSource struct {
	BaseURL  string        `env:"WEATHER_BASE_URL" envDefault:"https://api.open-meteo.com"`
	Timeout  time.Duration `env:"WEATHER_TIMEOUT" envDefault:"10s"`
	CacheTTL time.Duration `env:"WEATHER_CACHE_TTL" envDefault:"30m"`
}

type AirportStatusSource struct {
	BaseURL  string        `env:"AIRPORT_STATUS_BASE_URL" envDefault:"https://nasstatus.faa.gov"`
	Timeout  time.Duration `env:"AIRPORT_STATUS_TIMEOUT" envDefault:"10s"`
	CacheTTL time.Duration `env:"AIRPORT_STATUS_CACHE_TTL" envDefault:"10m"`
}

package config

import "time"

// Scanner configures the optional background route prefetcher that keeps
// adapter caches warm for the dashboard.
type Scanner struct {
	Enabled  bool          `env:"SCANNER_ENABLED" envDefault:"false"`
	Interval time.Duration `env:"SCANNER_INTERVAL" envDefault:"30m"`

	// Routes is a comma-separated list of ORIGIN-DESTINATION pairs,
	// e.g. "ATL-LGA,ORD-LGA".
	Routes []string `env:"SCANNER_ROUTES" envSeparator:","`
}

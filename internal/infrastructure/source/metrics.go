package source

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bumpwatch",
		Subsystem: "source",
		Name:      "fetches_total",
		Help:      "Upstream fetches by adapter and outcome.",
	}, []string{"source", "outcome"})

	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bumpwatch",
		Subsystem: "source",
		Name:      "cache_hits_total",
		Help:      "Adapter reads served from the TTL cache.",
	}, []string{"source"})
)

const (
	outcomeOK          = "ok"
	outcomeError       = "error"
	outcomeRateLimited = "rate_limited"
)

func observeFetch(source string, res Result) {
	switch {
	case res.RateLimited:
		fetchesTotal.WithLabelValues(source, outcomeRateLimited).Inc()
	case res.Error != "":
		fetchesTotal.WithLabelValues(source, outcomeError).Inc()
	default:
		fetchesTotal.WithLabelValues(source, outcomeOK).Inc()
	}
}

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchStrategyResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vendex",
			Name:      "search_strategy_results",
			Help:      "Number of vendors matched per strategy per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"strategy"},
	)

	searchStrategyFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vendex",
			Name:      "search_strategy_failures_total",
			Help:      "Strategy-local failures (tokenization, geocoding)",
		},
		[]string{"strategy"},
	)

	geocodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vendex",
			Name:      "geocode_request_duration_seconds",
			Help:      "Geocoding round-trip duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"success"},
	)

	queryLogFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vendex",
			Name:      "query_log_failures_total",
			Help:      "Dropped query log writes",
		},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(searchStrategyResults)
	prometheus.MustRegister(searchStrategyFailures)
	prometheus.MustRegister(geocodeDuration)
	prometheus.MustRegister(queryLogFailures)
}

// RecordStrategyResult observes the match count of a completed strategy.
func RecordStrategyResult(strategy string, count int) {
	searchStrategyResults.WithLabelValues(strategy).Observe(float64(count))
}

// RecordStrategyFailure counts a strategy-local failure.
func RecordStrategyFailure(strategy string) {
	searchStrategyFailures.WithLabelValues(strategy).Inc()
}

// ObserveGeocodeDuration records one geocoding round trip.
func ObserveGeocodeDuration(seconds float64, success bool) {
	geocodeDuration.WithLabelValues(strconv.FormatBool(success)).Observe(seconds)
}

// RecordQueryLogFailure counts a dropped query log write.
func RecordQueryLogFailure() {
	queryLogFailures.Inc()
}

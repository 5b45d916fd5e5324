// Package metrics exposes the Prometheus collectors of the service. All
// collectors are registered on the default registry and served by /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fate_inyeon"

var (
	// interactionsTotal counts like/dislike requests by outcome.
	// Labels: action (like, dislike), outcome (liked, already_liked, matched,
	// disliked, already_disliked, error)
	interactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "interactions",
		Name:      "total",
		Help:      "Like and dislike requests by outcome",
	}, []string{"action", "outcome"})

	matchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "matches",
		Name:      "created_total",
		Help:      "Matches created",
	})

	matchesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "matches",
		Name:      "removed_total",
		Help:      "Matches dissolved by unmatch",
	})

	pairLockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pair_lock",
		Name:      "wait_seconds",
		Help:      "Time spent acquiring the per-pair lock",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	// httpRequests measures request latency.
	// Labels: method, route (registered path pattern), status
	httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func ObserveInteraction(action, outcome string) {
	interactionsTotal.WithLabelValues(action, outcome).Inc()
}

func MatchCreated() {
	matchesCreated.Inc()
}

func MatchRemoved() {
	matchesRemoved.Inc()
}

func ObservePairLockWait(d time.Duration) {
	pairLockWait.Observe(d.Seconds())
}

func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

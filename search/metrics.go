package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chopsticks_search_total",
			Help: "Move searches by outcome",
		},
		[]string{"outcome"},
	)
	SearchNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chopsticks_search_nodes",
			Help:    "Positions generated per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chopsticks_search_duration_seconds",
			Help:    "Wall time spent per search",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(Searches)
	prometheus.MustRegister(SearchNodes)
	prometheus.MustRegister(SearchDuration)
}

func observe(res *Result, err error, took time.Duration) {
	Searches.WithLabelValues(outcome(err)).Inc()
	SearchDuration.Observe(took.Seconds())
	if res != nil {
		SearchNodes.Observe(float64(res.Nodes))
	}
}

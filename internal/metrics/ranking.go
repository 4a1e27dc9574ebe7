package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking Prometheus metrics.
var (
	RankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profilematch",
			Name:      "rank_requests_total",
			Help:      "Total number of ranking requests",
		},
		[]string{"status"},
	)

	RankDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "profilematch",
			Name:      "rank_duration_seconds",
			Help:      "Time to build the similarity space and rank candidates",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RankCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "profilematch",
			Name:      "rank_candidates",
			Help:      "Number of candidates per ranking request",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	RankErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profilematch",
			Name:      "rank_errors_total",
			Help:      "Total ranking errors",
		},
		[]string{"error_type"},
	)
)

var rankMetricsRegistered bool

// RegisterRankingMetrics registers Prometheus ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankRequestsTotal)
	prometheus.MustRegister(RankDuration)
	prometheus.MustRegister(RankCandidates)
	prometheus.MustRegister(RankErrorsTotal)
	rankMetricsRegistered = true
}

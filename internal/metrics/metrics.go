package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "postergen"

var (
	GenerationsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_submitted_total",
			Help:      "Total number of poster generation submissions, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	PollFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_fetches_total",
			Help:      "Total number of task status fetches issued by the poller, labeled by result.",
		},
		[]string{"result"},
	)

	GenerationOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_outcomes_total",
			Help:      "Total number of terminal polling outcomes, labeled by state.",
		},
		[]string{"state"},
	)

	GenerationLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_latency_seconds",
			Help:      "Time from submission to terminal polling outcome (seconds).",
			Buckets:   []float64{1, 3, 6, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"state"},
	)

	ArtifactTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_transitions_total",
			Help:      "Total number of artifact load state transitions, labeled by target state.",
		},
		[]string{"state"},
	)

	RelayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_requests_total",
			Help:      "Total number of image relay requests, labeled by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		GenerationsSubmittedTotal,
		PollFetchesTotal,
		GenerationOutcomesTotal,
		GenerationLatencySeconds,
		ArtifactTransitionsTotal,
		RelayRequestsTotal,
	)
}

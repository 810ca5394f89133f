package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the chat pipeline. Registered once on the
// default registry and exposed via /metrics.
var (
	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendant_chat_requests_total",
		Help: "Chat requests by final status.",
	}, []string{"status"})

	ChatRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "attendant_chat_request_duration_seconds",
		Help:    "End-to-end chat request latency.",
		Buckets: prometheus.DefBuckets,
	})

	CompositionBranchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendant_composition_branch_total",
		Help: "Fact composition decision-table branch taken.",
	}, []string{"branch"})

	ClassificationFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendant_classification_fallbacks_total",
		Help: "Classifications that fell back to the general-overview intent.",
	})

	HumanizationFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendant_humanization_fallbacks_total",
		Help: "Responses served as raw drafts after a failed rewrite.",
	})

	GenAICallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "attendant_genai_call_duration_seconds",
		Help:    "Latency of external text-generation calls.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"operation", "outcome"})

	AnswerCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendant_answer_cache_total",
		Help: "Answer cache lookups by result.",
	}, []string{"result"})

	CatalogSnapshotVersion = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "attendant_catalog_snapshot_version",
		Help: "Version of the currently warmed catalog snapshot per kind.",
	}, []string{"kind"})
)

// Package metrics provides Prometheus metrics for document generation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
// A nil *Metrics records nothing.
type Metrics struct {
	GenerationsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationScore    *prometheus.HistogramVec
	RefinementRevision *prometheus.HistogramVec
	LLMErrorsTotal     *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planforge_generations_total",
				Help: "Document writes from generation by document type, source and status.",
			},
			[]string{"document_type", "source", "status"},
		),
		LLMRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planforge_llm_request_duration_seconds",
				Help:    "Provider call duration by provider and operation.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90, 120},
			},
			[]string{"provider", "operation"},
		),
		EvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planforge_evaluations_total",
				Help: "Evaluations by document type and result.",
			},
			[]string{"document_type", "result"},
		),
		EvaluationScore: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planforge_evaluation_score",
				Help:    "Evaluation scores by document type.",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
			[]string{"document_type"},
		),
		RefinementRevision: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planforge_refinement_revisions",
				Help:    "Revisions written per refinement run by document type.",
				Buckets: prometheus.LinearBuckets(0, 1, 6),
			},
			[]string{"document_type"},
		),
		LLMErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planforge_llm_errors_total",
				Help: "Failed provider calls by operation.",
			},
			[]string{"operation"},
		),
		registry: reg,
	}

	reg.MustRegister(m.GenerationsTotal)
	reg.MustRegister(m.LLMRequestDuration)
	reg.MustRegister(m.EvaluationsTotal)
	reg.MustRegister(m.EvaluationScore)
	reg.MustRegister(m.RefinementRevision)
	reg.MustRegister(m.LLMErrorsTotal)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordGeneration counts a generation attempt.
func (m *Metrics) RecordGeneration(docType, source, status string) {
	if m == nil {
		return
	}
	m.GenerationsTotal.WithLabelValues(docType, source, status).Inc()
}

// ObserveLLMRequest records provider call duration.
func (m *Metrics) ObserveLLMRequest(provider, operation string, seconds float64) {
	if m == nil {
		return
	}
	m.LLMRequestDuration.WithLabelValues(provider, operation).Observe(seconds)
}

// RecordEvaluation counts an evaluation and records its score.
func (m *Metrics) RecordEvaluation(docType string, score int, meetsCriteria bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if meetsCriteria {
		result = "accepted"
	}
	m.EvaluationsTotal.WithLabelValues(docType, result).Inc()
	m.EvaluationScore.WithLabelValues(docType).Observe(float64(score))
}

// ObserveRefinement records how many revisions a refinement run wrote.
func (m *Metrics) ObserveRefinement(docType string, revisions int) {
	if m == nil {
		return
	}
	m.RefinementRevision.WithLabelValues(docType).Observe(float64(revisions))
}

// RecordLLMError increments the provider error counter.
func (m *Metrics) RecordLLMError(operation string) {
	if m == nil {
		return
	}
	m.LLMErrorsTotal.WithLabelValues(operation).Inc()
}

// README: Prometheus collectors on a dedicated registry, exposed at /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "eta"

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Estimates counts answered estimates by source (model or fallback)
	Estimates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "estimates_total", Help: "Delivery estimates by source."},
		[]string{"source"},
	)
	// EstimateDuration tracks time spent computing one estimate
	EstimateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "estimate_duration_seconds", Help: "Estimate latency in seconds.", Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5}},
		[]string{"source"},
	)
	// ModelFailures counts primary path failures that fell back, by reason
	ModelFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "model_failures_total", Help: "Model path failures answered by the fallback formula."},
		[]string{"reason"},
	)
	// UnseenCategories counts request values outside the fitted vocabulary
	UnseenCategories = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "unseen_categories_total", Help: "Categorical values mapped to the fallback code."},
		[]string{"column"},
	)
	// CacheLookups counts estimate cache outcomes (hit, miss, error)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "estimate_cache_lookups_total", Help: "Estimate cache lookups by result."},
		[]string{"result"},
	)
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Estimates)
		Registry.MustRegister(EstimateDuration)
		Registry.MustRegister(ModelFailures)
		Registry.MustRegister(UnseenCategories)
		Registry.MustRegister(CacheLookups)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

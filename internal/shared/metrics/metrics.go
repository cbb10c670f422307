package metrics

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	runsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tailor_runs_started_total",
		Help: "Total tailoring runs started",
	})
	runsFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tailor_runs_finished_total",
		Help: "Total tailoring runs finished, by outcome",
	}, []string{"outcome"})
	runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tailor_run_duration_ms",
		Help:    "Tailoring run duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000},
	})
	modelDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "model_request_duration_ms",
		Help:    "Model completion latency in milliseconds",
		Buckets: []float64{250, 1000, 5000, 10000, 30000, 60000, 120000, 300000},
	}, []string{"model", "result"})
	artifactsLive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "artifacts_live",
		Help: "Generated PDFs currently held by the artifact store",
	})
	artifactsRemoved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artifacts_removed_total",
		Help: "Generated PDFs removed from the artifact store, by reason",
	}, []string{"reason"})
	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the rate limiter, by route group",
	}, []string{"group"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		runsStarted,
		runsFinished,
		runDuration,
		modelDuration,
		artifactsLive,
		artifactsRemoved,
		rateLimited,
	)
}

// IncRunStarted increments the started counter.
func IncRunStarted() {
	runsStarted.Inc()
}

// IncRunFinished increments the finished counter for an outcome.
func IncRunFinished(outcome string) {
	runsFinished.WithLabelValues(outcome).Inc()
}

// ObserveRunDurationMs records a run duration in milliseconds.
func ObserveRunDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	runDuration.Observe(value)
}

// ObserveModelRequest records a model call's latency and result ("ok" or "error").
func ObserveModelRequest(model, result string, elapsed time.Duration) {
	modelDuration.WithLabelValues(model, result).Observe(float64(elapsed.Milliseconds()))
}

// SetArtifactsLive sets the number of artifacts currently stored.
func SetArtifactsLive(n int) {
	artifactsLive.Set(float64(n))
}

// IncArtifactRemoved counts an artifact removal ("released", "expired" or "evicted").
func IncArtifactRemoved(reason string) {
	artifactsRemoved.WithLabelValues(reason).Inc()
}

// IncRateLimited counts a request rejected for a route group.
func IncRateLimited(group string) {
	rateLimited.WithLabelValues(group).Inc()
}

// RegisterDBStats exposes connection pool stats for db under the given name.
// Registering the same name twice is a no-op.
func RegisterDBStats(db *sql.DB, name string) error {
	if db == nil {
		return nil
	}
	err := Registry.Register(collectors.NewDBStatsCollector(db, name))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the activity audit pipeline.
type Metrics struct {
	// Records accepted by the writer queue
	Recorded prometheus.Counter

	// Requests that produced no record, by reason
	NotRecorded *prometheus.CounterVec

	// Records lost because the writer queue was full
	Dropped prometheus.Counter

	// Store append failures in the background writer
	WriteFailures prometheus.Counter

	// Pipeline evaluation latency, observation through enqueue
	ObserveLatency prometheus.Histogram
}

// Reasons for NotRecorded.
const (
	ReasonNoActor    = "no_actor"
	ReasonSkipPath   = "skip_path"
	ReasonFailedResp = "failed_response"
)

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		Recorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sistemdekor_activity_recorded_total",
			Help: "Total activity records accepted for persistence",
		}),

		NotRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sistemdekor_activity_not_recorded_total",
			Help: "Total observed requests that produced no record, by reason",
		}, []string{"reason"}),

		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sistemdekor_activity_dropped_total",
			Help: "Total records dropped because the writer queue was full",
		}),

		WriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sistemdekor_activity_write_failures_total",
			Help: "Total append failures in the background activity writer",
		}),

		ObserveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sistemdekor_activity_observe_duration_seconds",
			Help:    "Duration of post-response activity pipeline evaluation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		}),
	}
}

// IncRecorded counts a record handed to the writer queue.
func (m *Metrics) IncRecorded() {
	if m != nil {
		m.Recorded.Inc()
	}
}

// IncNotRecorded counts a request suppressed before the writer, by reason.
func (m *Metrics) IncNotRecorded(reason string) {
	if m != nil {
		m.NotRecorded.WithLabelValues(reason).Inc()
	}
}

// IncDropped counts a record lost to a full queue.
func (m *Metrics) IncDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

// IncWriteFailures counts a failed store append.
func (m *Metrics) IncWriteFailures() {
	if m != nil {
		m.WriteFailures.Inc()
	}
}

// ObserveEvaluation records the pipeline evaluation duration.
func (m *Metrics) ObserveEvaluation(d time.Duration) {
	if m != nil {
		m.ObserveLatency.Observe(d.Seconds())
	}
}

package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/Traasa/SistemDekor-sub004/internal/activity/metrics"
)

// Sink accepts assembled records for persistence. Emit must never block the
// caller: recording is best-effort and stays off the request's critical path.
type Sink interface {
	Emit(rec Record) bool
}

// Recorder is the asynchronous audit writer: a bounded inbox drained by a
// background goroutine. A full inbox drops the record and counts it; a store
// failure is logged and counted. Neither ever surfaces to the request that
// produced the record.
type Recorder struct {
	store   Store
	inbox   chan Record
	logger  *slog.Logger
	metrics *metrics.Metrics

	appendTimeout time.Duration
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithQueueSize bounds the inbox. Sizes below 1 fall back to the default.
func WithQueueSize(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.inbox = make(chan Record, n)
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) RecorderOption {
	return func(r *Recorder) {
		r.metrics = m
	}
}

const defaultQueueSize = 1024

// NewRecorder builds a recorder over the given store. Run must be started for
// emitted records to reach the store.
func NewRecorder(store Store, logger *slog.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:         store,
		inbox:         make(chan Record, defaultQueueSize),
		logger:        logger,
		appendTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Emit hands a record to the background writer without blocking. Returns
// false when the inbox is full and the record was dropped.
func (r *Recorder) Emit(rec Record) bool {
	select {
	case r.inbox <- rec:
		r.metrics.IncRecorded()
		return true
	default:
		r.metrics.IncDropped()
		r.logger.Warn("activity inbox full, dropping record",
			"activity_type", rec.Type,
			"actor_id", rec.ActorID,
		)
		return false
	}
}

// Run consumes the inbox and persists records until ctx is cancelled, then
// drains whatever is already queued before returning.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return ctx.Err()
		case rec := <-r.inbox:
			r.append(rec)
		}
	}
}

func (r *Recorder) drain() {
	for {
		select {
		case rec := <-r.inbox:
			r.append(rec)
		default:
			return
		}
	}
}

// append writes one record. Failures are observed locally and never retried:
// once a request has completed, its audit decision is final.
func (r *Recorder) append(rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.appendTimeout)
	defer cancel()

	if err := r.store.Append(ctx, rec); err != nil {
		r.metrics.IncWriteFailures()
		r.logger.Error("activity record append failed",
			"activity_type", rec.Type,
			"actor_id", rec.ActorID,
			"error", err,
		)
	}
}

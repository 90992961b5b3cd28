package activity

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Traasa/SistemDekor-sub004/internal/activity/metrics"
	"github.com/Traasa/SistemDekor-sub004/pkg/requestcontext"
)

// maxCapturedBody bounds how much of a mutating request's payload is buffered
// for the sanitizer. Larger bodies (file uploads) yield no captured payload.
const maxCapturedBody = 1 << 20

// Interceptor wraps request handling and records audited activity after the
// downstream handler has produced its response. It never alters request or
// response content; the downstream handler always runs.
type Interceptor struct {
	sink      Sink
	skip      *SkipFilter
	sanitizer *Sanitizer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// InterceptorOption configures an Interceptor.
type InterceptorOption func(*Interceptor)

// WithSkipFilter overrides the default skip filter.
func WithSkipFilter(f *SkipFilter) InterceptorOption {
	return func(i *Interceptor) {
		i.skip = f
	}
}

// WithSanitizer overrides the default payload sanitizer.
func WithSanitizer(s *Sanitizer) InterceptorOption {
	return func(i *Interceptor) {
		i.sanitizer = s
	}
}

// WithInterceptorMetrics sets the metrics collector.
func WithInterceptorMetrics(m *metrics.Metrics) InterceptorOption {
	return func(i *Interceptor) {
		i.metrics = m
	}
}

// NewInterceptor builds the audit interceptor around a sink.
func NewInterceptor(sink Sink, logger *slog.Logger, opts ...InterceptorOption) *Interceptor {
	i := &Interceptor{
		sink:      sink,
		skip:      NewSkipFilter(nil),
		sanitizer: NewSanitizer(nil),
		logger:    logger,
		tracer:    otel.Tracer("activity"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Middleware returns the http middleware form of the interceptor. Mount it
// inside the auth middleware so the actor is already in context.
func (i *Interceptor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if IsMutating(r.Method) && r.Body != nil {
			body, _ = io.ReadAll(io.LimitReader(r.Body, maxCapturedBody+1))
			// Replay the buffered prefix and chain the unread remainder so
			// the downstream handler sees the body byte for byte.
			r.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
			if len(body) > maxCapturedBody {
				body = nil
			}
		}

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		i.observe(r, sw.Status(), body)
	})
}

// observe runs the pipeline once for a completed request: actor gate, skip
// filter, classification, subject resolution, payload capture, description,
// outcome gate, and finally the hand-off to the writer.
func (i *Interceptor) observe(r *http.Request, status int, body []byte) {
	ctx := r.Context()

	actor, ok := requestcontext.Actor(ctx)
	if !ok {
		i.metrics.IncNotRecorded(metrics.ReasonNoActor)
		return
	}

	if i.skip.ShouldSkip(r.URL.Path) {
		i.metrics.IncNotRecorded(metrics.ReasonSkipPath)
		return
	}

	start := time.Now()
	ctx, span := i.tracer.Start(ctx, "activity.observe")
	defer span.End()
	defer func() { i.metrics.ObserveEvaluation(time.Since(start)) }()

	kind := Classify(r.Method, r.URL.Path)
	subjectType, subjectID := ResolveSubject(routeParams(r))

	var properties map[string]any
	if IsMutating(r.Method) {
		if payload := decodePayload(body, r.Header.Get("Content-Type")); payload != nil {
			properties = map[string]any{
				PropertyRequestData: i.sanitizer.Sanitize(payload),
			}
		}
	}

	description := Describe(actor.Name, kind, r.URL.Path)

	// Suppression is decided against the response the handler actually
	// produced, never a pre-dispatch guess.
	if status >= http.StatusBadRequest {
		span.AddEvent("suppressed")
		i.metrics.IncNotRecorded(metrics.ReasonFailedResp)
		return
	}

	rec := Record{
		ID:          uuid.New(),
		ActorID:     actor.ID,
		Type:        kind,
		Description: description,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Properties:  properties,
		IPAddress:   requestcontext.ClientIP(ctx),
		UserAgent:   requestcontext.UserAgent(ctx),
		Method:      r.Method,
		URL:         r.URL.String(),
		CreatedAt:   requestcontext.Now(ctx),
	}
	i.sink.Emit(rec)
}

// routeParams collects the chi-bound parameters in binding order.
func routeParams(r *http.Request) []Param {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	params := make([]Param, 0, len(rctx.URLParams.Keys))
	for idx, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		params = append(params, Param{Name: key, Value: rctx.URLParams.Values[idx]})
	}
	return params
}

// decodePayload turns a captured body into a key-value map. JSON objects and
// urlencoded forms are understood; anything else yields nil so the record
// simply carries no properties.
func decodePayload(body []byte, contentType string) map[string]any {
	if len(body) == 0 {
		return nil
	}

	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil
		}
		payload := make(map[string]any, len(values))
		for k, v := range values {
			if len(v) == 1 {
				payload[k] = v[0]
				continue
			}
			payload[k] = v
		}
		return payload
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") || mediaType == "":
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil
		}
		return payload
	}
	return nil
}

// statusWriter records the status code the downstream handler wrote without
// otherwise interfering with the response.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(p)
}

// Status returns the recorded status, defaulting to 200 when the handler
// never wrote one explicitly.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

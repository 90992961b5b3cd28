// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// This package defines context keys and getter/setter functions for values that are
// typically set by middleware but consumed by services. By keeping this package free
// of net/http dependencies, services can import only what they need without pulling
// in HTTP-related code.
//
// Usage in services (read values):
//
//	actor, ok := requestcontext.Actor(ctx)
//	ip := requestcontext.ClientIP(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithActor(ctx, actor)
//	ctx = requestcontext.WithClientMetadata(ctx, ip, userAgent)
package requestcontext

import (
	"context"
	"time"
)

// ActorContext is the authenticated identity attached to a request. It is set
// by the auth middleware and is the single precondition for activity recording.
type ActorContext struct {
	ID   int64
	Name string
}

// actorHolder is a mutable slot for requests that authenticate mid-flight
// (login): the handler establishes the actor after the auth middleware has
// already run, and observers such as the activity interceptor read it once the
// response is complete. One holder per request, accessed only from the
// request's own goroutine.
type actorHolder struct {
	actor *ActorContext
}

// Context key types (unexported for encapsulation).
type (
	actorKey       struct{}
	actorHolderKey struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyActor       = actorKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Actor context
// -----------------------------------------------------------------------------

// Actor retrieves the authenticated actor from the context.
// The boolean reports whether an actor is attached at all.
func Actor(ctx context.Context) (ActorContext, bool) {
	if actor, ok := ctx.Value(ContextKeyActor).(ActorContext); ok {
		return actor, true
	}
	if h, ok := ctx.Value(actorHolderKey{}).(*actorHolder); ok && h.actor != nil {
		return *h.actor, true
	}
	return ActorContext{}, false
}

// WithActor injects an authenticated actor into the context.
func WithActor(ctx context.Context, actor ActorContext) context.Context {
	return context.WithValue(ctx, ContextKeyActor, actor)
}

// WithActorHolder attaches an empty actor slot for handlers that authenticate
// mid-request. Apply on routes like login where the actor does not exist until
// the handler has run.
func WithActorHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, actorHolderKey{}, &actorHolder{})
}

// SetActor fills the actor slot attached by WithActorHolder. A no-op when the
// context carries no holder.
func SetActor(ctx context.Context, actor ActorContext) {
	if h, ok := ctx.Value(actorHolderKey{}).(*actorHolder); ok {
		h.actor = &actor
	}
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent)
// -----------------------------------------------------------------------------

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like workers and tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for tests that need
// deterministic record timestamps.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

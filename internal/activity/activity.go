// Package activity implements the request activity audit pipeline: an
// interceptor that observes completed requests, decides whether they are worth
// recording, and appends an immutable record describing who did what to which
// entity. Classification, subject resolution, payload redaction, and
// description rendering are pure functions over declarative tables so the
// pipeline stays testable without HTTP plumbing.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type is the semantic kind of a recorded interaction.
type Type string

const (
	TypeLogin    Type = "login"
	TypeLogout   Type = "logout"
	TypeVerify   Type = "verify"
	TypeReject   Type = "reject"
	TypeUpload   Type = "upload"
	TypeDownload Type = "download"
	TypeView     Type = "view"
	TypeCreate   Type = "create"
	TypeUpdate   Type = "update"
	TypeDelete   Type = "delete"
	TypeAction   Type = "action"
)

// PropertyRequestData is the properties key carrying the sanitized payload of
// mutating requests.
const PropertyRequestData = "request_data"

// Record is one immutable audit entry. It is created once, after the wrapped
// handler has produced its response, and never updated.
type Record struct {
	ID          uuid.UUID
	ActorID     int64
	Type        Type
	Description string

	// SubjectType and SubjectID name the business entity the request
	// concerned. SubjectID set implies SubjectType set; when the entity
	// cannot be inferred both stay nil, never one of the two.
	SubjectType *string
	SubjectID   *int64

	// Properties carries the sanitized request payload for mutating methods
	// under PropertyRequestData; nil otherwise.
	Properties map[string]any

	IPAddress string
	UserAgent string
	Method    string
	URL       string
	CreatedAt time.Time
}

//go:generate mockgen -source=activity.go -destination=mocks/store_mock.go -package=mocks Store

// Store is the append-only persistence port for activity records. Stores must
// never mutate records after Append.
type Store interface {
	Append(ctx context.Context, rec Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	ListByActor(ctx context.Context, actorID int64) ([]Record, error)
}

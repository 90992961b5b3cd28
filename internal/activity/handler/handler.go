package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mssola/useragent"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
	"github.com/Traasa/SistemDekor-sub004/pkg/requestcontext"
)

const defaultListLimit = 50

// Handler exposes the recorded activity trail to the admin UI.
type Handler struct {
	store  activity.Store
	logger *slog.Logger
}

// New constructs the activity handler.
func New(store activity.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts activity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/activities", h.handleList)
}

// recordResponse is the JSON shape of one record in the listing.
type recordResponse struct {
	ID          string         `json:"id"`
	ActorID     int64          `json:"actor_id"`
	Type        string         `json:"activity_type"`
	Description string         `json:"description"`
	SubjectType *string        `json:"subject_type,omitempty"`
	SubjectID   *int64         `json:"subject_id,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	IPAddress   string         `json:"ip_address"`
	Device      string         `json:"device"`
	Method      string         `json:"method"`
	URL         string         `json:"url"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.store.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list activities failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeJSONError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, recordResponse{
			ID:          rec.ID.String(),
			ActorID:     rec.ActorID,
			Type:        string(rec.Type),
			Description: rec.Description,
			SubjectType: rec.SubjectType,
			SubjectID:   rec.SubjectID,
			Properties:  rec.Properties,
			IPAddress:   rec.IPAddress,
			Device:      deviceSummary(rec.UserAgent),
			Method:      rec.Method,
			URL:         rec.URL,
			CreatedAt:   rec.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"activities": out})
}

// deviceSummary renders a stored user-agent as "Browser on OS" for display.
// The raw string stays on the record; this is presentation only.
func deviceSummary(rawUA string) string {
	if rawUA == "" {
		return "unknown"
	}
	ua := useragent.New(rawUA)
	name, _ := ua.Browser()
	os := ua.OS()
	switch {
	case name != "" && os != "":
		return name + " on " + os
	case name != "":
		return name
	default:
		return rawUA
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

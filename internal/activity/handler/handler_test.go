package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
	"github.com/Traasa/SistemDekor-sub004/internal/activity/store/memory"
)

func newTestHandler(t *testing.T) (http.Handler, *memory.InMemoryStore) {
	t.Helper()

	store := memory.NewInMemoryStore()
	h := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r, store
}

type listResponse struct {
	Activities []recordResponse `json:"activities"`
}

func TestHandleList(t *testing.T) {
	h, store := newTestHandler(t)

	subjectType := "Order"
	subjectID := int64(42)
	rec := activity.Record{
		ID:          uuid.New(),
		ActorID:     7,
		Type:        activity.TypeView,
		Description: "Rina viewed Order",
		SubjectType: &subjectType,
		SubjectID:   &subjectID,
		IPAddress:   "203.0.113.9",
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		Method:      "GET",
		URL:         "/orders/42",
		CreatedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Append(context.Background(), rec))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/activities", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Activities, 1)

	got := resp.Activities[0]
	assert.Equal(t, rec.ID.String(), got.ID)
	assert.Equal(t, int64(7), got.ActorID)
	assert.Equal(t, "view", got.Type)
	assert.Equal(t, "Rina viewed Order", got.Description)
	assert.Equal(t, &subjectType, got.SubjectType)
	assert.Equal(t, &subjectID, got.SubjectID)
	assert.Equal(t, "203.0.113.9", got.IPAddress)
	assert.Contains(t, got.Device, "Chrome")
	assert.Contains(t, got.Device, " on ")
}

func TestHandleList_Limit(t *testing.T) {
	h, store := newTestHandler(t)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := range 5 {
		require.NoError(t, store.Append(context.Background(), activity.Record{
			ID:        uuid.New(),
			ActorID:   int64(i + 1),
			Type:      activity.TypeView,
			Method:    "GET",
			URL:       "/orders",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/activities?limit=2", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Activities, 2)

	// Newest first.
	assert.Equal(t, int64(5), resp.Activities[0].ActorID)
	assert.Equal(t, int64(4), resp.Activities[1].ActorID)
}

func TestHandleList_InvalidLimit(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, raw := range []string{"abc", "0", "-1"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/activities?limit="+raw, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "limit=%s", raw)
	}
}

func TestHandleList_Empty(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/activities", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Activities)
}

func TestDeviceSummary(t *testing.T) {
	assert.Equal(t, "unknown", deviceSummary(""))

	got := deviceSummary("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15")
	assert.Contains(t, got, "Safari")
	assert.Contains(t, got, " on ")
}

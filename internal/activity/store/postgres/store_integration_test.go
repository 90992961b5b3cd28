//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
	"github.com/Traasa/SistemDekor-sub004/pkg/testutil/containers"
)

func TestStore_RoundTrip(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store := New(pc.DB)
	require.NoError(t, store.Migrate(ctx))

	subjectType := "Order"
	subjectID := int64(42)
	want := activity.Record{
		ID:          uuid.New(),
		ActorID:     7,
		Type:        activity.TypeUpdate,
		Description: "Rina updated Order",
		SubjectType: &subjectType,
		SubjectID:   &subjectID,
		Properties: map[string]any{
			activity.PropertyRequestData: map[string]any{
				"client_name": "Ayu",
				"password":    activity.RedactionMarker,
			},
		},
		IPAddress: "203.0.113.9",
		UserAgent: "test-agent/1.0",
		Method:    "PUT",
		URL:       "/orders/42",
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Append(ctx, want))

	got, err := store.ListByActor(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, want.ID, got[0].ID)
	assert.Equal(t, want.ActorID, got[0].ActorID)
	assert.Equal(t, want.Type, got[0].Type)
	assert.Equal(t, want.Description, got[0].Description)
	assert.Equal(t, want.SubjectType, got[0].SubjectType)
	assert.Equal(t, want.SubjectID, got[0].SubjectID)
	assert.Equal(t, want.Properties, got[0].Properties)
	assert.Equal(t, want.IPAddress, got[0].IPAddress)
	assert.Equal(t, want.UserAgent, got[0].UserAgent)
	assert.Equal(t, want.Method, got[0].Method)
	assert.Equal(t, want.URL, got[0].URL)
	assert.True(t, want.CreatedAt.Equal(got[0].CreatedAt))
}

func TestStore_NullSubjectAndProperties(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store := New(pc.DB)
	require.NoError(t, store.Migrate(ctx))

	want := activity.Record{
		ID:          uuid.New(),
		ActorID:     3,
		Type:        activity.TypeView,
		Description: "Rina viewed Order",
		IPAddress:   "203.0.113.9",
		Method:      "GET",
		URL:         "/orders",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, store.Append(ctx, want))

	got, err := store.ListByActor(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Nil(t, got[0].SubjectType)
	assert.Nil(t, got[0].SubjectID)
	assert.Nil(t, got[0].Properties)
}

func TestStore_AppendIsIdempotent(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store := New(pc.DB)
	require.NoError(t, store.Migrate(ctx))

	rec := activity.Record{
		ID:          uuid.New(),
		ActorID:     5,
		Type:        activity.TypeCreate,
		Description: "Rina created new Order",
		Method:      "POST",
		URL:         "/orders",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.Append(ctx, rec))
	require.NoError(t, store.Append(ctx, rec))

	got, err := store.ListByActor(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_ListRecentOrderAndLimit(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store := New(pc.DB)
	require.NoError(t, store.Migrate(ctx))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := range 5 {
		rec := activity.Record{
			ID:          uuid.New(),
			ActorID:     int64(i + 1),
			Type:        activity.TypeView,
			Description: "Rina viewed Order",
			Method:      "GET",
			URL:         "/orders",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Append(ctx, rec))
	}

	got, err := store.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(5), got[0].ActorID)
	assert.Equal(t, int64(4), got[1].ActorID)
	assert.Equal(t, int64(3), got[2].ActorID)
}

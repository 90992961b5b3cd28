package activity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
	"github.com/Traasa/SistemDekor-sub004/internal/activity/mocks"
	"github.com/Traasa/SistemDekor-sub004/internal/activity/store/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecord(actorID int64) activity.Record {
	return activity.Record{
		ID:          uuid.New(),
		ActorID:     actorID,
		Type:        activity.TypeView,
		Description: "Rina viewed Order",
		Method:      "GET",
		URL:         "/orders/42",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestRecorder_PersistsEmittedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	store := mocks.NewMockStore(ctrl)

	appended := make(chan activity.Record, 1)
	store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec activity.Record) error {
			appended <- rec
			return nil
		})

	rec := activity.NewRecorder(store, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = rec.Run(ctx)
		close(done)
	}()

	want := testRecord(7)
	require.True(t, rec.Emit(want))

	select {
	case got := <-appended:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("record never reached the store")
	}

	cancel()
	<-done
}

func TestRecorder_EmitNeverBlocks(t *testing.T) {
	// No worker running, queue of one: the second emit must drop, not block.
	store := memory.NewInMemoryStore()
	rec := activity.NewRecorder(store, discardLogger(), activity.WithQueueSize(1))

	assert.True(t, rec.Emit(testRecord(1)))
	assert.False(t, rec.Emit(testRecord(2)))
}

func TestRecorder_StoreFailureDoesNotStopWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	store := mocks.NewMockStore(ctrl)

	second := make(chan struct{})
	gomock.InOrder(
		store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("store down")),
		store.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, activity.Record) error {
				close(second)
				return nil
			}),
	)

	rec := activity.NewRecorder(store, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = rec.Run(ctx) }()

	require.True(t, rec.Emit(testRecord(1)))
	require.True(t, rec.Emit(testRecord(2)))

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped after a store failure")
	}
}

func TestRecorder_DrainsOnShutdown(t *testing.T) {
	store := memory.NewInMemoryStore()
	rec := activity.NewRecorder(store, discardLogger(), activity.WithQueueSize(100))

	for i := range 10 {
		require.True(t, rec.Emit(testRecord(int64(i+1))))
	}

	// Run against an already-cancelled context: everything queued must still
	// be written before Run returns.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rec.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	records, listErr := store.ListRecent(context.Background(), 100)
	require.NoError(t, listErr)
	assert.Len(t, records, 10, "all queued records should be drained on shutdown")
}

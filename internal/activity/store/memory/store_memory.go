package memory

import (
	"context"
	"sync"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
)

// InMemoryStore keeps activity records in memory. Used in tests and when no
// database is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []activity.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Clear drops all records. Test helper.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

func (s *InMemoryStore) Append(_ context.Context, rec activity.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// ListRecent returns up to limit records, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]activity.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]activity.Record, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// ListByActor returns the records produced by one actor, oldest first.
func (s *InMemoryStore) ListByActor(_ context.Context, actorID int64) ([]activity.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []activity.Record
	for _, rec := range s.records {
		if rec.ActorID == actorID {
			out = append(out, rec)
		}
	}
	return out, nil
}

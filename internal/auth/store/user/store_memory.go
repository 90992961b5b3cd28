package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/Traasa/SistemDekor-sub004/internal/auth"
	"github.com/Traasa/SistemDekor-sub004/pkg/platform/sentinel"
)

// InMemoryStore keeps users in memory, keyed by email. The admin application
// has a small fixed staff, so a seeded map is the production default until a
// database-backed store is needed.
type InMemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]auth.User
	byID    map[int64]auth.User
	nextID  int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byEmail: make(map[string]auth.User),
		byID:    make(map[int64]auth.User),
		nextID:  1,
	}
}

// Seed inserts a user, assigning an ID when none is set.
func (s *InMemoryStore) Seed(u auth.User) auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == 0 {
		u.ID = s.nextID
	}
	if u.ID >= s.nextID {
		s.nextID = u.ID + 1
	}
	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
	return u
}

// FindByEmail looks a user up by email.
func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[email]
	if !ok {
		return auth.User{}, fmt.Errorf("user %q: %w", email, sentinel.ErrNotFound)
	}
	return u, nil
}

// FindByID looks a user up by ID.
func (s *InMemoryStore) FindByID(_ context.Context, id int64) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return auth.User{}, fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
	}
	return u, nil
}

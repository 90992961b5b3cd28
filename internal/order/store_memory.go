package order

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Traasa/SistemDekor-sub004/pkg/platform/sentinel"
)

// InMemoryStore keeps orders and their payment proofs in memory.
type InMemoryStore struct {
	mu          sync.RWMutex
	orders      map[int64]Order
	proofs      map[int64]PaymentProof
	nextOrder   int64
	nextPayment int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		orders:      make(map[int64]Order),
		proofs:      make(map[int64]PaymentProof),
		nextOrder:   1,
		nextPayment: 1,
	}
}

func (s *InMemoryStore) Create(_ context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextOrder
	s.nextOrder++
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = StatusPending
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *InMemoryStore) Get(_ context.Context, id int64) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("order %d: %w", id, sentinel.ErrNotFound)
	}
	return o, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.orders[o.ID]
	if !ok {
		return Order{}, fmt.Errorf("order %d: %w", o.ID, sentinel.ErrNotFound)
	}
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = time.Now()
	s.orders[o.ID] = o
	return o, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("order %d: %w", id, sentinel.ErrNotFound)
	}
	delete(s.orders, id)
	return nil
}

// SetStatus transitions an order's verification state.
func (s *InMemoryStore) SetStatus(_ context.Context, id int64, status Status) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("order %d: %w", id, sentinel.ErrNotFound)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[id] = o
	return o, nil
}

// SaveProof attaches an uploaded payment proof to an order.
func (s *InMemoryStore) SaveProof(_ context.Context, p PaymentProof) (PaymentProof, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[p.OrderID]; !ok {
		return PaymentProof{}, fmt.Errorf("order %d: %w", p.OrderID, sentinel.ErrNotFound)
	}
	p.ID = s.nextPayment
	s.nextPayment++
	p.UploadedAt = time.Now()
	s.proofs[p.ID] = p
	return p, nil
}

// GetProof fetches a payment proof by ID, scoped to its order.
func (s *InMemoryStore) GetProof(_ context.Context, orderID, proofID int64) (PaymentProof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.proofs[proofID]
	if !ok || p.OrderID != orderID {
		return PaymentProof{}, fmt.Errorf("payment proof %d: %w", proofID, sentinel.ErrNotFound)
	}
	return p, nil
}

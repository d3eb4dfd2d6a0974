package cartstore

import (
	"context"
	"sync"

	"ticketbooth/internal/domain/cart"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
)

// MemoryStore keeps carts in process memory, keyed by user id. Contents do
// not survive a restart; orders are the durable record, carts are staging.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]cart.Line
}

func NewMemoryStore() shared.CartStore {
	return &MemoryStore{carts: make(map[uuid.UUID][]cart.Line)}
}

func (s *MemoryStore) Get(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines, ok := s.carts[userID]
	if !ok {
		return nil, nil
	}
	// Hand out a reconstruction so callers never share line slices
	return cart.Reconstruct(lines), nil
}

func (s *MemoryStore) Put(_ context.Context, userID uuid.UUID, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = c.Lines()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

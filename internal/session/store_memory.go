package session

import (
	"context"
	"sync"

	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/pricing"
)

// MemoryStore is used for tests and local scenarios.
type MemoryStore struct {
	mu        sync.Mutex
	countries map[string]pricing.Country
	pending   map[string]cart.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		countries: make(map[string]pricing.Country),
		pending:   make(map[string]cart.Item),
	}
}

func (s *MemoryStore) Country(ctx context.Context, sessionID string) (pricing.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.countries[sessionID]; ok && pricing.Valid(c) {
		return c, nil
	}
	return pricing.CountryIN, nil
}

func (s *MemoryStore) SetCountry(ctx context.Context, sessionID string, country pricing.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[sessionID] = country
	return nil
}

func (s *MemoryStore) SetPending(ctx context.Context, sessionID string, item cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[sessionID] = item
	return nil
}

func (s *MemoryStore) TakePending(ctx context.Context, sessionID string) (*cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.pending[sessionID]
	if !ok {
		return nil, nil
	}
	delete(s.pending, sessionID)
	return &item, nil
}

func (s *MemoryStore) ClearPending(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, sessionID)
	return nil
}

package cart

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("user not found")
)

// Repository persists a user's cart lines as one ordered list. The cart
// service loads, mutates and saves; the repository is a plain load/save
// collaborator and owns no cart logic.
type Repository interface {
	Load(ctx context.Context, userID int) ([]Item, error)
	Save(ctx context.Context, userID int, items []Item) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int][]Item
}

func NewInMemoryRepository(seed map[int][]Item) *InMemoryRepository {
	r := &InMemoryRepository{carts: make(map[int][]Item)}
	for id, items := range seed {
		r.carts[id] = append([]Item(nil), items...)
	}
	return r
}

func (r *InMemoryRepository) Load(ctx context.Context, userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items, ok := r.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]Item(nil), items...), nil
}

func (r *InMemoryRepository) Save(ctx context.Context, userID int, items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[userID]; !ok {
		return ErrNotFound
	}
	r.carts[userID] = append([]Item(nil), items...)
	return nil
}

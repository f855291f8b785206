package favorite

import (
	"errors"
	"sync"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrAlreadyIn = errors.New("product already in wishlist")
	ErrNotInList = errors.New("product not in wishlist")
)

// Repository provides access to the per-user wishlist, an ordered list of
// product ids.
type Repository interface {
	Add(userID int, productID int, updatedAt string) ([]int, error)
	Remove(userID int, productID int, updatedAt string) ([]int, error)
	IDs(userID int) ([]int, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	lists map[int][]int
}

func NewInMemoryRepository(seed map[int][]int) *InMemoryRepository {
	r := &InMemoryRepository{lists: make(map[int][]int)}
	for userID, ids := range seed {
		r.lists[userID] = append([]int(nil), ids...)
	}
	return r
}

func (r *InMemoryRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.lists[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, id := range ids {
		if id == productID {
			return nil, ErrAlreadyIn
		}
	}
	ids = append(ids, productID)
	r.lists[userID] = ids
	return append([]int(nil), ids...), nil
}

func (r *InMemoryRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.lists[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]int, 0, len(ids))
	found := false
	for _, id := range ids {
		if id == productID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		return nil, ErrNotInList
	}
	r.lists[userID] = out
	return append([]int(nil), out...), nil
}

func (r *InMemoryRepository) IDs(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.lists[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]int(nil), ids...), nil
}

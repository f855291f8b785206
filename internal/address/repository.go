package address

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	GetByID(userID, addressID int) (Address, error)
	Create(a Address) (Address, error)
	Update(userID, addressID int, a Address) (Address, error)
	Delete(userID, addressID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byUser map[int][]Address
	nextID int
}

func NewInMemoryRepository(seed map[int][]Address) *InMemoryRepository {
	r := &InMemoryRepository{byUser: make(map[int][]Address), nextID: 1}
	for userID, addrs := range seed {
		for _, a := range addrs {
			a.UserID = userID
			a.ID = r.nextID
			r.nextID++
			r.byUser[userID] = append(r.byUser[userID], a)
		}
	}
	return r
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Address(nil), r.byUser[userID]...), nil
}

func (r *InMemoryRepository) GetByID(userID, addressID int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byUser[userID] {
		if a.ID == addressID {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	r.byUser[a.UserID] = append(r.byUser[a.UserID], a)
	return a, nil
}

func (r *InMemoryRepository) Update(userID, addressID int, update Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.byUser[userID]
	for i, a := range addrs {
		if a.ID == addressID {
			update.ID = addressID
			update.UserID = userID
			if update.CreatedAt == "" {
				update.CreatedAt = a.CreatedAt
			}
			addrs[i] = update
			return update, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.byUser[userID]
	for i, a := range addrs {
		if a.ID == addressID {
			r.byUser[userID] = append(addrs[:i], addrs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

package cart

import (
	"context"
	"errors"
)

var (
	ErrInvalidItem = errors.New("invalid cart item")
)

// Service orchestrates cart mutations: load, apply one change, save, and
// return the resulting cart with a freshly computed subtotal.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	items, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	return View(items), nil
}

// AddItem merges the item into the cart. A zero quantity defaults to one;
// stock limits are intentionally not enforced here.
func (s *Service) AddItem(ctx context.Context, userID int, item Item) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	if item.ProductID <= 0 || item.Price < 0 {
		return Cart{}, ErrInvalidItem
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	items, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	items = addLine(items, item)
	if err := s.repo.Save(ctx, userID, items); err != nil {
		return Cart{}, err
	}
	return View(items), nil
}

// UpdateQuantity sets the quantity of the (productID, size) line; a value of
// zero or less removes the line. A missing line leaves the cart unchanged.
func (s *Service) UpdateQuantity(ctx context.Context, userID int, productID int, size string, qty int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	items, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	items = setQuantity(items, productID, size, qty)
	if err := s.repo.Save(ctx, userID, items); err != nil {
		return Cart{}, err
	}
	return View(items), nil
}

// RemoveItem deletes the (productID, size) line; removing a line that is not
// there is a no-op.
func (s *Service) RemoveItem(ctx context.Context, userID int, productID int, size string) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	items, err := s.repo.Load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	items = removeLine(items, productID, size)
	if err := s.repo.Save(ctx, userID, items); err != nil {
		return Cart{}, err
	}
	return View(items), nil
}

// Clear empties the cart, used on logout and after checkout.
func (s *Service) Clear(ctx context.Context, userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Save(ctx, userID, []Item{})
}

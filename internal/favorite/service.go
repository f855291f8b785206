package favorite

import (
	"time"

	"github.com/noamani/perfume-shop-backend/internal/product"
)

// ProductSource hydrates wishlist ids into full products.
type ProductSource interface {
	GetByID(id int) (product.Product, error)
}

type Service struct {
	repo     Repository
	products ProductSource
}

func NewService(repo Repository, products ProductSource) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Add(userID int, productID int) ([]int, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	if s.products != nil {
		if _, err := s.products.GetByID(productID); err != nil {
			return nil, product.ErrNotFound
		}
	}
	return s.repo.Add(userID, productID, now())
}

func (s *Service) Remove(userID int, productID int) ([]int, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Remove(userID, productID, now())
}

// List returns the wishlist hydrated into products, preserving list order.
// Ids whose product has since been deleted are skipped.
func (s *Service) List(userID int) ([]product.Product, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	ids, err := s.repo.IDs(userID)
	if err != nil {
		return nil, err
	}

	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetByID(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

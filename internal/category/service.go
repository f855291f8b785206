package category

import (
	"sort"

	"github.com/noamani/perfume-shop-backend/internal/product"
)

// ProductSource is the slice of the product service the category listing
// derives from.
type ProductSource interface {
	List() []product.Product
}

// Service derives the scent family listing from the catalog; categories are
// not stored on their own.
type Service struct {
	products ProductSource
}

func NewService(products ProductSource) *Service {
	return &Service{products: products}
}

// List returns the catalog's categories sorted by name, each with its
// product count. Products without a category are skipped.
func (s *Service) List() []Category {
	counts := make(map[string]int)
	for _, p := range s.products.List() {
		if p.Category == "" {
			continue
		}
		counts[p.Category]++
	}

	out := make([]Category, 0, len(counts))
	for name, count := range counts {
		out = append(out, Category{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

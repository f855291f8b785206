package favorite

import (
	"testing"

	"github.com/noamani/perfume-shop-backend/internal/product"
)

func wishlistFixture() (*Service, *product.Service) {
	catalog := product.NewService(product.NewInMemoryRepository([]product.Product{
		{Name: "Oriental Oud", Description: "Smoky agarwood.", Price: 6500, Image: "/a.png"},
		{Name: "Velvet Orchid", Description: "Velvety orchid.", Price: 5800, Image: "/c.png"},
	}))
	svc := NewService(NewInMemoryRepository(map[int][]int{7: {}}), catalog)
	return svc, catalog
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	svc, _ := wishlistFixture()

	ids, err := svc.Add(7, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("unexpected wishlist %v", ids)
	}

	if _, err := svc.Add(7, 1); err != ErrAlreadyIn {
		t.Fatalf("expected ErrAlreadyIn, got %v", err)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, _ := wishlistFixture()

	if _, err := svc.Add(7, 99); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestRemove_MissingEntry(t *testing.T) {
	svc, _ := wishlistFixture()

	if _, err := svc.Remove(7, 1); err != ErrNotInList {
		t.Fatalf("expected ErrNotInList, got %v", err)
	}
}

func TestList_HydratesAndSkipsDeletedProducts(t *testing.T) {
	svc, catalog := wishlistFixture()

	if _, err := svc.Add(7, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.Add(7, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := catalog.Delete(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	products, err := svc.List(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Velvet Orchid" {
		t.Fatalf("expected only the surviving product, got %+v", products)
	}
}

func TestOperations_UnknownUser(t *testing.T) {
	svc, _ := wishlistFixture()

	if _, err := svc.Add(99, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.List(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

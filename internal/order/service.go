package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noamani/perfume-shop-backend/internal/cart"
)

// CartService is the slice of the cart service checkout needs.
type CartService interface {
	Get(ctx context.Context, userID int) (cart.Cart, error)
	Clear(ctx context.Context, userID int) error
}

// Service turns the authoritative server-side cart into orders. Totals are
// never taken from the client.
type Service struct {
	repo  Repository
	carts CartService

	shippingFlatRate      decimal.Decimal
	freeShippingThreshold decimal.Decimal
}

func NewService(repo Repository, carts CartService, shippingFlatRate, freeShippingThreshold float64) *Service {
	return &Service{
		repo:                  repo,
		carts:                 carts,
		shippingFlatRate:      decimal.NewFromFloat(shippingFlatRate),
		freeShippingThreshold: decimal.NewFromFloat(freeShippingThreshold),
	}
}

// Shipping returns the shipping charge for a given subtotal: free at or
// above the threshold, flat rate below it.
func (s *Service) Shipping(subtotal float64) float64 {
	sub := decimal.NewFromFloat(subtotal)
	if sub.GreaterThanOrEqual(s.freeShippingThreshold) {
		return 0
	}
	f, _ := s.shippingFlatRate.Float64()
	return f
}

// Checkout snapshots the user's cart into an order and clears the cart. The
// shipping address is an already-resolved one-line snapshot, may be empty.
func (s *Service) Checkout(ctx context.Context, userID int, shippingAddress string) (Order, error) {
	current, err := s.carts.Get(ctx, userID)
	if err != nil {
		return Order{}, err
	}
	if len(current.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	subtotal := decimal.NewFromFloat(current.Subtotal)
	shipping := decimal.NewFromFloat(s.Shipping(current.Subtotal))
	total, _ := subtotal.Add(shipping).Float64()
	shippingF, _ := shipping.Float64()

	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		UserID:          userID,
		Items:           current.Items,
		Quantity:        current.Count,
		Subtotal:        current.Subtotal,
		Shipping:        shippingF,
		Total:           total,
		ShippingAddress: shippingAddress,
		Status:          StatusPlaced,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, ord)
	if err != nil {
		return Order{}, err
	}

	// the cart was snapshotted into the order; a failed clear leaves stale
	// lines but the order itself stands
	if err := s.carts.Clear(ctx, userID); err != nil {
		return created, err
	}
	return created, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

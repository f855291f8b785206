package authgate

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/session"
)

// PendingStore is the slice of the session store the gate needs.
type PendingStore interface {
	SetPending(ctx context.Context, sessionID string, item cart.Item) error
	TakePending(ctx context.Context, sessionID string) (*cart.Item, error)
	ClearPending(ctx context.Context, sessionID string) error
}

// CartService is the slice of the cart service the gate needs for replays.
type CartService interface {
	AddItem(ctx context.Context, userID int, item cart.Item) (cart.Cart, error)
}

// Service wires the gate state machine to the session store and the cart.
type Service struct {
	pending PendingStore
	carts   CartService
	log     *zap.Logger
}

func NewService(pending PendingStore, carts CartService, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{pending: pending, carts: carts, log: log}
}

// DeferPending parks an anonymous add-to-cart for the session.
func (s *Service) DeferPending(ctx context.Context, sessionID string, item cart.Item) error {
	return s.pending.SetPending(ctx, sessionID, item)
}

// Defer implements cart.Gate.
func (s *Service) Defer(c *fiber.Ctx, item cart.Item) error {
	return s.DeferPending(c.Context(), session.FromCtx(c), item)
}

// Cancel discards the session's pending item.
func (s *Service) Cancel(ctx context.Context, sessionID string) error {
	return s.pending.ClearPending(ctx, sessionID)
}

// CompleteLogin replays the session's pending item into the user's cart,
// exactly once. No pending item is not an error.
func (s *Service) CompleteLogin(ctx context.Context, sessionID string, userID int) error {
	if sessionID == "" {
		return nil
	}
	item, err := s.pending.TakePending(ctx, sessionID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	if _, err := s.carts.AddItem(ctx, userID, *item); err != nil {
		s.log.Warn("pending cart item replay failed",
			zap.Int("userID", userID),
			zap.Int("productID", item.ProductID),
			zap.Error(err),
		)
		return err
	}
	s.log.Info("replayed pending cart item",
		zap.Int("userID", userID),
		zap.Int("productID", item.ProductID),
	)
	return nil
}

// OnLogin implements user.LoginHook.
func (s *Service) OnLogin(c *fiber.Ctx, userID int) error {
	return s.CompleteLogin(c.Context(), session.FromCtx(c), userID)
}

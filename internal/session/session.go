package session

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/pricing"
)

// HeaderSessionID carries the anonymous session identifier. The middleware
// issues one when the client has none; clients echo it back on every call.
const HeaderSessionID = "X-Session-ID"

const localsKey = "sessionID"

// Store holds the per-session state the original storefront kept in browser
// storage: the selected country and the pending gated cart item.
type Store interface {
	Country(ctx context.Context, sessionID string) (pricing.Country, error)
	SetCountry(ctx context.Context, sessionID string, country pricing.Country) error

	SetPending(ctx context.Context, sessionID string, item cart.Item) error
	// TakePending returns the pending item and clears the slot in one step,
	// so a replay can only ever happen once. A nil item means no pending.
	TakePending(ctx context.Context, sessionID string) (*cart.Item, error)
	ClearPending(ctx context.Context, sessionID string) error
}

// Middleware makes sure every request carries a session id and exposes it to
// handlers via locals and the response header.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Get(HeaderSessionID)
		if sid == "" {
			sid = uuid.NewString()
		}
		c.Locals(localsKey, sid)
		c.Set(HeaderSessionID, sid)
		return c.Next()
	}
}

// FromCtx returns the request's session id as set by Middleware.
func FromCtx(c *fiber.Ctx) string {
	if sid, ok := c.Locals(localsKey).(string); ok {
		return sid
	}
	return ""
}

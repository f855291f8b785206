package session

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noamani/perfume-shop-backend/internal/pricing"
)

// Handler exposes the session-scoped state endpoints: country selection and
// cancelling a pending gated cart add.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/session/country", h.getCountry)
	app.Put("/api/v1/session/country", h.setCountry)
	app.Delete("/api/v1/session/pending-item", h.cancelPending)
}

type countryRequest struct {
	Country string `json:"country"`
}

func (h *Handler) getCountry(c *fiber.Ctx) error {
	country, err := h.store.Country(c.Context(), FromCtx(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"country": country, "symbol": pricing.Symbol(country)})
}

func (h *Handler) setCountry(c *fiber.Ctx) error {
	payload := new(countryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	country := pricing.Country(payload.Country)
	if !pricing.Valid(country) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown country code"})
	}

	if err := h.store.SetCountry(c.Context(), FromCtx(c), country); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"country": country, "symbol": pricing.Symbol(country)})
}

// CountryResolver adapts the session store to the per-request country
// lookup the cart handler uses for display prices.
type CountryResolver struct {
	store Store
}

func NewCountryResolver(store Store) *CountryResolver {
	return &CountryResolver{store: store}
}

func (r *CountryResolver) Country(c *fiber.Ctx) (pricing.Country, error) {
	return r.store.Country(c.Context(), FromCtx(c))
}

// cancelPending discards the deferred add-to-cart item; the login was
// dismissed so the action is dropped, not retried.
func (h *Handler) cancelPending(c *fiber.Ctx) error {
	if err := h.store.ClearPending(c.Context(), FromCtx(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

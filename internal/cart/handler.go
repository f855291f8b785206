package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noamani/perfume-shop-backend/internal/pricing"
	"github.com/noamani/perfume-shop-backend/internal/user"
)

// Gate defers an anonymous add-to-cart until login (see internal/authgate).
type Gate interface {
	Defer(c *fiber.Ctx, item Item) error
}

// CountrySource resolves the session's selected country for display prices.
type CountrySource interface {
	Country(c *fiber.Ctx) (pricing.Country, error)
}

// Handler delegates cart operations to the cart service. Add-to-cart is
// special: an unauthenticated attempt is parked behind the login gate
// instead of failing outright.
type Handler struct {
	service   *Service
	gate      Gate
	countries CountrySource
}

func NewHandler(service *Service, gate Gate, countries CountrySource) *Handler {
	return &Handler{service: service, gate: gate, countries: countries}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items", h.updateQuantity)
	app.Delete("/api/v1/cart/items", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addItemRequest struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
}

type updateItemRequest struct {
	ID       int    `json:"id"`
	Size     string `json:"size,omitempty"`
	Quantity int    `json:"quantity"`
}

type removeItemRequest struct {
	ID   int    `json:"id"`
	Size string `json:"size,omitempty"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	if payload.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "price must be >= 0"})
	}

	item := Item{
		ProductID: payload.ID,
		Name:      payload.Name,
		Price:     payload.Price,
		Image:     payload.Image,
		Quantity:  payload.Quantity,
		Size:      payload.Size,
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		// anonymous: park the item and ask the client to show the login
		// prompt. The item is NOT in any cart yet.
		if err := h.gate.Defer(c, item); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message":       "login required",
			"pendingStored": true,
		})
	}

	result, err := h.service.AddItem(c.Context(), userID, item)
	if err != nil {
		return h.mapError(c, err)
	}
	return h.respond(c, result)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	result, err := h.service.Get(c.Context(), userID)
	if err != nil {
		return h.mapError(c, err)
	}
	return h.respond(c, result)
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	result, err := h.service.UpdateQuantity(c.Context(), userID, payload.ID, payload.Size, payload.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return h.respond(c, result)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	payload := new(removeItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	result, err := h.service.RemoveItem(c.Context(), userID, payload.ID, payload.Size)
	if err != nil {
		return h.mapError(c, err)
	}
	return h.respond(c, result)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(c.Context(), userID); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// respond renders the cart with a display subtotal in the session's
// selected country (query override wins).
func (h *Handler) respond(c *fiber.Ctx, result Cart) error {
	country := pricing.Country(c.Query("country"))
	if country == "" && h.countries != nil {
		if sc, err := h.countries.Country(c); err == nil {
			country = sc
		}
	}
	return c.JSON(fiber.Map{
		"items":           result.Items,
		"count":           result.Count,
		"subtotal":        result.Subtotal,
		"displaySubtotal": pricing.FormatPrice(result.Subtotal, country),
		"selectedCountry": country,
	})
}

func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	case ErrInvalidItem:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid cart item"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

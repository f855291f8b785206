package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/user"
)

// AddressSource resolves an address book entry into a one-line shipping
// snapshot for the order.
type AddressSource interface {
	Oneline(userID, addressID int) (string, error)
}

// Handler delegates checkout and order listing to the order service.
type Handler struct {
	service   *Service
	addresses AddressSource
}

func NewHandler(service *Service, addresses AddressSource) *Handler {
	return &Handler{service: service, addresses: addresses}
}

type checkoutRequest struct {
	AddressID int `json:"addressId"`
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.getOrders)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	var shippingAddress string
	payload := new(checkoutRequest)
	// body is optional; a checkout without an address id ships to the
	// account's default handling
	if err := c.BodyParser(payload); err == nil && payload.AddressID > 0 {
		if h.addresses == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "address book not available"})
		}
		line, err := h.addresses.Oneline(userID, payload.AddressID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
		}
		shippingAddress = line
	}

	created, err := h.service.Checkout(c.Context(), userID, shippingAddress)
	if err != nil {
		switch err {
		case ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case cart.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

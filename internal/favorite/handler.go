package favorite

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noamani/perfume-shop-backend/internal/product"
	"github.com/noamani/perfume-shop-backend/internal/user"
)

// Handler delegates wishlist operations to the favorite service. Wishlist
// routing stays isolated from the user handler.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Post("/api/v1/wishlist", h.addToWishlist)
	app.Delete("/api/v1/wishlist", h.removeFromWishlist)
}

type wishlistRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) addToWishlist(c *fiber.Ctx) error {
	payload := new(wishlistRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.Add(userID, payload.ProductID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"productId": payload.ProductID, "wishlist": ids})
}

func (h *Handler) removeFromWishlist(c *fiber.Ctx) error {
	payload := new(wishlistRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.Remove(userID, payload.ProductID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"productId": payload.ProductID, "wishlist": ids})
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	products, err := h.service.List(userID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	case product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case ErrAlreadyIn:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product already in wishlist"})
	case ErrNotInList:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product not in wishlist"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

package product

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noamani/perfume-shop-backend/internal/pricing"
	"github.com/noamani/perfume-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/:id", h.getProduct)

	// dev-only endpoint to reset products — enabled when ALLOW_RESET_PRODUCTS=1
	app.Post("/dev/reset-products", h.resetProducts)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Post("/api/v1/products", user.RequireAdmin, h.createProduct)
	app.Put("/api/v1/products/:id", user.RequireAdmin, h.updateProduct)
	app.Delete("/api/v1/products/:id", user.RequireAdmin, h.deleteProduct)
}

// productView decorates a product with the country-specific display price
// when the client asks for one.
type productView struct {
	Product
	DisplayPrice string `json:"displayPrice,omitempty"`
}

func decorate(products []Product, country pricing.Country) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		v := productView{Product: p}
		if country != "" {
			v.DisplayPrice = pricing.FormatPrice(p.Price, country)
		}
		out = append(out, v)
	}
	return out
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	page := c.Query("page")
	country := pricing.Country(c.Query("country"))

	products := h.service.ListByPage(page)
	return c.JSON(decorate(products, country))
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	country := pricing.Country(c.Query("country"))
	view := productView{Product: p}
	if country != "" {
		view.DisplayPrice = pricing.FormatPrice(p.Price, country)
	}
	return c.JSON(view)
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Description == "" {
		errs["description"] = "description is required"
	}
	if p.Image == "" {
		errs["image"] = "image is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if p.Stock < 0 {
		errs["stock"] = "stock must be >= 0"
	}
	for _, tag := range p.AssignedPages {
		valid := false
		for _, allowed := range AllowedPages {
			if tag == allowed {
				valid = true
				break
			}
		}
		if !valid {
			errs["assignedPages"] = "unknown page tag: " + tag
			break
		}
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if p.CreatedAt == nil {
		p.CreatedAt = &now
	}
	if p.UpdatedAt == nil {
		p.UpdatedAt = &now
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p.UpdatedAt = &now

	updated, err := h.service.Update(id, *p)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}

// resetProducts clears the catalog and inserts the provided list (or the
// default sample catalog). Gated by ALLOW_RESET_PRODUCTS=1.
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_RESET_PRODUCTS") != "1" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "reset not allowed"})
	}

	var products []Product
	// If body parsing fails, fall back to the sample catalog. An explicit
	// empty array clears the table without re-seeding.
	if err := c.BodyParser(&products); err != nil {
		products = SampleCatalog()
	}

	if err := h.service.ResetProducts(products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

// SampleCatalog returns the default seed products used when the catalog is
// empty at startup and by the dev reset endpoint.
func SampleCatalog() []Product {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Product{
		{
			Name:          "Oriental Oud",
			Description:   "Smoky agarwood layered over amber and warm spice.",
			Price:         6500,
			Image:         "/products/oriental-oud.png",
			ImageHover:    "/products/oriental-oud-box.png",
			Category:      "Woody",
			Stock:         40,
			AssignedPages: []string{"Bestsellers", PageShopAll},
			CreatedAt:     &now,
			UpdatedAt:     &now,
		},
		{
			Name:          "Northern Lights",
			Description:   "Crisp bergamot and iris under a cool musk finish.",
			Price:         7200,
			Image:         "/products/northern-lights.png",
			ImageHover:    "/products/northern-lights-box.png",
			Category:      "Fresh",
			Stock:         25,
			AssignedPages: []string{"Fragrance", PageShopAll},
			CreatedAt:     &now,
			UpdatedAt:     &now,
		},
		{
			Name:          "Velvet Orchid",
			Description:   "Velvety orchid petals with vanilla and soft suede.",
			Price:         5800,
			Image:         "/products/velvet-orchid.png",
			ImageHover:    "/products/velvet-orchid-box.png",
			Category:      "Floral",
			Stock:         30,
			AssignedPages: []string{"Bestsellers", "Fragrance", PageShopAll},
			CreatedAt:     &now,
			UpdatedAt:     &now,
		},
	}
}

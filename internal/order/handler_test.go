package order

import (
	"errors"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/noamani/perfume-shop-backend/internal/cart"
)

func makeOrderApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCreateOrder_Succeeds(t *testing.T) {
	svc, _ := newCheckoutFixture([]cart.Item{
		{ProductID: 1, Name: "Oriental Oud", Price: 6500, Quantity: 1},
	})
	app := makeOrderApp(NewHandler(svc, nil))

	req := httptest.NewRequest("POST", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	s := string(body)
	if !strings.Contains(s, `"status":"placed"`) {
		t.Fatalf("expected placed order, got %s", s)
	}
	if !strings.Contains(s, `"total":6500`) {
		t.Fatalf("expected total 6500, got %s", s)
	}
}

type stubAddresses struct{}

func (stubAddresses) Oneline(userID, addressID int) (string, error) {
	if addressID != 1 {
		return "", errors.New("address not found")
	}
	return "Asha, 12 Rose Lane, Mumbai, 400001", nil
}

func TestCreateOrder_WithAddress(t *testing.T) {
	svc, _ := newCheckoutFixture([]cart.Item{
		{ProductID: 1, Name: "Oriental Oud", Price: 6500, Quantity: 1},
	})
	app := makeOrderApp(NewHandler(svc, stubAddresses{}))

	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"addressId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "12 Rose Lane") {
		t.Fatalf("expected address snapshot on order, got %s", string(body))
	}
}

func TestCreateOrder_UnknownAddress(t *testing.T) {
	svc, _ := newCheckoutFixture([]cart.Item{
		{ProductID: 1, Name: "Oriental Oud", Price: 6500, Quantity: 1},
	})
	app := makeOrderApp(NewHandler(svc, stubAddresses{}))

	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"addressId":9}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown address, got %d", res.StatusCode)
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc, _ := newCheckoutFixture(nil)
	app := makeOrderApp(NewHandler(svc, nil))

	req := httptest.NewRequest("POST", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}
}

func TestOrderRoutes_RequireAuth(t *testing.T) {
	svc, _ := newCheckoutFixture(nil)
	app := makeOrderApp(NewHandler(svc, nil))

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("POST", "/api/v1/orders", nil)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res2.StatusCode)
	}
}

func TestGetOrders_ReturnsOwnOrdersOnly(t *testing.T) {
	svc, _ := newCheckoutFixture([]cart.Item{
		{ProductID: 1, Name: "Oriental Oud", Price: 6500, Quantity: 1},
	})
	app := makeOrderApp(NewHandler(svc, nil))

	req := httptest.NewRequest("POST", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "7")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusCreated {
		t.Fatalf("checkout setup failed")
	}

	req2 := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req2.Header.Set("X-User-ID", "7")
	res2, _ := app.Test(req2)
	body, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(body), "Oriental Oud") {
		t.Fatalf("expected own order in listing, got %s", string(body))
	}

	// a different user sees an empty list
	req3 := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req3.Header.Set("X-User-ID", "8")
	res3, _ := app.Test(req3)
	b3, _ := io.ReadAll(res3.Body)
	if strings.TrimSpace(string(b3)) != "[]" {
		t.Fatalf("expected empty list for other user, got %s", string(b3))
	}
}

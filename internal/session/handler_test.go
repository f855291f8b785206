package session

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/pricing"
)

func makeSessionApp(store Store) *fiber.App {
	app := fiber.New()
	app.Use(Middleware())
	NewHandler(store).RegisterPublicRoutes(app)
	return app
}

func TestMiddleware_IssuesAndEchoesSessionID(t *testing.T) {
	app := makeSessionApp(NewMemoryStore())

	req := httptest.NewRequest("GET", "/api/v1/session/country", nil)
	res, _ := app.Test(req)
	issued := res.Header.Get(HeaderSessionID)
	if issued == "" {
		t.Fatalf("expected a session id to be issued")
	}

	req2 := httptest.NewRequest("GET", "/api/v1/session/country", nil)
	req2.Header.Set(HeaderSessionID, issued)
	res2, _ := app.Test(req2)
	if got := res2.Header.Get(HeaderSessionID); got != issued {
		t.Fatalf("expected session id %q echoed back, got %q", issued, got)
	}
}

func TestCountry_DefaultsToIndia(t *testing.T) {
	app := makeSessionApp(NewMemoryStore())

	req := httptest.NewRequest("GET", "/api/v1/session/country", nil)
	res, _ := app.Test(req)
	body, _ := io.ReadAll(res.Body)
	s := string(body)
	if !strings.Contains(s, `"country":"IN"`) || !strings.Contains(s, `"symbol":"₹"`) {
		t.Fatalf("expected IN default, got %s", s)
	}
}

func TestSetCountry_RoundTrips(t *testing.T) {
	app := makeSessionApp(NewMemoryStore())

	put := httptest.NewRequest("PUT", "/api/v1/session/country", strings.NewReader(`{"country":"US"}`))
	put.Header.Set("Content-Type", "application/json")
	put.Header.Set(HeaderSessionID, "sess-1")
	res, _ := app.Test(put)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"symbol":"$"`) {
		t.Fatalf("expected dollar symbol, got %s", string(body))
	}

	get := httptest.NewRequest("GET", "/api/v1/session/country", nil)
	get.Header.Set(HeaderSessionID, "sess-1")
	res2, _ := app.Test(get)
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"country":"US"`) {
		t.Fatalf("expected stored country US, got %s", string(b2))
	}
}

func TestSetCountry_RejectsUnknownCode(t *testing.T) {
	app := makeSessionApp(NewMemoryStore())

	put := httptest.NewRequest("PUT", "/api/v1/session/country", strings.NewReader(`{"country":"XX"}`))
	put.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(put)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown country, got %d", res.StatusCode)
	}
}

func TestCancelPending_ClearsSlot(t *testing.T) {
	store := NewMemoryStore()
	app := makeSessionApp(store)

	ctx := context.Background()
	if err := store.SetPending(ctx, "sess-9", cart.Item{ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("set pending failed: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/api/v1/session/pending-item", nil)
	req.Header.Set(HeaderSessionID, "sess-9")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}

	item, err := store.TakePending(ctx, "sess-9")
	if err != nil {
		t.Fatalf("take pending failed: %v", err)
	}
	if item != nil {
		t.Fatalf("expected cleared slot, got %+v", item)
	}
}

func TestMemoryStore_TakePendingIsTakeOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetPending(ctx, "sess-2", cart.Item{ProductID: 3, Quantity: 2}); err != nil {
		t.Fatalf("set pending failed: %v", err)
	}

	first, err := store.TakePending(ctx, "sess-2")
	if err != nil || first == nil || first.ProductID != 3 {
		t.Fatalf("expected pending item, got %+v err %v", first, err)
	}
	second, err := store.TakePending(ctx, "sess-2")
	if err != nil {
		t.Fatalf("second take failed: %v", err)
	}
	if second != nil {
		t.Fatalf("expected empty slot on second take, got %+v", second)
	}
}

func TestMemoryStore_CountryIsolationBetweenSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetCountry(ctx, "a", pricing.CountryEU); err != nil {
		t.Fatalf("set country failed: %v", err)
	}
	got, err := store.Country(ctx, "b")
	if err != nil {
		t.Fatalf("country failed: %v", err)
	}
	if got != pricing.CountryIN {
		t.Fatalf("expected default IN for other session, got %v", got)
	}
}

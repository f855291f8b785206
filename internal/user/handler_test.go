package user

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type recordingHook struct {
	mu    sync.Mutex
	calls []int
}

func (h *recordingHook) OnLogin(c *fiber.Ctx, userID int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, userID)
	return nil
}

func makeAuthApp(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app
}

func TestSignup_CreatesUserAndReturnsToken(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	hook := &recordingHook{}
	app := makeAuthApp(NewHandler(service, hook))

	payload := `{"name":"Asha","email":"asha@example.com","password":"secret1"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	s := string(body)
	if !strings.Contains(s, `"token"`) {
		t.Fatalf("expected token in response, got %s", s)
	}
	if strings.Contains(s, "secret1") {
		t.Fatalf("password leaked in response: %s", s)
	}
	if len(hook.calls) != 1 {
		t.Fatalf("expected login hook to run once, got %v", hook.calls)
	}
}

func TestSignup_RejectsShortPasswordAndDuplicateEmail(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	app := makeAuthApp(NewHandler(service, nil))

	short := `{"name":"Asha","email":"asha@example.com","password":"abc"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(short))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", res.StatusCode)
	}

	ok := `{"name":"Asha","email":"asha@example.com","password":"secret1"}`
	req2 := httptest.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(ok))
	req2.Header.Set("Content-Type", "application/json")
	if res2, _ := app.Test(req2); res2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for first signup, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("POST", "/api/v1/auth/signup", strings.NewReader(ok))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res3.StatusCode)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	if _, err := service.Register(User{Name: "Asha", Email: "asha@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	app := makeAuthApp(NewHandler(service, nil))

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"asha@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", res.StatusCode)
	}
}

func TestLogin_Succeeds(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	created, err := service.Register(User{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	hook := &recordingHook{}
	app := makeAuthApp(NewHandler(service, hook))

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"asha@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if len(hook.calls) != 1 || hook.calls[0] != created.ID {
		t.Fatalf("expected hook for user %d, got %v", created.ID, hook.calls)
	}
}

func TestGoogleSignIn_CreatesThenLinks(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	app := makeAuthApp(NewHandler(service, nil))

	payload := `{"name":"Asha","email":"asha@example.com","uid":"google-uid-1","photoURL":"/p.png"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/google", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for google sign-in, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"authProvider":"google"`) {
		t.Fatalf("expected google provider, got %s", string(body))
	}

	// signing in again resolves to the same account
	req2 := httptest.NewRequest("POST", "/api/v1/auth/google", strings.NewReader(payload))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for repeat google sign-in, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"id":1`) {
		t.Fatalf("expected same account id, got %s", string(b2))
	}
}

func TestLogin_WithGoogleOnlyAccountFails(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	if _, err := service.GoogleSignIn("Asha", "asha@example.com", "google-uid-1", ""); err != nil {
		t.Fatalf("google sign-in failed: %v", err)
	}
	app := makeAuthApp(NewHandler(service, nil))

	// no local password is set, so any password must be rejected
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"asha@example.com","password":"anything"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for google-only account, got %d", res.StatusCode)
	}
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": 1, "role": role}})
		}
		return c.Next()
	})
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/admin", nil)
	req2.Header.Set("X-User-Role", "user")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for plain user, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("GET", "/admin", nil)
	req3.Header.Set("X-User-Role", "admin")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res3.StatusCode)
	}
}

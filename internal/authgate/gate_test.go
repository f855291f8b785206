package authgate

import (
	"context"
	"testing"

	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/session"
)

func TestGate_DeferThenComplete(t *testing.T) {
	g := NewGate()
	if g.State() != Anonymous {
		t.Fatalf("expected Anonymous, got %v", g.State())
	}

	g.Defer(cart.Item{ProductID: 1, Name: "Oriental Oud", Price: 6500, Quantity: 1})
	if g.State() != PendingLogin {
		t.Fatalf("expected PendingLogin after Defer, got %v", g.State())
	}

	item := g.Complete()
	if item == nil || item.ProductID != 1 {
		t.Fatalf("expected deferred item back on Complete, got %+v", item)
	}
	if g.State() != Authenticated {
		t.Fatalf("expected Authenticated after Complete, got %v", g.State())
	}

	// the slot is take-once
	if again := g.Complete(); again != nil {
		t.Fatalf("expected empty slot on second Complete, got %+v", again)
	}
}

func TestGate_SecondDeferReplacesSlot(t *testing.T) {
	g := NewGate()
	g.Defer(cart.Item{ProductID: 1, Quantity: 1})
	g.Defer(cart.Item{ProductID: 2, Quantity: 3})

	item := g.Complete()
	if item == nil || item.ProductID != 2 || item.Quantity != 3 {
		t.Fatalf("expected latest deferred item, got %+v", item)
	}
}

func TestGate_CancelDiscards(t *testing.T) {
	g := NewGate()
	g.Defer(cart.Item{ProductID: 1, Quantity: 1})
	g.Cancel()
	if g.State() != Anonymous {
		t.Fatalf("expected Anonymous after Cancel, got %v", g.State())
	}
	if item := g.Complete(); item != nil {
		t.Fatalf("expected no item after Cancel, got %+v", item)
	}
}

func TestGate_DeferWhileAuthenticatedIsIgnored(t *testing.T) {
	g := NewGate()
	g.Complete()
	g.Defer(cart.Item{ProductID: 1, Quantity: 1})
	if g.State() != Authenticated {
		t.Fatalf("expected state to stay Authenticated, got %v", g.State())
	}
}

func TestGate_LogoutResets(t *testing.T) {
	g := NewGate()
	g.Complete()
	g.Logout()
	if g.State() != Anonymous {
		t.Fatalf("expected Anonymous after Logout, got %v", g.State())
	}
}

func TestService_ReplaysPendingItemOnce(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	carts := cart.NewService(cart.NewInMemoryRepository(map[int][]cart.Item{7: {}}))
	svc := NewService(store, carts, nil)

	item := cart.Item{ProductID: 3, Name: "Velvet Orchid", Price: 5800, Quantity: 2}
	if err := svc.DeferPending(ctx, "sess-1", item); err != nil {
		t.Fatalf("defer failed: %v", err)
	}

	if err := svc.CompleteLogin(ctx, "sess-1", 7); err != nil {
		t.Fatalf("complete login failed: %v", err)
	}

	result, err := carts.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ProductID != 3 || result.Items[0].Quantity != 2 {
		t.Fatalf("expected replayed item in cart, got %+v", result.Items)
	}

	// a second login with the same session must not replay again
	if err := svc.CompleteLogin(ctx, "sess-1", 7); err != nil {
		t.Fatalf("second complete login failed: %v", err)
	}
	result, _ = carts.Get(ctx, 7)
	if result.Count != 2 {
		t.Fatalf("expected count 2 after single replay, got %d", result.Count)
	}
}

func TestService_LoginWithoutPendingIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	carts := cart.NewService(cart.NewInMemoryRepository(map[int][]cart.Item{7: {}}))
	svc := NewService(store, carts, nil)

	if err := svc.CompleteLogin(ctx, "sess-2", 7); err != nil {
		t.Fatalf("complete login failed: %v", err)
	}
	result, _ := carts.Get(ctx, 7)
	if len(result.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", result.Items)
	}
}

func TestService_CancelDiscardsPendingItem(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	carts := cart.NewService(cart.NewInMemoryRepository(map[int][]cart.Item{7: {}}))
	svc := NewService(store, carts, nil)

	if err := svc.DeferPending(ctx, "sess-3", cart.Item{ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("defer failed: %v", err)
	}
	if err := svc.Cancel(ctx, "sess-3"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := svc.CompleteLogin(ctx, "sess-3", 7); err != nil {
		t.Fatalf("complete login failed: %v", err)
	}
	result, _ := carts.Get(ctx, 7)
	if len(result.Items) != 0 {
		t.Fatalf("expected cart untouched after cancel, got %+v", result.Items)
	}
}

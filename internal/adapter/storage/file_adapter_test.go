package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

func testCart() *domain.Cart {
	return &domain.Cart{Items: []domain.LineItem{
		{ID: 1, Name: "Ray-Ban Aviator", Price: decimal.RequireFromString("159.99"), Quantity: 2, Image: "/images/products/rayban.jpg"},
		{ID: 3, Name: "Leather Belt Brown", Price: decimal.RequireFromString("49.99"), Quantity: 1, Image: "/images/products/belt.jpg"},
	}}
}

func TestFileCartStore_LoadAbsent(t *testing.T) {
	store := NewFileCartStore(filepath.Join(t.TempDir(), "cart-storage.json"))

	cart, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart != nil {
		t.Errorf("expected nil cart for absent record, got %+v", cart)
	}
}

func TestFileCartStore_SaveLoad(t *testing.T) {
	store := NewFileCartStore(filepath.Join(t.TempDir(), "cart-storage.json"))
	ctx := context.Background()

	if err := store.Save(ctx, testCart()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 2 {
		t.Fatalf("unexpected cart: %+v", loaded)
	}
	if loaded.Items[0].Name != "Ray-Ban Aviator" || loaded.Items[0].Quantity != 2 {
		t.Errorf("unexpected first line item: %+v", loaded.Items[0])
	}
	if got := loaded.Total().StringFixed(2); got != "369.97" {
		t.Errorf("expected total 369.97, got %s", got)
	}
}

func TestFileCartStore_SaveOverwrites(t *testing.T) {
	store := NewFileCartStore(filepath.Join(t.TempDir(), "cart-storage.json"))
	ctx := context.Background()

	store.Save(ctx, testCart())
	if err := store.Save(ctx, &domain.Cart{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Errorf("expected empty cart, got %+v", loaded.Items)
	}
}

func TestFileCartStore_Delete(t *testing.T) {
	store := NewFileCartStore(filepath.Join(t.TempDir(), "cart-storage.json"))
	ctx := context.Background()

	store.Save(ctx, testCart())
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	cart, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cart != nil {
		t.Errorf("expected nil cart after delete, got %+v", cart)
	}

	// Deleting an absent record is not an error.
	if err := store.Delete(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMemoryCartStore_RoundTrip(t *testing.T) {
	store := NewMemoryCartStore()
	ctx := context.Background()

	if err := store.Save(ctx, testCart()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("unexpected cart: %+v", loaded)
	}

	// Mutating the loaded copy must not leak into the store.
	loaded.Items[0].Quantity = 99
	again, _ := store.Load(ctx)
	if again.Items[0].Quantity != 2 {
		t.Errorf("expected stored quantity 2, got %d", again.Items[0].Quantity)
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	cart, _ := store.Load(ctx)
	if cart != nil {
		t.Errorf("expected nil cart after delete, got %+v", cart)
	}
}

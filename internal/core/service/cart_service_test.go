package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/storefront/internal/core/domain"
)

// Mock CartRepository
type mockCartRepo struct {
	mu         sync.Mutex
	cart       *domain.Cart
	failSave   bool
	failLoad   bool
	failDelete bool
}

var errStorage = errors.New("storage unavailable")

func (m *mockCartRepo) Load(ctx context.Context) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failLoad {
		return nil, errStorage
	}
	if m.cart == nil {
		return nil, nil
	}
	cp := domain.Cart{Items: append([]domain.LineItem(nil), m.cart.Items...)}
	return &cp, nil
}

func (m *mockCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSave {
		return errStorage
	}
	cp := domain.Cart{Items: append([]domain.LineItem(nil), cart.Items...)}
	m.cart = &cp
	return nil
}

func (m *mockCartRepo) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failDelete {
		return errStorage
	}
	m.cart = nil
	return nil
}

func testProduct(id int64, name, price string) domain.Product {
	return domain.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestAddItem_PersistsAndReturnsCart(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())

	cart, err := svc.AddItem(context.Background(), testProduct(1, "A", "10.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Errorf("unexpected cart: %+v", cart.Items)
	}
	if repo.cart == nil || len(repo.cart.Items) != 1 {
		t.Error("expected cart persisted to repository")
	}
}

func TestAddItem_RepeatedAddsIncrementOneLine(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.AddItem(ctx, testProduct(1, "A", "10.00")); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}

	cart, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
}

func TestGet_EmptyWhenNoRecord(t *testing.T) {
	svc := NewCartService(&mockCartRepo{}, zap.NewNop())

	cart, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %+v", cart.Items)
	}
}

func TestUpdateQuantity_NegativeRemovesLine(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())
	ctx := context.Background()

	svc.AddItem(ctx, testProduct(1, "A", "10.00"))
	cart, err := svc.UpdateQuantity(ctx, 1, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected line removed, got %+v", cart.Items)
	}
}

func TestRemoveItem_UnknownIsNoOp(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())
	ctx := context.Background()

	svc.AddItem(ctx, testProduct(1, "A", "10.00"))
	cart, err := svc.RemoveItem(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("expected cart unchanged, got %+v", cart.Items)
	}
}

func TestClear_ThenReadsEmpty(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())
	ctx := context.Background()

	svc.AddItem(ctx, testProduct(1, "A", "5.00"))
	svc.AddItem(ctx, testProduct(2, "B", "7.50"))

	if _, err := svc.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := svc.Total(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("expected zero total, got %s", total)
	}
}

func TestTotal_SumsPriceTimesQuantity(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())
	ctx := context.Background()

	svc.AddItem(ctx, testProduct(1, "A", "5.00"))
	svc.AddItem(ctx, testProduct(2, "B", "7.50"))
	svc.AddItem(ctx, testProduct(2, "B", "7.50"))

	total, err := svc.Total(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := total.StringFixed(2); got != "20.00" {
		t.Errorf("expected total 20.00, got %s", got)
	}
}

func TestGet_LoadFailure(t *testing.T) {
	svc := NewCartService(&mockCartRepo{failLoad: true}, zap.NewNop())

	if _, err := svc.Get(context.Background()); !errors.Is(err, errStorage) {
		t.Errorf("expected storage error, got %v", err)
	}
}

func TestMutation_FailedSaveReturnsError(t *testing.T) {
	repo := &mockCartRepo{failSave: true}
	svc := NewCartService(repo, zap.NewNop())

	if _, err := svc.AddItem(context.Background(), testProduct(1, "A", "10.00")); !errors.Is(err, errStorage) {
		t.Errorf("expected storage error, got %v", err)
	}
	if repo.cart != nil {
		t.Error("expected no cart persisted after failed save")
	}
}

func TestSubscribe_NotifiedAfterEachCommit(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())
	ctx := context.Background()

	var got []int
	unsubscribe := svc.Subscribe(func(c domain.Cart) {
		got = append(got, c.Count())
	})

	svc.AddItem(ctx, testProduct(1, "A", "10.00"))
	svc.AddItem(ctx, testProduct(1, "A", "10.00"))
	svc.Clear(ctx)

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0] != 1 || got[1] != 2 || got[2] != 0 {
		t.Errorf("unexpected notification counts: %v", got)
	}

	unsubscribe()
	svc.AddItem(ctx, testProduct(1, "A", "10.00"))
	if len(got) != 3 {
		t.Errorf("expected no notification after unsubscribe, got %d", len(got))
	}
}

func TestSubscribe_FailedMutationDoesNotNotify(t *testing.T) {
	repo := &mockCartRepo{failSave: true}
	svc := NewCartService(repo, zap.NewNop())

	notified := 0
	svc.Subscribe(func(domain.Cart) { notified++ })

	svc.AddItem(context.Background(), testProduct(1, "A", "10.00"))
	if notified != 0 {
		t.Errorf("expected no notification on failed mutation, got %d", notified)
	}
}

func TestAddItem_Concurrent(t *testing.T) {
	repo := &mockCartRepo{}
	svc := NewCartService(repo, zap.NewNop())
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.AddItem(ctx, testProduct(1, "A", "10.00"))
		}()
	}
	wg.Wait()

	cart, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != workers {
		t.Errorf("expected quantity %d, got %d", workers, cart.Items[0].Quantity)
	}
}

package storage

import (
	"context"
	"sync"

	"github.com/rl1809/storefront/internal/core/domain"
)

// MemoryCartStore keeps the cart in process memory. Used in tests and for
// running without durable storage.
type MemoryCartStore struct {
	mu   sync.Mutex
	cart *domain.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{}
}

func (m *MemoryCartStore) Load(ctx context.Context) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart == nil {
		return nil, nil
	}
	return cloneCart(m.cart), nil
}

func (m *MemoryCartStore) Save(ctx context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = cloneCart(cart)
	return nil
}

func (m *MemoryCartStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = nil
	return nil
}

func cloneCart(c *domain.Cart) *domain.Cart {
	cp := &domain.Cart{}
	if len(c.Items) > 0 {
		cp.Items = append([]domain.LineItem(nil), c.Items...)
	}
	return cp
}

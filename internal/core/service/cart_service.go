package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// CartService owns the storefront cart. Every mutation is an atomic
// load-mutate-save over the whole record under one lock, so the one-line-
// item-per-product and positive-quantity invariants hold even with
// concurrent callers. Listeners registered via Subscribe are invoked
// synchronously with a snapshot after each mutation commits.
type CartService struct {
	repo   port.CartRepository
	logger *zap.Logger

	mu sync.Mutex // serializes load-mutate-save

	subsMu sync.Mutex
	subs   map[string]func(domain.Cart)
}

func NewCartService(repo port.CartRepository, logger *zap.Logger) *CartService {
	return &CartService{
		repo:   repo,
		logger: logger,
		subs:   make(map[string]func(domain.Cart)),
	}
}

// Get returns the current cart. A missing record reads as an empty cart.
func (s *CartService) Get(ctx context.Context) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		return domain.Cart{}, nil
	}
	return snapshot(cart), nil
}

// Total returns the sum of price times quantity across the cart, zero when
// empty. Pure read.
func (s *CartService) Total(ctx context.Context) (decimal.Decimal, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Total(), nil
}

// AddItem inserts a line item for the product, or increments its quantity
// by one when the product is already in the cart.
func (s *CartService) AddItem(ctx context.Context, p domain.Product) (domain.Cart, error) {
	return s.mutate(ctx, func(c *domain.Cart) {
		c.Add(p)
	})
}

// RemoveItem deletes the line item with the given product ID. Removing an
// absent ID is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, id int64) (domain.Cart, error) {
	return s.mutate(ctx, func(c *domain.Cart) {
		c.Remove(id)
	})
}

// UpdateQuantity sets the line item's quantity to max(0, quantity); at zero
// the line item is removed. Unknown IDs are a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, id int64, quantity int) (domain.Cart, error) {
	return s.mutate(ctx, func(c *domain.Cart) {
		c.SetQuantity(id, quantity)
	})
}

// Clear empties the cart unconditionally by deleting the durable record.
func (s *CartService) Clear(ctx context.Context) (domain.Cart, error) {
	s.mu.Lock()
	if err := s.repo.Delete(ctx); err != nil {
		s.mu.Unlock()
		return domain.Cart{}, fmt.Errorf("clear cart: %w", err)
	}
	s.mu.Unlock()

	s.logger.Debug("cart cleared")
	s.notify(domain.Cart{})
	return domain.Cart{}, nil
}

// Subscribe registers a listener invoked with a cart snapshot after each
// committed mutation. The returned func removes the listener.
func (s *CartService) Subscribe(fn func(domain.Cart)) func() {
	id := uuid.NewString()

	s.subsMu.Lock()
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *CartService) mutate(ctx context.Context, apply func(*domain.Cart)) (domain.Cart, error) {
	s.mu.Lock()

	cart, err := s.repo.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		cart = &domain.Cart{}
	}

	apply(cart)

	if err := s.repo.Save(ctx, cart); err != nil {
		s.mu.Unlock()
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}

	snap := snapshot(cart)
	s.mu.Unlock()

	s.logger.Debug("cart updated",
		zap.Int("line_items", len(snap.Items)),
		zap.Int("units", snap.Count()),
	)
	s.notify(snap)
	return snap, nil
}

func (s *CartService) notify(cart domain.Cart) {
	s.subsMu.Lock()
	fns := make([]func(domain.Cart), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(cart)
	}
}

func snapshot(c *domain.Cart) domain.Cart {
	snap := domain.Cart{}
	if len(c.Items) > 0 {
		snap.Items = append([]domain.LineItem(nil), c.Items...)
	}
	return snap
}

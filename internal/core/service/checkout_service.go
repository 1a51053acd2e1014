package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/storefront/internal/core/domain"
)

// CheckoutService turns cart contents into an order message and a
// ready-to-navigate messaging link. It does not perform the navigation;
// that is the caller's responsibility.
type CheckoutService struct {
	cart        *CartService
	baseURL     string
	destination string
	logger      *zap.Logger
}

// NewCheckoutService builds a checkout service. baseURL is the messaging
// service URL template root (e.g. https://wa.me) and destination the fixed
// configured address that receives the order.
func NewCheckoutService(cart *CartService, baseURL, destination string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		cart:        cart,
		baseURL:     strings.TrimRight(baseURL, "/"),
		destination: destination,
		logger:      logger,
	}
}

// FormatOrder renders the order summary: one bullet line per item with name,
// quantity and two-decimal line subtotal, then a two-decimal grand total.
// An empty item list is not an error and renders with a total of $0.00.
// Malformed items (empty name, negative price, quantity below one) fail
// with domain.ErrInvalidLineItem rather than producing garbage output.
func FormatOrder(items []domain.LineItem) (string, error) {
	for _, li := range items {
		if err := li.Validate(); err != nil {
			return "", fmt.Errorf("item %d: %w", li.ID, err)
		}
	}

	lines := make([]string, 0, len(items))
	total := decimal.Zero
	for _, li := range items {
		sub := li.Subtotal()
		lines = append(lines, fmt.Sprintf("• %s x%d - $%s", li.Name, li.Quantity, sub.StringFixed(2)))
		total = total.Add(sub)
	}

	return fmt.Sprintf("New Order:\n\n%s\n\nTotal: $%s",
		strings.Join(lines, "\n"), total.StringFixed(2)), nil
}

// BuildCheckoutLink URL-encodes the message and embeds it as the text query
// parameter of the configured messaging destination.
func (s *CheckoutService) BuildCheckoutLink(message string) string {
	return fmt.Sprintf("%s/%s?text=%s", s.baseURL, s.destination, url.QueryEscape(message))
}

// FormatItems validates and formats externally supplied line items and
// returns the resulting link. The stored cart is not touched.
func (s *CheckoutService) FormatItems(items []domain.LineItem) (string, error) {
	message, err := FormatOrder(items)
	if err != nil {
		return "", err
	}
	return s.BuildCheckoutLink(message), nil
}

// Checkout snapshots the stored cart, formats the order, builds the link
// and clears the cart. The cleared state is committed before the link is
// returned; on any failure the stored cart is left unchanged so the user
// can retry.
func (s *CheckoutService) Checkout(ctx context.Context) (string, error) {
	cart, err := s.cart.Get(ctx)
	if err != nil {
		return "", err
	}

	message, err := FormatOrder(cart.Items)
	if err != nil {
		return "", err
	}
	link := s.BuildCheckoutLink(message)

	if _, err := s.cart.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear cart after checkout: %w", err)
	}

	s.logger.Info("checkout completed",
		zap.Int("line_items", len(cart.Items)),
		zap.String("total", cart.Total().StringFixed(2)),
	)
	return link, nil
}

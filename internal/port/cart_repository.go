package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

// CartRepository persists the single storefront cart as one named durable
// record. Implementations: JSON snapshot file (default), Redis, in-memory.
type CartRepository interface {
	// Load returns the stored cart, or (nil, nil) when no record exists.
	Load(ctx context.Context) (*domain.Cart, error)

	// Save overwrites the stored record with the given cart.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the stored record; deleting an absent record is not an error.
	Delete(ctx context.Context) error
}

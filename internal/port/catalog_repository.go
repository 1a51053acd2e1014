package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

// CatalogRepository supplies categories and products. Implementations:
// static sample data and MySQL.
type CatalogRepository interface {
	// Categories returns all categories in display order.
	Categories(ctx context.Context) ([]domain.Category, error)

	// Products returns all products in display order.
	Products(ctx context.Context) ([]domain.Product, error)

	// ProductsByCategory returns the products of one category; an unknown
	// category yields an empty slice, not an error.
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// Product returns the product with the given ID, or (nil, nil) when absent.
	Product(ctx context.Context, id int64) (*domain.Product, error)

	// Featured returns the products highlighted on the storefront home page.
	Featured(ctx context.Context) ([]domain.Product, error)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService serves catalog reads on top of the configured backend.
type CatalogService struct {
	catalog port.CatalogRepository
}

func NewCatalogService(catalog port.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.Categories(ctx)
}

func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.Products(ctx)
}

// ProductsByCategory returns the products of one category; an unknown
// category yields an empty list.
func (s *CatalogService) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.catalog.ProductsByCategory(ctx, category)
}

// Product returns the product with the given ID or ErrProductNotFound.
func (s *CatalogService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.Featured(ctx)
}

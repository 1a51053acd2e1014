package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

// StaticCatalog serves the built-in sample catalog. It is the default
// catalog backend and the seed data for the MySQL backend.
type StaticCatalog struct {
	categories []domain.Category
	products   []domain.Product
	featured   []int64
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		categories: []domain.Category{
			{ID: "glasses", Name: "Eyewear", Description: "Stylish frames and sunglasses", Image: "/images/categories/glasses.jpg"},
			{ID: "belts", Name: "Belts", Description: "Premium leather belts", Image: "/images/categories/belts.jpg"},
			{ID: "watches", Name: "Watches", Description: "Luxury timepieces", Image: "/images/categories/watches.jpg"},
		},
		products: []domain.Product{
			{
				ID:          1,
				Name:        "Ray-Ban Aviator",
				Price:       decimal.RequireFromString("159.99"),
				Category:    "glasses",
				Image:       "/images/products/rayban.jpg",
				Description: "Classic aviator sunglasses with gold frame",
			},
			{
				ID:          2,
				Name:        "Ray-Ban Wayfarer",
				Price:       decimal.RequireFromString("149.99"),
				Category:    "glasses",
				Image:       "/images/products/wayfarer.jpg",
				Description: "Iconic wayfarer style sunglasses",
			},
			{
				ID:          3,
				Name:        "Leather Belt Brown",
				Price:       decimal.RequireFromString("49.99"),
				Category:    "belts",
				Image:       "/images/products/belt.jpg",
				Description: "Premium leather belt with classic buckle",
			},
			{
				ID:          4,
				Name:        "Classic Watch",
				Price:       decimal.RequireFromString("299.99"),
				Category:    "watches",
				Image:       "/images/products/watch.jpg",
				Description: "Elegant timepiece with leather strap",
			},
		},
		featured: []int64{1, 3, 4},
	}
}

func (s *StaticCatalog) Categories(ctx context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), s.categories...), nil
}

func (s *StaticCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), s.products...), nil
}

func (s *StaticCatalog) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *StaticCatalog) Product(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *StaticCatalog) Featured(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.featured))
	for _, id := range s.featured {
		for _, p := range s.products {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

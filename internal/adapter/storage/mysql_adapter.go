package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

// MySQLCatalog reads the catalog from MySQL. Prices are stored as
// DECIMAL(10,2) and scanned through strings to keep them exact.
type MySQLCatalog struct {
	db *sql.DB
}

func NewMySQLCatalog(db *sql.DB) *MySQLCatalog {
	return &MySQLCatalog{db: db}
}

func (m *MySQLCatalog) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, description, image
		FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (m *MySQLCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	return m.queryProducts(ctx, `
		SELECT id, name, price, category_id, image, description
		FROM products ORDER BY id`)
}

func (m *MySQLCatalog) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return m.queryProducts(ctx, `
		SELECT id, name, price, category_id, image, description
		FROM products WHERE category_id = ? ORDER BY id`, category)
}

func (m *MySQLCatalog) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, price, category_id, image, description
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &price, &p.Category, &p.Image, &p.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	return &p, nil
}

func (m *MySQLCatalog) Featured(ctx context.Context) ([]domain.Product, error) {
	return m.queryProducts(ctx, `
		SELECT id, name, price, category_id, image, description
		FROM products WHERE featured = 1 ORDER BY id`)
}

func (m *MySQLCatalog) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		var (
			p     domain.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Category, &p.Image, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

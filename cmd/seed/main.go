// Command seed creates the catalog schema in MySQL and loads the built-in
// sample data, so the server can run with catalog.backend: mysql.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rl1809/storefront/internal/adapter/storage"
)

const defaultDSN = "root:root@tcp(localhost:3306)/storefront?parseTime=true"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          VARCHAR(64) PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description VARCHAR(255) NOT NULL DEFAULT '',
		image       VARCHAR(255) NOT NULL DEFAULT '',
		position    INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGINT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		price       DECIMAL(10,2) NOT NULL,
		category_id VARCHAR(64) NOT NULL,
		image       VARCHAR(255) NOT NULL DEFAULT '',
		description VARCHAR(255) NOT NULL DEFAULT '',
		featured    TINYINT(1) NOT NULL DEFAULT 0
	)`,
}

func main() {
	dsn := flag.String("dsn", defaultDSN, "MySQL DSN")
	flag.Parse()

	ctx := context.Background()

	db, err := sql.Open("mysql", *dsn)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("failed to create schema: %v", err)
		}
	}
	log.Println("schema ready")

	catalog := storage.NewStaticCatalog()

	categories, err := catalog.Categories(ctx)
	if err != nil {
		log.Fatalf("failed to read sample categories: %v", err)
	}
	for i, c := range categories {
		_, err := db.ExecContext(ctx, `
			INSERT INTO categories (id, name, description, image, position)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				name = VALUES(name), description = VALUES(description),
				image = VALUES(image), position = VALUES(position)`,
			c.ID, c.Name, c.Description, c.Image, i,
		)
		if err != nil {
			log.Fatalf("failed to seed category %s: %v", c.ID, err)
		}
	}
	log.Printf("seeded %d categories", len(categories))

	products, err := catalog.Products(ctx)
	if err != nil {
		log.Fatalf("failed to read sample products: %v", err)
	}
	featured, err := catalog.Featured(ctx)
	if err != nil {
		log.Fatalf("failed to read featured products: %v", err)
	}
	featuredIDs := make(map[int64]bool, len(featured))
	for _, p := range featured {
		featuredIDs[p.ID] = true
	}

	for _, p := range products {
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, name, price, category_id, image, description, featured)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				name = VALUES(name), price = VALUES(price),
				category_id = VALUES(category_id), image = VALUES(image),
				description = VALUES(description), featured = VALUES(featured)`,
			p.ID, p.Name, p.Price.StringFixed(2), p.Category, p.Image, p.Description, featuredIDs[p.ID],
		)
		if err != nil {
			log.Fatalf("failed to seed product %d: %v", p.ID, err)
		}
	}
	log.Printf("seeded %d products", len(products))
}

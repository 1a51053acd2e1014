package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration. Zero values are filled from
// Default; a YAML file overrides them.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cart     CartConfig     `yaml:"cart"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Checkout CheckoutConfig `yaml:"checkout"`
	System   SystemConfig   `yaml:"system"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CartConfig selects the cart persistence backend.
type CartConfig struct {
	Backend   string `yaml:"backend"` // file, redis or memory
	FilePath  string `yaml:"file_path"`
	RedisAddr string `yaml:"redis_addr"`
}

// CatalogConfig selects the catalog backend.
type CatalogConfig struct {
	Backend  string `yaml:"backend"` // static or mysql
	MySQLDSN string `yaml:"mysql_dsn"`
}

// CheckoutConfig parameterizes the outbound messaging link.
type CheckoutConfig struct {
	BaseURL     string `yaml:"base_url"`
	Destination string `yaml:"destination"`
}

type SystemConfig struct {
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cart: CartConfig{
			Backend:   "file",
			FilePath:  "cart-storage.json",
			RedisAddr: "localhost:6379",
		},
		Catalog: CatalogConfig{
			Backend:  "static",
			MySQLDSN: "root:root@tcp(localhost:3306)/storefront?parseTime=true",
		},
		Checkout: CheckoutConfig{
			BaseURL:     "https://wa.me",
			Destination: "917070622289",
		},
		System: SystemConfig{LogLevel: "info"},
	}
}

// Load returns the default configuration overridden by the YAML file at
// path. An empty path loads defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Cart.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("cart.backend must be file, redis or memory, got %q", c.Cart.Backend)
	}
	if c.Cart.Backend == "file" && c.Cart.FilePath == "" {
		return fmt.Errorf("cart.file_path is required for the file backend")
	}
	if c.Cart.Backend == "redis" && c.Cart.RedisAddr == "" {
		return fmt.Errorf("cart.redis_addr is required for the redis backend")
	}

	switch c.Catalog.Backend {
	case "static", "mysql":
	default:
		return fmt.Errorf("catalog.backend must be static or mysql, got %q", c.Catalog.Backend)
	}
	if c.Catalog.Backend == "mysql" && c.Catalog.MySQLDSN == "" {
		return fmt.Errorf("catalog.mysql_dsn is required for the mysql backend")
	}

	if c.Checkout.BaseURL == "" {
		return fmt.Errorf("checkout.base_url is required")
	}
	if c.Checkout.Destination == "" {
		return fmt.Errorf("checkout.destination is required")
	}

	switch c.System.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("system.log_level must be debug, info, warn or error, got %q", c.System.LogLevel)
	}
	return nil
}

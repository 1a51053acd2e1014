package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/storefront/internal/adapter/handler"
	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/config"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/logging"
	"github.com/rl1809/storefront/internal/port"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.System.LogLevel)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cart persistence backend
	var (
		cartRepo port.CartRepository
		rdb      *redis.Client
	)
	switch cfg.Cart.Backend {
	case "redis":
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Cart.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		logger.Info("connected to redis", zap.String("addr", cfg.Cart.RedisAddr))
		cartRepo = storage.NewRedisCartStore(rdb)
	case "memory":
		cartRepo = storage.NewMemoryCartStore()
	default:
		cartRepo = storage.NewFileCartStore(cfg.Cart.FilePath)
		logger.Info("cart snapshot file", zap.String("path", cfg.Cart.FilePath))
	}

	// Catalog backend
	var (
		catalogRepo port.CatalogRepository
		db          *sql.DB
	)
	switch cfg.Catalog.Backend {
	case "mysql":
		db, err = sql.Open("mysql", cfg.Catalog.MySQLDSN)
		if err != nil {
			logger.Fatal("failed to connect mysql", zap.Error(err))
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			logger.Fatal("failed to ping mysql", zap.Error(err))
		}
		logger.Info("connected to mysql")
		catalogRepo = storage.NewMySQLCatalog(db)
	default:
		catalogRepo = storage.NewStaticCatalog()
	}

	// Services
	cartService := service.NewCartService(cartRepo, logger)
	catalogService := service.NewCatalogService(catalogRepo)
	checkoutService := service.NewCheckoutService(cartService, cfg.Checkout.BaseURL, cfg.Checkout.Destination, logger)

	// Mirror the UI's reactive cart badge: log the unit count on every commit.
	unsubscribe := cartService.Subscribe(func(c domain.Cart) {
		logger.Debug("cart changed", zap.Int("units", c.Count()))
	})
	defer unsubscribe()

	// HTTP server
	httpHandler := handler.NewHTTPHandler(catalogService, cartService, checkoutService, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler.NewRouter(httpHandler),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("HTTP server stopped")

	if rdb != nil {
		rdb.Close()
	}
	if db != nil {
		db.Close()
	}
	logger.Info("connections closed")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"stylehub/internal/catalog"
	"stylehub/internal/config"
	"stylehub/internal/db"
	"stylehub/internal/events"
	"stylehub/internal/httpserver"
	"stylehub/internal/persist"
	catalogrepo "stylehub/internal/repository/catalog"
	orderrepo "stylehub/internal/repository/order"
	"stylehub/internal/service/checkout"
	"stylehub/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	catRepo := catalogrepo.NewPostgres(dbpool, logger)
	cat, err := loadCatalog(ctx, catRepo)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	var persister store.Persister = persist.NewMemory()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer rdb.Close()
		persister = persist.NewRedis(rdb, cfg.StoreKeyPrefix)
	} else {
		logger.Println("REDIS_ADDR not set, store state is kept in memory only")
	}

	stores := store.NewManager(cat, persister, logger)

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer publisher.Close()
		stores.OnChange(publisher.StoreChanged)
	}

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	checkoutService := checkout.New(orderRepo, cat)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:  cat,
		Stores:   stores,
		Checkout: checkoutService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func loadCatalog(ctx context.Context, repo catalogrepo.Repository) (*catalog.Catalog, error) {
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	coupons, err := repo.ListCoupons(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(products, categories, coupons), nil
}

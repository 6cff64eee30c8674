package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"reelcraft-storefront/internal/config"
	"reelcraft-storefront/internal/db"
	"reelcraft-storefront/internal/httpserver"
	snapshotrepo "reelcraft-storefront/internal/repository/snapshot"
	cartsvc "reelcraft-storefront/internal/service/cart"
	ordersvc "reelcraft-storefront/internal/service/order"
	"reelcraft-storefront/internal/shopify"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	platformCfg := shopify.Config{
		StoreDomain:     cfg.StoreDomain,
		StorefrontToken: cfg.StorefrontToken,
		AdminToken:      cfg.AdminToken,
		APIVersion:      cfg.APIVersion,
		Timeout:         cfg.RequestTimeout,
	}
	storefront := shopify.New(platformCfg)
	admin := shopify.NewAdmin(platformCfg)

	snapshotRepo := snapshotrepo.NewPostgres(dbpool)
	cartManager := cartsvc.NewManager(storefront, snapshotRepo, logger)
	orderService := ordersvc.New(admin)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog: storefront,
		Carts:   cartManager,
		Orders:  orderService,
		Origins: cfg.AllowedOrigins,
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

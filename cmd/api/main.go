package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"homesteadhub/internal/cart"
	"homesteadhub/internal/catalog"
	"homesteadhub/internal/config"
	"homesteadhub/internal/db"
	"homesteadhub/internal/httpserver"
	"homesteadhub/internal/payment"
	orderrepo "homesteadhub/internal/repository/order"
	productrepo "homesteadhub/internal/repository/product"
	tokenrepo "homesteadhub/internal/repository/token"
	userrepo "homesteadhub/internal/repository/user"
	"homesteadhub/internal/service/checkout"
	"homesteadhub/internal/service/inventory"
	"homesteadhub/internal/service/portal"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	store := catalog.New()
	inventoryService := inventory.New(store, productRepo, logger)
	if err := inventoryService.Load(ctx); err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	payments := payment.NewRegistry()
	payments.Register(payment.MethodCashPickup, payment.NewCashPickup())
	payments.Register(payment.MethodCard, payment.NewCard())

	portalService := portal.New(userRepo, tokenRepo)
	checkoutService := checkout.New(store, payments, orderRepo, productRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Portal:    portalService,
		Inventory: inventoryService,
		Checkout:  checkoutService,
		Carts:     cart.NewStore(),
		Orders:    orderRepo,
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

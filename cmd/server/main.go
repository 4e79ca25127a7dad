package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/coupon"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	policy, err := cfg.Order.Resolve()
	if err != nil {
		log.Error("invalid order policy", "error", err)
		os.Exit(1)
	}

	log.Info("starting order processing api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"item_validation", string(policy.ItemValidation),
		"unknown_discount", string(policy.UnknownDiscount),
	)

	catalog := coupon.NewCatalog()
	if len(cfg.Discount.CodeFiles) > 0 {
		log.Info("loading discount codes...", "files", cfg.Discount.CodeFiles)
		if err := catalog.LoadFromFiles(context.Background(), cfg.Discount.CodeFiles); err != nil {
			log.Error("failed to load discount codes", "error", err)
			os.Exit(1)
		}
	}
	stats := catalog.GetStats()
	log.Info("discount catalog ready",
		"total_files", stats["total_files"],
		"total_codes", stats["total_codes"],
	)

	orderService := service.NewOrderService(policy, service.Dependencies{
		Discounts: catalog,
		Logger:    log,
	})

	router := handlers.NewRouter(handlers.RouterDeps{
		Health: handlers.NewHealthHandler(log, map[string]string{
			"item_validation":  string(policy.ItemValidation),
			"unknown_discount": string(policy.UnknownDiscount),
		}),
		Orders:   handlers.NewOrderHandler(orderService, log),
		Discount: handlers.NewDiscountHandler(catalog, log),
		Auth:     cfg.Auth,
		Logger:   log,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

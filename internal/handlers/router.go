package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/middleware"
)

// RouterDeps are the handlers and settings the router is built from
type RouterDeps struct {
	Health   *HealthHandler
	Orders   *OrderHandler
	Discount *DiscountHandler
	Auth     config.AuthConfig
	Logger   *slog.Logger
}

// NewRouter wires middleware and routes
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", deps.Health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/discount/stats", deps.Discount.GetStats)
		r.Get("/discount/{code}", deps.Discount.GetDiscount)

		r.With(middleware.APIKeyAuth(deps.Auth)).Post("/order", deps.Orders.CreateOrder)
	})

	return r
}

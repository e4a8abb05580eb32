package router

import (
	"net/http"

	"farm-market/internal/auth"
	"farm-market/internal/handler"
	"farm-market/internal/middleware"
	"farm-market/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	farmerHandler *handler.FarmerHandler,
	buyerHandler *handler.BuyerHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authenticate := middleware.Authenticate(tokens, logger)
	farmerOnly := middleware.RequireRole(model.RoleFarmer)
	buyerOnly := middleware.RequireRole(model.RoleBuyer)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/farmers", func(r chi.Router) {
			r.Post("/auth/register", farmerHandler.Register)
			r.Post("/auth/login", farmerHandler.Login)

			r.Get("/", farmerHandler.GetAll)
			r.Post("/", farmerHandler.Create)
			r.Get("/{id}", farmerHandler.GetByID)
			r.Put("/{id}", farmerHandler.Update)
			r.Delete("/{id}", farmerHandler.Delete)
		})

		r.Route("/buyers", func(r chi.Router) {
			r.Post("/register", buyerHandler.Register)
			r.Post("/login", buyerHandler.Login)
			r.Get("/", buyerHandler.GetAll)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, buyerOnly)
				r.Get("/{id}", buyerHandler.GetByID)
				r.Put("/{id}", buyerHandler.Update)
				r.Delete("/{id}", buyerHandler.Delete)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, farmerOnly)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authenticate, buyerOnly)
				r.Post("/", orderHandler.Place)
				r.Get("/my-orders", orderHandler.MyOrders)
				r.Delete("/{id}", orderHandler.Cancel)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate, farmerOnly)
				r.Get("/farmer", orderHandler.FarmerOrders)
				r.Get("/farmer-orders", orderHandler.FarmerOrders)
				r.Put("/{id}/status", orderHandler.UpdateStatus)
			})
		})
	})

	return r
}

package router

import (
	"net/http"

	"urban-turban/internal/auth"
	"urban-turban/internal/handler"
	"urban-turban/internal/metrics"
	"urban-turban/internal/middleware"
	"urban-turban/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps carries everything the route table needs.
type Deps struct {
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AdminHandler   *handler.AdminHandler
	Tokens         *auth.TokenManager
	UserRepo       repository.UserRepository
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// New creates the HTTP router with all routes and middleware configured.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.CORS)
	r.Use(middleware.Identity(d.Tokens, d.UserRepo, d.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.AuthHandler.Register)
			r.Post("/login", d.AuthHandler.Login)
			r.Post("/logout", d.AuthHandler.Logout)
			r.With(middleware.RequireAuth).Get("/me", d.AuthHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", d.ProductHandler.List)
			r.Get("/{slug}", d.ProductHandler.GetBySlug)
		})

		// Cart routes work for guests too; identity is optional.
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", d.CartHandler.Get)
			r.Post("/clear", d.CartHandler.Clear)
			r.Delete("/", d.CartHandler.Clear)
			r.Post("/items", d.CartHandler.AddItem)
			r.Patch("/items/{id}", d.CartHandler.UpdateItem)
			r.Delete("/items/{id}", d.CartHandler.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.With(middleware.RequireAction(auth.ActionCheckout)).Post("/", d.OrderHandler.Create)
			r.Get("/", d.OrderHandler.List)
			r.Get("/{id}", d.OrderHandler.Get)
			r.With(middleware.RequireAction(auth.ActionCancelOrder)).Post("/{id}/cancel", d.OrderHandler.Cancel)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(middleware.RequireAction(auth.ActionManageOrders))
			r.Get("/", d.AdminHandler.ListOrders)
			r.Patch("/{id}/status", d.AdminHandler.UpdateOrderStatus)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAction(auth.ActionManageUsers))
			r.Get("/", d.AdminHandler.ListUsers)
			r.Post("/", d.AdminHandler.CreateUser)
			r.Delete("/{id}", d.AdminHandler.DeleteUser)
		})
	})

	return r
}

package router

import (
	"net/http"

	"github.com/AdamZoda/voiture/internal/auth"
	"github.com/AdamZoda/voiture/internal/handler"
	"github.com/AdamZoda/voiture/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Everything under /api/admin requires a valid session; the gallery,
// detail, category listing and auth endpoints are public.
func New(
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	authHandler *handler.AuthHandler,
	tokens *auth.TokenService,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public storefront
		r.Get("/products", productHandler.Gallery)
		r.Get("/products/{id}", productHandler.Detail)
		r.Get("/categories", categoryHandler.GetAll)

		// Session lifecycle
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/session", authHandler.Session)

		// Admin surface, guarded by the session check
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, logger))

			r.Post("/products", productHandler.Create)
			r.Put("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)

			r.Post("/categories", categoryHandler.Create)
			r.Delete("/categories/{name}", categoryHandler.Delete)

			r.Get("/users", authHandler.ListUsers)
			r.Post("/users", authHandler.CreateUser)
			r.Delete("/users/{id}", authHandler.DeleteUser)
		})
	})

	return r
}

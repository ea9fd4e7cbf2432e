// Package router sets up the HTTP routes and middleware chain of the
// catalog API.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"oracatalog/internal/handlers"
	"oracatalog/internal/middleware"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tunes the middleware chain.
type Options struct {
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	// Limiter rate-limits /api; nil disables rate limiting.
	Limiter middleware.Limiter
}

// healthPingTimeout bounds the database ping behind /health.
const healthPingTimeout = 2 * time.Second

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(products *handlers.Products, db Pinger, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/", rootHandler)
	r.Get("/health", healthHandler(db))

	r.Route("/api/products", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(middleware.RateLimit(opts.Limiter))
		}
		r.Get("/top", products.Top)
		r.Get("/category/{categoryName}", products.ByCategory)
		r.Get("/home-rails", products.HomeRails)
		r.Get("/rails-by-category/{categoryName}", products.RailsByCategory)
	})

	return r
}

// rootHandler confirms the server is up.
func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Ora API server is running"}`))
}

// healthHandler returns {"status":"ok"} while the database answers a ping
// and a 503 otherwise.
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}

// notFound answers unknown routes and unsupported methods alike.
func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "Endpoint not found")
}

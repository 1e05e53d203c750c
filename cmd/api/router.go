package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const readinessTimeout = 500 * time.Millisecond

// newRouter wires the middleware chain and mounts the book routes at both
// /books and /api/books. Health endpoints bypass the rate limiter.
// A nil logger discards output.
func newRouter(ctx context.Context, cfg config.Config, log *zap.Logger, service *book.Service, pinger book.Pinger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.RecoveryMiddleware(log))
	r.Use(httpx.AccessLogMiddleware(log))
	r.Use(httpx.SecurityHeadersMiddleware(cfg.EnableHSTS))
	r.Use(httpx.CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				log.Warn("readiness check failed", zap.Error(err))
				http.Error(w, "storage not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := book.NewHTTPHandler(service)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

		r.Route("/books", handler.Routes)
		r.Route("/api/books", handler.Routes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "ROUTE_NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"stockmentor/pkg/stockmentor"
)

// Options configures the HTTP API router.
type Options struct {
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter builds the HTTP API router.
func NewRouter(core *stockmentor.Core, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoveryLoggingMiddleware(logger))
	r.Use(requestLoggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core, logger: logger}

	r.Get("/api/health", h.health)

	// Auth
	r.Post("/api/auth/register", h.register)
	r.Post("/api/auth/login", h.login)
	r.With(h.requireAuth).Post("/api/auth/logout", h.logout)

	// Tickers
	r.Get("/api/tickers", h.getTickers)
	r.With(h.optionalAuth).Post("/api/tickers/explain", h.explainTicker)
	r.Get("/api/tickers/{symbol}", h.getTickerDetail)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/api/profile", h.getProfile)
		r.Post("/api/profile", h.updateProfile)

		r.Get("/api/tickers/watchlist", h.getWatchlist)
		r.Post("/api/tickers/watchlist", h.addToWatchlist)
		r.Delete("/api/tickers/watchlist/{symbol}", h.removeFromWatchlist)

		r.Get("/api/roadmap", h.getRoadmap)
		r.Get("/api/roadmap/{id}", h.getRoadmapStep)
		r.Post("/api/roadmap/progress", h.setRoadmapProgress)

		r.Get("/api/accounts", h.getAccounts)
		r.Post("/api/accounts", h.addAccount)
		r.Delete("/api/accounts/{id}", h.deleteAccount)
	})

	return r
}

type handler struct {
	core   *stockmentor.Core
	logger *slog.Logger
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

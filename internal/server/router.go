package server

import (
	"net/http"

	"github.com/dishaajyoti/vedicai/internal/api"
	"github.com/dishaajyoti/vedicai/internal/api/handlers"
	"github.com/dishaajyoti/vedicai/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

type RouterConfig struct {
	APIKey        string
	QueryHandler  *handlers.QueryHandler
	ReportHandler *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "vedicai",
			"version": Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.APIKey))

		r.Post("/query", cfg.QueryHandler.Query)
		r.Post("/chat", cfg.QueryHandler.Chat)
		r.Post("/generate-report", cfg.ReportHandler.Generate)
		r.Get("/agents", cfg.QueryHandler.ListAgents)
	})

	return r
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kalichetiAravindreddy/image-search/internal/api"
	"github.com/kalichetiAravindreddy/image-search/internal/api/handlers"
	"github.com/kalichetiAravindreddy/image-search/internal/api/middleware"
)

type RouterConfig struct {
	SessionValidator middleware.SessionValidator
	AuthHandler      *handlers.AuthHandler
	SearchHandler    *handlers.SearchHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.RecordUser)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/auth/google", cfg.AuthHandler.GoogleLogin)
		r.Get("/auth/google/callback", cfg.AuthHandler.GoogleCallback)

		r.Get("/top-searches", cfg.SearchHandler.TopSearches)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.SessionValidator))

			r.Get("/auth/user", cfg.AuthHandler.CurrentUser)
			r.Post("/logout", cfg.AuthHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)

				r.Post("/search", cfg.SearchHandler.Search)
				r.Get("/search/history", cfg.SearchHandler.History)
			})
		})
	})

	return r
}

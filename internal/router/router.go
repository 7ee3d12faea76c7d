package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"chat-relay/internal/handlers"
	"chat-relay/internal/middleware"
)

func New(
	pageHandler *handlers.PageHandler,
	chatHandler *handlers.ChatHandler,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigin))

	// Health check
	r.Get("/health", handlers.Health)

	// ──── Browser client ────
	r.Get("/", pageHandler.Index)
	r.Get("/static/*", pageHandler.Static)

	// ──── Chat relay ────
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}

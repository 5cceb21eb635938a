package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

var errMissingSessionID = errors.New("session_id is required")

// NewRouter registers the HTTP routes and middleware stack. Centralizing
// routes here keeps error and logging behavior consistent across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/pizzas", func(r chi.Router) {
			r.Get("/", handler.listPizzas)
			r.Get("/{pizza_id}", handler.getPizza)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handler.createOrder)
			r.Get("/", handler.listOrders)
			r.Get("/{order_id}", handler.getOrder)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", handler.chat)
			r.Get("/history/{session_id}", handler.chatHistory)
			r.Delete("/clear/{session_id}", handler.clearChatHistory)
			r.Get("/health", handler.chatHealth)
			r.Get("/stats", handler.chatStats)
			r.Get("/help", handler.chatHelp)
		})
	})

	return r
}

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noorulain276775/pizza-delivery-app/internal/application"
)

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req application.ChatRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "chat", err)
		return
	}

	res, err := h.chats.Chat(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "chat", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "session_id"))
	if sessionID == "" {
		writeValidationError(r.Context(), w, "chat_history", errMissingSessionID)
		return
	}

	res, err := h.chats.History(r.Context(), sessionID)
	if err != nil {
		writeMappedError(r.Context(), w, "chat_history", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) clearChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "session_id"))
	if sessionID == "" {
		writeValidationError(r.Context(), w, "clear_chat_history", errMissingSessionID)
		return
	}

	if err := h.chats.ClearHistory(r.Context(), sessionID); err != nil {
		writeMappedError(r.Context(), w, "clear_chat_history", err)
		return
	}
	writeMessage(w, http.StatusOK, "chat history cleared")
}

// chatHelp is the self-documentation endpoint: a static summary of the chat
// API so clients can discover it without external docs.
func (h *Handler) chatHelp(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{
		"endpoints": map[string]string{
			"POST /api/chat/":                      "send a message to the assistant",
			"GET /api/chat/history/{session_id}":  "fetch chat history for a session",
			"DELETE /api/chat/clear/{session_id}": "clear chat history for a session",
			"GET /api/chat/health":                "model and session store health",
			"GET /api/chat/stats":                 "usage statistics",
			"GET /api/chat/help":                  "this help information",
		},
		"rate_limits": map[string]string{
			"chat": "20 per minute per session",
		},
		"example_request": map[string]any{
			"method":   "POST",
			"endpoint": "/api/chat/",
			"body": map[string]string{
				"message":    "What pizzas do you have?",
				"session_id": "optional",
			},
		},
	})
}

func (h *Handler) chatHealth(w http.ResponseWriter, r *http.Request) {
	res, err := h.chats.Health(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "chat_health", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) chatStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.chats.Stats(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "chat_stats", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

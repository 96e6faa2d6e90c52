package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"portfolio-assistant/internal/adapter/gemini"
	"portfolio-assistant/internal/llm"
)

// User-facing error messages. Internal error details are logged server-side
// and never echoed to the caller.
const (
	msgInvalid     = "Invalid message."
	msgQuota       = "Free-tier quota reached — please wait a minute and try again."
	msgUnavailable = "Model unavailable — check the configured API key."
	msgInternal    = "Failed to respond. Please try again."
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalid)
		return
	}

	answer, err := h.service.Answer(r.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, msgInvalid)
		case errors.Is(err, llm.ErrQuotaExhausted):
			writeError(w, http.StatusTooManyRequests, msgQuota)
		case gemini.IsNotFound(err):
			writeError(w, http.StatusNotFound, msgUnavailable)
		default:
			slog.ErrorContext(r.Context(), "chat request failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

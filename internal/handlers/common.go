package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/session"
)

// DefaultMaxUploadBytes caps the total multipart upload size.
const DefaultMaxUploadBytes = 500 * 1024 * 1024

type Handler struct {
	manager        *session.Manager
	maxUploadBytes int64
}

func New(manager *session.Manager, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		manager:        manager,
		maxUploadBytes: maxUploadBytes,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

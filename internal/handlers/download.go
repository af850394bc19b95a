package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/LEKKALAGANESH/HEIC-to-JPG-Converter/internal/session"
)

// HandleDownload streams the session archive and consumes the session.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/download/")
	if id == "" || strings.Contains(id, "/") {
		h.writeError(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	data, err := h.manager.Archive(id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		h.writeError(w, "Session not found or expired", http.StatusNotFound)
		return
	case errors.Is(err, session.ErrEmptyArchive):
		h.writeError(w, "No converted files to download", http.StatusConflict)
		return
	case err != nil:
		h.writeError(w, "Failed to build archive: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="converted_images.zip"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to stream archive", "session_id", id, "err", err)
	}
	slog.Info("Archive delivered", "session_id", id, "bytes", len(data))
}

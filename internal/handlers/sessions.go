package handlers

import (
	"net/http"
	"strings"
)

// HandleSessionExpire handles POST /api/sessions/{id}/expire. Expiry is
// idempotent: expiring an unknown or already-consumed session succeeds.
func (h *Handler) HandleSessionExpire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	id, ok := strings.CutSuffix(rest, "/expire")
	if !ok || id == "" || strings.Contains(id, "/") {
		h.writeError(w, "Invalid session path", http.StatusBadRequest)
		return
	}

	h.manager.Expire(id)
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

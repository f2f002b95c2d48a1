package knowledge

import (
	"encoding/json"
	"net/http"

	"github.com/executivedriving/concierge/pkg/logging"
)

// Handler exposes the operator endpoints for inspecting and resetting
// the knowledge base.
type Handler struct {
	admin  Admin
	logger *logging.Logger
}

func NewHandler(admin Admin, logger *logging.Logger) *Handler {
	return &Handler{admin: admin, logger: logger}
}

// List handles GET /kb.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.admin.List(r.Context())
	if err != nil {
		h.logger.Error("knowledge list failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "knowledge store unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

// Reset handles POST /kb/reset: back to the seed set.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Reset(r.Context()); err != nil {
		h.logger.Error("knowledge reset failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "knowledge store unavailable"})
		return
	}
	h.logger.Info("knowledge base reset to seed")
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": len(Seed)})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

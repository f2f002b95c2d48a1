package conversation

import (
	"encoding/json"
	"net/http"

	"github.com/executivedriving/concierge/internal/transcript"
	"github.com/executivedriving/concierge/pkg/logging"
)

// chatRequest accepts either a full transcript or a single first
// message; the widget sends whichever it has.
type chatRequest struct {
	Messages []transcript.Turn `json:"messages"`
	Message  string            `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Done  bool   `json:"done,omitempty"`
}

// Handler serves POST /chat.
type Handler struct {
	orchestrator *Orchestrator
	logger       *logging.Logger
}

func NewHandler(o *Orchestrator, logger *logging.Logger) *Handler {
	return &Handler{orchestrator: o, logger: logger}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	// The reply degrades apologetically rather than leaking a stack
	// trace into the widget.
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("chat handler panicked", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, chatResponse{Reply: replyPanic})
		}
	}()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatResponse{Reply: replyPanic})
		return
	}

	turns := req.Messages
	if len(turns) == 0 && req.Message != "" {
		turns = []transcript.Turn{{Role: transcript.RoleUser, Content: req.Message}}
	}

	reply := h.orchestrator.Respond(r.Context(), turns)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply.Text, Done: reply.Done})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

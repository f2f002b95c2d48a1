package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/executivedriving/concierge/internal/observability/metrics"
	"github.com/executivedriving/concierge/pkg/logging"
)

// ConciergeRequest is the lighter-weight "have someone call me" form:
// contact details and the date the client wants service, plus a
// free-text ask. No itinerary.
type ConciergeRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Date    string `json:"date"`
	Details string `json:"details"`
}

// Notifier delivers accepted submissions to the operator. Implementations
// must be safe for concurrent use.
type Notifier interface {
	SubmitBooking(ctx context.Context, f Fields) error
	SubmitConcierge(ctx context.Context, req ConciergeRequest) error
}

// Handler serves the direct (non-conversational) submission endpoints.
type Handler struct {
	notifier Notifier
	metrics  *metrics.ChatMetrics
	logger   *logging.Logger
	now      func() time.Time
}

func NewHandler(notifier Notifier, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	return &Handler{notifier: notifier, metrics: m, logger: logger, now: time.Now}
}

// SubmitBooking handles POST /book: either a fully-formed reservation
// from the website form, validated with the same cascade the chat flow
// uses, or the concierge variant marked with "type":"concierge". The
// form does not ask about luggage, so it is not required here.
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type string `json:"type"`
		Fields
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Type == "concierge" {
		h.handleConcierge(w, r, ConciergeRequest{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Email:   payload.Email,
			Date:    payload.Date,
			Details: payload.Details,
		})
		return
	}
	fields := payload.Fields

	if missing := fields.MissingFormFields(); len(missing) > 0 {
		h.metrics.ObserveSubmission("form", "rejected")
		h.writeError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	if msg := Validate(&fields, h.now()); msg != "" {
		h.metrics.ObserveSubmission("form", "rejected")
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}
	fields.Phone = FormatPhone(fields.Phone)

	if err := h.notifier.SubmitBooking(r.Context(), fields); err != nil {
		h.logger.Error("booking submission failed", "error", err, "email", fields.Email)
		h.metrics.ObserveSubmission("form", "failed")
		h.writeError(w, http.StatusInternalServerError, "We couldn't send your request just now, but it is safe — please call us to confirm.")
		return
	}

	h.logger.Info("booking submitted", "source", "form", "date", fields.Date)
	h.metrics.ObserveSubmission("form", "ok")
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// SubmitConcierge handles POST /concierge: a call-back request.
func (h *Handler) SubmitConcierge(w http.ResponseWriter, r *http.Request) {
	var req ConciergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.handleConcierge(w, r, req)
}

func (h *Handler) handleConcierge(w http.ResponseWriter, r *http.Request, req ConciergeRequest) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if !ValidPhone(req.Phone) {
		missing = append(missing, "phone")
	}
	if !ValidEmail(req.Email) {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		h.metrics.ObserveSubmission("concierge", "rejected")
		h.writeError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	req.Phone = FormatPhone(req.Phone)

	if err := h.notifier.SubmitConcierge(r.Context(), req); err != nil {
		h.logger.Error("concierge submission failed", "error", err)
		h.metrics.ObserveSubmission("concierge", "failed")
		h.writeError(w, http.StatusInternalServerError, "We couldn't send your request just now, but it is safe — please call us to confirm.")
		return
	}

	h.metrics.ObserveSubmission("concierge", "ok")
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

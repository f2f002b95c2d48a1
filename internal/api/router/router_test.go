package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/internal/conversation"
	"github.com/executivedriving/concierge/internal/geo"
	"github.com/executivedriving/concierge/internal/knowledge"
	"github.com/executivedriving/concierge/pkg/logging"
)

type noopNotifier struct{}

func (noopNotifier) SubmitBooking(context.Context, booking.Fields) error        { return nil }
func (noopNotifier) SubmitConcierge(context.Context, booking.ConciergeRequest) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.New("error")
	store := knowledge.NewMemoryStore()
	orchestrator := conversation.NewOrchestrator(nil, geo.NewClassifier(nil), store, noopNotifier{}, nil, logger)

	return New(&Config{
		Logger:           logger,
		ChatHandler:      conversation.NewHandler(orchestrator, logger),
		BookingHandler:   booking.NewHandler(noopNotifier{}, nil, logger),
		KnowledgeHandler: knowledge.NewHandler(store, logger),
	})
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestHealthReportsUnhealthyDependencies(t *testing.T) {
	logger := logging.New("error")
	r := New(&Config{
		Logger:           logger,
		ChatHandler:      conversation.NewHandler(nil, logger),
		BookingHandler:   booking.NewHandler(noopNotifier{}, nil, logger),
		KnowledgeHandler: knowledge.NewHandler(knowledge.NewMemoryStore(), logger),
		Health: func(context.Context) (bool, bool) {
			return false, true
		},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":false`)
	assert.Contains(t, rec.Body.String(), `"store":true`)
}

func TestChatRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hello"}`))
	newTestRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NAVI")
}

func TestKnowledgeRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kb", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Executive Driving")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/kb/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBookRouteRejectsIncomplete(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(`{"name": "Ada"}`))
	newTestRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required fields")
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

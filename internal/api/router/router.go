package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/internal/conversation"
	httpmiddleware "github.com/executivedriving/concierge/internal/http/middleware"
	"github.com/executivedriving/concierge/internal/knowledge"
	"github.com/executivedriving/concierge/pkg/logging"
)

// HealthFunc reports readiness of the dependencies the service cannot
// degrade around silently: the model extractor and the knowledge store.
type HealthFunc func(ctx context.Context) (extractorReady, storeReady bool)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *conversation.Handler
	BookingHandler     *booking.Handler
	KnowledgeHandler   *knowledge.Handler
	MetricsHandler     http.Handler
	Health             HealthFunc
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck(cfg.Health))

	r.Post("/chat", cfg.ChatHandler.Chat)
	r.Post("/book", cfg.BookingHandler.SubmitBooking)
	r.Post("/concierge", cfg.BookingHandler.SubmitConcierge)

	// Operator knowledge-base tools.
	if cfg.KnowledgeHandler != nil {
		r.Get("/kb", cfg.KnowledgeHandler.List)
		r.Post("/kb/reset", cfg.KnowledgeHandler.Reset)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

// healthCheck answers 200 only when every probed dependency is ready,
// 500 otherwise, reporting each piece so the operator can tell which
// one is down.
func healthCheck(check HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		extractorReady, storeReady := true, true
		if check != nil {
			extractorReady, storeReady = check(r.Context())
		}
		status := http.StatusOK
		if !extractorReady || !storeReady {
			status = http.StatusInternalServerError
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      extractorReady,
			"store":   storeReady,
			"service": "concierge",
		})
	}
}

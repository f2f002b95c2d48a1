package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/executivedriving/concierge/internal/api/router"
	"github.com/executivedriving/concierge/internal/booking"
	appconfig "github.com/executivedriving/concierge/internal/config"
	"github.com/executivedriving/concierge/internal/conversation"
	"github.com/executivedriving/concierge/internal/extract"
	"github.com/executivedriving/concierge/internal/geo"
	"github.com/executivedriving/concierge/internal/knowledge"
	"github.com/executivedriving/concierge/internal/notify"
	"github.com/executivedriving/concierge/internal/observability/metrics"
	"github.com/executivedriving/concierge/pkg/logging"
)

func main() {
	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting concierge API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	chatMetrics := metrics.NewChatMetrics(nil)

	// Knowledge store: Redis when configured, in-memory otherwise.
	store := buildKnowledgeStore(cfg, logger)

	// Language-model extraction is optional; the deterministic salvage
	// pass alone keeps the intake flow working without it.
	var extractor extract.Extractor
	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(cfg.OpenAIAPIKey)
		extractor = extract.NewOpenAIExtractor(client, cfg.OpenAIModel, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, relying on salvage extraction only")
	}

	// Geocoding is optional too; the classifier falls back to its
	// text heuristics when no geocoder is available.
	var geocoder geo.Geocoder
	if cfg.GoogleMapsAPIKey != "" {
		g, err := geo.NewGoogleGeocoder(cfg.GoogleMapsAPIKey, cfg.GeocodeTimeout)
		if err != nil {
			logger.Error("failed to initialize geocoder", "error", err)
			os.Exit(1)
		}
		geocoder = g
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, service-area checks use heuristics only")
	}
	classifier := geo.NewClassifier(geocoder)

	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		logger.Warn("SENDGRID_API_KEY not set, emails are logged instead of sent")
		sender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(sender, cfg.BookingEmailTo, logger)

	orchestrator := conversation.NewOrchestrator(extractor, classifier, store, notifier, chatMetrics, logger)

	var knowledgeHandler *knowledge.Handler
	if admin, ok := store.(knowledge.Admin); ok {
		knowledgeHandler = knowledge.NewHandler(admin, logger)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        conversation.NewHandler(orchestrator, logger),
		BookingHandler:     booking.NewHandler(notifier, chatMetrics, logger),
		KnowledgeHandler:   knowledgeHandler,
		MetricsHandler: promhttp.Handler(),
		Health: func(ctx context.Context) (bool, bool) {
			_, _, err := store.Lookup(ctx, "health")
			return extractor != nil, err == nil
		},
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func buildKnowledgeStore(cfg *appconfig.Config, logger *logging.Logger) knowledge.Store {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, using in-memory knowledge store")
		return knowledge.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := knowledge.NewRedisStore(ctx, client)
	if err != nil {
		logger.Error("failed to initialize Redis knowledge store, falling back to in-memory", "error", err)
		return knowledge.NewMemoryStore()
	}
	logger.Info("knowledge store backed by Redis", "addr", cfg.RedisAddr)
	return store
}

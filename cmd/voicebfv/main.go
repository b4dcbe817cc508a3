package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noisapp/voice-bfv-go/internal/config"
	"github.com/noisapp/voice-bfv-go/internal/domain"
	"github.com/noisapp/voice-bfv-go/internal/handler"
	"github.com/noisapp/voice-bfv-go/internal/infra/ai"
	"github.com/noisapp/voice-bfv-go/internal/infra/cache"
	"github.com/noisapp/voice-bfv-go/internal/infra/client"
	"github.com/noisapp/voice-bfv-go/internal/infra/observability"
	"github.com/noisapp/voice-bfv-go/internal/infra/resilience"
	"github.com/noisapp/voice-bfv-go/internal/nlp"
	"github.com/noisapp/voice-bfv-go/internal/voice"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("organizer_api_url", cfg.OrganizerAPIURL),
		zap.Bool("ai_voice_enabled", cfg.AIVoiceEnabled),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "voice-bfv")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	placeCache := cache.New[[]domain.PlaceRecord](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	organizerClient := client.NewOrganizerClient(
		httpClient,
		cfg.OrganizerAPIURL,
		resilience.NewCircuitBreaker("organizer"),
		resilienceCfg,
	)
	placesClient := client.NewPlacesClient(
		httpClient,
		cfg.PlacesAPIURL,
		cfg.PlacesAPIKey,
		resilience.NewCircuitBreaker("places"),
		resilienceCfg,
	)
	aiClient := ai.NewClient(httpClient, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AIVoiceEnabled)
	if aiClient.Enabled() {
		logger.Info("AI finance parsing enabled", zap.String("model", cfg.OpenAIModel))
	} else {
		logger.Info("AI finance parsing disabled, rule-based extraction only")
	}

	// --- Service ---
	voiceSvc := voice.NewService(
		organizerClient,
		organizerClient,
		organizerClient,
		organizerClient,
		placesClient,
		aiClient,
		placeCache,
		voice.PlacesDefaults{
			Latitude:  cfg.PlacesLat,
			Longitude: cfg.PlacesLon,
			Radius:    cfg.PlacesRadius,
		},
		nlp.SystemClock{},
		logger,
		metrics,
	)

	// --- Router ---
	router := handler.NewRouter(voiceSvc, metrics, cfg.JWTSecret, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

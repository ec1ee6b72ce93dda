package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/analysis"
	"github.com/lokvaani/commentengine/internal/api"
	"github.com/lokvaani/commentengine/internal/cache"
	"github.com/lokvaani/commentengine/internal/db"
	"github.com/lokvaani/commentengine/internal/langdetect"
	"github.com/lokvaani/commentengine/internal/sentiment"
	"github.com/lokvaani/commentengine/internal/summarize"
	"github.com/lokvaani/commentengine/internal/translate"
	"github.com/lokvaani/commentengine/pkg/config"
	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting comment analyzer")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	var metricsSrv *http.Server
	if cfg.Telemetry.PrometheusEnabled {
		metricsSrv = telemetry.StartMetricsServer(cfg.Server.Host, cfg.Telemetry.PrometheusPort)
	}

	ctx := context.Background()

	redisCache, err := cache.New(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
	}
	defer redisCache.Close()

	database, err := db.New(ctx, &cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()
	if database != nil {
		if err := database.Migrate(ctx); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	classifier := langdetect.NewClassifier(langdetect.NewWhatlangDetector(), cfg.Language.HinglishThreshold)
	provider, closeProvider := newTranslator(ctx, &cfg.Translation, logger)
	defer closeProvider()
	pipeline := translate.NewPipeline(classifier, provider, translate.NewGlossary(), cfg.Translation.GlossaryFallback)

	var model sentiment.Classifier
	if cfg.Sentiment.URL != "" {
		model = sentiment.NewHuggingFace(cfg.Sentiment.URL, cfg.Sentiment.APIToken, cfg.Sentiment.Timeout, cfg.Sentiment.MaxChars)
	}

	svc := analysis.New(pipeline, model, newSummarizer(ctx, &cfg.Summary, logger),
		analysis.WithCache(redisCache),
		analysis.WithStore(db.NewAnalysisRepository(database)),
	)

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := api.NewEngine(logging.WithComponent("http"))
	api.NewAnalyzerRouter(svc, map[string]api.HealthChecker{
		"redis":    redisCache,
		"postgres": database,
	}).SetupRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.AnalyzerPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newTranslator returns the rate limited Google provider, or nil when
// translation is disabled or unconfigured
func newTranslator(ctx context.Context, cfg *config.TranslationConfig, logger *zap.Logger) (translate.Translator, func()) {
	if !cfg.Enabled || cfg.APIKey == "" {
		logger.Info("Translation provider disabled, using glossary only")
		return nil, func() {}
	}
	google, err := translate.NewGoogleTranslator(ctx, cfg.APIKey, cfg.Timeout)
	if err != nil {
		logger.Warn("Translation provider unavailable, using glossary only", zap.Error(err))
		return nil, func() {}
	}
	return translate.NewRateLimited(google, cfg.RPS, cfg.Burst), func() {
		if err := google.Close(); err != nil {
			logger.Warn("Failed to close translation client", zap.Error(err))
		}
	}
}

// newSummarizer prefers Gemini with the extractive summarizer as backup
func newSummarizer(ctx context.Context, cfg *config.SummaryConfig, logger *zap.Logger) summarize.Summarizer {
	if !cfg.Enabled {
		return nil
	}
	lead := summarize.NewLead(cfg.MaxWords)
	if cfg.APIKey == "" {
		return lead
	}
	gemini, err := summarize.NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.MaxWords, cfg.Timeout)
	if err != nil {
		logger.Warn("Gemini summarizer unavailable, using extractive summaries", zap.Error(err))
		return lead
	}
	return summarize.NewWithFallback(gemini, lead)
}

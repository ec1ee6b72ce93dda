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

	"github.com/lokvaani/commentengine/internal/api"
	"github.com/lokvaani/commentengine/internal/dataset"
	"github.com/lokvaani/commentengine/internal/generator"
	"github.com/lokvaani/commentengine/internal/personalize"
	"github.com/lokvaani/commentengine/internal/pool"
	"github.com/lokvaani/commentengine/internal/random"
	"github.com/lokvaani/commentengine/internal/rotation"
	"github.com/lokvaani/commentengine/internal/selector"
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
	logger.Info("Starting comment generator")

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

	data, err := dataset.Load(cfg.Data.Dir)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.String("dir", cfg.Data.Dir), zap.Error(err))
	}
	logger.Info("Dataset loaded",
		zap.Int("posts", len(data.Posts)),
		zap.Int("companies", len(data.Companies)),
		zap.Int("comment_posts", len(data.CommentPosts())))

	rng := random.New(cfg.Rotation.Seed)
	store := rotation.NewStore(cfg.Rotation.BatchSize)
	sel := selector.New(
		pool.New(data, pool.ThresholdsFromConfig(cfg.Thresholds)),
		store,
		personalize.New(cfg.Thresholds.PrefixMaxChars, cfg.Thresholds.MinimumWords),
		rng,
		selector.Options{RotateFallbacks: cfg.Rotation.RotateFallbacks},
	)
	counter := rotation.NewCounter(store, cfg.Rotation.ResetAfter, cfg.Rotation.DailyReset, time.Now())
	gen := generator.New(data, sel, counter, rng)

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := api.NewEngine(logging.WithComponent("http"))
	api.NewGeneratorRouter(gen).SetupRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GeneratorPort),
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

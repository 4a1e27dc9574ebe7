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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/profilematch/internal/config"
	dommatch "github.com/kailas-cloud/profilematch/internal/domain/match"
	"github.com/kailas-cloud/profilematch/internal/domain/similarity"
	logpkg "github.com/kailas-cloud/profilematch/internal/logger"
	"github.com/kailas-cloud/profilematch/internal/metrics"
	"github.com/kailas-cloud/profilematch/internal/tracing"
	chiTransport "github.com/kailas-cloud/profilematch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/profilematch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/profilematch/internal/usecase/match"
	"github.com/kailas-cloud/profilematch/internal/version"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting profilematch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("empty_corpus_policy", cfg.Ranking.EmptyCorpusPolicy),
		zap.Int("max_candidates", cfg.Ranking.MaxCandidates),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterRankingMetrics()

	tracer, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		Environment:  env,
		Exporter:     cfg.Tracing.Exporter,
		Endpoint:     cfg.Tracing.Endpoint,
		SamplingRate: cfg.Tracing.SamplingRate,
		Insecure:     cfg.Tracing.Insecure,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	policy, err := similarity.ParsePolicy(cfg.Ranking.EmptyCorpusPolicy)
	if err != nil {
		logger.Fatal("Invalid empty corpus policy", zap.Error(err))
	}
	weights, err := dommatch.NewWeightTable(cfg.Ranking.PoliticalWeights)
	if err != nil {
		logger.Fatal("Invalid political weights", zap.Error(err))
	}
	logger.Info("Weight table loaded", zap.Strings("views", weights.Labels()))

	// Composition root: service -> instrumented matcher -> transport
	matchSvc := matchuc.New(weights, policy).WithMaxCandidates(cfg.Ranking.MaxCandidates)
	healthSvc := healthuc.New(matchSvc)

	server := chiTransport.NewServer(matchuc.NewInstrumentedMatcher(matchSvc), healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chiTransport.NewRouter(server, logger),
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error flushing traces", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

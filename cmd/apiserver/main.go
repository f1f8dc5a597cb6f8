// Command apiserver serves the DeNovo-Designer HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	appCandidate "github.com/turtacn/DeNovo-Designer/internal/application/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/config"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/DeNovo-Designer/internal/interfaces/http"
	"github.com/turtacn/DeNovo-Designer/internal/interfaces/http/handlers"
	"github.com/turtacn/DeNovo-Designer/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int) error {
	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithConfigPath(configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	logger, err := logging.NewLogger(logging.FromConfig(cfg.Log))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if configPath != "" {
		err := config.Watch(configPath, func(c *config.Config) {
			level, err := logging.ParseLevel(c.Log.Level)
			if err != nil {
				logger.Warn("ignoring invalid log level", logging.String("level", c.Log.Level))
				return
			}
			logger.SetLevel(level)
			logger.Info("log level reloaded", logging.String("level", c.Log.Level))
		}, func(err error) {
			logger.Warn("config reload failed", logging.Err(err))
		})
		if err != nil {
			logger.Warn("config watch disabled", logging.Err(err))
		}
	}

	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfigFrom(cfg.Metrics, "apiserver"), logger)
		if err != nil {
			return err
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	infra, err := initInfrastructure(cfg, metrics, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	svcOpts := []appAnalysis.Option{appAnalysis.WithMetrics(metrics)}
	if infra.artifacts != nil {
		svcOpts = append(svcOpts, appAnalysis.WithArtifactStore(infra.artifacts))
	}
	if infra.events != nil {
		svcOpts = append(svcOpts, appAnalysis.WithEventPublisher(infra.events))
	}
	analysisSvc := appAnalysis.NewService(infra.runs, appAnalysis.Config{
		MaxUploadBytes:  cfg.Analysis.MaxUploadBytes,
		StructureSeed:   cfg.Analysis.StructureSeed,
		StructurePoints: cfg.Analysis.StructurePoints,
	}, logger, svcOpts...)
	candidateSvc := appCandidate.NewService(metrics, logger)

	var limiter *middleware.RateLimiter
	if rl := cfg.Server.RateLimit; rl.Enabled {
		rlCfg := middleware.DefaultRateLimitConfig(rl.RequestsPerSecond, rl.Burst)
		rlCfg.Metrics = metrics
		limiter = middleware.NewRateLimiter(rlCfg)
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalysisHandler:   handlers.NewAnalysisHandler(analysisSvc, cfg.Server.MaxBodySize, logger),
		CandidateHandler:  handlers.NewCandidateHandler(candidateSvc, logger),
		HealthHandler:     handlers.NewHealthHandler(version, infra.checkers...),
		CORSMiddleware:    middleware.NewCORSMiddleware(middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins)),
		LoggingMiddleware: middleware.NewLoggingMiddleware(logger, middleware.DefaultLoggingConfig()),
		RateLimiter:       limiter,
		Logger:            logger,
		Metrics:           metrics,
		MetricsCollector:  collector,
		MetricsPath:       cfg.Metrics.Path,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting DeNovo-Designer API server",
			logging.String("version", version),
			logging.String("addr", srv.Addr()),
			logging.Bool("redis", cfg.Redis.Enabled),
			logging.Bool("minio", cfg.MinIO.Enabled),
			logging.Bool("kafka", cfg.Kafka.Enabled),
		)
		errCh <- srv.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down API server")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("API server shutdown error", logging.Err(err))
		return err
	}
	return nil
}

//Personal.AI order the ending

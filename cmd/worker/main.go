// Command worker consumes analysis completion events and archives each run's
// downloads into object storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/DeNovo-Designer/internal/application/archive"
	"github.com/turtacn/DeNovo-Designer/internal/config"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/database/redis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/DeNovo-Designer/internal/interfaces/http"
	"github.com/turtacn/DeNovo-Designer/internal/interfaces/http/handlers"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

const defaultHealthPort = 8081

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	healthPort := flag.Int("health-port", defaultHealthPort, "port for /healthz, /readyz and /metrics")
	flag.Parse()

	if err := run(*configPath, *healthPort); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, healthPort int) error {
	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithConfigPath(configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if !cfg.Kafka.Enabled || !cfg.MinIO.Enabled {
		return fmt.Errorf("the worker needs kafka.enabled and minio.enabled")
	}

	logger, err := logging.NewLogger(logging.FromConfig(cfg.Log))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfigFrom(cfg.Metrics, "worker"), logger)
		if err != nil {
			return err
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	minioClient, err := minio.NewMinIOClient(cfg.MinIO, logger)
	if err != nil {
		return err
	}
	defer func() { _ = minioClient.Close() }()
	store := minio.NewArtifactStore(minioClient, metrics, logger)
	checkers := []handlers.HealthChecker{
		handlers.NewChecker("minio", func(ctx context.Context) error {
			status, err := minioClient.HealthCheck(ctx)
			if err == nil && !status.Healthy {
				err = errors.New(errors.ErrCodeServiceUnavailable, status.Error)
			}
			return err
		}),
	}

	archiveOpts := []archive.Option{archive.WithMetrics(metrics)}
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
		archiveOpts = append(archiveOpts, archive.WithLocks(redis.NewLockFactory(redisClient, cfg.Redis.KeyPrefix, logger)))
		checkers = append(checkers, handlers.NewChecker("redis", redisClient.Ping))
	} else {
		logger.Warn("redis disabled, archive runs are not locked across workers")
	}

	ensureTopics(cfg.Kafka, logger)

	deadLetter, err := kafka.NewProducer(kafka.ProducerConfigFrom(cfg.Kafka), metrics, logger)
	if err != nil {
		return err
	}
	defer func() { _ = deadLetter.Close() }()

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfigFrom(cfg.Kafka, cfg.Worker), deadLetter, metrics, logger)
	if err != nil {
		return err
	}

	archiver := archive.NewService(store, archive.Config{
		Prefix:         cfg.Worker.ArchivePrefix,
		Concurrency:    cfg.Worker.Concurrency,
		LockTTL:        cfg.Worker.LockTTL,
		LockRetries:    cfg.Worker.MaxRetries,
		LockRetryDelay: cfg.Worker.RetryBackoff,
	}, logger, archiveOpts...)
	consumer.Subscribe(cfg.Kafka.Topic, archiver.Handle)

	healthCfg := cfg.Server
	healthCfg.Port = healthPort
	healthSrv := httpserver.NewServer(healthCfg, httpserver.NewRouter(httpserver.RouterConfig{
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		Logger:           logger,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
	}), logger)
	go func() {
		if err := healthSrv.Start(); err != nil {
			logger.Error("health server error", logging.Err(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		_ = consumer.Close()
		return err
	}
	logger.Info("DeNovo-Designer worker started",
		logging.String("version", version),
		logging.String("topic", cfg.Kafka.Topic),
		logging.Int("concurrency", cfg.Worker.Concurrency),
	)

	<-ctx.Done()
	logger.Info("shutting down worker")
	if err := consumer.Close(); err != nil {
		logger.Warn("consumer close error", logging.Err(err))
	}
	if err := healthSrv.Shutdown(context.Background()); err != nil {
		logger.Warn("health server shutdown error", logging.Err(err))
	}
	logger.Info("worker stopped",
		logging.Int64("processed", consumer.Processed()),
		logging.Int64("failed", consumer.Failed()),
		logging.Int64("dead_lettered", consumer.DeadLettered()),
	)
	return nil
}

// ensureTopics creates the worker's topics when the broker allows it.
// Failure is not fatal; the topics may be managed elsewhere.
func ensureTopics(cfg config.KafkaConfig, logger logging.Logger) {
	tm, err := kafka.NewTopicManager(cfg.Brokers, logger)
	if err != nil {
		logger.Warn("topic manager unavailable", logging.Err(err))
		return
	}
	defer func() { _ = tm.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := tm.EnsureTopics(ctx, kafka.DefaultTopics(cfg.Topic)); err != nil {
		logger.Warn("failed to ensure topics", logging.Err(err))
	}
}

//Personal.AI order the ending

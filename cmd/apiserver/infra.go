package main

import (
	"context"

	"github.com/turtacn/DeNovo-Designer/internal/config"
	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/database/memory"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/database/redis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/storage/minio"
	"github.com/turtacn/DeNovo-Designer/internal/interfaces/http/handlers"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// infrastructure holds the optional backends.  Disabled backends stay nil.
type infrastructure struct {
	redis    *redis.Client
	minio    *minio.MinIOClient
	producer *kafka.Producer

	runs      domainAnalysis.Repository
	artifacts *minio.ArtifactStore
	events    *kafka.AnalysisEventPublisher
	checkers  []handlers.HealthChecker
}

func initInfrastructure(cfg *config.Config, m *prometheus.AppMetrics, logger logging.Logger) (*infrastructure, error) {
	infra := &infrastructure{}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		infra.redis = client
		cache := redis.NewRedisCache(client, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Analysis.RunTTL),
			redis.WithMetrics(m, "runs"),
		)
		infra.runs = redis.NewRunRepository(cache, cfg.Analysis.RunTTL)
		infra.checkers = append(infra.checkers, handlers.NewChecker("redis", client.Ping))
	} else {
		infra.runs = memory.NewRunRepository(cfg.Analysis.RunTTL)
		logger.Warn("redis disabled, runs are kept in process memory")
	}

	if cfg.MinIO.Enabled {
		client, err := minio.NewMinIOClient(cfg.MinIO, logger)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.minio = client
		infra.artifacts = minio.NewArtifactStore(client, m, logger)
		infra.checkers = append(infra.checkers, handlers.NewChecker("minio", func(ctx context.Context) error {
			status, err := client.HealthCheck(ctx)
			if err == nil && !status.Healthy {
				err = errors.New(errors.ErrCodeServiceUnavailable, status.Error)
			}
			return err
		}))
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfigFrom(cfg.Kafka), m, logger)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.producer = producer
		infra.events = kafka.NewAnalysisEventPublisher(producer, cfg.Kafka.Topic, "denovo-apiserver")
	}

	return infra, nil
}

func (i *infrastructure) Close() {
	if i.producer != nil {
		_ = i.producer.Close()
	}
	if i.minio != nil {
		_ = i.minio.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
}

//Personal.AI order the ending

package config

import (
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "debug"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second
	DefaultServerMaxBodySize     = 32 << 20
	DefaultRateLimitRPS          = 10.0
	DefaultRateLimitBurst        = 20

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisKeyPrefix = "denovo:"

	DefaultKafkaBroker       = "localhost:9092"
	DefaultKafkaGroupID      = "denovo-archiver"
	DefaultKafkaTopic        = "denovo.analysis.completed"
	DefaultKafkaWriteTimeout = 10 * time.Second

	DefaultMinIOEndpoint      = "localhost:9000"
	DefaultMinIOBucket        = "denovo-artifacts"
	DefaultMinIOPresignExpiry = 15 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stdout"

	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "denovo"

	DefaultAnalysisRunTTL          = 24 * time.Hour
	DefaultAnalysisMaxUploadBytes  = 16 << 20
	DefaultAnalysisStructureSeed   = 42
	DefaultAnalysisStructurePoints = 100

	DefaultWorkerConcurrency   = 4
	DefaultWorkerMaxRetries    = 3
	DefaultWorkerRetryBackoff  = 2 * time.Second
	DefaultWorkerArchivePrefix = "archive/"
	DefaultWorkerLockTTL       = 30 * time.Second
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.RateLimit.RequestsPerSecond == 0 {
		cfg.Server.RateLimit.RequestsPerSecond = DefaultRateLimitRPS
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = DefaultRateLimitBurst
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = DefaultMinIOPresignExpiry
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Analysis ──────────────────────────────────────────────────────────────
	if cfg.Analysis.RunTTL == 0 {
		cfg.Analysis.RunTTL = DefaultAnalysisRunTTL
	}
	if cfg.Analysis.MaxUploadBytes == 0 {
		cfg.Analysis.MaxUploadBytes = DefaultAnalysisMaxUploadBytes
	}
	if cfg.Analysis.StructureSeed == 0 {
		cfg.Analysis.StructureSeed = DefaultAnalysisStructureSeed
	}
	if cfg.Analysis.StructurePoints == 0 {
		cfg.Analysis.StructurePoints = DefaultAnalysisStructurePoints
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = DefaultWorkerMaxRetries
	}
	if cfg.Worker.RetryBackoff == 0 {
		cfg.Worker.RetryBackoff = DefaultWorkerRetryBackoff
	}
	if cfg.Worker.ArchivePrefix == "" {
		cfg.Worker.ArchivePrefix = DefaultWorkerArchivePrefix
	}
	if cfg.Worker.LockTTL == 0 {
		cfg.Worker.LockTTL = DefaultWorkerLockTTL
	}
}

// registerKeys declares every known key on v so that AutomaticEnv can
// resolve DENOVO_* variables even when no config file mentions the key.
func registerKeys(v *viper.Viper) {
	keys := map[string]interface{}{
		"server.host":             "",
		"server.port":             0,
		"server.mode":             "",
		"server.read_timeout":     "0s",
		"server.write_timeout":    "0s",
		"server.max_body_size":    0,
		"server.shutdown_timeout": "0s",
		"server.allowed_origins":  []string{},

		"server.rate_limit.enabled":             false,
		"server.rate_limit.requests_per_second": 0.0,
		"server.rate_limit.burst":               0,

		"redis.enabled":    false,
		"redis.addr":       "",
		"redis.password":   "",
		"redis.db":         0,
		"redis.pool_size":  0,
		"redis.key_prefix": "",

		"kafka.enabled":       false,
		"kafka.brokers":       []string{},
		"kafka.group_id":      "",
		"kafka.topic":         "",
		"kafka.write_timeout": "0s",

		"minio.enabled":        false,
		"minio.endpoint":       "",
		"minio.access_key":     "",
		"minio.secret_key":     "",
		"minio.bucket":         "",
		"minio.use_ssl":        false,
		"minio.presign_expiry": "0s",

		"log.level":  "",
		"log.format": "",
		"log.output": "",

		"metrics.enabled":   false,
		"metrics.path":      "",
		"metrics.namespace": "",

		"analysis.run_ttl":          "0s",
		"analysis.max_upload_bytes": 0,
		"analysis.structure_seed":   0,
		"analysis.structure_points": 0,
		"analysis.simulated_delay":  "0s",

		"worker.concurrency":    0,
		"worker.max_retries":    0,
		"worker.retry_backoff":  "0s",
		"worker.archive_prefix": "",
		"worker.lock_ttl":       "0s",
	}
	for k, val := range keys {
		v.SetDefault(k, val)
	}
}

//Personal.AI order the ending

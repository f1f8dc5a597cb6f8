package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultKafkaTopic, cfg.Kafka.Topic)
	assert.Equal(t, DefaultMinIOBucket, cfg.MinIO.Bucket)
	assert.Equal(t, DefaultAnalysisRunTTL, cfg.Analysis.RunTTL)
	assert.Equal(t, int64(DefaultAnalysisStructureSeed), cfg.Analysis.StructureSeed)
	assert.Equal(t, DefaultAnalysisStructurePoints, cfg.Analysis.StructurePoints)
	assert.False(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, DefaultRateLimitRPS, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, DefaultRateLimitBurst, cfg.Server.RateLimit.Burst)
	assert.NoError(t, cfg.Validate())
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Analysis.RunTTL = time.Minute
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Analysis.RunTTL)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

//Personal.AI order the ending

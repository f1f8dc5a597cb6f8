package minio

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DeNovo-Designer/internal/config"
	pkgerrors "github.com/turtacn/DeNovo-Designer/pkg/errors"
)

func TestNewMinIOClientWithAPI_Defaults(t *testing.T) {
	c := NewMinIOClientWithAPI(new(MockMinIOAPI), config.MinIOConfig{}, nil)

	assert.Equal(t, config.DefaultMinIOBucket, c.Bucket())
	assert.Equal(t, config.DefaultMinIOPresignExpiry, c.config.PresignExpiry)
}

func TestEnsureBucket_Exists(t *testing.T) {
	api := new(MockMinIOAPI)
	api.On("BucketExists", mock.Anything, "b").Return(true, nil)

	c := NewMinIOClientWithAPI(api, config.MinIOConfig{Bucket: "b"}, nil)
	require.NoError(t, c.EnsureBucket(context.Background()))
	api.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureBucket_Creates(t *testing.T) {
	api := new(MockMinIOAPI)
	api.On("BucketExists", mock.Anything, "b").Return(false, nil)
	api.On("MakeBucket", mock.Anything, "b", minio.MakeBucketOptions{}).Return(nil)

	c := NewMinIOClientWithAPI(api, config.MinIOConfig{Bucket: "b"}, nil)
	require.NoError(t, c.EnsureBucket(context.Background()))
	api.AssertExpectations(t)
}

func TestEnsureBucket_Errors(t *testing.T) {
	api := new(MockMinIOAPI)
	api.On("BucketExists", mock.Anything, "b").Return(false, nil)
	api.On("MakeBucket", mock.Anything, "b", mock.Anything).Return(stderrors.New("denied"))

	c := NewMinIOClientWithAPI(api, config.MinIOConfig{Bucket: "b"}, nil)
	err := c.EnsureBucket(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeStorageError))
}

func TestSetupLifecycleRules_ExpiresExports(t *testing.T) {
	api := new(MockMinIOAPI)
	api.On("SetBucketLifecycle", mock.Anything, "b", mock.MatchedBy(func(cfg *lifecycle.Configuration) bool {
		return len(cfg.Rules) == 1 &&
			cfg.Rules[0].RuleFilter.Prefix == "exports/" &&
			int(cfg.Rules[0].Expiration.Days) == ExportRetentionDays
	})).Return(stderrors.New("not implemented"))

	c := NewMinIOClientWithAPI(api, config.MinIOConfig{Bucket: "b"}, nil)
	c.SetupLifecycleRules(context.Background())
	api.AssertExpectations(t)
}

func TestHealthCheck(t *testing.T) {
	api := new(MockMinIOAPI)
	api.On("BucketExists", mock.Anything, "b").Return(true, nil).Once()
	api.On("BucketExists", mock.Anything, "b").Return(false, nil).Once()
	api.On("BucketExists", mock.Anything, "b").Return(false, stderrors.New("dial tcp")).Once()
	c := NewMinIOClientWithAPI(api, config.MinIOConfig{Bucket: "b"}, nil)
	ctx := context.Background()

	st, err := c.HealthCheck(ctx)
	require.NoError(t, err)
	assert.True(t, st.Healthy)

	st, err = c.HealthCheck(ctx)
	require.NoError(t, err)
	assert.False(t, st.Healthy)
	assert.Contains(t, st.Error, "missing")

	st, err = c.HealthCheck(ctx)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeServiceUnavailable))
	assert.False(t, st.Healthy)

	require.NoError(t, c.Close())
	_, err = c.HealthCheck(ctx)
	assert.ErrorIs(t, err, ErrMinIOClientClosed)
}

//Personal.AI order the ending

package minio

import (
	"bytes"
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

const (
	uploadsPrefix = "uploads/"
	exportsPrefix = "exports/"
)

var (
	ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "object not found")
	ErrInvalidKey     = errors.New(errors.ErrCodeBadRequest, "object key is required")
)

// UploadKey is where a run's uploaded structure file lives.  kind is
// "target" or "seed"; only the base name of the client file is kept.
func UploadKey(runID, kind, fileName string) string {
	return uploadsPrefix + runID + "/" + kind + "/" + path.Base("/" + fileName)
}

// ExportKey is where a run's generated export lives.
func ExportKey(runID, fileName string) string {
	return exportsPrefix + runID + "/" + fileName
}

// ArchiveKey is where the worker files a run's artifacts.
func ArchiveKey(prefix, runID, fileName string) string {
	return prefix + runID + "/" + fileName
}

type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
}

// ArtifactStore reads and writes objects in the configured bucket.
type ArtifactStore struct {
	client  *MinIOClient
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

func NewArtifactStore(client *MinIOClient, metrics *prometheus.AppMetrics, log logging.Logger) *ArtifactStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ArtifactStore{client: client, logger: log.Named("artifacts"), metrics: metrics}
}

// Put uploads data under key.  An empty contentType is sniffed.
func (s *ArtifactStore) Put(ctx context.Context, key string, data []byte, contentType string) (*ObjectInfo, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	if s.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	if contentType == "" {
		contentType = http.DetectContentType(data[:min(512, len(data))])
	}

	info, err := s.client.api.PutObject(ctx, s.client.config.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	prometheus.RecordArtifact(s.metrics, kindOf(key), err)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "upload failed").WithDetail("key=" + key)
	}
	s.logger.Debug("stored artifact", logging.String("key", key), logging.Int64("size", info.Size))
	return &ObjectInfo{Key: key, Size: info.Size, ETag: info.ETag, ContentType: contentType}, nil
}

func (s *ArtifactStore) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	info, err := s.client.api.StatObject(ctx, s.client.config.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapError(err, key, "stat failed")
	}
	return &ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

func (s *ArtifactStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Stat(ctx, key)
	if errors.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// PresignedGetURL returns a time-limited download link.  Zero expiry uses
// the configured default.
func (s *ArtifactStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.client.isClosed() {
		return "", ErrMinIOClientClosed
	}
	if expiry == 0 {
		expiry = s.client.config.PresignExpiry
	}
	u, err := s.client.api.PresignedGetObject(ctx, s.client.config.Bucket, key, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "presign failed").WithDetail("key=" + key)
	}
	return u.String(), nil
}

func mapError(err error, key, msg string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrObjectNotFound.WithDetail("key=" + key).WithCause(err)
	}
	return errors.Wrap(err, errors.ErrCodeStorageError, msg).WithDetail("key=" + key)
}

func kindOf(key string) string {
	switch {
	case strings.HasPrefix(key, uploadsPrefix):
		return "upload"
	case strings.HasPrefix(key, exportsPrefix):
		return "export"
	default:
		return "archive"
	}
}

//Personal.AI order the ending

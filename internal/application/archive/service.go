// Package archive files the downloads of accepted runs into object storage.
// It is driven by completion events consumed by the worker process.
package archive

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/database/redis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/storage/minio"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// DefaultPrefix is the object key prefix for archived runs.
const DefaultPrefix = "archive/"

// DefaultFormats are archived for every run.
var DefaultFormats = []appAnalysis.ExportFormat{appAnalysis.FormatCSV, appAnalysis.FormatReport}

// Store is the subset of the object store the archiver needs.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*minio.ObjectInfo, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Service archives runs.
type Service interface {
	Archive(ctx context.Context, ev domainAnalysis.CompletedEvent) (*Result, error)
	Handle(ctx context.Context, msg *kafka.Message) error
}

// Result lists what an Archive call stored.  Skipped is set when the run was
// already archived or another worker holds its lock.
type Result struct {
	RunID   string              `json:"run_id"`
	Objects []*minio.ObjectInfo `json:"objects"`
	Skipped bool                `json:"skipped"`
}

// Config tunes the archiver.  The lock lease is renewed every LockTTL/3
// while a run is being archived.  LockRetries bounds how often a busy lock
// is polled before the run is skipped; zero means one attempt.
type Config struct {
	Prefix         string
	Formats        []appAnalysis.ExportFormat
	Concurrency    int
	LockTTL        time.Duration
	LockRetries    int
	LockRetryDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if len(c.Formats) == 0 {
		c.Formats = DefaultFormats
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.LockTTL <= 0 {
		c.LockTTL = 30 * time.Second
	}
	if c.LockRetries < 0 {
		c.LockRetries = 0
	}
	if c.LockRetryDelay <= 0 {
		c.LockRetryDelay = 200 * time.Millisecond
	}
	return c
}

type Option func(*serviceImpl)

// WithLocks takes a per-run lock before archiving.
func WithLocks(f redis.LockFactory) Option {
	return func(s *serviceImpl) { s.locks = f }
}

func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

type serviceImpl struct {
	store   Store
	locks   redis.LockFactory
	metrics *prometheus.AppMetrics
	logger  logging.Logger
	cfg     Config
}

func NewService(store Store, cfg Config, logger logging.Logger, opts ...Option) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &serviceImpl{store: store, logger: logger.Named("archive"), cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle is a kafka.MessageHandler.
func (s *serviceImpl) Handle(ctx context.Context, msg *kafka.Message) error {
	ev, err := kafka.DecodeCompletedEvent(msg)
	if err == nil {
		_, err = s.Archive(ctx, ev)
	}
	if err != nil {
		prometheus.RecordError(s.metrics, "archive", errors.GetCode(err).String())
	}
	return err
}

func (s *serviceImpl) Archive(ctx context.Context, ev domainAnalysis.CompletedEvent) (*Result, error) {
	if ev.RunID == "" {
		return nil, errors.InvalidArgument("run id is required")
	}
	if ev.FixtureVersion != "" && ev.FixtureVersion != candidate.FixtureVersion {
		return nil, errors.New(errors.ErrCodeValidation, "fixture version mismatch").
			WithDetail("run=" + ev.RunID + " version=" + ev.FixtureVersion)
	}
	log := s.logger.With(logging.String("run_id", ev.RunID))

	if s.locks != nil {
		mu := s.locks.NewMutex("archive:"+ev.RunID,
			redis.WithLockTTL(s.cfg.LockTTL),
			redis.WithWatchdog(s.cfg.LockTTL/3),
			redis.WithRetryCount(s.cfg.LockRetries),
			redis.WithRetryDelay(s.cfg.LockRetryDelay),
		)
		if err := mu.Lock(ctx); err != nil {
			if stderrors.Is(err, redis.ErrLockNotAcquired) {
				log.Info("run is being archived elsewhere")
				return &Result{RunID: ev.RunID, Skipped: true}, nil
			}
			return nil, err
		}
		defer func() {
			if err := mu.Unlock(context.WithoutCancel(ctx)); err != nil {
				log.Warn("failed to release archive lock", logging.Err(err))
			}
		}()
	}

	// The last format is written last, so its presence marks a finished run.
	done, err := s.store.Exists(ctx, s.key(ev.RunID, s.cfg.Formats[len(s.cfg.Formats)-1]))
	if err != nil {
		return nil, err
	}
	if done {
		log.Info("run already archived")
		return &Result{RunID: ev.RunID, Skipped: true}, nil
	}

	set, err := candidate.Build(ev.DeliveredCount)
	if err != nil {
		return nil, err
	}

	head, last := s.cfg.Formats[:len(s.cfg.Formats)-1], s.cfg.Formats[len(s.cfg.Formats)-1]
	var (
		mu      sync.Mutex
		objects = make([]*minio.ObjectInfo, 0, len(s.cfg.Formats))
	)
	put := func(ctx context.Context, f appAnalysis.ExportFormat) error {
		obj, err := s.put(ctx, ev, set, f)
		if err != nil {
			return err
		}
		mu.Lock()
		objects = append(objects, obj)
		mu.Unlock()
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, f := range head {
		g.Go(func() error { return put(gCtx, f) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := put(ctx, last); err != nil {
		return nil, err
	}

	log.Info("run archived", logging.Int("objects", len(objects)))
	return &Result{RunID: ev.RunID, Objects: objects}, nil
}

func (s *serviceImpl) put(ctx context.Context, ev domainAnalysis.CompletedEvent, set candidate.CandidateSet, f appAnalysis.ExportFormat) (*minio.ObjectInfo, error) {
	art, err := appAnalysis.Render(f, ev.ProjectName, set)
	if err != nil {
		return nil, err
	}
	return s.store.Put(ctx, s.key(ev.RunID, f), art.Data, art.ContentType)
}

func (s *serviceImpl) key(runID string, f appAnalysis.ExportFormat) string {
	return minio.ArchiveKey(s.cfg.Prefix, runID, f.FileName())
}

//Personal.AI order the ending

// Package analysis provides the application service behind the dashboard:
// run submission, the per-run views and the downloads.  Results never depend
// on the uploaded files; they are projections of the candidate fixture.
package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/storage/minio"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// Service defines the analysis application operations.
type Service interface {
	Submit(ctx context.Context, input *SubmitInput) (*RunResult, error)
	Get(ctx context.Context, runID string) (*RunResult, error)
	Docking(ctx context.Context, runID, ligandID string) (*DockingView, error)
	Druggability(ctx context.Context, runID, ligandID string) (*DruggabilityView, error)
	Structure(ctx context.Context, input *StructureInput) (*StructureView, error)
	Export(ctx context.Context, runID string, format ExportFormat) (*Artifact, error)
	Demo(ctx context.Context) (*Overview, error)
}

// ArtifactStore is the subset of the object store the service writes to.
// A zero expiry asks for the store's default link lifetime.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*minio.ObjectInfo, error)
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// EventPublisher announces accepted runs.
type EventPublisher interface {
	PublishCompleted(ctx context.Context, ev domainAnalysis.CompletedEvent) error
}

// FileUpload is a file received with a submission.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmitInput contains the submission form.
type SubmitInput struct {
	ProjectName string
	Options     domainAnalysis.Options
	Target      *FileUpload
	Seed        *FileUpload
}

// StructureInput selects the placeholder cloud.  A nil Seed uses the
// configured default.
type StructureInput struct {
	RunID    string
	LigandID string
	Seed     *int64
}

// RunResult is a stored run with its overview.
type RunResult struct {
	Run      *domainAnalysis.Run `json:"run"`
	Overview *Overview           `json:"overview"`
}

// Config holds the service limits and defaults.
type Config struct {
	MaxUploadBytes  int64
	StructureSeed   int64
	StructurePoints int
}

func (c Config) withDefaults() Config {
	if c.StructurePoints <= 0 {
		c.StructurePoints = DefaultStructurePoints
	}
	return c
}

// Option configures optional collaborators.
type Option func(*serviceImpl)

// WithArtifactStore stores uploads and exports under the run's prefix.
func WithArtifactStore(s ArtifactStore) Option {
	return func(impl *serviceImpl) { impl.store = s }
}

// WithEventPublisher publishes a completed event for every accepted run.
func WithEventPublisher(p EventPublisher) Option {
	return func(impl *serviceImpl) { impl.publisher = p }
}

func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(impl *serviceImpl) { impl.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(impl *serviceImpl) { impl.now = now }
}

// WithIDGenerator overrides uuid.NewString.
func WithIDGenerator(gen func() string) Option {
	return func(impl *serviceImpl) { impl.newID = gen }
}

type serviceImpl struct {
	repo      domainAnalysis.Repository
	store     ArtifactStore
	publisher EventPublisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
	cfg       Config
	now       func() time.Time
	newID     func() string
}

// NewService creates the analysis application service.
func NewService(repo domainAnalysis.Repository, cfg Config, logger logging.Logger, opts ...Option) Service {
	s := &serviceImpl{
		repo:   repo,
		logger: logger,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) Submit(ctx context.Context, input *SubmitInput) (*RunResult, error) {
	start := s.now()
	res, err := s.submit(ctx, input)
	if err != nil {
		prometheus.RecordAnalysis(s.metrics, 0, 0, false, "", err)
		return nil, err
	}
	run := res.Run
	prometheus.RecordAnalysis(s.metrics, s.now().Sub(start), run.Resolution.Delivered,
		run.Resolution.Truncated, string(run.Options.CountRange), nil)
	return res, nil
}

func (s *serviceImpl) submit(ctx context.Context, input *SubmitInput) (*RunResult, error) {
	if input == nil || input.Target == nil || strings.TrimSpace(input.Target.Name) == "" {
		return nil, errors.New(errors.ErrCodeTargetMissing, "target structure file is required")
	}
	if err := s.checkSize("target", input.Target); err != nil {
		return nil, err
	}
	if input.Seed != nil {
		if err := s.checkSize("seed", input.Seed); err != nil {
			return nil, err
		}
	}

	id := s.newID()
	target := s.upload(ctx, id, "target", input.Target)
	var seed *domainAnalysis.UploadedFile
	if input.Seed != nil && input.Seed.Name != "" {
		f := s.upload(ctx, id, "seed", input.Seed)
		seed = &f
	}

	run, err := domainAnalysis.NewRun(id, input.ProjectName, input.Options, target, seed, s.now())
	if err != nil {
		return nil, err
	}
	set, err := run.Candidates()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, run); err != nil {
		s.logger.Error("failed to save analysis run", logging.String("run_id", id), logging.Err(err))
		return nil, err
	}

	if s.publisher != nil {
		ev := domainAnalysis.CompletedEventFor(run, s.now())
		if err := s.publisher.PublishCompleted(ctx, ev); err != nil {
			s.logger.Warn("failed to publish analysis completed event",
				logging.String("run_id", id), logging.Err(err))
		}
	}

	s.logger.Info("analysis run accepted",
		logging.String("run_id", id),
		logging.String("count_range", string(run.Options.CountRange)),
		logging.Int("delivered", run.Resolution.Delivered),
		logging.Bool("truncated", run.Resolution.Truncated))

	return &RunResult{Run: run, Overview: BuildOverview(set)}, nil
}

func (s *serviceImpl) checkSize(field string, f *FileUpload) error {
	if s.cfg.MaxUploadBytes > 0 && int64(len(f.Data)) > s.cfg.MaxUploadBytes {
		return errors.New(errors.ErrCodeValidation, "uploaded file too large").
			WithDetail(field + "=" + f.Name)
	}
	return nil
}

// upload stores f when a store is configured.  Upload failures are logged
// and do not fail the run.
func (s *serviceImpl) upload(ctx context.Context, runID, kind string, f *FileUpload) domainAnalysis.UploadedFile {
	out := domainAnalysis.UploadedFile{
		Name:        f.Name,
		Size:        int64(len(f.Data)),
		ContentType: f.ContentType,
	}
	if s.store == nil {
		return out
	}
	key := minio.UploadKey(runID, kind, f.Name)
	info, err := s.store.Put(ctx, key, f.Data, f.ContentType)
	if err != nil {
		s.logger.Warn("failed to store upload",
			logging.String("run_id", runID), logging.String("kind", kind), logging.Err(err))
		return out
	}
	out.ObjectKey = info.Key
	if out.ContentType == "" {
		out.ContentType = info.ContentType
	}
	return out
}

func (s *serviceImpl) load(ctx context.Context, runID string) (*domainAnalysis.Run, candidate.CandidateSet, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, candidate.CandidateSet{}, errors.InvalidArgument("run id is required")
	}
	run, err := s.repo.FindByID(ctx, runID)
	if err != nil {
		return nil, candidate.CandidateSet{}, err
	}
	set, err := run.Candidates()
	if err != nil {
		return nil, candidate.CandidateSet{}, err
	}
	return run, set, nil
}

func (s *serviceImpl) Get(ctx context.Context, runID string) (*RunResult, error) {
	run, set, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &RunResult{Run: run, Overview: BuildOverview(set)}, nil
}

func (s *serviceImpl) Docking(ctx context.Context, runID, ligandID string) (*DockingView, error) {
	_, set, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	v, err := BuildDockingView(runID, set, ligandID)
	prometheus.RecordLookup(s.metrics, err == nil)
	return v, err
}

func (s *serviceImpl) Druggability(ctx context.Context, runID, ligandID string) (*DruggabilityView, error) {
	_, set, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	v, err := BuildDruggabilityView(runID, set, ligandID)
	prometheus.RecordLookup(s.metrics, err == nil)
	if err == nil {
		prometheus.RecordClassification(s.metrics, string(v.Tier))
	}
	return v, err
}

func (s *serviceImpl) Structure(ctx context.Context, input *StructureInput) (*StructureView, error) {
	if input == nil {
		return nil, errors.InvalidArgument("structure input is required")
	}
	_, set, err := s.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}
	seed := s.cfg.StructureSeed
	if input.Seed != nil {
		seed = *input.Seed
	}
	return BuildStructureView(input.RunID, set, input.LigandID, seed, s.cfg.StructurePoints)
}

func (s *serviceImpl) Export(ctx context.Context, runID string, format ExportFormat) (*Artifact, error) {
	run, set, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	art, err := Render(format, run.ProjectName, set)
	if err != nil {
		prometheus.RecordExport(s.metrics, string(format), 0, err)
		return nil, err
	}
	prometheus.RecordExport(s.metrics, string(format), len(art.Data), nil)

	if s.store != nil {
		key := minio.ExportKey(runID, art.FileName)
		if info, err := s.store.Put(ctx, key, art.Data, art.ContentType); err != nil {
			s.logger.Warn("failed to store export",
				logging.String("run_id", runID), logging.String("format", string(format)), logging.Err(err))
		} else {
			art.ObjectKey = info.Key
			if u, err := s.store.PresignedGetURL(ctx, info.Key, 0); err != nil {
				s.logger.Warn("failed to sign export link",
					logging.String("run_id", runID), logging.String("key", info.Key), logging.Err(err))
			} else {
				art.DownloadURL = u
			}
		}
	}
	return art, nil
}

// Demo is the overview shown before any submission.
func (s *serviceImpl) Demo(_ context.Context) (*Overview, error) {
	set, err := candidate.Build(candidate.FixtureSize)
	if err != nil {
		return nil, err
	}
	return BuildOverview(set), nil
}

//Personal.AI order the ending

package analysis

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/storage/minio"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// MockRunRepository is a mock implementation of domainAnalysis.Repository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Save(ctx context.Context, run *domainAnalysis.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) FindByID(ctx context.Context, id string) (*domainAnalysis.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainAnalysis.Run), args.Error(1)
}

type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Put(ctx context.Context, key string, data []byte, contentType string) (*minio.ObjectInfo, error) {
	args := m.Called(ctx, key, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*minio.ObjectInfo), args.Error(1)
}

func (m *MockArtifactStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCompleted(ctx context.Context, ev domainAnalysis.CompletedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MockRunRepository, opts ...Option) Service {
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "run-1" }),
	}, opts...)
	return NewService(repo, Config{MaxUploadBytes: 1024, StructureSeed: 42}, logging.NewNopLogger(), opts...)
}

func storedRun(t *testing.T, cr domainAnalysis.CountRange) *domainAnalysis.Run {
	t.Helper()
	opts := domainAnalysis.DefaultOptions()
	opts.CountRange = cr
	run, err := domainAnalysis.NewRun("run-1", "Kinase-A", opts,
		domainAnalysis.UploadedFile{Name: "target.pdb", Size: 10}, nil, fixedNow)
	require.NoError(t, err)
	return run
}

func targetFile() *FileUpload {
	return &FileUpload{Name: "target.pdb", ContentType: "chemical/x-pdb", Data: []byte("ATOM")}
}

func TestSubmit_MissingTarget(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)

	for _, in := range []*SubmitInput{nil, {}, {Target: &FileUpload{Name: "  "}}} {
		_, err := svc.Submit(context.Background(), in)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeTargetMissing))
	}
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubmit_UploadTooLarge(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)

	_, err := svc.Submit(context.Background(), &SubmitInput{
		Target: &FileUpload{Name: "big.pdb", Data: make([]byte, 2048)},
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestSubmit_InvalidOption(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)

	opts := domainAnalysis.DefaultOptions()
	opts.Route = domainAnalysis.Route("teleport")
	_, err := svc.Submit(context.Background(), &SubmitInput{Options: opts, Target: targetFile()})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidAnalysisOption))
}

func TestSubmit_Success(t *testing.T) {
	repo := new(MockRunRepository)
	pub := new(MockEventPublisher)
	store := new(MockArtifactStore)
	svc := newTestService(repo, WithEventPublisher(pub), WithArtifactStore(store))

	store.On("Put", mock.Anything, "uploads/run-1/target/target.pdb", []byte("ATOM"), "chemical/x-pdb").
		Return(&minio.ObjectInfo{Key: "uploads/run-1/target/target.pdb", ContentType: "chemical/x-pdb"}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(r *domainAnalysis.Run) bool {
		return r.ID == "run-1" && r.Target.ObjectKey == "uploads/run-1/target/target.pdb"
	})).Return(nil)
	pub.On("PublishCompleted", mock.Anything, mock.MatchedBy(func(ev domainAnalysis.CompletedEvent) bool {
		return ev.RunID == "run-1" && ev.DeliveredCount == 10 && ev.Truncated
	})).Return(nil)

	opts := domainAnalysis.DefaultOptions()
	opts.CountRange = domainAnalysis.CountRange10To50
	res, err := svc.Submit(context.Background(), &SubmitInput{
		ProjectName: "Kinase-A",
		Options:     opts,
		Target:      targetFile(),
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", res.Run.ID)
	assert.Equal(t, 50, res.Run.Resolution.Requested)
	assert.Equal(t, 10, res.Run.Resolution.Delivered)
	assert.True(t, res.Run.Resolution.Truncated)
	assert.Equal(t, 10, res.Overview.GeneratedCount)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestSubmit_WithSeedStructure(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Submit(context.Background(), &SubmitInput{
		Target: targetFile(),
		Seed:   &FileUpload{Name: "seed.sdf", Data: []byte("M  END")},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Run.Seed)
	assert.Equal(t, "seed.sdf", res.Run.Seed.Name)
	assert.Equal(t, int64(6), res.Run.Seed.Size)
	assert.Equal(t, domainAnalysis.DefaultProjectName, res.Run.ProjectName)
	assert.Equal(t, 5, res.Overview.GeneratedCount)
}

func TestSubmit_PublishAndUploadFailuresAreNotFatal(t *testing.T) {
	repo := new(MockRunRepository)
	pub := new(MockEventPublisher)
	store := new(MockArtifactStore)
	svc := newTestService(repo, WithEventPublisher(pub), WithArtifactStore(store))

	store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, stderrors.New("bucket offline"))
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	pub.On("PublishCompleted", mock.Anything, mock.Anything).Return(stderrors.New("broker down"))

	res, err := svc.Submit(context.Background(), &SubmitInput{Target: targetFile()})
	require.NoError(t, err)
	assert.Empty(t, res.Run.Target.ObjectKey)
}

func TestSubmit_SaveFailure(t *testing.T) {
	repo := new(MockRunRepository)
	pub := new(MockEventPublisher)
	svc := newTestService(repo, WithEventPublisher(pub))

	repo.On("Save", mock.Anything, mock.Anything).
		Return(errors.New(errors.ErrCodeCacheError, "cache error"))

	_, err := svc.Submit(context.Background(), &SubmitInput{Target: targetFile()})
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheError))
	pub.AssertNotCalled(t, "PublishCompleted", mock.Anything, mock.Anything)
}

func TestGet(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)
	repo.On("FindByID", mock.Anything, "run-1").Return(storedRun(t, domainAnalysis.CountRange5To10), nil)

	res, err := svc.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Kinase-A", res.Run.ProjectName)
	assert.Equal(t, 10, res.Overview.GeneratedCount)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, domainAnalysis.RunNotFound("missing"))

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, errors.IsCode(err, errors.ErrCodeAnalysisRunNotFound))

	_, err = svc.Get(context.Background(), "")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDockingAndDruggability(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)
	repo.On("FindByID", mock.Anything, "run-1").Return(storedRun(t, domainAnalysis.CountRange1To5), nil)

	d, err := svc.Docking(context.Background(), "run-1", "Ligand-003")
	require.NoError(t, err)
	assert.Equal(t, -8.5, d.Ligand.BindingAffinity)

	_, err = svc.Docking(context.Background(), "run-1", "Ligand-006")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCandidateNotFound))

	g, err := svc.Druggability(context.Background(), "run-1", "Ligand-005")
	require.NoError(t, err)
	assert.Equal(t, 0.68, g.Score)
	assert.Len(t, g.Comparison, 5)
}

func TestStructure_SeedDefaultAndOverride(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)
	repo.On("FindByID", mock.Anything, "run-1").Return(storedRun(t, domainAnalysis.CountRange1To5), nil)

	v, err := svc.Structure(context.Background(), &StructureInput{RunID: "run-1", LigandID: "Ligand-001"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Seed)
	assert.Len(t, v.Points, DefaultStructurePoints)

	seed := int64(7)
	v2, err := svc.Structure(context.Background(), &StructureInput{RunID: "run-1", LigandID: "Ligand-001", Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, int64(7), v2.Seed)
	assert.NotEqual(t, v.Points, v2.Points)

	_, err = svc.Structure(context.Background(), nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestExport_StoresArtifact(t *testing.T) {
	repo := new(MockRunRepository)
	store := new(MockArtifactStore)
	svc := newTestService(repo, WithArtifactStore(store))
	repo.On("FindByID", mock.Anything, "run-1").Return(storedRun(t, domainAnalysis.CountRange1To5), nil)
	store.On("Put", mock.Anything, "exports/run-1/results.csv", mock.Anything, ContentTypeCSV).
		Return(&minio.ObjectInfo{Key: "exports/run-1/results.csv"}, nil)
	store.On("PresignedGetURL", mock.Anything, "exports/run-1/results.csv", time.Duration(0)).
		Return("http://minio/exports/run-1/results.csv?sig=1", nil)

	art, err := svc.Export(context.Background(), "run-1", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "exports/run-1/results.csv", art.ObjectKey)
	assert.Equal(t, "http://minio/exports/run-1/results.csv?sig=1", art.DownloadURL)
	assert.NotEmpty(t, art.Data)
	store.AssertExpectations(t)
}

func TestExport_SigningFailureKeepsArtifact(t *testing.T) {
	repo := new(MockRunRepository)
	store := new(MockArtifactStore)
	svc := newTestService(repo, WithArtifactStore(store))
	repo.On("FindByID", mock.Anything, "run-1").Return(storedRun(t, domainAnalysis.CountRange1To5), nil)
	store.On("Put", mock.Anything, "exports/run-1/report.txt", mock.Anything, ContentTypeText).
		Return(&minio.ObjectInfo{Key: "exports/run-1/report.txt"}, nil)
	store.On("PresignedGetURL", mock.Anything, "exports/run-1/report.txt", time.Duration(0)).
		Return("", errors.New(errors.ErrCodeStorageError, "presign failed"))

	art, err := svc.Export(context.Background(), "run-1", FormatReport)
	require.NoError(t, err)
	assert.Equal(t, "exports/run-1/report.txt", art.ObjectKey)
	assert.Empty(t, art.DownloadURL)
}

func TestExport_WithoutStore(t *testing.T) {
	repo := new(MockRunRepository)
	svc := newTestService(repo)
	repo.On("FindByID", mock.Anything, "run-1").Return(storedRun(t, domainAnalysis.CountRange1To5), nil)

	art, err := svc.Export(context.Background(), "run-1", FormatReport)
	require.NoError(t, err)
	assert.Empty(t, art.ObjectKey)
	assert.Contains(t, string(art.Data), "Project: Kinase-A")
}

func TestDemo(t *testing.T) {
	svc := newTestService(new(MockRunRepository))
	ov, err := svc.Demo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, ov.GeneratedCount)
	assert.Equal(t, 0.82, ov.BestDruggability)
}

//Personal.AI order the ending

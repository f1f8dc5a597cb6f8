package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// DefaultProjectName is used when the submission leaves the name blank.
const DefaultProjectName = "Project_001"

// UploadedFile describes a stored upload.  Content is never interpreted.
type UploadedFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	ObjectKey   string `json:"object_key,omitempty"`
}

// Run is one accepted analysis submission.  Candidates are not stored: they
// are rebuilt from DeliveredCount and the fixture version on demand.
type Run struct {
	ID             string        `json:"id"`
	ProjectName    string        `json:"project_name"`
	Options        Options       `json:"options"`
	Target         UploadedFile  `json:"target"`
	Seed           *UploadedFile `json:"seed,omitempty"`
	Resolution     Resolution    `json:"resolution"`
	FixtureVersion string        `json:"fixture_version"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewRun validates the inputs and resolves the requested candidate count.
func NewRun(id, projectName string, opts Options, target UploadedFile, seed *UploadedFile, now time.Time) (*Run, error) {
	if strings.TrimSpace(target.Name) == "" {
		return nil, errors.New(errors.ErrCodeTargetMissing, "target structure file is required")
	}
	if id == "" {
		return nil, errors.InvalidArgument("run id is required")
	}
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	res, err := opts.CountRange.Resolve()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(projectName) == "" {
		projectName = DefaultProjectName
	}
	return &Run{
		ID:             id,
		ProjectName:    projectName,
		Options:        opts,
		Target:         target,
		Seed:           seed,
		Resolution:     res,
		FixtureVersion: candidate.FixtureVersion,
		CreatedAt:      now.UTC(),
	}, nil
}

// Candidates rebuilds the run's candidate set.
func (r *Run) Candidates() (candidate.CandidateSet, error) {
	return candidate.Build(r.Resolution.Delivered)
}

// Repository persists runs.  FindByID returns ErrCodeAnalysisRunNotFound for
// unknown or expired IDs.
type Repository interface {
	Save(ctx context.Context, run *Run) error
	FindByID(ctx context.Context, id string) (*Run, error)
}

// RunNotFound builds the error every Repository returns for a missing run.
func RunNotFound(id string) error {
	return errors.New(errors.ErrCodeAnalysisRunNotFound, "analysis run not found").WithDetail("id=" + id)
}

//Personal.AI order the ending

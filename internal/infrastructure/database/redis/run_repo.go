package redis

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// RunRepository stores analysis runs in the cache under "run:{id}".
type RunRepository struct {
	cache Cache
	ttl   time.Duration
}

var _ analysis.Repository = (*RunRepository)(nil)

func NewRunRepository(cache Cache, ttl time.Duration) *RunRepository {
	return &RunRepository{cache: cache, ttl: ttl}
}

func runKey(id string) string {
	return "run:" + id
}

func (r *RunRepository) Save(ctx context.Context, run *analysis.Run) error {
	if run == nil || run.ID == "" {
		return errors.InvalidArgument("run with id is required")
	}
	if err := r.cache.Set(ctx, runKey(run.ID), run, r.ttl); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to save analysis run").WithDetail("run_id=" + run.ID)
	}
	return nil
}

func (r *RunRepository) FindByID(ctx context.Context, id string) (*analysis.Run, error) {
	var run analysis.Run
	err := r.cache.Get(ctx, runKey(id), &run)
	if stderrors.Is(err, ErrCacheMiss) {
		return nil, analysis.RunNotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to load analysis run").WithDetail("run_id=" + id)
	}
	return &run, nil
}

//Personal.AI order the ending

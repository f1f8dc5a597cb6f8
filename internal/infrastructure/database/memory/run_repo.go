// Package memory holds process-local repositories used when Redis is
// disabled.  Entries expire after the configured TTL like their Redis
// counterparts.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

type entry struct {
	run       analysis.Run
	expiresAt time.Time
}

// RunRepository implements analysis.Repository over a map.
type RunRepository struct {
	mu   sync.RWMutex
	runs map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

// NewRunRepository returns an empty repository.  ttl <= 0 disables expiry.
func NewRunRepository(ttl time.Duration) *RunRepository {
	return &RunRepository{runs: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (r *RunRepository) Save(_ context.Context, run *analysis.Run) error {
	if run == nil || run.ID == "" {
		return errors.InvalidArgument("run id is required")
	}
	e := entry{run: *run}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	r.runs[run.ID] = e
	r.mu.Unlock()
	return nil
}

func (r *RunRepository) FindByID(_ context.Context, id string) (*analysis.Run, error) {
	r.mu.RLock()
	e, ok := r.runs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, analysis.RunNotFound(id)
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		r.mu.Lock()
		if cur, ok := r.runs[id]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(r.runs, id)
		}
		r.mu.Unlock()
		return nil, analysis.RunNotFound(id)
	}
	run := e.run
	return &run, nil
}

// Len reports the number of stored entries, expired ones included.
func (r *RunRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}

//Personal.AI order the ending

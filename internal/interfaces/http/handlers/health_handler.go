package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
)

// HealthChecker reports whether one backing service is reachable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

type namedCheck struct {
	name string
	fn   func(ctx context.Context) error
}

func (c namedCheck) Name() string                    { return c.name }
func (c namedCheck) Check(ctx context.Context) error { return c.fn(ctx) }

// NewChecker wraps a ping function such as redis.Client.Ping.
func NewChecker(name string, fn func(ctx context.Context) error) HealthChecker {
	return namedCheck{name: name, fn: fn}
}

const (
	statusUp   = "up"
	statusDown = "down"
)

// HealthHandler serves /healthz and /readyz.
type HealthHandler struct {
	version  string
	started  time.Time
	timeout  time.Duration
	checkers []HealthChecker
}

func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		version:  version,
		started:  time.Now(),
		timeout:  5 * time.Second,
		checkers: checkers,
	}
}

// LivenessResponse also identifies the dataset the process serves, so two
// replicas on different fixture versions are easy to spot.
type LivenessResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	FixtureVersion string `json:"fixture_version"`
	FixtureSize    int    `json:"fixture_size"`
	Uptime         string `json:"uptime"`
}

type ReadinessResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
}

type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness never touches dependencies.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:         "alive",
		Version:        h.version,
		FixtureVersion: candidate.FixtureVersion,
		FixtureSize:    candidate.FixtureSize,
		Uptime:         time.Since(h.started).Truncate(time.Second).String(),
	})
}

// Readiness answers 503 when any checker fails.  Without checkers (memory
// store, no broker, no object store) the process is always ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ready"}
	code := http.StatusOK
	if len(h.checkers) > 0 {
		resp.Components = h.probe(ctx)
		for _, c := range resp.Components {
			if c.Status == statusDown {
				resp.Status = "not_ready"
				code = http.StatusServiceUnavailable
				break
			}
		}
	}
	writeJSON(w, code, resp)
}

func (h *HealthHandler) probe(ctx context.Context) map[string]ComponentStatus {
	var (
		mu  sync.Mutex
		out = make(map[string]ComponentStatus, len(h.checkers))
		g   errgroup.Group
	)
	for _, c := range h.checkers {
		c := c
		g.Go(func() error {
			start := time.Now()
			st := ComponentStatus{Status: statusUp}
			if err := c.Check(ctx); err != nil {
				st = ComponentStatus{Status: statusDown, Error: err.Error()}
			}
			st.Latency = time.Since(start).Truncate(time.Microsecond).String()

			mu.Lock()
			out[c.Name()] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

//Personal.AI order the ending

// Package candidate exposes the result dataset and its projections to the
// HTTP and CLI surfaces.
package candidate

import (
	"context"
	"math"

	domainCand "github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// Service defines the candidate application operations.
type Service interface {
	List(ctx context.Context, count int) (*ListResult, error)
	Get(ctx context.Context, id string) (*Candidate, error)
	Top(ctx context.Context, n int) (*ListResult, error)
	Classify(ctx context.Context, score float64) (*Classification, error)
}

// Candidate is a fixture row with its derived tier and colour.
type Candidate struct {
	domainCand.Candidate
	Tier  domainCand.Tier  `json:"tier"`
	Color domainCand.Color `json:"color"`
}

// ListResult wraps an ordered slice of candidates.
type ListResult struct {
	Items          []Candidate `json:"items"`
	Total          int         `json:"total"`
	FixtureVersion string      `json:"fixture_version"`
}

// Classification is the result of classifying a bare score.
type Classification struct {
	Score float64          `json:"score"`
	Tier  domainCand.Tier  `json:"tier"`
	Color domainCand.Color `json:"color"`
}

type serviceImpl struct {
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewService creates the candidate application service.  metrics may be nil.
func NewService(metrics *prometheus.AppMetrics, logger logging.Logger) Service {
	return &serviceImpl{metrics: metrics, logger: logger}
}

func (s *serviceImpl) List(_ context.Context, count int) (*ListResult, error) {
	set, err := domainCand.Build(count)
	if err != nil {
		return nil, err
	}
	return toListResult(set.Candidates()), nil
}

func (s *serviceImpl) Get(_ context.Context, id string) (*Candidate, error) {
	set, err := domainCand.Build(domainCand.FixtureSize)
	if err != nil {
		return nil, err
	}
	c, err := domainCand.FindByID(set, id)
	prometheus.RecordLookup(s.metrics, err == nil)
	if err != nil {
		s.logger.Debug("candidate lookup missed", logging.String("id", id))
		return nil, err
	}
	out := toDTO(c)
	return &out, nil
}

func (s *serviceImpl) Top(_ context.Context, n int) (*ListResult, error) {
	set, err := domainCand.Build(domainCand.FixtureSize)
	if err != nil {
		return nil, err
	}
	top, err := domainCand.TopN(set, n)
	if err != nil {
		return nil, err
	}
	return toListResult(top), nil
}

func (s *serviceImpl) Classify(_ context.Context, score float64) (*Classification, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, errors.InvalidArgument("score must be a finite number")
	}
	tier := domainCand.Classify(score)
	color, err := domainCand.TierColor(tier)
	if err != nil {
		return nil, err
	}
	prometheus.RecordClassification(s.metrics, string(tier))
	return &Classification{Score: score, Tier: tier, Color: color}, nil
}

func toDTO(c domainCand.Candidate) Candidate {
	tier := c.Tier()
	color, _ := domainCand.TierColor(tier)
	return Candidate{Candidate: c, Tier: tier, Color: color}
}

func toListResult(cs []domainCand.Candidate) *ListResult {
	items := make([]Candidate, len(cs))
	for i, c := range cs {
		items[i] = toDTO(c)
	}
	return &ListResult{Items: items, Total: len(items), FixtureVersion: domainCand.FixtureVersion}
}

//Personal.AI order the ending

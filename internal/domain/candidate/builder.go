package candidate

import (
	"fmt"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// Build returns the first count rows of the canonical fixture as a new
// CandidateSet.
//
// count must be in [1, FixtureSize].  Counts above the fixture size are
// rejected; rows are never repeated or synthesized.
func Build(count int) (CandidateSet, error) {
	if count <= 0 {
		return CandidateSet{}, errors.New(errors.ErrCodeInvalidCount, "candidate count must be positive").
			WithDetail(fmt.Sprintf("count=%d", count))
	}
	if count > FixtureSize {
		return CandidateSet{}, errors.New(errors.ErrCodeCountExceedsFixture, "candidate count exceeds fixture size").
			WithDetail(fmt.Sprintf("count=%d max=%d", count, FixtureSize))
	}
	items := make([]Candidate, count)
	copy(items, fixture[:count])
	return CandidateSet{items: items}, nil
}

// MustBuild is Build for callers holding a count already known to be valid.
// It panics on error.
func MustBuild(count int) CandidateSet {
	set, err := Build(count)
	if err != nil {
		panic(err)
	}
	return set
}

//Personal.AI order the ending

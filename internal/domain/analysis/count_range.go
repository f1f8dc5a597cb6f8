package analysis

import (
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// CountRange is the "molecules to generate" selector.
type CountRange string

const (
	CountRange1To5    CountRange = "1-5"
	CountRange5To10   CountRange = "5-10"
	CountRange10To50  CountRange = "10-50"
	CountRange50To100 CountRange = "50-100"
)

var countRanges = []CountRange{CountRange1To5, CountRange5To10, CountRange10To50, CountRange50To100}

var countRangeUpper = map[CountRange]int{
	CountRange1To5:    5,
	CountRange5To10:   10,
	CountRange10To50:  50,
	CountRange50To100: 100,
}

// ParseCountRange accepts exactly the four selector values.
func ParseCountRange(s string) (CountRange, error) {
	r := CountRange(s)
	if _, ok := countRangeUpper[r]; !ok {
		return "", invalidOption("count_range", s)
	}
	return r, nil
}

// UpperBound is the number of candidates the range asks for.
func (r CountRange) UpperBound() int {
	return countRangeUpper[r]
}

// Resolution records how a count range maps onto the fixture.
type Resolution struct {
	Requested int  `json:"requested_count"`
	Delivered int  `json:"delivered_count"`
	Truncated bool `json:"truncated"`
}

// Resolve maps r to a candidate count.  Requests above the fixture size are
// clamped and reported as truncated; the builder is never asked for more
// rows than it holds.
func (r CountRange) Resolve() (Resolution, error) {
	upper, ok := countRangeUpper[r]
	if !ok {
		return Resolution{}, errors.New(errors.ErrCodeInvalidAnalysisOption, "invalid analysis option").
			WithDetail("count_range=" + string(r))
	}
	res := Resolution{Requested: upper, Delivered: upper}
	if upper > candidate.FixtureSize {
		res.Delivered = candidate.FixtureSize
		res.Truncated = true
	}
	return res, nil
}

//Personal.AI order the ending

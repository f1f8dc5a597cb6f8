package candidate

import (
	"fmt"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// Tier is the druggability classification of a score.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Classification thresholds, inclusive at the lower bound.
const (
	HighThreshold   = 0.6
	MediumThreshold = 0.3
)

// Color is the presentation colour associated with a Tier.
type Color string

const (
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

var tierColors = map[Tier]Color{
	TierHigh:   ColorGreen,
	TierMedium: ColorOrange,
	TierLow:    ColorRed,
}

// Tiers lists every defined tier, best first.
func Tiers() []Tier {
	return []Tier{TierHigh, TierMedium, TierLow}
}

// ParseTier converts s to a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := tierColors[t]; !ok {
		return "", errors.New(errors.ErrCodeInvalidTier, "unknown classification tier").
			WithDetail(fmt.Sprintf("tier=%q", s))
	}
	return t, nil
}

// FindByID returns the candidate whose ID equals id.  The lookup compares
// values and never derives a position from the ID's numeric suffix.
func FindByID(set CandidateSet, id string) (Candidate, error) {
	for _, c := range set.items {
		if c.ID == id {
			return c, nil
		}
	}
	return Candidate{}, errors.New(errors.ErrCodeCandidateNotFound, "candidate not found").
		WithDetail("id=" + id)
}

// Classify maps a druggability score to its tier.  It is total over all
// float64 values; NaN falls through to TierLow.
func Classify(score float64) Tier {
	switch {
	case score >= HighThreshold:
		return TierHigh
	case score >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// TopN returns the first n candidates of set in their existing order.  n
// larger than the set yields the whole set; n == 0 yields an empty slice.
func TopN(set CandidateSet, n int) ([]Candidate, error) {
	if n < 0 {
		return nil, errors.New(errors.CodeInvalidArgument, "top-n count must not be negative").
			WithDetail(fmt.Sprintf("n=%d", n))
	}
	if n > len(set.items) {
		n = len(set.items)
	}
	out := make([]Candidate, n)
	copy(out, set.items[:n])
	return out, nil
}

// TierColor returns the presentation colour for tier.
func TierColor(tier Tier) (Color, error) {
	c, ok := tierColors[tier]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidTier, "unknown classification tier").
			WithDetail(fmt.Sprintf("tier=%q", tier))
	}
	return c, nil
}

//Personal.AI order the ending

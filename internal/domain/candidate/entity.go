// Package candidate provides the core domain model for generated molecule
// candidates: the Candidate value object, the ordered immutable CandidateSet,
// the canonical fixture Builder, and the pure projections (lookup,
// classification, top-N slicing, tier colour) consumed by every view.
//
// Nothing in this package performs I/O, logging, or randomness; every
// operation is a deterministic function of its inputs and safe for concurrent
// use.
package candidate

import (
	"fmt"
	"math"
	"regexp"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// idPattern is the canonical candidate identifier format.
var idPattern = regexp.MustCompile(`^Ligand-\d{3}$`)

// FormatID renders the identifier for the given 1-based sequence number.
func FormatID(seq int) string {
	return fmt.Sprintf("Ligand-%03d", seq)
}

// ─────────────────────────────────────────────────────────────────────────────
// Candidate
// ─────────────────────────────────────────────────────────────────────────────

// Candidate is one row of a result dataset.  It is a value type; copies are
// independent and never mutated by this package.
type Candidate struct {
	ID string `json:"id" csv:"id"`

	// StructureCode is a chemical line-notation string.  It is opaque here and
	// is never parsed or validated.
	StructureCode string `json:"structure_code" csv:"structure_code"`

	// MolecularWeight in Daltons.
	MolecularWeight float64 `json:"molecular_weight" csv:"molecular_weight"`

	// BindingAffinity in kcal/mol; more negative is stronger.
	BindingAffinity float64 `json:"binding_affinity" csv:"binding_affinity"`

	DockingScore      float64 `json:"docking_score" csv:"docking_score"`
	DruggabilityScore float64 `json:"druggability_score" csv:"druggability_score"`
}

// Tier classifies the candidate's druggability score.
func (c Candidate) Tier() Tier {
	return Classify(c.DruggabilityScore)
}

// Validate checks the per-row invariants.
func (c Candidate) Validate() error {
	if !idPattern.MatchString(c.ID) {
		return errors.New(errors.ErrCodeInvalidCandidate, "candidate id must match Ligand-###").
			WithDetail(fmt.Sprintf("id=%q", c.ID))
	}
	// The negated comparisons also reject NaN.
	if !(c.MolecularWeight > 0) || math.IsInf(c.MolecularWeight, 0) {
		return errors.New(errors.ErrCodeInvalidCandidate, "molecular weight must be positive").
			WithDetail("id=" + c.ID)
	}
	if math.IsNaN(c.BindingAffinity) || math.IsInf(c.BindingAffinity, 0) {
		return errors.New(errors.ErrCodeInvalidCandidate, "binding affinity must be finite").
			WithDetail("id=" + c.ID)
	}
	if !(c.DockingScore > 0) || math.IsInf(c.DockingScore, 0) {
		return errors.New(errors.ErrCodeInvalidCandidate, "docking score must be positive").
			WithDetail("id=" + c.ID)
	}
	if !(c.DruggabilityScore >= 0 && c.DruggabilityScore <= 1) {
		return errors.New(errors.ErrCodeInvalidCandidate, "druggability score must be within [0, 1]").
			WithDetail(fmt.Sprintf("id=%s score=%g", c.ID, c.DruggabilityScore))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CandidateSet
// ─────────────────────────────────────────────────────────────────────────────

// CandidateSet is an ordered, immutable sequence of candidates with unique
// IDs.  Order is rank order as established by whoever constructed the set and
// is the basis for top-N slicing.  The zero value is an empty set.
type CandidateSet struct {
	items []Candidate
}

// NewCandidateSet validates and copies cands into a new set.
func NewCandidateSet(cands []Candidate) (CandidateSet, error) {
	seen := make(map[string]struct{}, len(cands))
	items := make([]Candidate, len(cands))
	for i, c := range cands {
		if err := c.Validate(); err != nil {
			return CandidateSet{}, err
		}
		if _, dup := seen[c.ID]; dup {
			return CandidateSet{}, errors.New(errors.ErrCodeInvalidCandidate, "duplicate candidate id").
				WithDetail("id=" + c.ID)
		}
		seen[c.ID] = struct{}{}
		items[i] = c
	}
	return CandidateSet{items: items}, nil
}

// Len returns the number of candidates.
func (s CandidateSet) Len() int { return len(s.items) }

// At returns the candidate at position i.  It panics if i is out of range.
func (s CandidateSet) At(i int) Candidate { return s.items[i] }

// Candidates returns a copy of the set's rows in order.
func (s CandidateSet) Candidates() []Candidate {
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the candidate identifiers in order.
func (s CandidateSet) IDs() []string {
	ids := make([]string, len(s.items))
	for i, c := range s.items {
		ids[i] = c.ID
	}
	return ids
}

// Equal reports whether both sets hold identical rows in identical order.
func (s CandidateSet) Equal(other CandidateSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

//Personal.AI order the ending

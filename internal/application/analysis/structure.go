package analysis

import (
	"math/rand/v2"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

const (
	DefaultStructureSeed   int64 = 42
	DefaultStructurePoints       = 100
	maxStructurePoints           = 10000
)

// Point is one marker of the placeholder cloud.  Color is a scalar fed to
// the client's colour scale.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Color float64 `json:"color"`
}

// StructureView is a random scatter standing in for a protein-ligand
// complex.  It carries no structural information.
type StructureView struct {
	RunID       string   `json:"run_id"`
	LigandID    string   `json:"ligand_id"`
	Title       string   `json:"title"`
	AxisTitles  []string `json:"axis_titles"`
	Placeholder bool     `json:"placeholder"`
	Seed        int64    `json:"seed"`
	Points      []Point  `json:"points"`
}

// BuildStructureView draws n standard-normal points from seed.  The same
// seed always yields the same cloud.  ligandID must exist in set even though
// it does not affect the output.
func BuildStructureView(runID string, set candidate.CandidateSet, ligandID string, seed int64, n int) (*StructureView, error) {
	if _, err := candidate.FindByID(set, ligandID); err != nil {
		return nil, err
	}
	if n <= 0 || n > maxStructurePoints {
		return nil, errors.InvalidArgument("structure point count out of range").
			WithDetail("points=" + strconv.Itoa(n))
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(uint64(seed), uint64(seed))}
	pts := make([]Point, n)
	// Columns are drawn in order: x, y, z, colour.
	for i := range pts {
		pts[i].X = norm.Rand()
	}
	for i := range pts {
		pts[i].Y = norm.Rand()
	}
	for i := range pts {
		pts[i].Z = norm.Rand()
	}
	for i := range pts {
		pts[i].Color = norm.Rand()
	}

	return &StructureView{
		RunID:       runID,
		LigandID:    ligandID,
		Title:       "Protein-Ligand Complex (Simulation)",
		AxisTitles:  []string{"X (Å)", "Y (Å)", "Z (Å)"},
		Placeholder: true,
		Seed:        seed,
		Points:      pts,
	}, nil
}

//Personal.AI order the ending

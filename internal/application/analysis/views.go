package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
)

// ─────────────────────────────────────────────────────────────────────────────
// Overview
// ─────────────────────────────────────────────────────────────────────────────

// CandidateRow is a candidate with its derived tier and colour.
type CandidateRow struct {
	candidate.Candidate
	Tier  candidate.Tier  `json:"tier"`
	Color candidate.Color `json:"color"`
}

// Series is one bar chart.
type Series struct {
	Title  string    `json:"title"`
	XTitle string    `json:"x_title"`
	YTitle string    `json:"y_title"`
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
}

// Headline is the four-figure metric strip of the summary tab.
type Headline struct {
	GeneratedCount      int     `json:"generated_count"`
	SuccessfulDocking   int     `json:"successful_docking"`
	MeanBindingAffinity float64 `json:"mean_binding_affinity"`
	BestDruggability    float64 `json:"best_druggability"`
	// Sample marks figures that are fixed display values rather than
	// aggregates of the table.
	Sample bool `json:"sample"`
}

// SampleHeadline returns the fixed metric strip the dashboard has always
// shown, independent of the candidate table.
func SampleHeadline() Headline {
	return Headline{
		GeneratedCount:      47,
		SuccessfulDocking:   42,
		MeanBindingAffinity: -8.3,
		BestDruggability:    0.82,
		Sample:              true,
	}
}

// Overview is the summary tab of a run, also used for the demo view.  The
// top-level figures are computed from Candidates; SampleHeadline carries the
// fixed display values.
type Overview struct {
	GeneratedCount      int            `json:"generated_count"`
	SuccessfulDocking   int            `json:"successful_docking"`
	MeanBindingAffinity float64        `json:"mean_binding_affinity"`
	BestDruggability    float64        `json:"best_druggability"`
	Candidates          []CandidateRow `json:"candidates"`
	AffinityChart       Series         `json:"affinity_chart"`
	DruggabilityChart   Series         `json:"druggability_chart"`
	SampleHeadline      Headline       `json:"sample_headline"`
}

// BuildOverview summarises set.  Means are rounded to two decimals.
func BuildOverview(set candidate.CandidateSet) *Overview {
	cands := set.Candidates()
	ov := &Overview{
		GeneratedCount: len(cands),
		Candidates:     make([]CandidateRow, len(cands)),
		AffinityChart: Series{
			Title:  "Binding affinity comparison",
			XTitle: "Ligand ID",
			YTitle: "Binding affinity (kcal/mol)",
		},
		DruggabilityChart: Series{
			Title:  "Druggability score comparison",
			XTitle: "Ligand ID",
			YTitle: "Druggability score",
		},
		SampleHeadline: SampleHeadline(),
	}
	if len(cands) == 0 {
		return ov
	}

	affinities := make([]float64, len(cands))
	scores := make([]float64, len(cands))
	ids := make([]string, len(cands))
	for i, c := range cands {
		affinities[i] = c.BindingAffinity
		scores[i] = c.DruggabilityScore
		ids[i] = c.ID
		if c.DockingScore > 0 {
			ov.SuccessfulDocking++
		}
		ov.Candidates[i] = rowOf(c)
	}
	ov.MeanBindingAffinity = round2(stat.Mean(affinities, nil))
	ov.BestDruggability = floats.Max(scores)
	ov.AffinityChart.X, ov.AffinityChart.Y = ids, affinities
	ov.DruggabilityChart.X, ov.DruggabilityChart.Y = append([]string(nil), ids...), scores
	return ov
}

func rowOf(c candidate.Candidate) CandidateRow {
	tier := c.Tier()
	color, _ := candidate.TierColor(tier)
	return CandidateRow{Candidate: c, Tier: tier, Color: color}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ─────────────────────────────────────────────────────────────────────────────
// Docking
// ─────────────────────────────────────────────────────────────────────────────

type Interaction struct {
	Residue            string  `json:"residue"`
	Type               string  `json:"type"`
	DistanceAngstrom   float64 `json:"distance_angstrom"`
	EnergyContribution float64 `json:"energy_contribution"`
}

type BindingSite struct {
	Residues     []string `json:"residues"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Z            float64  `json:"z"`
	PocketVolume float64  `json:"pocket_volume"`
}

type ConformationCluster struct {
	Name       string  `json:"name"`
	PoseCount  int     `json:"pose_count"`
	MeanEnergy float64 `json:"mean_energy"`
	RMSD       float64 `json:"rmsd"`
}

// DockingView is the per-ligand docking tab.  Everything except the
// selected ligand's metrics is a fixed sample.
type DockingView struct {
	RunID        string                `json:"run_id"`
	Ligand       candidate.Candidate   `json:"ligand"`
	Interactions []Interaction         `json:"interactions"`
	BindingSite  BindingSite           `json:"binding_site"`
	Clusters     []ConformationCluster `json:"clusters"`
}

func sampleInteractions() []Interaction {
	return []Interaction{
		{Residue: "ASP102", Type: "Hydrogen bond", DistanceAngstrom: 2.8, EnergyContribution: -2.5},
		{Residue: "HIS57", Type: "π-π stacking", DistanceAngstrom: 3.5, EnergyContribution: -1.8},
		{Residue: "SER195", Type: "Hydrogen bond", DistanceAngstrom: 2.9, EnergyContribution: -2.3},
		{Residue: "GLY216", Type: "Hydrophobic", DistanceAngstrom: 4.2, EnergyContribution: -1.2},
		{Residue: "TRP215", Type: "π-π stacking", DistanceAngstrom: 3.8, EnergyContribution: -1.5},
		{Residue: "VAL213", Type: "Hydrophobic", DistanceAngstrom: 4.1, EnergyContribution: -1.0},
	}
}

func sampleBindingSite() BindingSite {
	return BindingSite{
		Residues:     []string{"ASP102", "HIS57", "SER195", "GLY216", "TRP215", "VAL213", "ARG204"},
		X:            15.3,
		Y:            22.7,
		Z:            8.9,
		PocketVolume: 458.3,
	}
}

func sampleClusters() []ConformationCluster {
	return []ConformationCluster{
		{Name: "Cluster 1", PoseCount: 15, MeanEnergy: -9.2, RMSD: 1.2},
		{Name: "Cluster 2", PoseCount: 8, MeanEnergy: -8.5, RMSD: 2.1},
		{Name: "Cluster 3", PoseCount: 4, MeanEnergy: -7.8, RMSD: 3.5},
	}
}

// BuildDockingView selects ligandID from set.
func BuildDockingView(runID string, set candidate.CandidateSet, ligandID string) (*DockingView, error) {
	c, err := candidate.FindByID(set, ligandID)
	if err != nil {
		return nil, err
	}
	return &DockingView{
		RunID:        runID,
		Ligand:       c,
		Interactions: sampleInteractions(),
		BindingSite:  sampleBindingSite(),
		Clusters:     sampleClusters(),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Druggability
// ─────────────────────────────────────────────────────────────────────────────

// StructurePreviewLength is how many characters of the structure code the
// property panel shows before the ellipsis.
const StructurePreviewLength = 20

var statusLabels = map[candidate.Tier]string{
	candidate.TierHigh:   "HIGH DRUGGABILITY",
	candidate.TierMedium: "MODERATE DRUGGABILITY",
	candidate.TierLow:    "LOW DRUGGABILITY",
}

// StatusLabel is the headline shown under the score.
func StatusLabel(t candidate.Tier) string {
	return statusLabels[t]
}

type PropertyPanel struct {
	MolecularWeight  float64 `json:"molecular_weight"`
	LogP             float64 `json:"logp"`
	HBondDonors      int     `json:"h_bond_donors"`
	HBondAcceptors   int     `json:"h_bond_acceptors"`
	RotatableBonds   int     `json:"rotatable_bonds"`
	PolarSurfaceArea float64 `json:"polar_surface_area"`
	StructurePreview string  `json:"structure_preview"`
}

type Radar struct {
	Categories []string  `json:"categories"`
	Values     []float64 `json:"values"`
}

type ComparisonBar struct {
	ID    string          `json:"id"`
	Score float64         `json:"score"`
	Tier  candidate.Tier  `json:"tier"`
	Color candidate.Color `json:"color"`
}

type ADMEEntry struct {
	Property   string  `json:"property"`
	Assessment string  `json:"assessment"`
	Score      float64 `json:"score"`
}

type DruggabilityView struct {
	RunID       string              `json:"run_id"`
	Ligand      candidate.Candidate `json:"ligand"`
	Score       float64             `json:"score"`
	Tier        candidate.Tier      `json:"tier"`
	Color       candidate.Color     `json:"color"`
	Status      string              `json:"status"`
	Description string              `json:"description"`
	Properties  PropertyPanel       `json:"properties"`
	Radar       Radar               `json:"radar"`
	Comparison  []ComparisonBar     `json:"comparison"`
	ADMETox     []ADMEEntry         `json:"adme_tox"`
}

const druggabilityDescription = "Estimated from binding potential, pharmacokinetic properties and toxicity profile."

// ComparisonSize is how many leading candidates the comparison chart shows.
const ComparisonSize = 5

// BuildDruggabilityView selects ligandID from set.
func BuildDruggabilityView(runID string, set candidate.CandidateSet, ligandID string) (*DruggabilityView, error) {
	c, err := candidate.FindByID(set, ligandID)
	if err != nil {
		return nil, err
	}
	top, err := candidate.TopN(set, ComparisonSize)
	if err != nil {
		return nil, err
	}
	bars := make([]ComparisonBar, len(top))
	for i, t := range top {
		row := rowOf(t)
		bars[i] = ComparisonBar{ID: t.ID, Score: t.DruggabilityScore, Tier: row.Tier, Color: row.Color}
	}

	row := rowOf(c)
	return &DruggabilityView{
		RunID:       runID,
		Ligand:      c,
		Score:       c.DruggabilityScore,
		Tier:        row.Tier,
		Color:       row.Color,
		Status:      StatusLabel(row.Tier),
		Description: druggabilityDescription,
		Properties: PropertyPanel{
			MolecularWeight:  c.MolecularWeight,
			LogP:             3.1,
			HBondDonors:      2,
			HBondAcceptors:   5,
			RotatableBonds:   4,
			PolarSurfaceArea: 75,
			StructurePreview: StructurePreview(c.StructureCode),
		},
		Radar: Radar{
			Categories: []string{"MW", "LogP", "H-bond", "PSA", "Rotatable bonds", "ADME fit"},
			Values:     []float64{0.85, 0.75, 0.90, 0.80, 0.88, 0.82},
		},
		Comparison: bars,
		ADMETox: []ADMEEntry{
			{Property: "Absorption", Assessment: "Good", Score: 0.85},
			{Property: "Distribution", Assessment: "Moderate", Score: 0.65},
			{Property: "Metabolism", Assessment: "Good", Score: 0.80},
			{Property: "Elimination", Assessment: "Good", Score: 0.78},
			{Property: "Toxicity", Assessment: "Low risk", Score: 0.90},
		},
	}, nil
}

// StructurePreview truncates code to StructurePreviewLength runes and always
// appends an ellipsis.
func StructurePreview(code string) string {
	r := []rune(code)
	if len(r) > StructurePreviewLength {
		r = r[:StructurePreviewLength]
	}
	return string(r) + "..."
}

//Personal.AI order the ending

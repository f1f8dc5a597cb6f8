package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// defaultSimulatedDelay is used by a bare --simulate-delay.
const defaultSimulatedDelay = 2 * time.Second

type analyzeOptions struct {
	target        string
	seed          string
	project       string
	countRange    string
	designMethod  string
	blindDocking  bool
	simulateDelay time.Duration

	bindingSite   string
	gridCenter    []float64
	gridSize      []float64
	conformation  string
	desiredEffect string
	population    string
	route         string
}

// gridBox builds the docking box from --grid-center and --grid-size.  It
// returns nil when neither flag was given so the run falls back to the
// default box.
func (o *analyzeOptions) gridBox(cmd *cobra.Command) (*domainAnalysis.GridBox, error) {
	flags := cmd.Flags()
	if !flags.Changed("grid-center") && !flags.Changed("grid-size") {
		return nil, nil
	}
	gb := domainAnalysis.DefaultGridBox()
	if flags.Changed("grid-center") {
		if len(o.gridCenter) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidAnalysisOption, "invalid analysis option").
				WithDetail("grid-center needs x,y,z")
		}
		gb.CenterX, gb.CenterY, gb.CenterZ = o.gridCenter[0], o.gridCenter[1], o.gridCenter[2]
	}
	if flags.Changed("grid-size") {
		if len(o.gridSize) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidAnalysisOption, "invalid analysis option").
				WithDetail("grid-size needs x,y,z")
		}
		gb.SizeX, gb.SizeY, gb.SizeZ = o.gridSize[0], o.gridSize[1], o.gridSize[2]
	}
	return &gb, nil
}

// analysisSummary renders a submitted run.
type analysisSummary struct {
	*appAnalysis.RunResult
}

func (s analysisSummary) String() string {
	run, ov := s.Run, s.Overview
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run:                    %s\n", run.ID)
	fmt.Fprintf(&sb, "Project:                %s\n", run.ProjectName)
	fmt.Fprintf(&sb, "Target:                 %s (%d bytes)\n", run.Target.Name, run.Target.Size)
	fmt.Fprintf(&sb, "Generated molecules:    %d\n", ov.GeneratedCount)
	if run.Resolution.Truncated {
		fmt.Fprintf(&sb, "Requested molecules:    %d (limited to the sample table)\n", run.Resolution.Requested)
	}
	fmt.Fprintf(&sb, "Successful docking:     %d\n", ov.SuccessfulDocking)
	fmt.Fprintf(&sb, "Mean binding affinity:  %.2f kcal/mol\n", ov.MeanBindingAffinity)
	fmt.Fprintf(&sb, "Best druggability:      %.2f\n", ov.BestDruggability)
	for _, c := range ov.Candidates {
		fmt.Fprintf(&sb, "  %s  %6s kcal/mol  %s\n", c.ID, formatFloat(c.BindingAffinity), colorizeTier(c.Tier))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (s analysisSummary) TableHeaders() []string {
	return candidateList{}.TableHeaders()
}

func (s analysisSummary) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Overview.Candidates))
	for _, c := range s.Overview.Candidates {
		rows = append(rows, []string{
			c.ID,
			c.StructureCode,
			formatFloat(c.MolecularWeight),
			formatFloat(c.BindingAffinity),
			formatFloat(c.DockingScore),
			formatFloat(c.DruggabilityScore),
			string(c.Tier),
		})
	}
	return rows
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Submit a target structure and print the sample results",
		Long: "analyze accepts a target PDB file and returns the sample result table.\n" +
			"The file is recorded by name and size only; its content is not read for scoring.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.target, "target", "t", "", "target protein structure (.pdb)")
	f.StringVar(&opts.seed, "seed-file", "", "optional seed structure (.sdf, .mol2)")
	f.StringVarP(&opts.project, "project", "p", "", "project name")
	f.StringVar(&opts.countRange, "count-range", string(domainAnalysis.CountRange1To5), "molecules to generate (1-5, 5-10, 10-50, 50-100)")
	f.StringVar(&opts.designMethod, "design-method", "", "design method")
	f.BoolVar(&opts.blindDocking, "blind-docking", false, "dock over the whole protein surface")
	f.StringVar(&opts.bindingSite, "binding-site-method", "", "binding site detection (auto_pocket, grid_box, reference_ligand, residue_list)")
	f.Float64SliceVar(&opts.gridCenter, "grid-center", nil, "grid box centre x,y,z in Å; implies --binding-site-method=grid_box")
	f.Float64SliceVar(&opts.gridSize, "grid-size", nil, "grid box edge lengths x,y,z in Å; implies --binding-site-method=grid_box")
	f.StringVar(&opts.conformation, "conformation", "", "target conformation (active, inactive, unknown, allosteric_modulator)")
	f.StringVar(&opts.desiredEffect, "desired-effect", "", "desired effect (agonist, antagonist, modulator, allosteric_modulator, unknown)")
	f.StringVar(&opts.population, "population", "", "target population (0-2, 2-18, 18-45, 45-65, 65-85, 85+, unknown)")
	f.StringVar(&opts.route, "route", "", "administration route (oral, intravenous, intramuscular, inhalation, dermal, subcutaneous, other)")
	f.DurationVar(&opts.simulateDelay, "simulate-delay", 0, "pause before printing results; defaults to analysis.simulated_delay")
	f.Lookup("simulate-delay").NoOptDefVal = defaultSimulatedDelay.String()
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if opts.target == "" {
		return errors.New(errors.ErrCodeTargetMissing, "target structure file is required").WithDetail("use --target")
	}
	target, err := readUpload(opts.target)
	if err != nil {
		return err
	}
	var seed *appAnalysis.FileUpload
	if opts.seed != "" {
		if seed, err = readUpload(opts.seed); err != nil {
			return err
		}
	}

	gridBox, err := opts.gridBox(cmd)
	if err != nil {
		return err
	}
	bindingSite := domainAnalysis.BindingSiteMethod(opts.bindingSite)
	if gridBox != nil && bindingSite == "" {
		bindingSite = domainAnalysis.BindingSiteGridBox
	}

	input := &appAnalysis.SubmitInput{
		ProjectName: opts.project,
		Options: domainAnalysis.Options{
			BindingSiteMethod: bindingSite,
			GridBox:           gridBox,
			BlindDocking:      opts.blindDocking,
			Conformation:      domainAnalysis.Conformation(opts.conformation),
			DesiredEffect:     domainAnalysis.Effect(opts.desiredEffect),
			Population:        domainAnalysis.Population(opts.population),
			Route:             domainAnalysis.Route(opts.route),
			DesignMethod:      domainAnalysis.DesignMethod(opts.designMethod),
			CountRange:        domainAnalysis.CountRange(opts.countRange),
		},
		Target: target,
		Seed:   seed,
	}

	delay := cliCtx.SimulatedLag
	if cmd.Flags().Changed("simulate-delay") {
		delay = opts.simulateDelay
	}
	if err := sleepContext(cmd.Context(), delay); err != nil {
		return err
	}

	res, err := cliCtx.Analysis.Submit(cmd.Context(), input)
	if err != nil {
		return err
	}
	cliCtx.Logger.Debug("analysis submitted",
		logging.String("run_id", res.Run.ID),
		logging.Int("delivered", res.Run.Resolution.Delivered),
	)
	return PrintResult(cmd, analysisSummary{res})
}

func readUpload(path string) (*appAnalysis.FileUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read input file").WithDetail("path=" + path)
	}
	return &appAnalysis.FileUpload{Name: filepath.Base(path), Data: data}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "interrupted while waiting")
	case <-t.C:
		return nil
	}
}

//Personal.AI order the ending

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	appCandidate "github.com/turtacn/DeNovo-Designer/internal/application/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// candidateList renders a ListResult for text and table output.
type candidateList struct {
	*appCandidate.ListResult
}

func (l candidateList) TableHeaders() []string {
	return []string{"ID", "Structure", "MW (Da)", "Affinity", "Docking", "Druggability", "Tier"}
}

func (l candidateList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Items))
	for _, c := range l.Items {
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

func (l candidateList) String() string {
	var sb strings.Builder
	for _, c := range l.Items {
		fmt.Fprintf(&sb, "%s  %-32s  %6s Da  %6s kcal/mol  docking %-4s  druggability %-4s  %s\n",
			c.ID, c.StructureCode,
			formatFloat(c.MolecularWeight), formatFloat(c.BindingAffinity),
			formatFloat(c.DockingScore), formatFloat(c.DruggabilityScore),
			colorizeTier(c.Tier))
	}
	fmt.Fprintf(&sb, "%d candidate(s), fixture v%s", l.Total, l.FixtureVersion)
	return sb.String()
}

type candidateDetail struct {
	*appCandidate.Candidate
}

func (d candidateDetail) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:                 %s\n", d.ID)
	fmt.Fprintf(&sb, "Structure code:     %s\n", d.StructureCode)
	fmt.Fprintf(&sb, "Molecular weight:   %s Da\n", formatFloat(d.MolecularWeight))
	fmt.Fprintf(&sb, "Binding affinity:   %s kcal/mol\n", formatFloat(d.BindingAffinity))
	fmt.Fprintf(&sb, "Docking score:      %s\n", formatFloat(d.DockingScore))
	fmt.Fprintf(&sb, "Druggability score: %s\n", formatFloat(d.DruggabilityScore))
	fmt.Fprintf(&sb, "Tier:               %s (%s)", colorizeTier(d.Tier), d.Color)
	return sb.String()
}

func (d candidateDetail) TableHeaders() []string {
	return candidateList{}.TableHeaders()
}

func (d candidateDetail) TableRows() [][]string {
	return candidateList{&appCandidate.ListResult{Items: []appCandidate.Candidate{*d.Candidate}}}.TableRows()
}

func newCandidatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Inspect the sample candidate table",
	}
	cmd.AddCommand(newCandidatesListCmd(), newCandidatesShowCmd(), newCandidatesTopCmd())
	return cmd
}

func newCandidatesListCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the first --count fixture rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			res, err := cliCtx.Candidates.List(cmd.Context(), count)
			if err != nil {
				return err
			}
			return PrintResult(cmd, candidateList{res})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", candidate.FixtureSize, "number of candidates")
	return cmd
}

func newCandidatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single candidate, e.g. Ligand-003",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := cliCtx.Candidates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, candidateDetail{c})
		},
	}
}

func newCandidatesTopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top <n>",
		Short: "Show the n best-ranked candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.InvalidArgument("n must be an integer").WithDetail("n=" + args[0])
			}
			res, err := cliCtx.Candidates.Top(cmd.Context(), n)
			if err != nil {
				return err
			}
			return PrintResult(cmd, candidateList{res})
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

//Personal.AI order the ending

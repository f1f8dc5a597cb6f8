package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	appCandidate "github.com/turtacn/DeNovo-Designer/internal/application/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

type classification struct {
	*appCandidate.Classification
}

func (c classification) String() string {
	return fmt.Sprintf("%s -> %s (%s)", formatFloat(c.Score), colorizeTier(c.Tier), c.Color)
}

func (c classification) TableHeaders() []string {
	return []string{"Score", "Tier", "Color"}
}

func (c classification) TableRows() [][]string {
	return [][]string{{formatFloat(c.Score), string(c.Tier), string(c.Color)}}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <score>",
		Short: "Classify a druggability score into high, medium or low",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			score, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.InvalidArgument("score must be a number").WithDetail("score=" + args[0])
			}
			res, err := cliCtx.Candidates.Classify(cmd.Context(), score)
			if err != nil {
				return err
			}
			return PrintResult(cmd, classification{res})
		},
	}
}

//Personal.AI order the ending

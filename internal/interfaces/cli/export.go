package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

type exportOptions struct {
	format  string
	out     string
	count   int
	project string
}

// exportSummary is printed after the artifact has been written.
type exportSummary struct {
	Format      string `json:"format"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Bytes       int    `json:"bytes"`
}

func (s exportSummary) String() string {
	return fmt.Sprintf("wrote %d bytes of %s to %s", s.Bytes, s.Format, s.Path)
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the candidate table as csv, xlsx or a text report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", string(appAnalysis.FormatCSV), "export format (csv, xlsx, report, pdb)")
	f.StringVar(&opts.out, "out", "", "output file; defaults to the format's file name, '-' writes to stdout")
	f.IntVarP(&opts.count, "count", "n", candidate.FixtureSize, "number of candidates")
	f.StringVar(&opts.project, "project", domainAnalysis.DefaultProjectName, "project name shown in the report")
	return cmd
}

func runExport(cmd *cobra.Command, opts *exportOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	format, err := appAnalysis.ParseExportFormat(opts.format)
	if err != nil {
		return err
	}
	set, err := candidate.Build(opts.count)
	if err != nil {
		return err
	}
	art, err := appAnalysis.Render(format, opts.project, set)
	if err != nil {
		return err
	}

	if opts.out == "-" {
		_, err = cmd.OutOrStdout().Write(art.Data)
		return err
	}
	path := opts.out
	if path == "" {
		path = art.FileName
	}
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to write export").WithDetail("path=" + path)
	}
	cliCtx.Logger.Debug("export written",
		logging.String("format", string(format)),
		logging.String("path", path),
		logging.Int("bytes", len(art.Data)),
	)
	return PrintResult(cmd, exportSummary{
		Format:      string(format),
		Path:        path,
		ContentType: art.ContentType,
		Bytes:       len(art.Data),
	})
}

//Personal.AI order the ending

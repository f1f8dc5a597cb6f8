// Package cli implements the denovo command tree.  Commands run the
// application services in-process; no server is required.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	appCandidate "github.com/turtacn/DeNovo-Designer/internal/application/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/config"
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/database/memory"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	NoColor      bool
	Timeout      time.Duration
}

// CommandDependencies are the services commands run against.  Nil services
// are built in-process from the loaded configuration.
type CommandDependencies struct {
	Logger           logging.Logger
	CandidateService appCandidate.Service
	AnalysisService  appAnalysis.Service
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Candidates   appCandidate.Service
	Analysis     appAnalysis.Service
	OutputFormat string
	SimulatedLag time.Duration

	cancel context.CancelFunc
}

// NewRootCommand creates the root command with all global flags and
// subcommands.
func NewRootCommand(deps CommandDependencies) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "denovo",
		Short: "DeNovo-Designer CLI: sample de novo design results",
		Long: "DeNovo-Designer returns example molecule design results: candidate tables,\n" +
			"druggability tiers and downloadable exports.  No docking or generation is performed.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, deps)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cliCtx, err := GetCLIContext(cmd); err == nil && cliCtx.cancel != nil {
				cliCtx.cancel()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "global operation timeout")

	cmd.AddCommand(
		newCandidatesCmd(),
		newClassifyCmd(),
		newExportCmd(),
		newAnalyzeCmd(),
		newVersionCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions, deps CommandDependencies) error {
	switch opts.OutputFormat {
	case OutputText, OutputJSON, OutputTable:
	default:
		return errors.InvalidArgument("unsupported output format").WithDetail("output=" + opts.OutputFormat)
	}
	if opts.NoColor {
		color.NoColor = true
	}

	var loadOpts []config.Option
	if opts.ConfigPath != "" {
		loadOpts = append(loadOpts, config.WithConfigPath(opts.ConfigPath))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		if logger, err = initLogger(opts); err != nil {
			return fmt.Errorf("logger initialization failed: %w", err)
		}
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Candidates:   deps.CandidateService,
		Analysis:     deps.AnalysisService,
		OutputFormat: opts.OutputFormat,
		SimulatedLag: cfg.Analysis.SimulatedDelay,
	}
	if cliCtx.Candidates == nil {
		cliCtx.Candidates = appCandidate.NewService(nil, logger)
	}
	if cliCtx.Analysis == nil {
		cliCtx.Analysis = appAnalysis.NewService(
			memory.NewRunRepository(cfg.Analysis.RunTTL),
			appAnalysis.Config{
				MaxUploadBytes:  cfg.Analysis.MaxUploadBytes,
				StructureSeed:   cfg.Analysis.StructureSeed,
				StructurePoints: cfg.Analysis.StructurePoints,
			},
			logger,
		)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		ctx, cliCtx.cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initLogger creates a console logger writing to stderr.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level, err := logging.ParseLevel(strings.ToLower(opts.LogLevel))
	if err != nil {
		level = logging.LevelWarn
	}
	if opts.Verbose {
		level = logging.LevelDebug
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute runs the command tree and prints any error to stderr.
func Execute(deps CommandDependencies) error {
	rootCmd := NewRootCommand(deps)
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Output helpers
// ─────────────────────────────────────────────────────────────────────────────

// tableProvider is implemented by results that render as a table.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the selected format.  text uses the value's
// String method; table falls back to text for values without rows.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := OutputText
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		format = cliCtx.OutputFormat
	}

	switch format {
	case OutputJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputTable:
		if tp, ok := data.(tableProvider); ok {
			return renderTable(cmd, tp.TableHeaders(), tp.TableRows())
		}
	}
	switch v := data.(type) {
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

func renderTable(cmd *cobra.Command, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.RedString("Error:"), err.Error())
}

// colorizeTier paints a tier label in its presentation colour.  Orange has
// no terminal equivalent and is shown as yellow.
func colorizeTier(t candidate.Tier) string {
	c, err := candidate.TierColor(t)
	if err != nil {
		return string(t)
	}
	switch c {
	case candidate.ColorGreen:
		return color.GreenString(string(t))
	case candidate.ColorOrange:
		return color.YellowString(string(t))
	case candidate.ColorRed:
		return color.RedString(string(t))
	}
	return string(t)
}

//Personal.AI order the ending

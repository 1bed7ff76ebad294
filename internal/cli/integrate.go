package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercuboid/pkg/errors"
	hio "github.com/matzehuels/hypercuboid/pkg/io"
	"github.com/matzehuels/hypercuboid/pkg/pipeline"
)

const (
	outputTable = "table" // segment table on stdout
	outputJSON  = "json"  // solution JSON on stdout
)

// integrateOpts holds the command-line flags for the integrate command.
type integrateOpts struct {
	axis     int    // axis to integrate along; overrides the problem file
	mode     string // sweep mode; overrides the problem file and config
	maxCells int    // partition size limit; overrides the config
	output   string // solution file path; stdout when empty
	format   string // stdout format: table or json
	noCache  bool   // bypass the cache entirely
	refresh  bool   // recompute and overwrite the cached solution
	axisSet  bool   // --axis was given explicitly
	cellsSet bool   // --max-cells was given explicitly
}

// integrateCommand creates the integrate command.
func (c *CLI) integrateCommand() *cobra.Command {
	var opts integrateOpts

	cmd := &cobra.Command{
		Use:   "integrate [problem]",
		Short: "Integrate a problem file along one axis",
		Long: `Integrate the step function described by a problem file (JSON or TOML).

The result is a partition of the cross-section into cells, each with the
line integral of the function along the chosen axis.`,
		Example: `  hypercuboid integrate problem.toml
  hypercuboid integrate problem.json --axis 1 --mode start-events
  hypercuboid integrate problem.json -o solution.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.axisSet = cmd.Flags().Changed("axis")
			opts.cellsSet = cmd.Flags().Changed("max-cells")
			pOpts, err := c.pipelineOptions(opts)
			if err != nil {
				return err
			}
			return c.runIntegrate(cmd.Context(), cmd.OutOrStdout(), args[0], pOpts, opts)
		},
	}

	cmd.Flags().IntVar(&opts.axis, "axis", 0, "axis to integrate along (default: from problem file)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "sweep mode: coverage (default), start-events")
	cmd.Flags().IntVar(&opts.maxCells, "max-cells", 0, "fail when the partition exceeds this many cells (default: from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the solution JSON to this file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", outputTable, "stdout format: table, json")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached solution exists")

	return cmd
}

// pipelineOptions starts from the config defaults. Problem file values
// override them in runIntegrate, and explicitly set flags override both.
func (c *CLI) pipelineOptions(opts integrateOpts) (pipeline.Options, error) {
	switch strings.ToLower(opts.format) {
	case outputTable, outputJSON:
	default:
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'table' or 'json')", opts.format)
	}

	return pipeline.Options{
		Mode:     c.Config.Sweep.Mode,
		MaxCells: c.Config.Sweep.MaxCells,
		Refresh:  opts.refresh,
	}, nil
}

func (c *CLI) runIntegrate(ctx context.Context, stdout io.Writer, input string, pOpts pipeline.Options, opts integrateOpts) error {
	logger := loggerFromContext(ctx)

	problem, err := hio.ImportProblem(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded problem", "file", input, "boxes", len(problem.Boxes), "axis", problem.Axis)

	pOpts.Axis = problem.Axis
	if problem.Mode != "" {
		pOpts.Mode = problem.Mode
	}
	if problem.MaxCells > 0 {
		pOpts.MaxCells = problem.MaxCells
	}
	if opts.axisSet {
		pOpts.Axis = opts.axis
	}
	if opts.cellsSet {
		pOpts.MaxCells = opts.maxCells
	}
	if opts.mode != "" {
		pOpts.Mode = opts.mode
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Integrating %d boxes along axis %d...", len(problem.Boxes), pOpts.Axis))
	spinner.Start()
	result, err := runner.Execute(ctx, problem.Boxes, pOpts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Integrated %d boxes", result.Stats.Boxes),
		"cells", result.Stats.Cells, "cached", result.CacheInfo.SolutionHit)

	if opts.output != "" {
		if err := hio.ExportSolution(result.Solution, opts.output); err != nil {
			return err
		}
		printSuccess("Solution written")
		printFile(opts.output)
		printStats(result.Stats.Boxes, result.Stats.Cells, result.CacheInfo.SolutionHit)
		return nil
	}

	if strings.ToLower(opts.format) == outputJSON {
		return hio.WriteSolution(result.Solution, stdout)
	}
	if err := writeSegmentsTable(stdout, result.Solution); err != nil {
		return err
	}
	printStats(result.Stats.Boxes, result.Stats.Cells, result.CacheInfo.SolutionHit)
	return nil
}

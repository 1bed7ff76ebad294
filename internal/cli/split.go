package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	"github.com/matzehuels/hypercuboid/pkg/errors"
	hio "github.com/matzehuels/hypercuboid/pkg/io"
)

// splitCommand groups the splitting primitives the sweep is built on.
func (c *CLI) splitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split intervals and boxes",
		Long: `Split an interval or a box by a second one and print the pieces.

Boxes are written as start:end with comma-separated coordinates, for
example 0,0:2,3 for the box [0, 2) × [0, 3).`,
	}

	cmd.AddCommand(c.splitIntervalCommand())
	cmd.AddCommand(c.splitBoxCommand())

	return cmd
}

func (c *CLI) splitIntervalCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "interval A_START A_END B_START B_END",
		Short:   "Split interval A by interval B",
		Example: `  hypercuboid split interval 0 10 3 5`,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			a := geom.Interval{Start: v[0], End: v[1]}
			b := geom.Interval{Start: v[2], End: v[3]}

			pieces, inside, err := geom.SplitInterval(a, b)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("split interval", "a", a, "b", b, "pieces", len(pieces))

			if asJSON {
				return hio.WriteSplit(hio.IntervalSplit{Pieces: pieces, Inside: inside}, cmd.OutOrStdout())
			}
			boxes := make([]geom.Box, len(pieces))
			for i, p := range pieces {
				boxes[i] = geom.NewBox(p)
			}
			return writePiecesTable(cmd.OutOrStdout(), boxes, inside)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the pieces as JSON")
	return cmd
}

func (c *CLI) splitBoxCommand() *cobra.Command {
	var (
		aSpec, bSpec string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:     "box --a SPEC --b SPEC",
		Short:   "Split box A by box B",
		Example: `  hypercuboid split box --a 0,0:4,4 --b 1,1:2,2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseBoxSpec(aSpec)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "--a")
			}
			b, err := parseBoxSpec(bSpec)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "--b")
			}
			return runSplitBox(cmd.OutOrStdout(), a, b, asJSON)
		},
	}

	cmd.Flags().StringVar(&aSpec, "a", "", "box to split, as start:end (required)")
	cmd.Flags().StringVar(&bSpec, "b", "", "clipping box, as start:end (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the pieces as JSON")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}

func runSplitBox(w io.Writer, a, b geom.Box, asJSON bool) error {
	pieces, inside, err := geom.SplitBox(a, b)
	if err != nil {
		return err
	}
	if asJSON {
		return hio.WriteSplit(hio.BoxSplit{Pieces: pieces, Inside: inside}, w)
	}
	return writePiecesTable(w, pieces, inside)
}

// parseBoxSpec parses "s0,s1,...:e0,e1,..." into a box. The box itself is
// validated by the geometry routines, not here.
func parseBoxSpec(spec string) (geom.Box, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok {
		return geom.Box{}, errors.New(errors.ErrCodeInvalidInput, "box %q: want start:end", spec)
	}
	start, err := parseFloats(strings.Split(startStr, ","))
	if err != nil {
		return geom.Box{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "box %q start", spec)
	}
	end, err := parseFloats(strings.Split(endStr, ","))
	if err != nil {
		return geom.Box{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "box %q end", spec)
	}
	if len(start) != len(end) {
		return geom.Box{}, errors.New(errors.ErrCodeDimensionMismatch,
			"box %q: %d start and %d end coordinates", spec, len(start), len(end))
	}
	return geom.Box{Start: start, End: end}, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "not a number: %q", f)
		}
		out[i] = v
	}
	return out, nil
}

package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hypercuboid/pkg/core/sweep"
	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// Solution is the serialized result of one integration.
type Solution struct {
	Axis     int             `json:"axis"`
	Mode     string          `json:"mode"`
	Axes     []int           `json:"cross_section_axes"` // original axis of each patch axis
	Total    float64         `json:"total"`
	Segments []sweep.Segment `json:"segments"`
}

// NewSolution bundles the segments of a sweep along axis of n-dimensional
// boxes with the metadata needed to interpret them.
func NewSolution(segs []sweep.Segment, n, axis int, mode sweep.Mode) Solution {
	return Solution{
		Axis:     axis,
		Mode:     mode.String(),
		Axes:     sweep.CrossSectionAxes(n, axis),
		Total:    sweep.Total(segs),
		Segments: segs,
	}
}

// WriteSolution encodes s as indented JSON and writes it to w.
func WriteSolution(s Solution, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode solution")
	}
	return nil
}

// ExportSolution writes s to a JSON file at path.
func ExportSolution(s Solution, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteSolution(s, w) })
}

// WriteProblem encodes p as f and writes it to w. Boxes are always written
// in start/end form.
func WriteProblem(p Problem, w io.Writer, f Format) error {
	data := fileFromProblem(p)
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(data); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported problem format: %q", f)
	}
	return nil
}

// ExportProblem writes p to path in the format implied by its extension.
func ExportProblem(p Problem, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error { return WriteProblem(p, w, format) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "close %s", path)
	}
	return nil
}

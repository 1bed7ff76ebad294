package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	"github.com/matzehuels/hypercuboid/pkg/core/sweep"
	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// Problem is a decoded integration problem.
type Problem struct {
	Axis     int              // axis to integrate along
	Mode     string           // sweep mode name; empty selects the default
	MaxCells int              // partition size limit; 0 leaves the default
	Boxes    []sweep.Weighted // boxes in input order
}

// Format identifies a problem file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat converts a format name such as "json" or ".toml" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported problem format: %q (must be json or toml)", s)
}

// FormatFromPath picks a Format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

type problemFile struct {
	Axis     int       `json:"axis" toml:"axis"`
	Mode     string    `json:"mode,omitempty" toml:"mode,omitempty"`
	MaxCells int       `json:"max_cells,omitempty" toml:"max_cells,omitempty"`
	Boxes    []boxFile `json:"boxes" toml:"boxes"`
}

type boxFile struct {
	Start  []float64   `json:"start,omitempty" toml:"start,omitempty"`
	End    []float64   `json:"end,omitempty" toml:"end,omitempty"`
	Extent [][]float64 `json:"extent,omitempty" toml:"extent,omitempty"`
	Grad   float64     `json:"grad" toml:"grad"`
}

func (f problemFile) problem() (Problem, error) {
	if f.MaxCells < 0 {
		return Problem{}, errors.New(errors.ErrCodeInvalidFormat, "max_cells must be >= 0, got %d", f.MaxCells)
	}
	p := Problem{Axis: f.Axis, Mode: f.Mode, MaxCells: f.MaxCells, Boxes: make([]sweep.Weighted, len(f.Boxes))}
	for i, b := range f.Boxes {
		box, err := b.box()
		if err != nil {
			return Problem{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "box %d", i)
		}
		p.Boxes[i] = sweep.Weighted{Box: box, Grad: b.Grad}
	}
	return p, nil
}

func (b boxFile) box() (geom.Box, error) {
	if b.Extent == nil {
		if b.Start == nil || b.End == nil {
			return geom.Box{}, errors.New(errors.ErrCodeInvalidFormat, "needs start and end, or extent")
		}
		return geom.Box{Start: b.Start, End: b.End}, nil
	}
	if b.Start != nil || b.End != nil {
		return geom.Box{}, errors.New(errors.ErrCodeInvalidFormat, "extent cannot be combined with start or end")
	}
	axes := make([]geom.Interval, len(b.Extent))
	for d, pair := range b.Extent {
		if len(pair) != 2 {
			return geom.Box{}, errors.New(errors.ErrCodeInvalidFormat, "extent axis %d has %d values, want 2", d, len(pair))
		}
		axes[d] = geom.Interval{Start: pair[0], End: pair[1]}
	}
	return geom.NewBox(axes...), nil
}

func fileFromProblem(p Problem) problemFile {
	f := problemFile{Axis: p.Axis, Mode: p.Mode, MaxCells: p.MaxCells, Boxes: make([]boxFile, len(p.Boxes))}
	for i, w := range p.Boxes {
		f.Boxes[i] = boxFile{Start: w.Box.Start, End: w.Box.End, Grad: w.Grad}
	}
	return f
}

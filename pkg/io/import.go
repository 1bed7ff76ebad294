package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// ReadProblem decodes a problem encoded as f from r.
//
// Unknown fields, boxes missing both start/end and extent, and extent
// entries that are not [start, end] pairs return INVALID_FORMAT errors
// naming the offending box. ReadProblem does not close r.
func ReadProblem(r io.Reader, f Format) (Problem, error) {
	var data problemFile
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&data); err != nil {
			return Problem{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&data)
		if err != nil {
			return Problem{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Problem{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return Problem{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported problem format: %q", f)
	}
	return data.problem()
}

// ImportProblem reads the problem file at path. The format is chosen from
// the file extension.
func ImportProblem(path string) (Problem, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Problem{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Problem{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Problem{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Problem{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	p, err := ReadProblem(f, format)
	if err != nil {
		return Problem{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return p, nil
}

// ReadSolution decodes a solution previously written by [WriteSolution].
func ReadSolution(r io.Reader) (Solution, error) {
	var s Solution
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Solution{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode solution")
	}
	return s, nil
}

package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// IntervalSplit is the serialized result of splitting one interval by another.
type IntervalSplit struct {
	Pieces []geom.Interval `json:"pieces"`
	Inside []bool          `json:"inside"`
}

// BoxSplit is the serialized result of splitting one box by another.
type BoxSplit struct {
	Pieces []geom.Box `json:"pieces"`
	Inside []bool     `json:"inside"`
}

// WriteSplit encodes an [IntervalSplit] or [BoxSplit] as indented JSON.
func WriteSplit[T IntervalSplit | BoxSplit](s T, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode split")
	}
	return nil
}

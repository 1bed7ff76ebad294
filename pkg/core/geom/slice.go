package geom

import "github.com/matzehuels/hypercuboid/pkg/errors"

// SliceAxis splits box a on axis d by clip and copies every other axis of a
// into each piece unchanged. The inside flags are those of [SplitInterval].
//
// Errors from [SplitInterval] are wrapped with the axis index and keep
// their code.
func SliceAxis(a Box, clip Interval, d int) ([]Box, []bool, error) {
	if d < 0 || d >= a.Dim() {
		return nil, nil, errors.New(errors.ErrCodeInvalidAxis, "axis %d out of range for %d-dimensional box", d, a.Dim())
	}
	chunks, inside, err := SplitInterval(a.Axis(d), clip)
	if err != nil {
		return nil, nil, errors.Wrap(errors.GetCode(err), err, "axis %d of box %v", d, a)
	}
	if len(chunks) == 1 {
		return []Box{a.Clone()}, inside, nil
	}
	out := make([]Box, len(chunks))
	for i, c := range chunks {
		out[i] = a.WithAxis(d, c)
	}
	return out, inside, nil
}

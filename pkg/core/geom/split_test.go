package geom

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/hypercuboid/pkg/errors"
)

func box(start, end []float64) Box { return Box{Start: start, End: end} }

func TestSplitBox2D(t *testing.T) {
	a := box([]float64{0, 1}, []float64{2, 3})
	b := box([]float64{1, 1}, []float64{3, 2})

	pieces, inside, err := SplitBox(a, b)
	if err != nil {
		t.Fatalf("SplitBox error: %v", err)
	}

	want := map[string]bool{
		box([]float64{0, 1}, []float64{1, 3}).String(): false,
		box([]float64{1, 1}, []float64{2, 2}).String(): true,
		box([]float64{1, 2}, []float64{2, 3}).String(): false,
	}
	if len(pieces) != len(want) {
		t.Fatalf("got %d pieces %v, want %d", len(pieces), pieces, len(want))
	}
	for i, p := range pieces {
		wantInside, ok := want[p.String()]
		if !ok {
			t.Errorf("unexpected piece %v", p)
			continue
		}
		if inside[i] != wantInside {
			t.Errorf("piece %v inside = %v, want %v", p, inside[i], wantInside)
		}
	}
	checkPartition(t, a, b, pieces, inside)
}

func TestSplitBoxContainmentAcrossAxes(t *testing.T) {
	// b cuts a on all three axes; only the central piece is inside.
	a := box([]float64{0, 0, 0}, []float64{4, 4, 4})
	b := box([]float64{1, 1, 1}, []float64{3, 3, 3})

	pieces, tags, err := SplitBoxTagged(a, b)
	if err != nil {
		t.Fatalf("SplitBoxTagged error: %v", err)
	}
	// 2 outside slabs on x, 2 on y for the middle x slab, 3 on z for the
	// middle column.
	if len(pieces) != 7 {
		t.Errorf("got %d pieces, want 7", len(pieces))
	}
	insideCount := 0
	for i, p := range pieces {
		switch tags[i] {
		case Inside:
			insideCount++
			if !p.Equal(b) {
				t.Errorf("inside piece %v, want %v", p, b)
			}
		case Outside:
			if p.Overlaps(b) {
				t.Errorf("outside piece %v overlaps clip", p)
			}
		default:
			t.Errorf("piece %v has tag %v", p, tags[i])
		}
	}
	if insideCount != 1 {
		t.Errorf("got %d inside pieces, want 1", insideCount)
	}
}

func TestSplitBoxInsideOnEarlyAxesOnly(t *testing.T) {
	// Inside b on x and y but only partially on z: the flag must reflect z.
	a := box([]float64{1, 1, 0}, []float64{2, 2, 4})
	b := box([]float64{0, 0, 1}, []float64{3, 3, 2})

	pieces, inside, err := SplitBox(a, b)
	if err != nil {
		t.Fatalf("SplitBox error: %v", err)
	}
	if len(pieces) != 3 {
		t.Fatalf("got %d pieces, want 3", len(pieces))
	}
	wantInside := []bool{false, true, false}
	if !slices.Equal(inside, wantInside) {
		t.Errorf("inside = %v, want %v", inside, wantInside)
	}
	checkPartition(t, a, b, pieces, inside)
}

func TestSplitBoxNoOverlap(t *testing.T) {
	a := box([]float64{0, 0}, []float64{1, 1})
	tests := []struct {
		name string
		b    Box
	}{
		{"disjoint", box([]float64{5, 5}, []float64{6, 6})},
		{"touching face", box([]float64{1, 0}, []float64{2, 1})},
		{"overlap on one axis only", box([]float64{0, 2}, []float64{1, 3})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces, inside, err := SplitBox(a, tt.b)
			if err != nil {
				t.Fatalf("SplitBox error: %v", err)
			}
			if len(pieces) != 1 || !pieces[0].Equal(a) || inside[0] {
				t.Errorf("SplitBox = %v, %v; want a whole and outside", pieces, inside)
			}
		})
	}
}

func TestSplitBoxContained(t *testing.T) {
	a := box([]float64{1, 1}, []float64{2, 2})
	b := box([]float64{0, 0}, []float64{3, 3})
	pieces, inside, err := SplitBox(a, b)
	if err != nil {
		t.Fatalf("SplitBox error: %v", err)
	}
	if len(pieces) != 1 || !pieces[0].Equal(a) || !inside[0] {
		t.Errorf("SplitBox = %v, %v; want a whole and inside", pieces, inside)
	}
}

func TestSplitBoxZeroAxes(t *testing.T) {
	pieces, inside, err := SplitBox(Box{}, Box{})
	if err != nil {
		t.Fatalf("SplitBox error: %v", err)
	}
	if len(pieces) != 1 || !inside[0] {
		t.Errorf("SplitBox of points = %v, %v; want one inside piece", pieces, inside)
	}
}

func TestSplitBoxPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		wantCode errors.Code
	}{
		{
			name:     "dimension mismatch",
			a:        box([]float64{0, 0}, []float64{1, 1}),
			b:        box([]float64{0}, []float64{1}),
			wantCode: errors.ErrCodeDimensionMismatch,
		},
		{
			name:     "ragged box",
			a:        box([]float64{0, 0}, []float64{1}),
			b:        box([]float64{0, 0}, []float64{1, 1}),
			wantCode: errors.ErrCodeDimensionMismatch,
		},
		{
			name:     "degenerate a",
			a:        box([]float64{0, 1}, []float64{1, 1}),
			b:        box([]float64{0, 0}, []float64{1, 1}),
			wantCode: errors.ErrCodeDegenerateBox,
		},
		{
			name:     "inverted b",
			a:        box([]float64{0, 0}, []float64{1, 1}),
			b:        box([]float64{1, 0}, []float64{0, 1}),
			wantCode: errors.ErrCodeDegenerateBox,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SplitBox(tt.a, tt.b)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("SplitBox error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestSplitBoxDoesNotAlias(t *testing.T) {
	a := box([]float64{0, 0}, []float64{4, 4})
	b := box([]float64{10, 10}, []float64{11, 11})
	pieces, _, err := SplitBox(a, b)
	if err != nil {
		t.Fatalf("SplitBox error: %v", err)
	}
	pieces[0].Start[0] = 99
	if a.Start[0] != 0 {
		t.Error("SplitBox result shares memory with its input")
	}
}

func TestSplitBoxRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 2000; iter++ {
		n := 1 + rng.IntN(4)
		a := randomBox(rng, n)
		b := randomBox(rng, n)
		pieces, inside, err := SplitBox(a, b)
		if err != nil {
			t.Fatalf("SplitBox(%v, %v) error: %v", a, b, err)
		}
		checkPartition(t, a, b, pieces, inside)
	}
}

func randomBox(rng *rand.Rand, n int) Box {
	b := Box{Start: make([]float64, n), End: make([]float64, n)}
	for d := 0; d < n; d++ {
		s := rng.IntN(8)
		b.Start[d] = float64(s)
		b.End[d] = float64(s + 1 + rng.IntN(8-s))
	}
	return b
}

// checkPartition verifies that pieces tile a exactly and that inside flags
// match containment in b. Coordinates in tests are small integers, so
// volume sums are exact.
func checkPartition(t *testing.T, a, b Box, pieces []Box, inside []bool) {
	t.Helper()
	if len(pieces) != len(inside) {
		t.Fatalf("%d pieces but %d flags", len(pieces), len(inside))
	}
	total := 0.0
	for i, p := range pieces {
		if err := p.Validate(); err != nil {
			t.Errorf("piece %v invalid: %v", p, err)
		}
		if !a.Contains(p) {
			t.Errorf("piece %v not within %v", p, a)
		}
		if inside[i] != b.Contains(p) {
			t.Errorf("piece %v inside = %v, want %v (clip %v)", p, inside[i], b.Contains(p), b)
		}
		if !inside[i] && p.Overlaps(b) {
			t.Errorf("outside piece %v overlaps clip %v", p, b)
		}
		for _, q := range pieces[i+1:] {
			if p.Overlaps(q) {
				t.Errorf("pieces %v and %v overlap", p, q)
			}
		}
		total += p.Volume()
	}
	if total != a.Volume() {
		t.Errorf("pieces cover volume %g, want %g", total, a.Volume())
	}
}

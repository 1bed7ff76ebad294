package geom

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/hypercuboid/pkg/errors"
)

func TestSplitInterval(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Interval
		wantPieces []Interval
		wantInside []bool
	}{
		{
			name:       "b strictly inside a",
			a:          Interval{1, 9},
			b:          Interval{3, 5},
			wantPieces: []Interval{{1, 3}, {3, 5}, {5, 9}},
			wantInside: []bool{false, true, false},
		},
		{
			name:       "b covers start of a",
			a:          Interval{2, 6},
			b:          Interval{0, 4},
			wantPieces: []Interval{{2, 4}, {4, 6}},
			wantInside: []bool{true, false},
		},
		{
			name:       "b covers end of a",
			a:          Interval{2, 6},
			b:          Interval{4, 8},
			wantPieces: []Interval{{2, 4}, {4, 6}},
			wantInside: []bool{false, true},
		},
		{
			name:       "b covers a",
			a:          Interval{2, 6},
			b:          Interval{0, 8},
			wantPieces: []Interval{{2, 6}},
			wantInside: []bool{true},
		},
		{
			name:       "b equals a",
			a:          Interval{2, 6},
			b:          Interval{2, 6},
			wantPieces: []Interval{{2, 6}},
			wantInside: []bool{true},
		},
		{
			name:       "shared start",
			a:          Interval{2, 6},
			b:          Interval{2, 3},
			wantPieces: []Interval{{2, 3}, {3, 6}},
			wantInside: []bool{true, false},
		},
		{
			name:       "shared end",
			a:          Interval{2, 6},
			b:          Interval{5, 6},
			wantPieces: []Interval{{2, 5}, {5, 6}},
			wantInside: []bool{false, true},
		},
		{
			name:       "fractional bounds",
			a:          Interval{-1.5, 0.25},
			b:          Interval{-0.5, 0},
			wantPieces: []Interval{{-1.5, -0.5}, {-0.5, 0}, {0, 0.25}},
			wantInside: []bool{false, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces, inside, err := SplitInterval(tt.a, tt.b)
			if err != nil {
				t.Fatalf("SplitInterval(%v, %v) error: %v", tt.a, tt.b, err)
			}
			if !slices.Equal(pieces, tt.wantPieces) {
				t.Errorf("pieces = %v, want %v", pieces, tt.wantPieces)
			}
			if !slices.Equal(inside, tt.wantInside) {
				t.Errorf("inside = %v, want %v", inside, tt.wantInside)
			}
		})
	}
}

func TestSplitIntervalPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		wantCode errors.Code
	}{
		{"disjoint", Interval{1, 2}, Interval{5, 6}, errors.ErrCodeNonOverlapping},
		{"disjoint reversed", Interval{5, 6}, Interval{1, 2}, errors.ErrCodeNonOverlapping},
		{"touching end", Interval{1, 2}, Interval{2, 3}, errors.ErrCodeNonOverlapping},
		{"touching start", Interval{2, 3}, Interval{1, 2}, errors.ErrCodeNonOverlapping},
		{"empty a", Interval{2, 2}, Interval{1, 3}, errors.ErrCodeDegenerateBox},
		{"inverted b", Interval{1, 3}, Interval{3, 1}, errors.ErrCodeDegenerateBox},
		{"NaN a", Interval{math.NaN(), 3}, Interval{1, 3}, errors.ErrCodeDegenerateBox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces, inside, err := SplitInterval(tt.a, tt.b)
			if err == nil {
				t.Fatalf("SplitInterval(%v, %v) = %v, %v; want error", tt.a, tt.b, pieces, inside)
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
			if pieces != nil || inside != nil {
				t.Error("SplitInterval should not return partial results")
			}
		})
	}
}

// TestSplitIntervalExhaustive checks every overlapping configuration of
// integer bounds in a small range.
func TestSplitIntervalExhaustive(t *testing.T) {
	const lo, hi = 0, 6
	for as := lo; as < hi; as++ {
		for ae := as + 1; ae <= hi; ae++ {
			for bs := lo; bs < hi; bs++ {
				for be := bs + 1; be <= hi; be++ {
					a := Interval{float64(as), float64(ae)}
					b := Interval{float64(bs), float64(be)}
					if !a.Overlaps(b) {
						continue
					}
					pieces, inside, err := SplitInterval(a, b)
					if err != nil {
						t.Fatalf("SplitInterval(%v, %v) error: %v", a, b, err)
					}
					checkIntervalSplit(t, a, b, pieces, inside)
				}
			}
		}
	}
}

func checkIntervalSplit(t *testing.T, a, b Interval, pieces []Interval, inside []bool) {
	t.Helper()
	if len(pieces) != len(inside) || len(pieces) == 0 || len(pieces) > 3 {
		t.Fatalf("SplitInterval(%v, %v): %d pieces, %d flags", a, b, len(pieces), len(inside))
	}
	if pieces[0].Start != a.Start || pieces[len(pieces)-1].End != a.End {
		t.Errorf("SplitInterval(%v, %v) = %v, does not span a", a, b, pieces)
	}
	insideCount := 0
	for i, p := range pieces {
		if !p.Valid() {
			t.Errorf("SplitInterval(%v, %v): empty piece %v", a, b, p)
		}
		if i > 0 && pieces[i-1].End != p.Start {
			t.Errorf("SplitInterval(%v, %v): gap or overlap between %v and %v", a, b, pieces[i-1], p)
		}
		within := p.Start >= b.Start && p.End <= b.End
		if inside[i] != within {
			t.Errorf("SplitInterval(%v, %v): piece %v inside = %v, want %v", a, b, p, inside[i], within)
		}
		if inside[i] {
			insideCount++
			want := Interval{max(a.Start, b.Start), min(a.End, b.End)}
			if p != want {
				t.Errorf("SplitInterval(%v, %v): inside piece %v, want %v", a, b, p, want)
			}
		}
	}
	if insideCount != 1 {
		t.Errorf("SplitInterval(%v, %v): %d inside pieces, want 1", a, b, insideCount)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		a, b Interval
		want bool
	}{
		{Interval{0, 2}, Interval{1, 3}, true},
		{Interval{0, 2}, Interval{2, 3}, false},
		{Interval{0, 2}, Interval{-1, 0}, false},
		{Interval{0, 4}, Interval{1, 2}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestIntervalString(t *testing.T) {
	if got := (Interval{1, 2.5}).String(); got != "[1, 2.5)" {
		t.Errorf("String() = %q, want %q", got, "[1, 2.5)")
	}
}

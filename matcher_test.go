package diffuse

import (
	"math"
	"testing"

	"github.com/gostereo/diffuse/luvrange"
)

func TestMatcherCostMatrix(t *testing.T) {
	img1 := rampImage(10, 6)
	img2 := flatImage(10, 6, 25, 0, 0)
	img2.SetValid(6, 3, false)

	m, err := NewMatcher(img1, img2, luvrange.EuclideanMetric{},
		WithSteps(2), WithDistanceCap(12), WithWorkers(3))
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	costs, err := m.CostMatrix(3)
	if err != nil {
		t.Fatalf("CostMatrix: %v", err)
	}

	// The matrix must agree with a hand-assembled serial pipeline.
	want := buildCorrelation(t, img1, img2, 3, 2, 12)
	if len(costs) != 10 {
		t.Fatalf("matrix has %d rows, want 10", len(costs))
	}
	for x1 := range costs {
		if len(costs[x1]) != 10 {
			t.Fatalf("row %d has %d entries, want 10", x1, len(costs[x1]))
		}
		for x2 := range costs[x1] {
			if got, w := costs[x1][x2], want.Cost(x1, x2); math.Abs(got-w) > 1e-12 {
				t.Errorf("costs[%d][%d] = %v, serial pipeline gives %v", x1, x2, got, w)
			}
		}
	}
}

func TestMatcherScanlineSweep(t *testing.T) {
	// Consecutive CostMatrix calls reuse the internal slices; later
	// scanlines must still match a fresh pipeline.
	img1 := rampImage(8, 5)
	img2 := rampImage(8, 5)

	m, err := NewMatcher(img1, img2, luvrange.EuclideanMetric{},
		WithSteps(2), WithDistanceCap(20))
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	for _, y := range []int{0, 2, 4} {
		costs, err := m.CostMatrix(y)
		if err != nil {
			t.Fatalf("CostMatrix(%d): %v", y, err)
		}
		want := buildCorrelation(t, img1, img2, y, 2, 20)
		for x1 := range costs {
			for x2 := range costs[x1] {
				if got, w := costs[x1][x2], want.Cost(x1, x2); math.Abs(got-w) > 1e-12 {
					t.Errorf("y=%d costs[%d][%d] = %v, want %v", y, x1, x2, got, w)
				}
			}
		}
	}
}

func TestMatcherSelfMatchDiagonal(t *testing.T) {
	// Matching an image against itself must score the diagonal at 0.
	img := rampImage(9, 4)
	m, err := NewMatcher(img, img, luvrange.EuclideanMetric{}, WithSteps(3), WithDistanceCap(9))
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	costs, err := m.CostMatrix(2)
	if err != nil {
		t.Fatalf("CostMatrix: %v", err)
	}
	for x := range costs {
		if costs[x][x] != 0 {
			t.Errorf("self cost at x=%d is %v, want 0", x, costs[x][x])
		}
	}
}

func TestMatcherErrors(t *testing.T) {
	img := flatImage(4, 4, 1, 2, 3)
	short := flatImage(4, 3, 1, 2, 3)

	tests := []struct {
		name string
		img2 *luvrange.Image
		opts []MatcherOption
	}{
		{"height mismatch", short, nil},
		{"negative steps", img, []MatcherOption{WithSteps(-1)}},
		{"zero cap", img, []MatcherOption{WithDistanceCap(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMatcher(img, tt.img2, luvrange.EuclideanMetric{}, tt.opts...); err == nil {
				t.Error("NewMatcher succeeded, want error")
			}
		})
	}

	t.Run("scanline out of range", func(t *testing.T) {
		m, err := NewMatcher(img, img, luvrange.EuclideanMetric{})
		if err != nil {
			t.Fatalf("NewMatcher: %v", err)
		}
		defer m.Close()
		if _, err := m.CostMatrix(4); err != ErrScanlineRange {
			t.Errorf("CostMatrix(4) = %v, want ErrScanlineRange", err)
		}
	})
}

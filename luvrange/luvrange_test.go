package luvrange

import (
	"math"
	"testing"
)

func TestRangeGap(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want float64
	}{
		{"identical", Range{1, 3}, Range{1, 3}, 0},
		{"overlapping", Range{1, 3}, Range{2, 5}, 0},
		{"touching", Range{1, 3}, Range{3, 5}, 0},
		{"disjoint above", Range{1, 3}, Range{5, 7}, 2},
		{"disjoint below", Range{5, 7}, Range{1, 3}, 2},
		{"points", Point(2), Point(6), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Gap(tt.b); got != tt.want {
				t.Errorf("Gap(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Gap(tt.a); got != tt.want {
				t.Errorf("Gap is not symmetric: %v vs %v", got, tt.want)
			}
		})
	}
}

func TestRangeUnion(t *testing.T) {
	got := Range{1, 3}.Union(Range{-2, 2})
	if got != (Range{-2, 3}) {
		t.Errorf("Union = %v, want {-2 3}", got)
	}
}

func TestMetrics(t *testing.T) {
	a := PointLuv(50, 10, -10)
	b := PointLuv(53, 14, -10)

	t.Run("euclidean", func(t *testing.T) {
		m := EuclideanMetric{}
		if d := m.Distance(a, a); d != 0 {
			t.Errorf("Distance(a,a) = %v, want 0", d)
		}
		want := 5.0 // 3-4-5 triangle in the L,u plane
		if d := m.Distance(a, b); math.Abs(d-want) > 1e-12 {
			t.Errorf("Distance = %v, want %v", d, want)
		}
		if m.Distance(a, b) != m.Distance(b, a) {
			t.Error("Distance is not symmetric")
		}
	})

	t.Run("gap", func(t *testing.T) {
		m := GapMetric{}
		// Overlapping ranges on every channel: distance 0 even though the
		// midpoints differ.
		wide := LuvRange{L: Range{40, 60}, U: Range{0, 20}, V: Range{-20, 0}}
		if d := m.Distance(wide, a); d != 0 {
			t.Errorf("Distance of overlapping ranges = %v, want 0", d)
		}
		if d := m.Distance(a, b); math.Abs(d-5) > 1e-12 {
			t.Errorf("Distance of points = %v, want 5", d)
		}
	})
}

func TestRGBToLuv(t *testing.T) {
	t.Run("white", func(t *testing.T) {
		l, u, v := RGBToLuv(1, 1, 1)
		if math.Abs(l-100) > 0.01 {
			t.Errorf("white L* = %v, want 100", l)
		}
		if math.Abs(u) > 0.05 || math.Abs(v) > 0.05 {
			t.Errorf("white u*,v* = %v,%v, want ~0 (achromatic)", u, v)
		}
	})
	t.Run("black", func(t *testing.T) {
		l, u, v := RGBToLuv(0, 0, 0)
		if l != 0 || u != 0 || v != 0 {
			t.Errorf("black = %v,%v,%v, want 0,0,0", l, u, v)
		}
	})
	t.Run("grey is achromatic", func(t *testing.T) {
		l, u, v := RGBToLuv(0.5, 0.5, 0.5)
		if l <= 0 || l >= 100 {
			t.Errorf("grey L* = %v, want within (0, 100)", l)
		}
		if math.Abs(u) > 0.05 || math.Abs(v) > 0.05 {
			t.Errorf("grey u*,v* = %v,%v, want ~0", u, v)
		}
	})
	t.Run("red", func(t *testing.T) {
		l, u, v := RGBToLuv(1, 0, 0)
		if math.Abs(l-53.23) > 0.05 {
			t.Errorf("red L* = %v, want ~53.23", l)
		}
		if u <= 0 || v <= 0 {
			t.Errorf("red u*,v* = %v,%v, want both positive", u, v)
		}
	})
}

// Package luvrange provides colour-range images: per-pixel CIE L*u*v* values
// paired with a per-channel tolerance range, plus distance metrics over them.
//
// A colour range generalises a point colour: a pixel at full resolution has a
// degenerate range (Min == Max), while a pixel in a coarser pyramid level
// spans the ranges of the pixels it summarises. Distance metrics over ranges
// stay small as long as the ranges overlap, which makes matching robust to
// sampling artefacts at coarse scales.
package luvrange

import "math"

// Range is a closed interval on one colour channel.
type Range struct {
	Min, Max float64
}

// Point returns a degenerate range containing only v.
func Point(v float64) Range {
	return Range{Min: v, Max: v}
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) * 0.5
}

// Union returns the smallest range containing both r and o.
func (r Range) Union(o Range) Range {
	return Range{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

// Gap returns the distance between the two ranges, or 0 if they overlap.
func (r Range) Gap(o Range) float64 {
	if r.Min > o.Max {
		return r.Min - o.Max
	}
	if o.Min > r.Max {
		return o.Min - r.Max
	}
	return 0
}

// LuvRange is a colour-range descriptor: a CIE L*u*v* colour with a
// per-channel tolerance range.
type LuvRange struct {
	L, U, V Range
}

// PointLuv returns a degenerate descriptor for a single L*u*v* colour.
func PointLuv(l, u, v float64) LuvRange {
	return LuvRange{L: Point(l), U: Point(u), V: Point(v)}
}

// Union returns the channel-wise union of two descriptors.
func (lr LuvRange) Union(o LuvRange) LuvRange {
	return LuvRange{
		L: lr.L.Union(o.L),
		U: lr.U.Union(o.U),
		V: lr.V.Union(o.V),
	}
}

// Metric measures the distance between two colour-range descriptors.
// Implementations must be pure and stateless: Distance may be called any
// number of times, from any goroutine, and must return a non-negative value.
type Metric interface {
	Distance(a, b LuvRange) float64
}

// EuclideanMetric measures the L2 distance between range midpoints. It
// ignores the tolerance part of the descriptors, treating each as a point
// colour. Suitable for full-resolution images where ranges are degenerate.
type EuclideanMetric struct{}

// Distance implements Metric.
func (EuclideanMetric) Distance(a, b LuvRange) float64 {
	dl := a.L.Mid() - b.L.Mid()
	du := a.U.Mid() - b.U.Mid()
	dv := a.V.Mid() - b.V.Mid()
	return math.Sqrt(dl*dl + du*du + dv*dv)
}

// GapMetric measures the L2 distance between the per-channel range gaps.
// Two descriptors whose ranges overlap on every channel have distance 0,
// which is the behaviour wanted when comparing coarse pyramid levels.
type GapMetric struct{}

// Distance implements Metric.
func (GapMetric) Distance(a, b LuvRange) float64 {
	gl := a.L.Gap(b.L)
	gu := a.U.Gap(b.U)
	gv := a.V.Gap(b.V)
	return math.Sqrt(gl*gl + gu*gu + gv*gv)
}

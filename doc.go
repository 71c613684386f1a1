// Package diffuse computes diffusion-weighted stereo correlation scores.
//
// # Overview
//
// Given two rectified images in colour-range form (see the luvrange
// subpackage), diffuse builds, per scanline, a soft support window around
// every pixel that follows image structure instead of a fixed rectangle, and
// uses the windows to score candidate pixel pairs across the two images.
// The result is a smooth, mask-aware matching cost a disparity-search stage
// can consume; no disparity selection happens here.
//
// # Pipeline
//
// Three objects form a strict pipeline:
//
//   - [DiffusionWeight]: per pixel, four normalised permeabilities derived
//     from the colour-range distance to each axis-aligned neighbour.
//   - [DiffusionSlice]: for one scanline and a walk radius, the permeabilities
//     propagated into a diamond-shaped per-pixel support window.
//   - [DiffuseCorrelation]: a capped, symmetric matching cost between any two
//     x coordinates on the paired scanlines of two images.
//
// All three are build-once/query-many values: populate with Create or Setup,
// then query from as many goroutines as you like. [Matcher] wraps the
// pipeline and computes whole cost matrices with per-scanline parallelism.
//
// # Quick start
//
//	left := luvrange.FromImage(leftImg)
//	right := luvrange.FromImage(rightImg)
//
//	m, err := diffuse.NewMatcher(left, right, luvrange.EuclideanMetric{},
//		diffuse.WithSteps(4), diffuse.WithDistanceCap(25))
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
//	costs, err := m.CostMatrix(120) // costs[x1][x2] for scanline 120
//
// Masked pixels, image boundaries and unreachable offsets never produce
// errors: they fold into zero weights and cap-valued costs so downstream
// numeric code needs no validity special cases.
package diffuse

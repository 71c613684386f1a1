package diffuse

import (
	"github.com/gostereo/diffuse/luvrange"
)

// DiffusionSlice holds, for every pixel of one scanline, a diamond-shaped
// support window of diffused weight: the DiffusionWeight permeabilities
// propagated outward over all lattice offsets (u, v) with |u|+|v| <= steps.
// Weight never crosses a mask or the image boundary, so the window follows
// image structure. Each valid pixel's window is normalised to total 1;
// masked pixels have an all-zero window.
//
// The object keeps its internal storage between Create calls and only
// reallocates when the image width or the step count changes, so one slice
// can sweep a whole image (or a video) without per-scanline allocation.
// Building a slice is O(steps squared) per pixel and is the dominant cost of
// the pipeline; it is never going to be fast.
type DiffusionSlice struct {
	width int
	y     int
	steps int
	ready bool

	// data holds one window per x: slotCount weights in diamond order.
	// Offsets unreachable from a pixel, and whole columns for masked
	// pixels, stay at 0.
	data      []float64
	slotCount int

	// offsets maps (u+steps, v+steps) in a (2*steps+1)^2 table to a slot
	// in a window, or -1 outside the diamond.
	offsets []int

	// diamond is the inverse mapping: slot to (u, v).
	diamond [][2]int

	// front, next and acc are per-pixel propagation scratch, kept to avoid
	// reallocating per x.
	front, next, acc []float64
}

// Create builds the windows for scanline y of img, walking up to steps
// pixels along the four directions of dw. The propagation is a sweep over
// increasing Manhattan radius: the mass reaching an offset on sweep r is the
// sum over its neighbours of their sweep r-1 mass times the permeability at
// the neighbour's pixel toward the offset. Mass arriving at the same offset
// on different sweeps, or over different paths, adds up; the accumulated
// window is normalised once the sweeps finish.
func (s *DiffusionSlice) Create(y, steps int, img *luvrange.Image, dw *DiffusionWeight, opts ...Option) error {
	o := defaultCreateOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if steps < 0 {
		return ErrInvalidSteps
	}
	if y < 0 || y >= img.Height() {
		return ErrScanlineRange
	}
	if !dw.Ready() {
		return ErrNotReady
	}
	if dw.Width() != img.Width() || dw.Height() != img.Height() {
		return ErrWidthMismatch
	}

	width := img.Width()
	reuse := s.data != nil && s.width == width && s.steps == steps
	if reuse {
		clear(s.data)
	} else {
		s.buildLayout(width, steps)
	}
	s.y = y
	s.ready = false

	Logger().Debug("diffusion slice create",
		"y", y, "steps", steps, "width", width, "slots", s.slotCount, "reuse", reuse)

	span := 2*steps + 1
	for x := 0; x < width; x++ {
		if o.cancelled() {
			return o.ctx.Err()
		}
		if !img.Valid(x, y) {
			o.report(x+1, width)
			continue
		}

		clear(s.front)
		clear(s.acc)
		origin := s.offsets[steps*span+steps] // (u, v) = (0, 0)
		s.front[origin] = 1
		s.acc[origin] = 1

		for r := 1; r <= steps; r++ {
			clear(s.next)
			for slot, mass := range s.front {
				if mass == 0 {
					continue
				}
				u, v := s.diamond[slot][0], s.diamond[slot][1]
				for d := 0; d < 4; d++ {
					// Permeability at the source pixel of the hop;
					// zero toward masked or off-image pixels.
					p := dw.Get(x+u, y+v, d)
					if p == 0 {
						continue
					}
					nu, nv := u+dirStep[d][0], v+dirStep[d][1]
					if abs(nu)+abs(nv) > steps {
						continue
					}
					s.next[s.offsets[(nv+steps)*span+(nu+steps)]] += mass * p
				}
			}
			for slot, mass := range s.next {
				s.acc[slot] += mass
			}
			s.front, s.next = s.next, s.front
		}

		total := 0.0
		for _, mass := range s.acc {
			total += mass
		}
		// total >= 1: the origin always holds its initial unit of mass.
		col := s.data[x*s.slotCount : (x+1)*s.slotCount]
		for slot, mass := range s.acc {
			col[slot] = mass / total
		}
		o.report(x+1, width)
	}

	s.ready = true
	return nil
}

// buildLayout sizes the storage and rebuilds the diamond offset tables for a
// new (width, steps) shape.
func (s *DiffusionSlice) buildLayout(width, steps int) {
	span := 2*steps + 1
	s.width = width
	s.steps = steps

	s.offsets = make([]int, span*span)
	s.diamond = s.diamond[:0]
	for v := -steps; v <= steps; v++ {
		for u := -steps; u <= steps; u++ {
			i := (v+steps)*span + (u + steps)
			if abs(u)+abs(v) > steps {
				s.offsets[i] = -1
				continue
			}
			s.offsets[i] = len(s.diamond)
			s.diamond = append(s.diamond, [2]int{u, v})
		}
	}
	s.slotCount = len(s.diamond)

	s.data = make([]float64, width*s.slotCount)
	s.front = make([]float64, s.slotCount)
	s.next = make([]float64, s.slotCount)
	s.acc = make([]float64, s.slotCount)
}

// Get returns the accumulated weight at window offset (u, v) from pixel x on
// the slice's scanline. It returns exactly 0 when |u|+|v| > steps, when the
// offset was unreachable from x without crossing a mask or the image
// boundary, or when pixel x itself is masked.
func (s *DiffusionSlice) Get(x, u, v int) float64 {
	if u < -s.steps || u > s.steps || v < -s.steps || v > s.steps {
		return 0
	}
	span := 2*s.steps + 1
	slot := s.offsets[(v+s.steps)*span+(u+s.steps)]
	if slot < 0 {
		return 0
	}
	return s.data[x*s.slotCount+slot]
}

// Width returns the width of the slice.
func (s *DiffusionSlice) Width() int {
	return s.width
}

// Y returns the scanline the slice was built for.
func (s *DiffusionSlice) Y() int {
	return s.y
}

// Steps returns the walk radius of the slice.
func (s *DiffusionSlice) Steps() int {
	return s.steps
}

// Ready reports whether the last Create completed. A cancelled Create leaves
// the slice not ready; it must not be queried until rebuilt.
func (s *DiffusionSlice) Ready() bool {
	return s.ready
}

// abs is integer absolute value.
func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

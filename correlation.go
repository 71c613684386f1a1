package diffuse

import (
	"github.com/gostereo/diffuse/luvrange"
)

// DiffuseCorrelation scores pixel pairs across two images on matching
// scanlines. The score for a pair is the colour-range distance between the
// pixels under each diamond offset, weighted by the sum of the two support
// windows at that offset, halved, and capped. It is a distance metric: 0 for
// a perfect match, rising to the cap as the diffused neighbourhoods diverge,
// and exactly the cap when a queried pixel is masked or off-image.
//
// The object is a pure view: it stores references to the two images and the
// two slices but owns none of them, and all four must outlive it. After
// Setup, Cost may be called freely from any number of goroutines.
type DiffuseCorrelation struct {
	metric  luvrange.Metric
	distCap float64

	img1 *luvrange.Image
	dif1 *DiffusionSlice
	img2 *luvrange.Image
	dif2 *DiffusionSlice
}

// Setup stores the collaborators and validates that they fit together: the
// slices must be ready, built with the same walk radius and the same
// scanline, and each must match its image's width. The distance cap bounds
// every per-offset distance and must be positive.
func (c *DiffuseCorrelation) Setup(metric luvrange.Metric, distCap float64,
	img1 *luvrange.Image, dif1 *DiffusionSlice,
	img2 *luvrange.Image, dif2 *DiffusionSlice) error {

	if distCap <= 0 {
		return ErrInvalidCap
	}
	if !dif1.Ready() || !dif2.Ready() {
		return ErrNotReady
	}
	if dif1.Steps() != dif2.Steps() {
		return ErrStepsMismatch
	}
	if dif1.Y() != dif2.Y() {
		return ErrScanlineMismatch
	}
	if dif1.Width() != img1.Width() || dif2.Width() != img2.Width() {
		return ErrWidthMismatch
	}

	c.metric = metric
	c.distCap = distCap
	c.img1 = img1
	c.dif1 = dif1
	c.img2 = img2
	c.dif2 = dif2
	return nil
}

// Cost returns the matching cost between pixel x1 of image 1 and pixel x2 of
// image 2 on the slices' scanline. Either pixel being masked or off-image
// yields exactly DistanceCap. Otherwise every diamond offset contributes its
// capped colour-range distance, weighted by the combined window weight there;
// offsets where a fetched pixel is invalid contribute the cap instead. The
// accumulated value is divided by two, making the score symmetric in the two
// windows, and clamped to [0, DistanceCap].
//
// Cost walks the full diamond and calls the metric per offset; it is a slow
// call, intended to be issued many times from a search stage.
func (c *DiffuseCorrelation) Cost(x1, x2 int) float64 {
	y := c.dif1.Y()
	if !c.img1.Valid(x1, y) || !c.img2.Valid(x2, y) {
		return c.distCap
	}

	steps := c.dif1.Steps()
	sum := 0.0
	for v := -steps; v <= steps; v++ {
		rem := steps - abs(v)
		for u := -rem; u <= rem; u++ {
			w := c.dif1.Get(x1, u, v) + c.dif2.Get(x2, u, v)
			if w == 0 {
				continue
			}
			d := c.distCap
			if c.img1.Valid(x1+u, y+v) && c.img2.Valid(x2+u, y+v) {
				d = c.metric.Distance(c.img1.At(x1+u, y+v), c.img2.At(x2+u, y+v))
				if d > c.distCap {
					d = c.distCap
				}
			}
			sum += d * w
		}
	}

	// The two windows each total 1, so sum/2 is already within the cap;
	// the clamp only guards float round-off.
	cost := sum * 0.5
	if cost < 0 {
		cost = 0
	}
	if cost > c.distCap {
		cost = c.distCap
	}
	return cost
}

// Width1 returns the width of image 1.
func (c *DiffuseCorrelation) Width1() int {
	return c.img1.Width()
}

// Width2 returns the width of image 2.
func (c *DiffuseCorrelation) Width2() int {
	return c.img2.Width()
}

// DistanceCap returns the distance cap used.
func (c *DiffuseCorrelation) DistanceCap() float64 {
	return c.distCap
}

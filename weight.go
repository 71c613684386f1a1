package diffuse

import (
	"math"

	"github.com/gostereo/diffuse/luvrange"
)

// Direction codes for DiffusionWeight.Get.
const (
	DirPosX = 0
	DirPosY = 1
	DirNegX = 2
	DirNegY = 3
)

// dirStep maps a direction code to its lattice step.
var dirStep = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// DiffusionWeight stores, for every pixel of a colour-range image, the
// permeability toward each of its four axis-aligned neighbours. The four
// values of a valid pixel are normalised to sum to 1; a masked pixel, or a
// pixel none of whose neighbours can be reached, has all four at 0. Weight
// never flows off the image or onto a masked pixel.
//
// Populate with Create, then query Get freely; the object does not
// synchronise, so Create must finish before any concurrent reads start.
type DiffusionWeight struct {
	width  int
	height int
	data   []float64 // 4 entries per pixel, direction-major within a pixel
	ready  bool
}

// Create fills in the field from a colour-range image and a distance metric.
// Each neighbour distance is scaled by the optional distance multiplier and
// passed through a negative exponential; the minimum distance among the valid
// directions is subtracted first so the exponentials stay in range no matter
// the absolute scale of the distances. The resulting affinities are
// normalised across the valid directions.
//
// Storage is reallocated only when the image dimensions change, so one
// DiffusionWeight can be refilled across frames without garbage.
func (w *DiffusionWeight) Create(img *luvrange.Image, metric luvrange.Metric, opts ...Option) error {
	o := defaultCreateOptions()
	for _, opt := range opts {
		opt(&o)
	}

	width, height := img.Width(), img.Height()
	if w.width != width || w.height != height || w.data == nil {
		w.data = make([]float64, width*height*4)
		w.width = width
		w.height = height
	} else {
		clear(w.data)
	}
	w.ready = false

	Logger().Debug("diffusion weight create",
		"width", width, "height", height, "distMult", o.distMult)

	var dist [4]float64
	var ok [4]bool
	for y := 0; y < height; y++ {
		if o.cancelled() {
			return o.ctx.Err()
		}
		for x := 0; x < width; x++ {
			if !img.Valid(x, y) {
				continue
			}
			p := img.At(x, y)

			minDist := math.Inf(1)
			for d := 0; d < 4; d++ {
				nx, ny := x+dirStep[d][0], y+dirStep[d][1]
				ok[d] = img.Valid(nx, ny)
				if !ok[d] {
					continue
				}
				dist[d] = metric.Distance(p, img.At(nx, ny)) * o.distMult
				if dist[d] < minDist {
					minDist = dist[d]
				}
			}
			if math.IsInf(minDist, 1) {
				continue // isolated pixel, all weights stay 0
			}

			base := (y*width + x) * 4
			sum := 0.0
			for d := 0; d < 4; d++ {
				if !ok[d] {
					continue
				}
				a := math.Exp(minDist - dist[d])
				w.data[base+d] = a
				sum += a
			}
			// sum >= 1: the minimum-distance direction contributes exp(0).
			for d := 0; d < 4; d++ {
				w.data[base+d] /= sum
			}
		}
		o.report(y+1, height)
	}

	w.ready = true
	return nil
}

// Get returns the weight at (x, y) toward the given direction (DirPosX,
// DirPosY, DirNegX, DirNegY). Coordinates must be within the field; the
// weights of a masked pixel are all 0.
func (w *DiffusionWeight) Get(x, y, dir int) float64 {
	return w.data[(y*w.width+x)*4+dir]
}

// Width returns the field width in pixels.
func (w *DiffusionWeight) Width() int {
	return w.width
}

// Height returns the field height in pixels.
func (w *DiffusionWeight) Height() int {
	return w.height
}

// Ready reports whether the last Create completed. A cancelled Create leaves
// the field not ready; it must not be queried until refilled.
func (w *DiffusionWeight) Ready() bool {
	return w.ready
}

// Package tonemap converts unbounded radiance or score fields into
// displayable 8-bit images. It provides a linear scaler with two modes:
// mapping the largest value to full brightness, or matching the field's mean
// to mid grey. It sits outside the correlation pipeline; the stereocost tool
// uses it to visualise cost matrices.
package tonemap

import (
	"image"
	"image/color"
)

// Image is a float RGB field with no upper bound on its values.
type Image struct {
	width  int
	height int
	pix    []float64 // 3 entries per pixel
}

// NewImage creates a black image of the given size.
func NewImage(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		pix:    make([]float64, width*height*3),
	}
}

// FromMatrix builds a grey image from a row-major matrix, mapping m[y][x]
// to the pixel at (x, y).
func FromMatrix(m [][]float64) *Image {
	height := len(m)
	width := 0
	if height > 0 {
		width = len(m[0])
	}
	img := NewImage(width, height)
	for y, row := range m {
		for x, v := range row {
			img.Set(x, y, v, v, v)
		}
	}
	return img
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	return img.height
}

// Set stores an RGB value at (x, y).
func (img *Image) Set(x, y int, r, g, b float64) {
	i := (y*img.width + x) * 3
	img.pix[i] = r
	img.pix[i+1] = g
	img.pix[i+2] = b
}

// At returns the RGB value at (x, y).
func (img *Image) At(x, y int) (r, g, b float64) {
	i := (y*img.width + x) * 3
	return img.pix[i], img.pix[i+1], img.pix[i+2]
}

// Mode selects how Scaler chooses its scale factor.
type Mode int

const (
	// ModeMax scales so the largest component maps to full brightness.
	ModeMax Mode = iota

	// ModeMean scales so the mean component maps to mid grey.
	ModeMean
)

// Scaler linearly rescales a float image into display range.
type Scaler struct {
	Mode Mode
}

// Apply maps src into an 8-bit image. Values are scaled by the mode's
// factor and clamped to [0, 1]; an all-zero source maps to black.
func (s Scaler) Apply(src *Image) *image.NRGBA {
	scale := s.factor(src)
	out := image.NewNRGBA(image.Rect(0, 0, src.width, src.height))
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			r, g, b := src.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: to8(r * scale),
				G: to8(g * scale),
				B: to8(b * scale),
				A: 255,
			})
		}
	}
	return out
}

// factor computes the linear scale for src under the scaler's mode.
func (s Scaler) factor(src *Image) float64 {
	switch s.Mode {
	case ModeMean:
		sum := 0.0
		for _, v := range src.pix {
			sum += v
		}
		if sum == 0 {
			return 0
		}
		mean := sum / float64(len(src.pix))
		return 0.5 / mean
	default:
		max := 0.0
		for _, v := range src.pix {
			if v > max {
				max = v
			}
		}
		if max == 0 {
			return 0
		}
		return 1 / max
	}
}

// to8 clamps v to [0, 1] and quantises to 8 bits.
func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

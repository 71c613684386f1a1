package luvrange

import (
	"image"

	"golang.org/x/image/draw"
)

// Image is a 2D field of colour-range descriptors with a per-pixel validity
// mask. Masked pixels carry no usable colour and are skipped by every
// consumer. An Image is immutable by convention once handed to a computation;
// nothing in this package synchronises access.
type Image struct {
	width  int
	height int
	data   []LuvRange
	valid  []bool
}

// NewImage creates an image of the given size with all pixels valid and set
// to the zero descriptor.
func NewImage(width, height int) *Image {
	img := &Image{
		width:  width,
		height: height,
		data:   make([]LuvRange, width*height),
		valid:  make([]bool, width*height),
	}
	for i := range img.valid {
		img.valid[i] = true
	}
	return img
}

// FromImage converts an image to a colour-range image. Every pixel becomes a
// degenerate (point) range in L*u*v*. Fully transparent pixels are masked.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())

	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := y*img.width + x
			if a == 0 {
				img.valid[i] = false
				continue
			}
			l, u, v := RGBToLuv(float64(r)/65535, float64(g)/65535, float64(b)/65535)
			img.data[i] = PointLuv(l, u, v)
		}
	}
	return img
}

// FromImageScaled resizes src to width x height with Catmull-Rom resampling
// before converting it, for matching at a reduced working resolution.
func FromImageScaled(src image.Image, width, height int) *Image {
	bounds := src.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return FromImage(src)
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Src, nil)
	return FromImage(scaled)
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	return img.height
}

// At returns the descriptor at (x, y). The coordinates must be in bounds;
// callers that may be off-image should check Valid first.
func (img *Image) At(x, y int) LuvRange {
	return img.data[y*img.width+x]
}

// Valid reports whether (x, y) is inside the image and not masked.
func (img *Image) Valid(x, y int) bool {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return false
	}
	return img.valid[y*img.width+x]
}

// Set stores a descriptor at (x, y).
func (img *Image) Set(x, y int, lr LuvRange) {
	img.data[y*img.width+x] = lr
}

// SetValid sets the validity flag at (x, y). Masked pixels contribute zero
// weight and cap-valued cost to every computation that touches them.
func (img *Image) SetValid(x, y int, ok bool) {
	img.valid[y*img.width+x] = ok
}

package diffuse

import "errors"

// Contract errors. These indicate caller bugs (wrong composition of the
// pipeline), not runtime conditions: validity of individual pixels is never
// an error and folds into zero weights and capped costs instead.
var (
	// ErrNotReady is returned when an object that failed or cancelled its
	// Create is passed to a later pipeline stage.
	ErrNotReady = errors.New("diffuse: object not ready")

	// ErrStepsMismatch is returned by Setup when the two slices were built
	// with different walk radii.
	ErrStepsMismatch = errors.New("diffuse: slice steps mismatch")

	// ErrWidthMismatch is returned by Setup when a slice was not built from
	// the image it is paired with.
	ErrWidthMismatch = errors.New("diffuse: image and slice width mismatch")

	// ErrScanlineMismatch is returned by Setup when the two slices cover
	// different scanlines.
	ErrScanlineMismatch = errors.New("diffuse: slice scanline mismatch")

	// ErrInvalidCap is returned by Setup when the distance cap is not
	// positive.
	ErrInvalidCap = errors.New("diffuse: distance cap must be positive")

	// ErrInvalidSteps is returned by Create when the walk radius is negative.
	ErrInvalidSteps = errors.New("diffuse: steps must be non-negative")

	// ErrScanlineRange is returned by Create and CostMatrix when the
	// requested scanline is outside the image.
	ErrScanlineRange = errors.New("diffuse: scanline out of range")
)

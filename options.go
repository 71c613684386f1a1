package diffuse

import "context"

// ProgressFunc receives monotonic progress updates from a Create call:
// done counts completed work units out of total. It is called from the
// goroutine running Create and must not block for long. Progress is purely
// observational; results do not depend on it.
type ProgressFunc func(done, total int)

// Option configures a Create call on DiffusionWeight or DiffusionSlice.
//
// Example:
//
//	var dw diffuse.DiffusionWeight
//	err := dw.Create(img, metric,
//		diffuse.WithDistanceMultiplier(2),
//		diffuse.WithCancel(ctx))
type Option func(*createOptions)

// createOptions holds optional configuration for Create calls.
type createOptions struct {
	distMult float64
	progress ProgressFunc
	ctx      context.Context
}

// defaultCreateOptions returns the default Create options.
func defaultCreateOptions() createOptions {
	return createOptions{
		distMult: 1,
		ctx:      context.Background(),
	}
}

// WithDistanceMultiplier scales colour-range distances before they are turned
// into permeabilities. Values above 1 sharpen the diffusion (weight
// concentrates on the most similar neighbour); values below 1 flatten it.
// Only meaningful for DiffusionWeight.Create.
func WithDistanceMultiplier(m float64) Option {
	return func(o *createOptions) {
		o.distMult = m
	}
}

// WithProgress installs a progress callback for the Create call.
func WithProgress(p ProgressFunc) Option {
	return func(o *createOptions) {
		o.progress = p
	}
}

// WithCancel makes the Create call poll ctx and abort early when it is
// cancelled. A cancelled Create returns ctx's error and leaves the object
// not ready; querying a not-ready object is a caller bug.
func WithCancel(ctx context.Context) Option {
	return func(o *createOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// report invokes the progress callback if one is installed.
func (o *createOptions) report(done, total int) {
	if o.progress != nil {
		o.progress(done, total)
	}
}

// cancelled reports whether the polled context has been cancelled.
func (o *createOptions) cancelled() bool {
	select {
	case <-o.ctx.Done():
		return true
	default:
		return false
	}
}

package diffuse

import (
	"fmt"

	"github.com/gostereo/diffuse/internal/parallel"
	"github.com/gostereo/diffuse/luvrange"
)

// MatcherOption configures a Matcher during creation.
type MatcherOption func(*matcherOptions)

// matcherOptions holds optional configuration for NewMatcher.
type matcherOptions struct {
	steps    int
	distCap  float64
	distMult float64
	workers  int
}

// defaultMatcherOptions returns the default matcher options.
func defaultMatcherOptions() matcherOptions {
	return matcherOptions{
		steps:    3,
		distCap:  25,
		distMult: 1,
	}
}

// WithSteps sets the diffusion walk radius. Larger radii give smoother,
// more structure-aware costs at O(steps squared) extra work per pixel.
func WithSteps(steps int) MatcherOption {
	return func(o *matcherOptions) {
		o.steps = steps
	}
}

// WithDistanceCap sets the cost cap, which is also the cost assigned to
// masked or off-image pixels.
func WithDistanceCap(cap float64) MatcherOption {
	return func(o *matcherOptions) {
		o.distCap = cap
	}
}

// WithMatcherDistanceMultiplier scales distances before the diffusion
// weights are derived, as WithDistanceMultiplier does for a bare
// DiffusionWeight.
func WithMatcherDistanceMultiplier(m float64) MatcherOption {
	return func(o *matcherOptions) {
		o.distMult = m
	}
}

// WithWorkers sets the worker count for cost computation.
// Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) MatcherOption {
	return func(o *matcherOptions) {
		o.workers = n
	}
}

// Matcher drives the full pipeline for an image pair: it owns a
// DiffusionWeight per image, rebuilds a slice pair per requested scanline,
// and evaluates cost matrices on a worker pool. The per-scanline slices are
// reused across CostMatrix calls, so sweeping an image top to bottom does
// not allocate per scanline.
//
// Matcher methods must not be called concurrently with each other; the
// parallelism lives inside CostMatrix, whose Cost evaluations are pure.
type Matcher struct {
	img1, img2 *luvrange.Image
	metric     luvrange.Metric
	opts       matcherOptions

	dw1, dw2   DiffusionWeight
	dif1, dif2 DiffusionSlice
	corr       DiffuseCorrelation
	pool       *parallel.Pool
}

// NewMatcher prepares a matcher for a rectified image pair. The images must
// have the same height (they are matched scanline against scanline) and are
// referenced, not copied; they must stay unmodified while the matcher is in
// use. The directional weight fields for both images are computed here, the
// expensive per-scanline work happens in CostMatrix.
func NewMatcher(img1, img2 *luvrange.Image, metric luvrange.Metric, opts ...MatcherOption) (*Matcher, error) {
	o := defaultMatcherOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if img1.Height() != img2.Height() {
		return nil, fmt.Errorf("diffuse: image heights differ: %d vs %d",
			img1.Height(), img2.Height())
	}
	if o.steps < 0 {
		return nil, ErrInvalidSteps
	}
	if o.distCap <= 0 {
		return nil, ErrInvalidCap
	}

	m := &Matcher{
		img1:   img1,
		img2:   img2,
		metric: metric,
		opts:   o,
	}

	if err := m.dw1.Create(img1, metric, WithDistanceMultiplier(o.distMult)); err != nil {
		return nil, err
	}
	if err := m.dw2.Create(img2, metric, WithDistanceMultiplier(o.distMult)); err != nil {
		return nil, err
	}

	m.pool = parallel.New(o.workers)
	Logger().Info("matcher ready",
		"width1", img1.Width(), "width2", img2.Width(), "height", img1.Height(),
		"steps", o.steps, "cap", o.distCap, "workers", m.pool.Workers())
	return m, nil
}

// CostMatrix computes the full matching-cost matrix for scanline y:
// result[x1][x2] is the cost of matching pixel x1 of image 1 against pixel
// x2 of image 2. Rows are evaluated in parallel across the pool.
func (m *Matcher) CostMatrix(y int) ([][]float64, error) {
	if y < 0 || y >= m.img1.Height() {
		return nil, ErrScanlineRange
	}

	if err := m.dif1.Create(y, m.opts.steps, m.img1, &m.dw1); err != nil {
		return nil, err
	}
	if err := m.dif2.Create(y, m.opts.steps, m.img2, &m.dw2); err != nil {
		return nil, err
	}
	if err := m.corr.Setup(m.metric, m.opts.distCap, m.img1, &m.dif1, m.img2, &m.dif2); err != nil {
		return nil, err
	}

	w1, w2 := m.corr.Width1(), m.corr.Width2()
	costs := make([][]float64, w1)
	m.pool.ExecuteN(w1, func(x1 int) {
		row := make([]float64, w2)
		for x2 := 0; x2 < w2; x2++ {
			row[x2] = m.corr.Cost(x1, x2)
		}
		costs[x1] = row
	})
	return costs, nil
}

// Steps returns the walk radius the matcher was built with.
func (m *Matcher) Steps() int {
	return m.opts.steps
}

// DistanceCap returns the cost cap the matcher was built with.
func (m *Matcher) DistanceCap() float64 {
	return m.opts.distCap
}

// Close releases the worker pool. The matcher must not be used afterwards.
func (m *Matcher) Close() {
	m.pool.Close()
}

package turbulence

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/turbgrid/internal/magfield"
	"github.com/banshee-data/turbgrid/internal/monitoring"
)

// Grid is a turbulent magnetic field sampled on a periodic cubic grid.
// Construction synthesises the field; SetSeed regenerates it in full.
//
// Field lookups (Field, Cell) are safe for concurrent use with each other
// and with SetSeed; they see either the old or the new field, never a mix.
// Concurrent SetSeed calls are serialised.
type Grid struct {
	*magfield.VectorGrid

	params Params

	reseed sync.Mutex // serialises SetSeed

	// mu guards the realisation metadata and is held for writing while the
	// cells are swapped, so Snapshot sees cells and seed from one synthesis.
	mu     sync.RWMutex
	opts   Options
	inBand int
	weight float64
}

// New validates the inputs and synthesises a grid. Configuration problems
// are reported before any random draw or transform work; see IsConfigError.
func New(geom Geometry, p Params, opts Options) (*Grid, error) {
	if opts.Sampling == "" {
		opts.Sampling = SamplingSequential
	}
	if err := validate(geom, p, opts); err != nil {
		return nil, err
	}
	vg, err := magfield.NewVectorGrid(geom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	g := &Grid{
		VectorGrid: vg,
		params:     p,
		opts:       opts,
	}
	if err := g.initialize(opts); err != nil {
		return nil, err
	}
	return g, nil
}

// SetSeed regenerates every cell from seed. Parameters and geometry are
// unchanged. On error the grid keeps its previous field and seed.
func (g *Grid) SetSeed(seed int64) error {
	g.reseed.Lock()
	defer g.reseed.Unlock()

	g.mu.RLock()
	opts := g.opts
	g.mu.RUnlock()
	return g.initialize(opts.WithSeed(seed))
}

// initialize runs one full synthesis with opts and installs the cells
// together with opts and the synthesis metadata.
func (g *Grid) initialize(opts Options) error {
	clock := opts.clock()
	start := clock.Now()
	res, err := synthesize(g.Geometry, g.params, opts, NewRandom(opts.Seed))
	if err != nil {
		return err
	}

	g.mu.Lock()
	if err := g.ReplaceCells(res.cells); err != nil {
		g.mu.Unlock()
		return err
	}
	g.opts = opts
	g.inBand = res.inBand
	g.weight = res.weight
	g.mu.Unlock()

	monitoring.Logf("[TurbulentGrid] synthesised n=%d seed=%d sampling=%s in_band=%d weight=%.4g elapsed=%v",
		g.Samples, opts.Seed, opts.Sampling, res.inBand, res.weight, clock.Since(start))
	return nil
}

// state returns the options and cells of the current realisation, read
// together under the metadata lock.
func (g *Grid) state() (Options, []r3.Vec) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.opts, g.Cells()
}

type synthesis struct {
	cells  []r3.Vec
	inBand int
	weight float64
}

// synthesize builds a field from scratch. The frequency-domain buffers are
// local to this call and become garbage on every return path.
func synthesize(geom Geometry, p Params, opts Options, src RandomSource) (*synthesis, error) {
	n := geom.Samples
	workers := opts.workers()
	kMin, kMax := p.Band(geom.Spacing)

	spec := newSpectrum(n)
	switch opts.Sampling {
	case SamplingParallel:
		spec.sampleParallel(kMin, kMax, p.SpectralIndex, opts.Seed, workers)
	default:
		spec.sampleSequential(kMin, kMax, p.SpectralIndex, src)
	}
	if spec.inBand == 0 {
		return nil, fmt.Errorf("%w: kMin=%g kMax=%g on a %d³ grid", ErrEmptyBand, kMin, kMax, n)
	}

	bx := inverseTransform(spec.bx, n, workers)
	by := inverseTransform(spec.by, n, workers)
	bz := inverseTransform(spec.bz, n, workers)

	cells, weight, err := normalize(bx, by, bz, p.Brms)
	if err != nil {
		return nil, err
	}
	return &synthesis{cells: cells, inBand: spec.inBand, weight: weight}, nil
}

// RMSFieldStrength returns the target RMS field strength Brms.
func (g *Grid) RMSFieldStrength() float64 {
	return g.params.Brms
}

// PowerSpectralIndex returns the spectral index of the mode variance.
func (g *Grid) PowerSpectralIndex() float64 {
	return g.params.SpectralIndex
}

// CorrelationLength returns the closed-form correlation length, or NaN for
// the unsupported spectral indices -2 and -3.
func (g *Grid) CorrelationLength() float64 {
	lc, err := CorrelationLength(g.params.LMin, g.params.LMax, g.params.SpectralIndex)
	if err != nil {
		return math.NaN()
	}
	return lc
}

// Params returns the turbulence parameters.
func (g *Grid) Params() Params {
	return g.params
}

// Seed returns the seed of the current realisation.
func (g *Grid) Seed() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.opts.Seed
}

// Sampling returns the sampling mode.
func (g *Grid) Sampling() SamplingMode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.opts.Sampling
}

// InBandModes returns how many half-grid wavevectors carried power in the
// last synthesis.
func (g *Grid) InBandModes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inBand
}

// NormalizationWeight returns the factor applied to the raw transform to
// reach Brms.
func (g *Grid) NormalizationWeight() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.weight
}

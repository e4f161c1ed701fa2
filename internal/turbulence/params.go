package turbulence

import (
	"fmt"
	"math"
	"runtime"

	"github.com/banshee-data/turbgrid/internal/magfield"
	"github.com/banshee-data/turbgrid/internal/timeutil"
)

// Geometry is re-exported from magfield so callers configure a turbulent grid
// without importing the storage container package.
type Geometry = magfield.Geometry

// KolmogorovIndex is the spectral index of a Kolmogorov spectrum, -11/3.
const KolmogorovIndex = -11.0 / 3.0

// Params are the turbulence parameters of a grid. They are immutable once a
// Grid has been built from them.
type Params struct {
	LMin          float64 // smallest turbulent length scale
	LMax          float64 // largest turbulent length scale
	Brms          float64 // target RMS field strength
	SpectralIndex float64 // power-law exponent of the mode variance, |k|^SpectralIndex
}

// Validate checks the parameters in isolation from any grid.
func (p Params) Validate() error {
	if !(p.LMin > 0) || !(p.LMax > 0) {
		return fmt.Errorf("%w: length scales must be positive, got lMin=%v lMax=%v", ErrInvalidParams, p.LMin, p.LMax)
	}
	if math.IsInf(p.LMax, 0) {
		return fmt.Errorf("%w: lMax must be finite", ErrInvalidParams)
	}
	if p.LMin >= p.LMax {
		return fmt.Errorf("%w: lMin must be smaller than lMax, got lMin=%v lMax=%v", ErrInvalidParams, p.LMin, p.LMax)
	}
	if !(p.Brms > 0) {
		return fmt.Errorf("%w: Brms must be positive, got %v", ErrInvalidParams, p.Brms)
	}
	if math.IsNaN(p.SpectralIndex) || math.IsInf(p.SpectralIndex, 0) {
		return fmt.Errorf("%w: spectral index must be finite, got %v", ErrInvalidParams, p.SpectralIndex)
	}
	return nil
}

// Band returns the wavenumber band [kMin, kMax] in units of inverse cells.
// Longer length scales map to smaller wavenumbers.
func (p Params) Band(spacing float64) (kMin, kMax float64) {
	return spacing / p.LMax, spacing / p.LMin
}

// SamplingMode selects how random draws are assigned to wavevectors.
type SamplingMode string

const (
	// SamplingSequential draws every value from one generator in row-major
	// wavevector order.
	SamplingSequential SamplingMode = "sequential"
	// SamplingParallel gives each wavevector its own stream keyed by
	// (seed, flat index), so results do not depend on worker scheduling.
	SamplingParallel SamplingMode = "parallel"
)

// Valid reports whether m names a known mode.
func (m SamplingMode) Valid() bool {
	return m == SamplingSequential || m == SamplingParallel
}

// DefaultSeed is used when a grid is built without an explicit seed.
const DefaultSeed int64 = 0

// Options control how synthesis runs. They never change the distribution of
// the field; Sampling does change which realisation a seed produces.
type Options struct {
	Seed     int64
	Sampling SamplingMode
	Workers  int // goroutines for parallel sampling and line transforms; <=0 means GOMAXPROCS

	// Clock stamps snapshots and times synthesis; nil means the wall clock.
	Clock timeutil.Clock
}

// DefaultOptions returns sequential sampling with DefaultSeed.
func DefaultOptions() Options {
	return Options{
		Seed:     DefaultSeed,
		Sampling: SamplingSequential,
		Workers:  0,
	}
}

// WithSeed sets the generator seed.
func (o Options) WithSeed(seed int64) Options {
	o.Seed = seed
	return o
}

// WithSampling sets the sampling mode.
func (o Options) WithSampling(m SamplingMode) Options {
	o.Sampling = m
	return o
}

// WithWorkers sets the worker count.
func (o Options) WithWorkers(n int) Options {
	o.Workers = n
	return o
}

// WithClock sets the clock used for snapshot timestamps.
func (o Options) WithClock(c timeutil.Clock) Options {
	o.Clock = c
	return o
}

func (o Options) clock() timeutil.Clock {
	if o.Clock != nil {
		return o.Clock
	}
	return timeutil.RealClock{}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// validate checks geometry and parameters together, including whether the
// turbulence band contains at least one discrete wavevector. It performs no
// random draws and allocates nothing proportional to the grid.
func validate(geom Geometry, p Params, opts Options) error {
	if err := geom.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if !opts.Sampling.Valid() {
		return fmt.Errorf("%w: unknown sampling mode %q", ErrInvalidParams, opts.Sampling)
	}
	kMin, kMax := p.Band(geom.Spacing)
	// The DC mode |k| = 0 must fall outside the band.
	if !(kMin > 0) {
		return fmt.Errorf("%w: kMin=%g must be positive to exclude the DC mode", ErrInvalidParams, kMin)
	}
	if countInBand(geom.Samples, kMin, kMax) == 0 {
		return fmt.Errorf("%w: kMin=%g kMax=%g on a %d³ grid", ErrEmptyBand, kMin, kMax, geom.Samples)
	}
	return nil
}

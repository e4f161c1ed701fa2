package turbulence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestComputeStats_UniformField(t *testing.T) {
	t.Parallel()
	geom := testGeometry(4)
	cells := make([]r3.Vec, geom.NumCells())
	for i := range cells {
		cells[i] = r3.Vec{X: 3, Y: 0, Z: 4}
	}
	s := ComputeStats(geom, cells)
	assert.Equal(t, r3.Vec{X: 3, Y: 0, Z: 4}, s.Mean)
	assert.InDelta(t, 5, s.RMS, 1e-12)
	assert.InDelta(t, 5, s.MaxMagnitude, 1e-12)
	assert.Zero(t, s.MeanAbsDivergence)
}

func TestComputeStats_DivergentField(t *testing.T) {
	t.Parallel()
	geom := testGeometry(8)
	cells := make([]r3.Vec, geom.NumCells())
	for ix := 0; ix < 8; ix++ {
		for iy := 0; iy < 8; iy++ {
			for iz := 0; iz < 8; iz++ {
				// Bx varies along x, so ∇·B ≠ 0.
				cells[geom.Index(ix, iy, iz)] = r3.Vec{X: math.Sin(2 * math.Pi * float64(ix) / 8)}
			}
		}
	}
	s := ComputeStats(geom, cells)
	assert.Greater(t, s.MeanAbsDivergence, 0.1)
	assert.InDelta(t, 0, s.Mean.X, 1e-12)
}

func TestComputeStats_TransverseFieldIsSolenoidal(t *testing.T) {
	t.Parallel()
	geom := testGeometry(8)
	cells := make([]r3.Vec, geom.NumCells())
	for ix := 0; ix < 8; ix++ {
		for iy := 0; iy < 8; iy++ {
			for iz := 0; iz < 8; iz++ {
				// By varies only along x.
				cells[geom.Index(ix, iy, iz)] = r3.Vec{Y: math.Cos(2 * math.Pi * float64(ix) / 8)}
			}
		}
	}
	assert.InDelta(t, 0, ComputeStats(geom, cells).MeanAbsDivergence, 1e-12)
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, FieldStats{}, ComputeStats(testGeometry(4), nil))
}

func TestGrid_SynthesisedFieldIsNearlySolenoidal(t *testing.T) {
	t.Parallel()
	// Long-wavelength modes only; central differences see the transverse
	// modes as nearly divergence free.
	g := mustNewGrid(t, testGeometry(32), Params{LMin: 16, LMax: 32, Brms: 1, SpectralIndex: KolmogorovIndex}, DefaultOptions().WithSeed(4))
	white := mustNewGrid(t, testGeometry(32), Params{LMin: 2, LMax: 32, Brms: 1, SpectralIndex: 0}, DefaultOptions().WithSeed(4))
	assert.Less(t, g.Stats().MeanAbsDivergence, 0.05)
	assert.Less(t, g.Stats().MeanAbsDivergence, white.Stats().MeanAbsDivergence)
}

package turbulence

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNormalize_ScalesToTargetRMS(t *testing.T) {
	t.Parallel()
	bx := []float64{1, -2, 3, 0}
	by := []float64{0, 0.5, -1, 2}
	bz := []float64{4, 0, 0, -1}
	ms := meanSquare(bx, by, bz)

	cells, weight, err := normalize(bx, by, bz, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.5/math.Sqrt(ms), weight, 1e-15)
	assert.InEpsilon(t, 2.5, RMS(cells), 1e-12)
	assert.Equal(t, r3.Vec{X: 1 * weight, Y: 0, Z: 4 * weight}, cells[0])
}

func TestNormalize_ZeroField(t *testing.T) {
	t.Parallel()
	z := make([]float64, 8)
	cells, _, err := normalize(z, z, z, 1)
	assert.True(t, errors.Is(err, ErrZeroField))
	assert.Nil(t, cells)
}

func TestRMS(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, RMS(nil))
	assert.InDelta(t, math.Sqrt(12.5), RMS([]r3.Vec{{X: 3, Y: 4}, {Z: 0}}), 1e-12)
}

package turbulence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertOrthonormalPair(t *testing.T, k, e1, e2 r3.Vec) {
	t.Helper()
	assert.InDelta(t, 1, r3.Norm(e1), 1e-12, "e1 not unit")
	assert.InDelta(t, 1, r3.Norm(e2), 1e-12, "e2 not unit")
	assert.InDelta(t, 0, r3.Dot(e1, e2), 1e-12, "e1 not perpendicular to e2")
	kn := r3.Unit(k)
	assert.InDelta(t, 0, r3.Dot(e1, kn), 1e-9, "e1 not perpendicular to k")
	assert.InDelta(t, 0, r3.Dot(e2, kn), 1e-9, "e2 not perpendicular to k")
}

func TestOrthogonalBasis_Generic(t *testing.T) {
	t.Parallel()
	ks := []r3.Vec{
		{X: 1},
		{Y: -0.25},
		{Z: 0.5},
		{X: 0.125, Y: -0.375, Z: 0.25},
		{X: -0.5, Y: 0.5, Z: 0.5},
		{X: 1, Y: 1, Z: 1.001},
	}
	for _, k := range ks {
		e1, e2 := OrthogonalBasis(k)
		assertOrthonormalPair(t, k, e1, e2)
	}
}

func TestOrthogonalBasis_ParallelToReference(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		k    r3.Vec
	}{
		{"unit diagonal", r3.Vec{X: 1, Y: 1, Z: 1}},
		{"short diagonal", r3.Vec{X: 0.125, Y: 0.125, Z: 0.125}},
		{"antiparallel diagonal", r3.Vec{X: -0.5, Y: -0.5, Z: -0.5}},
		{"within tolerance", r3.Vec{X: 1, Y: 1, Z: 1 + 1e-9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e1, e2 := OrthogonalBasis(tt.k)
			assert.Equal(t, degenerateE1, e1)
			assert.Equal(t, degenerateE2, e2)
			assertOrthonormalPair(t, tt.k, e1, e2)
		})
	}
}

func TestOrthogonalBasis_NeverReturnsNaN(t *testing.T) {
	t.Parallel()
	K := wavenumbers(8)
	for _, x := range K {
		for _, y := range K {
			for _, z := range K {
				k := r3.Vec{X: x, Y: y, Z: z}
				if r3.Norm(k) == 0 {
					continue
				}
				e1, e2 := OrthogonalBasis(k)
				assertOrthonormalPair(t, k, e1, e2)
			}
		}
	}
}

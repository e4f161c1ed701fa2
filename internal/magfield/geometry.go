package magfield

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry describes a cubic grid of Samples³ cells.
type Geometry struct {
	Origin  r3.Vec  // position of cell (0,0,0)
	Samples int     // cells per edge
	Spacing float64 // cell edge length
}

// Validate checks that the grid has at least one cell and a positive spacing.
func (g Geometry) Validate() error {
	if g.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", g.Samples)
	}
	if !(g.Spacing > 0) {
		return fmt.Errorf("spacing must be positive, got %v", g.Spacing)
	}
	return nil
}

// NumCells returns Samples³.
func (g Geometry) NumCells() int {
	return g.Samples * g.Samples * g.Samples
}

// Index returns the flat row-major index of cell (ix, iy, iz).
func (g Geometry) Index(ix, iy, iz int) int {
	return (ix*g.Samples+iy)*g.Samples + iz
}

// Extent returns the edge length of the periodic box.
func (g Geometry) Extent() float64 {
	return float64(g.Samples) * g.Spacing
}

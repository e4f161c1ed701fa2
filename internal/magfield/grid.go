package magfield

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// VectorGrid stores one vector per cell of a cubic Geometry.
// Reads take a shared lock; ReplaceCells swaps the whole backing slice under
// the exclusive lock so readers never observe a partially written grid.
type VectorGrid struct {
	Geometry

	mu    sync.RWMutex
	cells []r3.Vec
}

// NewVectorGrid allocates a zero-valued grid for the given geometry.
func NewVectorGrid(geom Geometry) (*VectorGrid, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	return &VectorGrid{
		Geometry: geom,
		cells:    make([]r3.Vec, geom.NumCells()),
	}, nil
}

// Cell returns the value stored at (ix, iy, iz). Indices wrap periodically.
func (g *VectorGrid) Cell(ix, iy, iz int) r3.Vec {
	n := g.Samples
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[g.Index(wrap(ix, n), wrap(iy, n), wrap(iz, n))]
}

// SetCell overwrites a single cell. Indices wrap periodically.
func (g *VectorGrid) SetCell(ix, iy, iz int, v r3.Vec) {
	n := g.Samples
	g.mu.Lock()
	g.cells[g.Index(wrap(ix, n), wrap(iy, n), wrap(iz, n))] = v
	g.mu.Unlock()
}

// Cells returns a copy of all cells in row-major order.
func (g *VectorGrid) Cells() []r3.Vec {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]r3.Vec, len(g.cells))
	copy(out, g.cells)
	return out
}

// ReplaceCells installs a freshly built cell slice. The grid takes ownership
// of cells; the previous slice is dropped.
func (g *VectorGrid) ReplaceCells(cells []r3.Vec) error {
	if len(cells) != g.NumCells() {
		return fmt.Errorf("cell count %d does not match geometry %d³", len(cells), g.Samples)
	}
	g.mu.Lock()
	g.cells = cells
	g.mu.Unlock()
	return nil
}

// Field returns the trilinearly interpolated vector at pos, treating the grid
// as periodic with period Samples*Spacing along every axis.
func (g *VectorGrid) Field(pos r3.Vec) r3.Vec {
	rel := r3.Scale(1/g.Spacing, r3.Sub(pos, g.Origin))
	n := g.Samples

	fx, ix := split(rel.X, n)
	fy, iy := split(rel.Y, n)
	fz, iz := split(rel.Z, n)
	jx, jy, jz := (ix+1)%n, (iy+1)%n, (iz+1)%n

	g.mu.RLock()
	defer g.mu.RUnlock()

	c := func(x, y, z int) r3.Vec { return g.cells[g.Index(x, y, z)] }

	var b r3.Vec
	b = r3.Add(b, r3.Scale((1-fx)*(1-fy)*(1-fz), c(ix, iy, iz)))
	b = r3.Add(b, r3.Scale(fx*(1-fy)*(1-fz), c(jx, iy, iz)))
	b = r3.Add(b, r3.Scale((1-fx)*fy*(1-fz), c(ix, jy, iz)))
	b = r3.Add(b, r3.Scale((1-fx)*(1-fy)*fz, c(ix, iy, jz)))
	b = r3.Add(b, r3.Scale(fx*fy*(1-fz), c(jx, jy, iz)))
	b = r3.Add(b, r3.Scale(fx*(1-fy)*fz, c(jx, iy, jz)))
	b = r3.Add(b, r3.Scale((1-fx)*fy*fz, c(ix, jy, jz)))
	b = r3.Add(b, r3.Scale(fx*fy*fz, c(jx, jy, jz)))
	return b
}

// split reduces a coordinate in cell units to a lower cell index in [0, n)
// and the fractional offset towards the next cell.
func split(x float64, n int) (float64, int) {
	fl := math.Floor(x)
	i := wrap(int(fl), n)
	return x - fl, i
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

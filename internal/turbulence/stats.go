package turbulence

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// FieldStats summarises a synthesised field.
type FieldStats struct {
	Mean         r3.Vec  // spatial mean of each component
	RMS          float64 // root-mean-square magnitude
	MaxMagnitude float64
	// MeanAbsDivergence is the mean |∇·B| from periodic central differences,
	// in field units per length.
	MeanAbsDivergence float64
}

// ComputeStats returns statistics for the cells of a grid with the given
// geometry.
func ComputeStats(geom Geometry, cells []r3.Vec) FieldStats {
	n := len(cells)
	if n == 0 {
		return FieldStats{}
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	maxMag := 0.0
	for i, c := range cells {
		xs[i], ys[i], zs[i] = c.X, c.Y, c.Z
		if m := r3.Norm(c); m > maxMag {
			maxMag = m
		}
	}
	return FieldStats{
		Mean:              r3.Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Z: stat.Mean(zs, nil)},
		RMS:               RMS(cells),
		MaxMagnitude:      maxMag,
		MeanAbsDivergence: meanAbsDivergence(geom, cells),
	}
}

// Stats returns statistics for the grid's current field.
func (g *Grid) Stats() FieldStats {
	return ComputeStats(g.Geometry, g.Cells())
}

func meanAbsDivergence(geom Geometry, cells []r3.Vec) float64 {
	n := geom.Samples
	if len(cells) != geom.NumCells() || n < 3 {
		return 0
	}
	at := func(ix, iy, iz int) r3.Vec {
		return cells[geom.Index((ix+n)%n, (iy+n)%n, (iz+n)%n)]
	}
	h := 2 * geom.Spacing
	var sum float64
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < n; iz++ {
				div := (at(ix+1, iy, iz).X-at(ix-1, iy, iz).X)/h +
					(at(ix, iy+1, iz).Y-at(ix, iy-1, iz).Y)/h +
					(at(ix, iy, iz+1).Z-at(ix, iy, iz-1).Z)/h
				sum += math.Abs(div)
			}
		}
	}
	return sum / float64(len(cells))
}

package turbulence

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// meanSquare returns (1/N) Σ (bx² + by² + bz²) over N cells.
func meanSquare(bx, by, bz []float64) float64 {
	sum := floats.Dot(bx, bx) + floats.Dot(by, by) + floats.Dot(bz, bz)
	return sum / float64(len(bx))
}

// normalize scales the three component fields so their RMS magnitude is
// brms and packs them into cells. It returns the applied weight.
func normalize(bx, by, bz []float64, brms float64) ([]r3.Vec, float64, error) {
	ms := meanSquare(bx, by, bz)
	if !(ms > 0) || math.IsInf(ms, 0) {
		return nil, 0, ErrZeroField
	}
	weight := brms / math.Sqrt(ms)

	floats.Scale(weight, bx)
	floats.Scale(weight, by)
	floats.Scale(weight, bz)

	cells := make([]r3.Vec, len(bx))
	for i := range cells {
		cells[i] = r3.Vec{X: bx[i], Y: by[i], Z: bz[i]}
	}
	return cells, weight, nil
}

// RMS returns the root-mean-square magnitude of cells.
func RMS(cells []r3.Vec) float64 {
	if len(cells) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cells {
		sum += r3.Norm2(c)
	}
	return math.Sqrt(sum / float64(len(cells)))
}

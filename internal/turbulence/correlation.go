package turbulence

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// singularTolerance is how close a = -index-2 may come to 0 or 1 before the
// closed form is refused.
const singularTolerance = 1e-9

// CorrelationLength returns the closed-form correlation length of a
// power-law spectrum confined to length scales [lMin, lMax]:
//
//	a = -index - 2, r = lMin/lMax
//	Lc = lMax/2 · (a-1)/a · (1 - r^a) / (1 - r^(a-1))
//
// The expression has removable singularities at a = 0 and a = 1 (index -2
// and -3). Those indices are not supported and return ErrCorrelationSingular;
// NumericCorrelationLength covers them.
func CorrelationLength(lMin, lMax, index float64) (float64, error) {
	a := -index - 2
	if math.Abs(a) < singularTolerance || math.Abs(a-1) < singularTolerance {
		return math.NaN(), fmt.Errorf("%w: index=%g", ErrCorrelationSingular, index)
	}
	r := lMin / lMax
	return lMax / 2 * (a - 1) / a * (1 - math.Pow(r, a)) / (1 - math.Pow(r, a-1)), nil
}

// quadraturePoints is the Gauss-Legendre order used by NumericCorrelationLength.
const quadraturePoints = 64

// NumericCorrelationLength evaluates the same quantity as CorrelationLength
// by Gauss-Legendre quadrature:
//
//	Lc = 1/2 · ∫ l^(a-1) dl / ∫ l^(a-2) dl   over [lMin, lMax]
//
// It has no singularity in a and is used to cross-check the closed form.
func NumericCorrelationLength(lMin, lMax, index float64) float64 {
	a := -index - 2
	num := quad.Fixed(func(l float64) float64 { return math.Pow(l, a-1) }, lMin, lMax, quadraturePoints, quad.Legendre{}, 0)
	den := quad.Fixed(func(l float64) float64 { return math.Pow(l, a-2) }, lMin, lMax, quadraturePoints, quad.Legendre{}, 0)
	return num / den / 2
}

package turbulence

import "gonum.org/v1/gonum/spatial/r3"

// parallelTolerance is the angle in radians below which a wavevector is
// treated as collinear with basisReference.
const parallelTolerance = 1e-6

var (
	basisReference = r3.Vec{X: 1, Y: 1, Z: 1}

	// Fixed pair perpendicular to basisReference and to each other, used when
	// the cross product with the reference would vanish.
	degenerateE1 = r3.Unit(r3.Vec{X: -1, Y: 1, Z: 0})
	degenerateE2 = r3.Unit(r3.Vec{X: 1, Y: 1, Z: -2})
)

// OrthogonalBasis returns unit vectors e1, e2 spanning the plane
// perpendicular to k, with e1 ⟂ e2. k must be non-zero.
//
// Wavevectors along ±(1,1,1) get a fixed pair; the orientation of the pair
// is irrelevant because the sampler draws a uniform polarisation angle in
// the plane.
func OrthogonalBasis(k r3.Vec) (e1, e2 r3.Vec) {
	if collinear(k, basisReference, parallelTolerance) {
		return degenerateE1, degenerateE2
	}
	e1 = r3.Unit(r3.Cross(basisReference, k))
	e2 = r3.Unit(r3.Cross(k, e1))
	return e1, e2
}

// collinear reports whether the angle between a and b, or between a and -b,
// is below tol. Antiparallel vectors have a zero cross product too.
func collinear(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Cross(a, b)) <= tol*r3.Norm(a)*r3.Norm(b)
}

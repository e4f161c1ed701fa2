package turbulence

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// wavenumbers returns the signed discrete frequencies of an n-point DFT in
// units of inverse cells: 0, 1/n, ... up to just under 1/2, then wrapping
// negative. For even n the Nyquist index n/2 maps to -1/2.
func wavenumbers(n int) []float64 {
	k := make([]float64, n)
	for i := range k {
		k[i] = float64(i) / float64(n)
		if 2*i >= n {
			k[i]--
		}
	}
	return k
}

// halfLen is the length of the last axis of a real field's spectrum.
func halfLen(n int) int {
	return n/2 + 1
}

// inBand reports whether a wavenumber magnitude lies in [kMin, kMax].
// Everything outside carries no power.
func inBand(k, kMin, kMax float64) bool {
	return !(k < kMin || k > kMax)
}

// countInBand counts half-grid wavevectors inside the band without drawing
// any random numbers.
func countInBand(n int, kMin, kMax float64) int {
	K := wavenumbers(n)
	nh := halfLen(n)
	count := 0
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < nh; iz++ {
				// Same norm as sampleSlab so counts agree at band edges.
				k := r3.Norm(r3.Vec{X: K[ix], Y: K[iy], Z: K[iz]})
				if inBand(k, kMin, kMax) {
					count++
				}
			}
		}
	}
	return count
}

// spectrum holds the three complex frequency-domain components of the field
// over the half-grid n × n × (n/2+1), flat index (ix*n+iy)*nh+iz.
// It lives only for the duration of one synthesis call.
type spectrum struct {
	n, nh      int
	k          []float64
	bx, by, bz []complex128
	inBand     int
}

func newSpectrum(n int) *spectrum {
	nh := halfLen(n)
	size := n * n * nh
	return &spectrum{
		n:  n,
		nh: nh,
		k:  wavenumbers(n),
		bx: make([]complex128, size),
		by: make([]complex128, size),
		bz: make([]complex128, size),
	}
}

func (s *spectrum) index(ix, iy, iz int) int {
	return (ix*s.n+iy)*s.nh + iz
}

// sampleSlab fills every coefficient with first index ix and returns the
// number of in-band modes. src is called once per in-band mode with that
// mode's flat index and must return the source to draw from.
// Out-of-band coefficients are written as zero explicitly.
func (s *spectrum) sampleSlab(ix int, kMin, kMax, index float64, src func(flat int) RandomSource) int {
	count := 0
	for iy := 0; iy < s.n; iy++ {
		for iz := 0; iz < s.nh; iz++ {
			i := s.index(ix, iy, iz)
			kv := r3.Vec{X: s.k[ix], Y: s.k[iy], Z: s.k[iz]}
			k := r3.Norm(kv)

			if !inBand(k, kMin, kMax) {
				s.bx[i], s.by[i], s.bz[i] = 0, 0, 0
				continue
			}
			if k == 0 {
				// Unreachable while kMin > 0, which validate enforces.
				panic("turbulence: DC mode inside turbulence band")
			}

			s.bx[i], s.by[i], s.bz[i] = sampleMode(kv, k, index, src(i))
			count++
		}
	}
	return count
}

// sampleSequential visits the half-grid in row-major order drawing every
// value from src. This order is part of the reproducibility contract.
func (s *spectrum) sampleSequential(kMin, kMax, index float64, src RandomSource) {
	shared := func(int) RandomSource { return src }
	s.inBand = 0
	for ix := 0; ix < s.n; ix++ {
		s.inBand += s.sampleSlab(ix, kMin, kMax, index, shared)
	}
}

// sampleParallel samples slabs concurrently. Each mode draws from its own
// stream keyed by (seed, flat index), so the result is identical for any
// worker count.
func (s *spectrum) sampleParallel(kMin, kMax, index float64, seed int64, workers int) {
	counts := make([]int, s.n)
	parallelFor(s.n, workers, func(ix int) {
		stream := newStreamSource()
		keyed := func(flat int) RandomSource {
			stream.key(seed, flat)
			return stream
		}
		counts[ix] = s.sampleSlab(ix, kMin, kMax, index, keyed)
	})

	s.inBand = 0
	for _, c := range counts {
		s.inBand += c
	}
}

// sampleMode draws one Fourier mode: a unit polarisation in the plane
// perpendicular to k, a normal amplitude weighted by |k|^(index/2), and a
// uniform phase. Draw order: angle, amplitude, phase.
func sampleMode(kv r3.Vec, k, index float64, src RandomSource) (cx, cy, cz complex128) {
	e1, e2 := OrthogonalBasis(kv)

	theta := 2 * math.Pi * src.Uniform()
	b := r3.Add(r3.Scale(math.Cos(theta), e1), r3.Scale(math.Sin(theta), e2))
	b = r3.Scale(src.Normal()*math.Pow(k, index/2), b)

	phase := 2 * math.Pi * src.Uniform()
	cosPhase, sinPhase := math.Cos(phase), math.Sin(phase)

	return complex(b.X*cosPhase, b.X*sinPhase),
		complex(b.Y*cosPhase, b.Y*sinPhase),
		complex(b.Z*cosPhase, b.Z*sinPhase)
}

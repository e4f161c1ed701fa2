package turbulence

import "gonum.org/v1/gonum/dsp/fourier"

// inverseTransform computes the complex-to-real inverse 3D DFT of one
// half-grid component:
//
//	out[x,y,z] = Σ_k coeff[k] · exp(+2πi k·(x,y,z)/n)
//
// with the Hermitian partners of the stored half implied, exactly as a
// c2r transform does. The result is unnormalised (no 1/n³ factor); the
// Normalizer rescales afterwards, so only the sign convention matters and it
// matches the construction in sampleMode.
//
// The transform is separable: complex inverse FFTs along x, then y, on the
// half-grid, followed by real inverse FFTs along z. Lines are independent and
// each is computed with identical arithmetic regardless of which worker runs
// it, so the output does not depend on the worker count.
//
// coeff is overwritten. The returned slice has n³ values in row-major order.
func inverseTransform(coeff []complex128, n, workers int) []float64 {
	nh := halfLen(n)
	idx := func(ix, iy, iz int) int { return (ix*n+iy)*nh + iz }

	// Along x, one task per iy plane.
	parallelFor(n, workers, func(iy int) {
		fft := fourier.NewCmplxFFT(n)
		line := make([]complex128, n)
		out := make([]complex128, n)
		for iz := 0; iz < nh; iz++ {
			for ix := 0; ix < n; ix++ {
				line[ix] = coeff[idx(ix, iy, iz)]
			}
			fft.Sequence(out, line)
			for ix := 0; ix < n; ix++ {
				coeff[idx(ix, iy, iz)] = out[ix]
			}
		}
	})

	// Along y, one task per ix plane.
	parallelFor(n, workers, func(ix int) {
		fft := fourier.NewCmplxFFT(n)
		line := make([]complex128, n)
		out := make([]complex128, n)
		for iz := 0; iz < nh; iz++ {
			for iy := 0; iy < n; iy++ {
				line[iy] = coeff[idx(ix, iy, iz)]
			}
			fft.Sequence(out, line)
			for iy := 0; iy < n; iy++ {
				coeff[idx(ix, iy, iz)] = out[iy]
			}
		}
	})

	// Complex-to-real along z. The imaginary parts of the zero and Nyquist
	// coefficients are discarded, which is what makes the output real.
	field := make([]float64, n*n*n)
	parallelFor(n, workers, func(ix int) {
		fft := fourier.NewFFT(n)
		for iy := 0; iy < n; iy++ {
			start := idx(ix, iy, 0)
			row := (ix*n + iy) * n
			fft.Sequence(field[row:row+n], coeff[start:start+nh])
		}
	})

	return field
}

// forwardTransform computes the full complex 3D DFT of a real field with the
// exp(-2πi ...) convention. Used for spectrum diagnostics only.
func forwardTransform(field []float64, n, workers int) []complex128 {
	data := make([]complex128, len(field))
	for i, v := range field {
		data[i] = complex(v, 0)
	}
	idx := func(ix, iy, iz int) int { return (ix*n+iy)*n + iz }

	// axis selects which index varies along a line: 0=x, 1=y, 2=z.
	for axis := 0; axis < 3; axis++ {
		at := func(a, b, j int) int {
			switch axis {
			case 0:
				return idx(j, a, b)
			case 1:
				return idx(a, j, b)
			default:
				return idx(a, b, j)
			}
		}
		parallelFor(n, workers, func(a int) {
			fft := fourier.NewCmplxFFT(n)
			line := make([]complex128, n)
			out := make([]complex128, n)
			for b := 0; b < n; b++ {
				for j := 0; j < n; j++ {
					line[j] = data[at(a, b, j)]
				}
				fft.Coefficients(out, line)
				for j := 0; j < n; j++ {
					data[at(a, b, j)] = out[j]
				}
			}
		})
	}
	return data
}

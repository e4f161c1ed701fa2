package turbulence

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SpectrumBin is one spherical shell of the power spectrum. K is the shell
// radius in integer wavenumber units (cycles per box).
type SpectrumBin struct {
	K     int
	Modes int     // Fourier modes in the shell
	Power float64 // mean |B(k)|² per mode
}

// PowerSpectrum returns the shell-averaged power spectrum of cells on an
// n³ grid. Modes are binned by rounding |k| to the nearest integer. The DC
// shell is included as bin 0.
func PowerSpectrum(n int, cells []r3.Vec, workers int) []SpectrumBin {
	size := n * n * n
	if len(cells) != size || n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	xs := make([]float64, size)
	ys := make([]float64, size)
	zs := make([]float64, size)
	for i, c := range cells {
		xs[i], ys[i], zs[i] = c.X, c.Y, c.Z
	}
	fx := forwardTransform(xs, n, workers)
	fy := forwardTransform(ys, n, workers)
	fz := forwardTransform(zs, n, workers)

	signed := func(i int) float64 {
		if 2*i >= n {
			return float64(i - n)
		}
		return float64(i)
	}
	maxBin := int(math.Round(math.Sqrt(3) * float64(n) / 2))
	bins := make([]SpectrumBin, maxBin+1)
	for i := range bins {
		bins[i].K = i
	}

	norm := 1 / float64(size)
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < n; iz++ {
				kx, ky, kz := signed(ix), signed(iy), signed(iz)
				b := int(math.Round(math.Sqrt(kx*kx + ky*ky + kz*kz)))
				i := (ix*n+iy)*n + iz
				p := sqAbs(fx[i]) + sqAbs(fy[i]) + sqAbs(fz[i])
				bins[b].Power += p * norm * norm
				bins[b].Modes++
			}
		}
	}
	for i := range bins {
		if bins[i].Modes > 0 {
			bins[i].Power /= float64(bins[i].Modes)
		}
	}
	return bins
}

// PowerSpectrum returns the shell-averaged power spectrum of the grid.
func (g *Grid) PowerSpectrum() []SpectrumBin {
	opts, cells := g.state()
	return PowerSpectrum(g.Samples, cells, opts.workers())
}

func sqAbs(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}

package monitor

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/turbgrid/internal/fsutil"
	"github.com/banshee-data/turbgrid/internal/turbulence"
)

// ErrNoSpectrum is returned when no bin has positive power to plot.
var ErrNoSpectrum = errors.New("monitor: spectrum has no positive bins")

// spectrumFloor drops bins whose power is only transform roundoff.
const spectrumFloor = 1e-12

// spectrumPoints returns the bins usable on log axes: K > 0 and power above
// spectrumFloor times the largest bin.
func spectrumPoints(bins []turbulence.SpectrumBin) plotter.XYs {
	peak := 0.0
	for _, b := range bins {
		if b.K > 0 {
			peak = math.Max(peak, b.Power)
		}
	}
	pts := make(plotter.XYs, 0, len(bins))
	for _, b := range bins {
		if b.K == 0 || !(b.Power > spectrumFloor*peak) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(b.K), Y: b.Power})
	}
	return pts
}

// referenceLine returns a power law K^index through the first point, spanning
// the same K range as pts.
func referenceLine(pts plotter.XYs, index float64) plotter.XYs {
	if len(pts) == 0 {
		return nil
	}
	k0, p0 := pts[0].X, pts[0].Y
	ref := make(plotter.XYs, len(pts))
	for i, p := range pts {
		ref[i] = plotter.XY{X: p.X, Y: p0 * math.Pow(p.X/k0, index)}
	}
	return ref
}

// NewSpectrumPlot builds a log-log plot of shell-averaged power with a
// reference power law of the given spectral index.
func NewSpectrumPlot(bins []turbulence.SpectrumBin, index float64, title string) (*plot.Plot, error) {
	pts := spectrumPoints(bins)
	if len(pts) == 0 {
		return nil, ErrNoSpectrum
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "|k| (cycles per box)"
	p.Y.Label.Text = "Power per mode"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	measured, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create spectrum line: %w", err)
	}
	measured.Width = vg.Points(1.5)
	measured.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	marks, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create spectrum markers: %w", err)
	}
	marks.Color = measured.Color

	ref, err := plotter.NewLine(referenceLine(pts, index))
	if err != nil {
		return nil, fmt.Errorf("failed to create reference line: %w", err)
	}
	ref.Width = vg.Points(1)
	ref.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	ref.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}

	p.Add(measured, marks, ref)
	p.Legend.Add("measured", measured)
	p.Legend.Add(fmt.Sprintf("k^%.3g", index), ref)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteSpectrumPlot renders the spectrum of g as a PNG to path on fsys.
func WriteSpectrumPlot(fsys fsutil.FileSystem, g *turbulence.Grid, path string) error {
	title := fmt.Sprintf("Power spectrum n=%d seed=%d", g.Samples, g.Seed())
	p, err := NewSpectrumPlot(g.PowerSpectrum(), g.PowerSpectralIndex(), title)
	if err != nil {
		return err
	}
	png, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render spectrum plot: %w", err)
	}
	return fsutil.WriteTo(fsys, path, png)
}

package monitor

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/turbgrid/internal/turbulence"
)

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// SliceData returns (x, y, |B|) for every cell of the plane z = iz, with
// positions in grid coordinates, and the largest magnitude seen.
func SliceData(geom turbulence.Geometry, cells []r3.Vec, iz int) ([]opts.ScatterData, float64, error) {
	n := geom.Samples
	if len(cells) != geom.NumCells() {
		return nil, 0, fmt.Errorf("cell count %d does not match %d³ grid", len(cells), n)
	}
	if iz < 0 || iz >= n {
		return nil, 0, fmt.Errorf("slice index %d outside [0, %d)", iz, n)
	}

	data := make([]opts.ScatterData, 0, n*n)
	maxMag := 0.0
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			m := r3.Norm(cells[geom.Index(ix, iy, iz)])
			if m > maxMag {
				maxMag = m
			}
			x := geom.Origin.X + float64(ix)*geom.Spacing
			y := geom.Origin.Y + float64(iy)*geom.Spacing
			data = append(data, opts.ScatterData{Value: []interface{}{x, y, m}})
		}
	}
	return data, maxMag, nil
}

// RenderSliceChart writes an HTML scatter heatmap of |B| over the plane
// z = iz of g.
func RenderSliceChart(w io.Writer, g *turbulence.Grid, iz int) error {
	data, maxMag, err := SliceData(g.Geometry, g.Cells(), iz)
	if err != nil {
		return err
	}
	if maxMag == 0 {
		maxMag = 1
	}

	lo := g.Origin
	hi := g.Extent()
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Turbulent Field Slice", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "|B| slice", Subtitle: fmt.Sprintf("n=%d iz=%d seed=%d", g.Samples, iz, g.Seed())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: lo.X, Max: lo.X + hi, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: lo.Y, Max: lo.Y + hi, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxMag),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	scatter.AddSeries("field", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 900 / max(g.Samples, 1)}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render slice chart: %w", err)
	}
	return nil
}

package monitor

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/turbgrid/internal/fsutil"
	"github.com/banshee-data/turbgrid/internal/monitoring"
	"github.com/banshee-data/turbgrid/internal/turbulence"
)

const (
	SpectrumFile = "spectrum.png"
	SliceFile    = "slice.html"
)

// WritePlots writes SpectrumFile and SliceFile for g into dir on fsys,
// creating dir if needed. The slice is taken through the middle of the box.
func WritePlots(fsys fsutil.FileSystem, g *turbulence.Grid, dir string) error {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plot dir: %w", err)
	}

	spectrumPath := filepath.Join(dir, SpectrumFile)
	if err := WriteSpectrumPlot(fsys, g, spectrumPath); err != nil {
		return err
	}

	slicePath := filepath.Join(dir, SliceFile)
	f, err := fsys.Create(slicePath)
	if err != nil {
		return fmt.Errorf("failed to create slice file: %w", err)
	}
	if err := RenderSliceChart(f, g, g.Samples/2); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close slice file: %w", err)
	}

	monitoring.Logf("[Monitor] wrote %s and %s", spectrumPath, slicePath)
	return nil
}

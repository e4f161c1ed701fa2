// Command turbgen synthesises a turbulent magnetic field grid, prints a
// summary, and optionally stores the grid in sqlite and writes diagnostic
// plots.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/banshee-data/turbgrid/internal/config"
	"github.com/banshee-data/turbgrid/internal/db"
	"github.com/banshee-data/turbgrid/internal/fsutil"
	"github.com/banshee-data/turbgrid/internal/monitor"
	"github.com/banshee-data/turbgrid/internal/monitoring"
	sqlite "github.com/banshee-data/turbgrid/internal/storage/sqlite"
	"github.com/banshee-data/turbgrid/internal/turbulence"
	"github.com/banshee-data/turbgrid/internal/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("turbgen: %v", err)
	}
}

type options struct {
	configPath string
	seed       int64
	samples    int
	dbPath     string
	plotDir    string
	reason     string
	restoreID  string
	list       int
	version    bool
	quiet      bool

	seedSet    bool
	samplesSet bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("turbgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "path to a turbulence JSON config (defaults apply when empty)")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (overrides config)")
	fs.IntVar(&o.samples, "samples", 0, "cells per edge (overrides config)")
	fs.StringVar(&o.dbPath, "db", "", "sqlite path; stores the grid when set")
	fs.StringVar(&o.plotDir, "plot-dir", "", "directory for spectrum.png and slice.html")
	fs.StringVar(&o.reason, "reason", "generated", "reason recorded with the stored grid")
	fs.StringVar(&o.restoreID, "restore", "", "load grid with this id from -db instead of synthesising")
	fs.IntVar(&o.list, "list", 0, "list the N most recent grids in -db and exit")
	fs.BoolVar(&o.version, "version", false, "print version and exit")
	fs.BoolVar(&o.quiet, "quiet", false, "suppress diagnostic logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			o.seedSet = true
		case "samples":
			o.samplesSet = true
		}
	})
	if (o.restoreID != "" || o.list > 0) && o.dbPath == "" {
		return nil, fmt.Errorf("-restore and -list require -db")
	}
	return o, nil
}

func loadConfig(o *options) (*config.TurbulenceConfig, error) {
	cfg := config.EmptyTurbulenceConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadTurbulenceConfig(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.seedSet {
		cfg.Seed = &o.seed
	}
	if o.samplesSet {
		cfg.Samples = &o.samples
	}
	return cfg, nil
}

func run(args []string, stdout io.Writer) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if o.version {
		fmt.Fprintf(stdout, "turbgen %s\n", version.String())
		return nil
	}
	if o.quiet {
		defer monitoring.Mute()()
	}

	var store *sqlite.GridStore
	if o.dbPath != "" {
		database, err := db.NewDB(o.dbPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer database.Close()
		store = sqlite.NewGridStore(database.DB)
	}

	if o.list > 0 {
		return listGrids(store, o.list, stdout)
	}

	var g *turbulence.Grid
	if o.restoreID != "" {
		snap, err := store.Get(o.restoreID)
		if err != nil {
			return err
		}
		if g, err = turbulence.RestoreGrid(snap, turbulence.DefaultOptions()); err != nil {
			return fmt.Errorf("restore grid: %w", err)
		}
	} else {
		cfg, err := loadConfig(o)
		if err != nil {
			return err
		}
		if g, err = turbulence.New(cfg.ToGeometry(), cfg.ToParams(), cfg.ToOptions()); err != nil {
			if turbulence.IsConfigError(err) {
				return fmt.Errorf("invalid grid configuration: %w", err)
			}
			return err
		}
	}

	printSummary(stdout, g)

	if store != nil && o.restoreID == "" {
		id, err := g.Persist(store, o.reason)
		if err != nil {
			return fmt.Errorf("persist grid: %w", err)
		}
		fmt.Fprintf(stdout, "stored grid %s\n", id)
	}

	if o.plotDir != "" {
		if err := monitor.WritePlots(fsutil.OSFileSystem{}, g, o.plotDir); err != nil {
			return fmt.Errorf("write plots: %w", err)
		}
	}
	return nil
}

func printSummary(w io.Writer, g *turbulence.Grid) {
	s := g.Stats()
	fmt.Fprintf(w, "n=%d seed=%d sampling=%s modes=%d rms=%.6g mean=(%.3g, %.3g, %.3g) max=%.6g lc=%.6g div=%.3g\n",
		g.Samples, g.Seed(), g.Sampling(), g.InBandModes(), s.RMS,
		s.Mean.X, s.Mean.Y, s.Mean.Z, s.MaxMagnitude, g.CorrelationLength(), s.MeanAbsDivergence)
}

func listGrids(store *sqlite.GridStore, limit int, w io.Writer) error {
	snaps, err := store.ListRecent(limit)
	if err != nil {
		return err
	}
	for _, s := range snaps {
		fmt.Fprintf(w, "%s  %s  n=%d seed=%d sampling=%s reason=%s\n",
			s.GridID, time.Unix(0, s.TakenUnixNanos).UTC().Format(time.RFC3339),
			s.Samples, s.Seed, s.Sampling, s.Reason)
	}
	return nil
}

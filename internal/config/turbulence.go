package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/turbgrid/internal/turbulence"
)

// DefaultConfigPath is the path to the canonical turbulence defaults file.
// This is the single source of truth for all default grid values.
const DefaultConfigPath = "config/turbulence.defaults.json"

// TurbulenceConfig is the JSON form of a grid definition. Every field is
// optional; the Get* methods supply defaults for omitted ones.
type TurbulenceConfig struct {
	// Geometry
	Samples *int        `json:"samples,omitempty"`
	Spacing *float64    `json:"spacing,omitempty"`
	Origin  *[3]float64 `json:"origin,omitempty"`

	// Turbulence params
	LMin          *float64 `json:"l_min,omitempty"`
	LMax          *float64 `json:"l_max,omitempty"`
	Brms          *float64 `json:"b_rms,omitempty"`
	SpectralIndex *float64 `json:"spectral_index,omitempty"`

	// Synthesis options
	Seed     *int64  `json:"seed,omitempty"`
	Sampling *string `json:"sampling,omitempty"` // "sequential" or "parallel"
	Workers  *int    `json:"workers,omitempty"`
}

// Defaults for omitted fields.
const (
	defaultSamples = 64
	defaultSpacing = 1.0
	defaultLMin    = 2.0
	defaultLMax    = 32.0
	defaultBrms    = 1.0
)

// EmptyTurbulenceConfig returns a TurbulenceConfig with all fields set to nil.
func EmptyTurbulenceConfig() *TurbulenceConfig {
	return &TurbulenceConfig{}
}

// LoadTurbulenceConfig loads a TurbulenceConfig from a JSON file.
// The file must have a .json extension and be at most 1MB. Fields omitted
// from the file fall back to the Get* defaults, so partial configs are safe.
func LoadTurbulenceConfig(path string) (*TurbulenceConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTurbulenceConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TurbulenceConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/storage/sqlite/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTurbulenceConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the fields that can be judged without building a grid.
// Band emptiness depends on the geometry and is left to turbulence.New.
func (c *TurbulenceConfig) Validate() error {
	if c.Samples != nil && *c.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", *c.Samples)
	}
	if c.Spacing != nil && !(*c.Spacing > 0) {
		return fmt.Errorf("spacing must be positive, got %f", *c.Spacing)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.Sampling != nil && !turbulence.SamplingMode(*c.Sampling).Valid() {
		return fmt.Errorf("sampling must be %q or %q, got %q",
			turbulence.SamplingSequential, turbulence.SamplingParallel, *c.Sampling)
	}
	if err := c.ToParams().Validate(); err != nil {
		return err
	}
	return nil
}

// GetSamples returns the samples value or the default.
func (c *TurbulenceConfig) GetSamples() int {
	if c.Samples == nil {
		return defaultSamples
	}
	return *c.Samples
}

// GetSpacing returns the spacing value or the default.
func (c *TurbulenceConfig) GetSpacing() float64 {
	if c.Spacing == nil {
		return defaultSpacing
	}
	return *c.Spacing
}

// GetOrigin returns the origin or (0, 0, 0).
func (c *TurbulenceConfig) GetOrigin() r3.Vec {
	if c.Origin == nil {
		return r3.Vec{}
	}
	return r3.Vec{X: c.Origin[0], Y: c.Origin[1], Z: c.Origin[2]}
}

// GetLMin returns the l_min value or the default.
func (c *TurbulenceConfig) GetLMin() float64 {
	if c.LMin == nil {
		return defaultLMin
	}
	return *c.LMin
}

// GetLMax returns the l_max value or the default.
func (c *TurbulenceConfig) GetLMax() float64 {
	if c.LMax == nil {
		return defaultLMax
	}
	return *c.LMax
}

// GetBrms returns the b_rms value or the default.
func (c *TurbulenceConfig) GetBrms() float64 {
	if c.Brms == nil {
		return defaultBrms
	}
	return *c.Brms
}

// GetSpectralIndex returns the spectral_index value or the Kolmogorov index.
func (c *TurbulenceConfig) GetSpectralIndex() float64 {
	if c.SpectralIndex == nil {
		return turbulence.KolmogorovIndex
	}
	return *c.SpectralIndex
}

// GetSeed returns the seed value or turbulence.DefaultSeed.
func (c *TurbulenceConfig) GetSeed() int64 {
	if c.Seed == nil {
		return turbulence.DefaultSeed
	}
	return *c.Seed
}

// GetSampling returns the sampling mode or sequential.
func (c *TurbulenceConfig) GetSampling() turbulence.SamplingMode {
	if c.Sampling == nil || *c.Sampling == "" {
		return turbulence.SamplingSequential
	}
	return turbulence.SamplingMode(*c.Sampling)
}

// GetWorkers returns the workers value or 0 (GOMAXPROCS).
func (c *TurbulenceConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// ToGeometry converts the config to a grid geometry.
func (c *TurbulenceConfig) ToGeometry() turbulence.Geometry {
	return turbulence.Geometry{
		Origin:  c.GetOrigin(),
		Samples: c.GetSamples(),
		Spacing: c.GetSpacing(),
	}
}

// ToParams converts the config to turbulence parameters.
func (c *TurbulenceConfig) ToParams() turbulence.Params {
	return turbulence.Params{
		LMin:          c.GetLMin(),
		LMax:          c.GetLMax(),
		Brms:          c.GetBrms(),
		SpectralIndex: c.GetSpectralIndex(),
	}
}

// ToOptions converts the config to synthesis options.
func (c *TurbulenceConfig) ToOptions() turbulence.Options {
	return turbulence.DefaultOptions().
		WithSeed(c.GetSeed()).
		WithSampling(c.GetSampling()).
		WithWorkers(c.GetWorkers())
}

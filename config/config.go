// Package config loads the simulator's two JSON configuration documents
// (constants.json, tank.json), negotiates the tank-to-grid scale, and
// exposes the result as a single immutable, load-once singleton, the one
// piece of global state this repository intentionally keeps.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/pthm-cable/mlsmpm/mpm"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

//go:embed constants.json
var defaultConstantsJSON []byte

//go:embed tank.json
var defaultTankJSON []byte

// Derived holds the values computed once from Constants+Tank at load time:
// the negotiated scale, the resulting grid dimensions, and the particle
// wall-interior extents used by the boundary package.
type Derived struct {
	Scale    float64
	GridDim  [3]int
	WallMin  vecmath.Vec
	WallMax  vecmath.Vec
	CellDims vecmath.Vec // world extent in grid units, pre-padding
}

// Config is the fully loaded, derived simulation configuration.
type Config struct {
	Constants Constants
	Tank      Tank
	Derived   Derived

	// Debug gates developer-only behavior not exercised by default.
	Debug struct {
		AssertFinite bool
	}
}

var (
	mu       sync.RWMutex
	instance *Config
)

// Init loads configuration from path (if non-empty) or the embedded
// defaults, and installs it as the package singleton. Safe to call once at
// startup; subsequent calls replace the singleton (used by tests).
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	mu.Lock()
	instance = cfg
	mu.Unlock()
	return nil
}

// MustInit is Init but panics on error, for command-line entry points where
// a malformed config is a fatal startup condition.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(err)
	}
}

// Cfg returns the loaded singleton. Panics if Init/MustInit has not run.
func Cfg() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Cfg() called before Init")
	}
	return instance
}

// Load reads constants.json and tank.json (from disk at dir if non-empty,
// else the embedded defaults), strips "//" line comments, and computes the
// derived scale/grid layout. It does not touch the package singleton.
func Load(dir string) (*Config, error) {
	constantsRaw, err := readFileOrEmbed(dir, "constants.json", defaultConstantsJSON)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	tankRaw, err := readFileOrEmbed(dir, "tank.json", defaultTankJSON)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var constants Constants
	if err := readJSON(constantsRaw, &constants); err != nil {
		return nil, fmt.Errorf("config: constants.json: %w", err)
	}
	var tank Tank
	if err := readJSON(tankRaw, &tank); err != nil {
		return nil, fmt.Errorf("config: tank.json: %w", err)
	}

	// Fluid/elastic model constants are fixed in code post-load, not read
	// from JSON.
	constants.DefaultPPC = int(constants.DefaultDensity.X)
	constants.FluidModel = mpm.FluidModel{
		RestDensity: constants.DefaultDensity.Y,
		Viscosity:   0.001,
		Stiffness:   10,
		Power:       4,
	}
	constants.ElasticModel = mpm.ElasticModel{
		Mu:     78_000,
		Lambda: 180_000,
	}

	scale := tank.Update(constants.MaxGridCells)

	derived := Derived{
		Scale:    scale,
		CellDims: tank.Size(),
	}
	derived.GridDim = [3]int{
		int(derived.CellDims.X) + 2,
		int(derived.CellDims.Y) + 4,
		int(derived.CellDims.Z) + 2,
	}
	derived.WallMin = vecmath.Vec{X: 1.5, Y: 1.5, Z: 1.5}
	derived.WallMax = vecmath.Vec{
		X: float64(derived.GridDim[0]) - 1.5,
		Y: float64(derived.GridDim[1]) - 1.5,
		Z: float64(derived.GridDim[2]) - 1.5,
	}

	return &Config{Constants: constants, Tank: tank, Derived: derived}, nil
}

func readFileOrEmbed(dir, name string, embedded []byte) ([]byte, error) {
	if dir == "" {
		return embedded, nil
	}
	data, err := os.ReadFile(dir + string(os.PathSeparator) + name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

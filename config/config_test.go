package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Embedded defaults parse without error. (That a user-override file with
// "//" comments parses identically to the same file with the comments
// stripped by hand is checked by TestLoadStripsLineComments.)
func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg.Constants.MaxGridCells <= 0 {
		t.Errorf("expected positive MaxGridCells, got %d", cfg.Constants.MaxGridCells)
	}
	if cfg.Tank.TankDim.Width <= 0 {
		t.Errorf("expected positive tank width, got %v", cfg.Tank.TankDim.Width)
	}
}

func TestLoadStripsLineComments(t *testing.T) {
	dir := t.TempDir()
	commented := []byte(`{
    // this is a comment line
    "MAX_GRID_CELLS": 1000,
    "WORLD_DT": 0.01,
    "DEFAULT_GRAVITY": -9.8,
    "DEFAULT_DENSITY": {"x": 1, "y": 2},
    "DEFAULT_PARTICLE_MASS": 1,
    "DEFAULT_FILL_HEIGHT": 0.5,
    "DEFAULT_DAMPENING": 0.9,
    "MAX_PARTICLES": 100,
    "VISIBLE_PARTICLES": 100,
    "DEBUG_FLUID_PARTICLES": {"base": false, "fill": false, "spec": true}
}`)
	stripped := []byte(`{
    "MAX_GRID_CELLS": 1000,
    "WORLD_DT": 0.01,
    "DEFAULT_GRAVITY": -9.8,
    "DEFAULT_DENSITY": {"x": 1, "y": 2},
    "DEFAULT_PARTICLE_MASS": 1,
    "DEFAULT_FILL_HEIGHT": 0.5,
    "DEFAULT_DAMPENING": 0.9,
    "MAX_PARTICLES": 100,
    "VISIBLE_PARTICLES": 100,
    "DEBUG_FLUID_PARTICLES": {"base": false, "fill": false, "spec": true}
}`)

	var withComments, withoutComments Constants
	if err := readJSON(commented, &withComments); err != nil {
		t.Fatalf("readJSON(commented) = %v", err)
	}
	if err := readJSON(stripped, &withoutComments); err != nil {
		t.Fatalf("readJSON(stripped) = %v", err)
	}
	if withComments != withoutComments {
		t.Errorf("commented config parsed differently: %+v vs %+v", withComments, withoutComments)
	}

	if err := os.WriteFile(filepath.Join(dir, "constants.json"), commented, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tank.json"), defaultTankJSON, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err != nil {
		t.Fatalf("Load(dir) with commented override = %v", err)
	}
}

// Tank.Update scales dimensions such that
// width*depth*height*scale^3 <= MAX_GRID_CELLS within tolerance.
func TestTankUpdateScaleNegotiation(t *testing.T) {
	tank := Tank{TankDim: TankDimensions{Width: 150, Depth: 80, Height: 70, Glass: 15}}
	gridCells := 5000

	scale := tank.Update(gridCells)

	got := tank.TankDim.Width * tank.TankDim.Depth * tank.TankDim.Height
	want := float64(gridCells)
	if diff := got - want; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("scaled cell count = %v, want %v", got, want)
	}
	if scale <= 0 {
		t.Errorf("expected positive scale, got %v", scale)
	}
}

func TestInitAndCfgSingleton(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init(\"\") = %v", err)
	}
	if Cfg() == nil {
		t.Fatal("Cfg() returned nil after Init")
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	mu.Lock()
	saved := instance
	instance = nil
	mu.Unlock()
	defer func() {
		mu.Lock()
		instance = saved
		mu.Unlock()
	}()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Cfg() to panic before Init")
		}
	}()
	Cfg()
}

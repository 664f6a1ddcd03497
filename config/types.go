package config

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pthm-cable/mlsmpm/forcefield"
	"github.com/pthm-cable/mlsmpm/mpm"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

// Vec2JSON mirrors constants.json's {x,y} density pair.
type Vec2JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3JSON mirrors a {x,y,z} point or extent.
type Vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3JSON) ToVec() vecmath.Vec { return vecmath.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// ParticleVisibilityConf controls which debug particle kinds are rendered
// by a future consumer; the solver itself ignores it.
type ParticleVisibilityConf struct {
	Base bool `json:"base"`
	Fill bool `json:"fill"`
	Spec bool `json:"spec"`
}

// Constants mirrors constants.json. FluidModel/ElasticModel are not read
// from JSON; they are fixed in code after load (see Load), matching the
// source's own post-load override.
type Constants struct {
	MaxGridCells   int     `json:"MAX_GRID_CELLS"`
	WorldDT        float64 `json:"WORLD_DT"`
	DefaultGravity float64 `json:"DEFAULT_GRAVITY"`

	DefaultDensity      Vec2JSON `json:"DEFAULT_DENSITY"`
	DefaultParticleMass float64  `json:"DEFAULT_PARTICLE_MASS"`
	DefaultFillHeight   float64  `json:"DEFAULT_FILL_HEIGHT"`
	DefaultDampening    float64  `json:"DEFAULT_DAMPENING"`

	MaxParticles     int `json:"MAX_PARTICLES"`
	VisibleParticles int `json:"VISIBLE_PARTICLES"`

	DebugFluidParticles ParticleVisibilityConf `json:"DEBUG_FLUID_PARTICLES"`

	// Populated by Load, not by JSON.
	DefaultPPC   int
	FluidModel   mpm.FluidModel
	ElasticModel mpm.ElasticModel
}

// DirectionJSON decodes tank.json's tagged-enum force direction:
// {"Inward": speed} | {"Outward": speed} | {"Parallel": [x,y,z]}.
type DirectionJSON struct {
	Dir      forcefield.Direction
	Speed    float64
	Parallel vecmath.Vec
}

func (d *DirectionJSON) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw["Inward"]; ok {
		d.Dir = forcefield.Inward
		return json.Unmarshal(v, &d.Speed)
	}
	if v, ok := raw["Outward"]; ok {
		d.Dir = forcefield.Outward
		return json.Unmarshal(v, &d.Speed)
	}
	if v, ok := raw["Parallel"]; ok {
		var xyz [3]float64
		if err := json.Unmarshal(v, &xyz); err != nil {
			return err
		}
		d.Dir = forcefield.Parallel
		d.Parallel = vecmath.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		return nil
	}
	return fmt.Errorf("config: force direction must be one of Inward/Outward/Parallel")
}

// ForceVolumeConfig mirrors one ExternalForceVolume entry in tank.json.
type ForceVolumeConfig struct {
	Location  Vec3JSON      `json:"location"`
	Extent    Vec3JSON      `json:"extent"`
	Direction DirectionJSON `json:"direction"`
	Name      string        `json:"name"`
}

// ToVolume converts a config entry into the runtime forcefield.Volume.
func (f ForceVolumeConfig) ToVolume() forcefield.Volume {
	return forcefield.Volume{
		Name:     f.Name,
		Center:   f.Location.ToVec(),
		Extent:   f.Extent.ToVec(),
		Dir:      f.Direction.Dir,
		Speed:    f.Direction.Speed,
		Parallel: f.Direction.Parallel,
	}
}

func (f *ForceVolumeConfig) scale(s float64) {
	f.Location = Vec3JSON{X: f.Location.X * s, Y: f.Location.Y * s, Z: f.Location.Z * s}
	f.Extent = Vec3JSON{X: f.Extent.X * s, Y: f.Extent.Y * s, Z: f.Extent.Z * s}
	switch f.Direction.Dir {
	case forcefield.Inward, forcefield.Outward:
		f.Direction.Speed *= s
	case forcefield.Parallel:
		f.Direction.Parallel = vecmath.Scale(s, f.Direction.Parallel)
	}
}

// HoleAndLocation mirrors an overflow drill hole; carried through for
// completeness even though the solver core does not consume it.
type HoleAndLocation struct {
	Position string `json:"position"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Diameter int    `json:"diameter"`
}

// Position2D is a shaft-path waypoint in the tank's XZ plane.
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TankDimensions mirrors tank.json's "tank" block.
type TankDimensions struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
	Glass  float64 `json:"glass"`
}

// OverflowData mirrors tank.json's "overflow" block.
type OverflowData struct {
	Drill []HoleAndLocation `json:"drill"`
	Shaft []Position2D      `json:"shaft"`
}

// PumpDefinition mirrors tank.json's "pump" block.
type PumpDefinition struct {
	Inlet  ForceVolumeConfig `json:"inlet"`
	Outlet ForceVolumeConfig `json:"outlet"`
}

// Tank mirrors tank.json. Scale is computed by Update, not read from JSON.
type Tank struct {
	TankDim  TankDimensions `json:"tank"`
	Overflow OverflowData   `json:"overflow"`
	Pump     PumpDefinition `json:"pump"`

	Scale float64 `json:"-"`
}

// Update negotiates a cell scale against gridCells so the tank's cell count
// at unit grid size is at most gridCells, then scales every tank dimension,
// pump extent, and overflow waypoint by it.
func (t *Tank) Update(gridCells int) float64 {
	cellCount := t.TankDim.Width * t.TankDim.Depth * t.TankDim.Height
	scale := math.Cbrt(float64(gridCells) / cellCount)
	t.Scale = scale

	t.TankDim.Width *= scale
	t.TankDim.Depth *= scale
	t.TankDim.Height *= scale
	t.TankDim.Glass *= scale

	t.Pump.Inlet.scale(scale)
	t.Pump.Outlet.scale(scale)

	for i := range t.Overflow.Shaft {
		t.Overflow.Shaft[i].X *= scale
		t.Overflow.Shaft[i].Y *= scale
	}
	return scale
}

// Size returns (width, height, depth) in world units for Vec3-style
// consumers.
func (t *Tank) Size() vecmath.Vec {
	return vecmath.Vec{X: t.TankDim.Width, Y: t.TankDim.Height, Z: t.TankDim.Depth}
}

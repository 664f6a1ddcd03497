// Package forcefield implements the localized external force boxes used for
// both ambient current shaping and the pump's inlet/outlet coupling.
package forcefield

import (
	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

// Direction selects how a Volume turns a query point into a force vector.
type Direction int

const (
	// Inward produces a force pointing from the query point toward the
	// volume's center, scaled to Speed.
	Inward Direction = iota
	// Outward produces a force pointing away from the volume's center,
	// scaled to Speed.
	Outward
	// Parallel produces a fixed force vector regardless of query point.
	Parallel
)

// Volume is a named axis-aligned box that produces a configurable
// directional force for any point inside it.
type Volume struct {
	Name   string
	Center vecmath.Vec
	Extent vecmath.Vec

	Dir      Direction
	Speed    float64     // used by Inward/Outward
	Parallel vecmath.Vec // used by Parallel
}

// ForceAt returns the force this volume contributes at p, or the zero
// vector if p is outside the box.
func (v Volume) ForceAt(p vecmath.Vec) vecmath.Vec {
	off := vecmath.Sub(p, v.Center)
	if abs(off.X) >= v.Extent.X || abs(off.Y) >= v.Extent.Y || abs(off.Z) >= v.Extent.Z {
		return vecmath.Vec{}
	}

	switch v.Dir {
	case Inward:
		ray := vecmath.Unit(vecmath.Sub(v.Center, p))
		return vecmath.Scale(v.Speed, ray)
	case Outward:
		ray := vecmath.Unit(off)
		return vecmath.Scale(v.Speed, ray)
	default: // Parallel
		return v.Parallel
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Bake accumulates gravity plus every volume's contribution at p.
func Bake(gravity vecmath.Vec, vols []Volume, p vecmath.Vec) vecmath.Vec {
	sum := gravity
	for _, v := range vols {
		sum = vecmath.Add(sum, v.ForceAt(p))
	}
	return sum
}

// BakeGridForces writes accumulated external force into every Fluid cell of
// the grid, once at startup.
func BakeGridForces(g *grid.Grid, gravity vecmath.Vec, vols []Volume) {
	for i := range g.Cells {
		if g.Cells[i].Type != grid.Fluid {
			continue
		}
		g.Cells[i].ExternalForce = Bake(gravity, vols, g.CellCenter(i))
	}
}

package mpm

import (
	"math"

	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/vecmath"
	"github.com/pthm-cable/mlsmpm/workpool"
)

// WallToFluid redistributes ghost mass/velocity accumulated on Solid cells
// back into their adjacent Fluid cells: each Solid cell with
// fluid neighbors feeds 2x its mass/velocity, split evenly, into those
// neighbors. Serial: it mutates g.TmpMass/TmpVelo for cells other than the
// one being iterated.
func WallToFluid(g *grid.Grid) {
	for i := range g.Cells {
		c := &g.Cells[i]
		if c.Type != grid.Solid || len(c.FluidNeighbors) == 0 {
			continue
		}
		n := float64(len(c.FluidNeighbors))
		massShare := 2 * g.TmpMass[i] / n
		veloShare := vecmath.Scale(2/n, g.TmpVelo[i])
		for _, ni := range c.FluidNeighbors {
			g.TmpMass[ni] += massShare
			g.TmpVelo[ni] = vecmath.Add(g.TmpVelo[ni], veloShare)
		}
	}
}

// GridUpdate converts the accumulated scratch momentum into a final
// velocity per cell, in parallel: Solid cells are clamped to
// zero velocity, Fluid/Air cells divide momentum by mass and add the
// baked external force, then collider normals are reflected out of the
// velocity with a damped rescale.
func GridUpdate(g *grid.Grid, dt float64) {
	workpool.Run(len(g.Cells), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			updateCell(g, i, dt)
		}
	})
}

func updateCell(g *grid.Grid, i int, dt float64) {
	c := &g.Cells[i]
	c.Mass = g.TmpMass[i]

	if c.Type == grid.Solid {
		c.Velocity = vecmath.Vec{}
		return
	}

	var newVel vecmath.Vec
	if c.Mass > 0 {
		newVel = vecmath.Add(vecmath.Scale(1/c.Mass, g.TmpVelo[i]), vecmath.Scale(dt, c.ExternalForce))
	}

	if len(c.ColliderNormals) == 0 {
		c.Velocity = newVel
		return
	}

	oldVel := newVel
	reflected := newVel
	for _, n := range c.ColliderNormals {
		d := vecmath.Dot(reflected, n)
		if d < 0 {
			reflected = vecmath.Sub(reflected, vecmath.Scale(d, n))
		}
	}

	// Heuristic damped reflection: halves the speed (a quarter of the
	// kinetic energy) regardless of whether the normal actually opposed
	// motion. Tuning knob.
	oldSq := vecmath.Dot(oldVel, oldVel)
	newSq := vecmath.Dot(reflected, reflected)
	if newSq == 0 {
		c.Velocity = vecmath.Vec{}
		return
	}
	scale := 0.5 * math.Sqrt(oldSq/newSq)
	c.Velocity = vecmath.Scale(scale, reflected)
}

// Package boundary enforces the hard grid-interior clamp, the predictive
// wall-reflection dampening, and pump recirculation on the particle store.
package boundary

import (
	"github.com/pthm-cable/mlsmpm/particle"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

const (
	wallMargin = 1.001
)

// Limits carries the grid's per-axis interior wall extents used by both the
// hard clamp and the predictive reflection.
type Limits struct {
	WallMin vecmath.Vec // 1.5 per axis
	WallMax vecmath.Vec // Gdim - 1.5 per axis
	Dim     vecmath.Vec // Gx, Gy, Gz as floats, for the hard clamp
}

// Enforce clamps every particle to the grid interior and applies predictive
// wall reflection, for both fluid and solid particles.
func Enforce(store *particle.Store, lim Limits, dt float64) {
	for i := range store.Fluid {
		enforceOne(&store.Fluid[i].Pos, &store.Fluid[i].Vel, lim, dt)
	}
	for i := range store.Solid {
		enforceOne(&store.Solid[i].Pos, &store.Solid[i].Vel, lim, dt)
	}
}

func enforceOne(pos, vel *vecmath.Vec, lim Limits, dt float64) {
	clampToInterior(pos, lim.Dim)
	predictiveReflect(pos, vel, lim, dt)
}

// clampToInterior hard-clamps a particle's position into [1.001, Gc-1.001]
// on every axis.
func clampToInterior(pos *vecmath.Vec, dim vecmath.Vec) {
	pos.X = clampAxis(pos.X, dim.X)
	pos.Y = clampAxis(pos.Y, dim.Y)
	pos.Z = clampAxis(pos.Z, dim.Z)
}

func clampAxis(c, gdim float64) float64 {
	lo, hi := wallMargin, gdim-wallMargin
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}

// predictiveReflect looks a small epsilon ahead of the particle's motion and,
// if that would cross a wall, folds the overshoot into velocity now rather
// than waiting for the position clamp to snap it.
func predictiveReflect(pos, vel *vecmath.Vec, lim Limits, dt float64) {
	eps := 0.1 * dt
	next := vecmath.Add(*pos, vecmath.Scale(eps, *vel))

	reflectAxis(&next.X, &vel.X, lim.WallMin.X, lim.WallMax.X)
	reflectAxis(&next.Y, &vel.Y, lim.WallMin.Y, lim.WallMax.Y)
	reflectAxis(&next.Z, &vel.Z, lim.WallMin.Z, lim.WallMax.Z)
}

func reflectAxis(nextC, velC *float64, wallMin, wallMax float64) {
	if *nextC < wallMin {
		*velC += wallMin - *nextC
	} else if *nextC > wallMax {
		*velC += wallMax - *nextC
	}
}

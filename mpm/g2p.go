package mpm

import (
	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/particle"
	"github.com/pthm-cable/mlsmpm/vecmath"
	"github.com/pthm-cable/mlsmpm/workpool"
)

// G2P gathers the final per-cell velocity back onto every particle in
// parallel, rebuilds its affine momentum from the velocity gradient, and
// advects its position. Cell velocities are read-only during this stage.
func G2P(g *grid.Grid, store *particle.Store, dt float64) {
	workpool.Run(len(store.Fluid), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &store.Fluid[i]
			p.Vel, p.Affine = gatherAndAdvect(g, &p.Pos, dt)
		}
	})
	workpool.Run(len(store.Solid), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &store.Solid[i]
			p.Vel, p.Affine = gatherAndAdvect(g, &p.Pos, dt)
		}
	})
}

func gatherAndAdvect(g *grid.Grid, pos *vecmath.Vec, dt float64) (vecmath.Vec, vecmath.Mat3) {
	idx, weight, dist := stencil27(g, *pos)

	var vel vecmath.Vec
	var b vecmath.Mat3
	for i := 0; i < 27; i++ {
		weightedV := vecmath.Scale(weight[i], g.Cells[idx[i]].Velocity)
		vel = vecmath.Add(vel, weightedV)
		b = b.Add(vecmath.Outer(weightedV, dist[i]))
	}
	affine := b.Scale(4)

	*pos = vecmath.Add(*pos, vecmath.Scale(dt, vel))
	return vel, affine
}

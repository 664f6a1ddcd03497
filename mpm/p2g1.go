package mpm

import (
	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/particle"
	"github.com/pthm-cable/mlsmpm/vecmath"
	"github.com/pthm-cable/mlsmpm/workpool"
)

// scatterMassMomentum computes the 27-entry stage-1 scatter buffer for one
// mass carrier (fluid or solid particle) at pos/vel/affine/mass.
func scatterMassMomentum(g *grid.Grid, pos, vel vecmath.Vec, affine vecmath.Mat3, mass float64) [27]particle.ScatterEntry {
	idx, weight, dist := stencil27(g, pos)

	var out [27]particle.ScatterEntry
	for i := 0; i < 27; i++ {
		q := affine.MulVec(dist[i])
		massContrib := weight[i] * mass
		momentum := vecmath.Scale(massContrib, vecmath.Add(vel, q))
		out[i] = particle.ScatterEntry{
			Index:    idx[i],
			Mass:     massContrib,
			Momentum: momentum,
		}
	}
	return out
}

// P2GStage1 computes the mass/momentum scatter buffer for every particle in
// parallel; it performs no shared-state writes.
func P2GStage1(g *grid.Grid, store *particle.Store) {
	workpool.Run(len(store.Fluid), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &store.Fluid[i]
			p.Scatter = scatterMassMomentum(g, p.Pos, p.Vel, p.Affine, p.Mass)
		}
	})
	workpool.Run(len(store.Solid), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &store.Solid[i]
			p.Scatter = scatterMassMomentum(g, p.Pos, p.Vel, p.Affine, p.Mass)
		}
	})
}

// ApplyScatter serially accumulates every particle's scatter buffer into the
// grid's tmp mass/velocity buffers. Used after both p2g stage 1 and stage 2
// (stage 2 entries carry Mass=0, so the accumulation is a no-op for mass).
// Serial by design: this is the one point parallel scatter writes are
// consolidated without atomics.
func ApplyScatter(g *grid.Grid, store *particle.Store) {
	for i := range store.Fluid {
		applyOne(g, store.Fluid[i].Scatter[:])
	}
	for i := range store.Solid {
		applyOne(g, store.Solid[i].Scatter[:])
	}
}

func applyOne(g *grid.Grid, scatter []particle.ScatterEntry) {
	for _, e := range scatter {
		g.TmpMass[e.Index] += e.Mass
		g.TmpVelo[e.Index] = vecmath.Add(g.TmpVelo[e.Index], e.Momentum)
	}
}

package mpm

import (
	"math"

	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/particle"
	"github.com/pthm-cable/mlsmpm/vecmath"
	"github.com/pthm-cable/mlsmpm/workpool"
)

// P2GStage2 computes the fluid EOS stress contribution for every fluid
// particle in parallel and writes it into each particle's scatter buffer.
// Must run after ApplyScatter(g, store) for stage 1, so
// g.TmpMass already holds the stage-1 mass gather.
func P2GStage2(g *grid.Grid, store *particle.Store, model FluidModel, dt float64) {
	workpool.Run(len(store.Fluid), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &store.Fluid[i]
			p.Scatter = fluidStressScatter(g, p.Pos, p.Mass, p.Affine, model, dt)
		}
	})
}

func fluidStressScatter(g *grid.Grid, pos vecmath.Vec, mass float64, affine vecmath.Mat3, model FluidModel, dt float64) [27]particle.ScatterEntry {
	idx, weight, dist := stencil27(g, pos)

	var density float64
	for i := 0; i < 27; i++ {
		density += weight[i] * g.TmpMass[idx[i]]
	}
	if density == 0 {
		return [27]particle.ScatterEntry{}
	}
	volume := mass / density

	pressure := model.Stiffness * (math.Pow(density/model.RestDensity, model.Power) - 1)
	if pressure < -0.1 {
		pressure = -0.1
	}

	stress := vecmath.Diag(-pressure, -pressure, -pressure)

	// Three strain entries are overwritten with the determinant of the
	// affine momentum. Not a physically principled viscous term; the
	// emergent damping behavior is tuned around it (see DESIGN.md).
	strain := affine
	trace := strain.Det()
	strain = strain.Set(0, 2, trace)
	strain = strain.Set(1, 1, trace)
	strain = strain.Set(2, 1, trace)

	stress = stress.Add(strain.Scale(model.Viscosity))

	term := stress.Scale(-volume * 4 * dt)

	var out [27]particle.ScatterEntry
	for i := 0; i < 27; i++ {
		out[i] = particle.ScatterEntry{
			Index:    idx[i],
			Mass:     0,
			Momentum: vecmath.Scale(weight[i], term.MulVec(dist[i])),
		}
	}
	return out
}

// P2GStage2Solids computes the neo-Hookean Piola-Kirchhoff stress
// contribution for every solid particle in parallel.
func P2GStage2Solids(g *grid.Grid, store *particle.Store, model ElasticModel, dt float64) {
	workpool.Run(len(store.Solid), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &store.Solid[i]
			p.Scatter = solidStressScatter(g, p.Pos, p.Mass, p.F, model, dt)
		}
	})
}

func solidStressScatter(g *grid.Grid, pos vecmath.Vec, mass float64, f vecmath.Mat3, model ElasticModel, dt float64) [27]particle.ScatterEntry {
	idx, weight, dist := stencil27(g, pos)

	var density float64
	for i := 0; i < 27; i++ {
		density += weight[i] * g.TmpMass[idx[i]]
	}
	if density == 0 {
		return [27]particle.ScatterEntry{}
	}
	volume := mass / density

	j := f.Det()
	finv, ok := f.Inverse()
	if !ok {
		return [27]particle.ScatterEntry{}
	}
	finvT := finv.Transpose()

	piola := f.Sub(finvT).Scale(model.Mu).Add(finvT.Scale(model.Lambda * math.Log(j)))
	stress := piola.MulMat(f.Transpose()).Scale(1 / j)

	term := stress.Scale(-volume * j * 4 * dt)

	var out [27]particle.ScatterEntry
	for i := 0; i < 27; i++ {
		out[i] = particle.ScatterEntry{
			Index:    idx[i],
			Mass:     0,
			Momentum: vecmath.Scale(weight[i], term.MulVec(dist[i])),
		}
	}
	return out
}

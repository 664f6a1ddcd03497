// Package mpm implements the MLS-MPM transfer pipeline: particle→grid
// stages 1 and 2 (mass/momentum scatter, stress contribution), the grid
// update (EOS-driven velocity solve plus collision reflection), and
// grid→particle gather. The stages run in a strict per-tick order:
// reset → p2g1 → p2g1_apply → p2g2(+solids) → wall_to_fluid → grid_update →
// g2p.
package mpm

// FluidModel holds the weakly-compressible EOS constants for fluid
// particles. The stiffness/power/viscosity values are overridden post-load
// from config (viscosity 0.001, stiffness 10, power 4).
type FluidModel struct {
	RestDensity float64
	Stiffness   float64
	Power       float64
	Viscosity   float64
}

// ElasticModel holds the neo-Hookean constants for solid particles.
type ElasticModel struct {
	Mu     float64
	Lambda float64
}

// Package particle holds the Lagrangian particle state: the fluid and solid
// particle stores the transfer pipeline scatters into and gathers from.
package particle

import "github.com/pthm-cable/mlsmpm/vecmath"

// ScatterEntry is one of a particle's 27 pre-allocated transfer-buffer
// slots, written by a p2g stage and consumed by its matching apply pass.
type ScatterEntry struct {
	Index    int
	Mass     float64
	Momentum vecmath.Vec
}

// Particle is a fluid material point.
type Particle struct {
	Pos    vecmath.Vec
	Vel    vecmath.Vec
	Mass   float64
	Affine vecmath.Mat3

	Scatter [27]ScatterEntry

	// ID is a stable, monotonically increasing identity tag; never reused,
	// so external consumers (telemetry, a future renderer) can key off it
	// across ticks even if the backing store compacts.
	ID int32
}

// Solid is a neo-Hookean material point: the same transfer state as a fluid
// particle, plus its own deformation gradient. Elastic constants (μ, λ) are
// shared across all solid particles via config, not stored per-particle.
type Solid struct {
	Particle
	F vecmath.Mat3 // deformation gradient, initially identity
}

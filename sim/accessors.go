package sim

import (
	"github.com/pthm-cable/mlsmpm/surface"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

// ParticleView is a read-only snapshot of one particle's renderable state.
type ParticleView struct {
	ID       int32
	Position vecmath.Vec
	Velocity vecmath.Vec
}

// Particles returns a read-only view of every fluid and solid particle,
// for a renderer or telemetry consumer, without exposing the
// underlying store for mutation.
func (s *Simulation) Particles() []ParticleView {
	views := make([]ParticleView, 0, s.Store.Len())
	for i := range s.Store.Fluid {
		p := &s.Store.Fluid[i]
		views = append(views, ParticleView{ID: p.ID, Position: p.Pos, Velocity: p.Vel})
	}
	for i := range s.Store.Solid {
		p := &s.Store.Solid[i].Particle
		views = append(views, ParticleView{ID: p.ID, Position: p.Pos, Velocity: p.Vel})
	}
	return views
}

// ParticleCount returns the total live particle count.
func (s *Simulation) ParticleCount() int { return s.Store.Len() }

// SurfaceSlice returns the per-cell mass/velocity at the fixed surface
// level, keyed by (x, z), for consumers that want the raw field rather
// than the reconstructed mesh.
func (s *Simulation) SurfaceSlice() (mass [][]float64, velocity [][]vecmath.Vec) {
	level := s.Grid.GetSurfaceLevel()
	gx, gz := s.Grid.Dim[0], s.Grid.Dim[2]
	mass = make([][]float64, gx)
	velocity = make([][]vecmath.Vec, gx)
	for x := 0; x < gx; x++ {
		mass[x] = make([]float64, gz)
		velocity[x] = make([]vecmath.Vec, gz)
		for z := 0; z < gz; z++ {
			c := s.Grid.Cells[s.Grid.IndexOf(x, level, z)]
			mass[x][z] = c.Mass
			velocity[x][z] = c.Velocity
		}
	}
	return
}

// SurfaceMesh returns the current displaced free-surface mesh.
func (s *Simulation) SurfaceMesh() *surface.Mesh { return s.Surface }

// SurfaceHeight returns the world-space Y offset a consumer should apply
// to the surface mesh's transform: surface level times cell scale.
func (s *Simulation) SurfaceHeight() float64 {
	return float64(s.Grid.GetSurfaceLevel()) * s.Grid.CellScale
}

// TotalMass returns the sum of particle mass currently live, for telemetry
// conservation checks.
func (s *Simulation) TotalMass() float64 { return s.Store.TotalMass() }

// TotalMomentum returns the sum of mass*velocity currently live, for
// telemetry conservation checks.
func (s *Simulation) TotalMomentum() vecmath.Vec { return s.Store.TotalMomentum() }

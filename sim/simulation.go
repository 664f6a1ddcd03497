// Package sim wires the grid, particle store, force volumes, pump, spray
// bar, and surface mesh into a single owned value and drives the per-tick
// MLS-MPM pipeline.
package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/mlsmpm/boundary"
	"github.com/pthm-cable/mlsmpm/config"
	"github.com/pthm-cable/mlsmpm/forcefield"
	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/mpm"
	"github.com/pthm-cable/mlsmpm/particle"
	"github.com/pthm-cable/mlsmpm/spray"
	"github.com/pthm-cable/mlsmpm/surface"
	"github.com/pthm-cable/mlsmpm/telemetry"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

// Simulation owns every piece of solver state and is the sole value a
// headless runner or future renderer needs to hold; there is no
// process-wide solver state.
type Simulation struct {
	Grid  *grid.Grid
	Store *particle.Store

	Volumes   []forcefield.Volume
	Colliders []grid.Collider
	Pump      boundary.Pump
	SprayBar  *spray.Bar
	Surface   *surface.Mesh

	fluidModel   mpm.FluidModel
	elasticModel mpm.ElasticModel
	lim          boundary.Limits
	maxParticles int
	defaultMass  float64
	assertFinite bool

	perf *telemetry.PerfCollector

	droppedInflow int
	pumpTeleports int
}

// NewSimulation builds a Simulation from a loaded config: allocates the
// grid at the tank's negotiated scale, bakes static force volumes,
// constructs the pump from the tank's inlet/outlet, fills the Fluid cells
// below DefaultFillHeight of the grid height with fluid particles, and
// builds the initial surface mesh. Colliders are installed separately via
// SetColliders.
func NewSimulation(cfg *config.Config) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim: nil config")
	}

	g := grid.New(cfg.Derived.CellDims, 1.0)

	inlet := cfg.Tank.Pump.Inlet.ToVolume()
	outlet := cfg.Tank.Pump.Outlet.ToVolume()
	volumes := []forcefield.Volume{inlet, outlet}

	gravity := vecmath.Vec{Y: cfg.Constants.DefaultGravity}
	forcefield.BakeGridForces(g, gravity, volumes)

	s := &Simulation{
		Grid:         g,
		Store:        particle.NewStore(cfg.Constants.MaxParticles),
		Volumes:      volumes,
		Pump:         boundary.NewPumpFromForceVolumes(outlet, inlet),
		SprayBar:     spray.NewBar(inlet.Center, inlet.Extent, 1),
		Surface:      surface.NewMesh(g.Dim[0], g.Dim[2]),
		fluidModel:   cfg.Constants.FluidModel,
		elasticModel: cfg.Constants.ElasticModel,
		lim:          boundary.Limits{WallMin: cfg.Derived.WallMin, WallMax: cfg.Derived.WallMax, Dim: vecmath.Vec{X: float64(g.Dim[0]), Y: float64(g.Dim[1]), Z: float64(g.Dim[2])}},
		maxParticles: cfg.Constants.MaxParticles,
		defaultMass:  cfg.Constants.DefaultParticleMass,
		assertFinite: cfg.Debug.AssertFinite,
		perf:         telemetry.NewPerfCollector(600), // 10 seconds at 60 ticks/sec
	}

	s.fill(cfg)
	surface.Update(s.Surface, s.Grid, s.Grid.GetSurfaceLevel())
	return s, nil
}

// SeedSpray replaces the spray bar's RNG stream with one derived from seed,
// for reproducible headless runs.
func (s *Simulation) SeedSpray(seed uint64) {
	s.SprayBar = spray.NewBar(s.SprayBar.Center, s.SprayBar.Extent, seed)
}

// SetColliders installs static obstacle geometry and rebuilds collision
// normals and fluid-neighbor bookkeeping. Call before the first Tick;
// obstacle mesh generation lives with the scene, not the solver.
func (s *Simulation) SetColliders(colliders []grid.Collider) {
	s.Colliders = colliders
	s.Grid.ApplyColliders(colliders)
}

// fill seeds the initial fluid population: one or two particles per Fluid
// cell whose y is below fill_height*Gy.
func (s *Simulation) fill(cfg *config.Config) {
	fillY := cfg.Constants.DefaultFillHeight * float64(s.Grid.Dim[1])
	ppc := cfg.Constants.DefaultPPC
	if ppc < 1 {
		ppc = 1
	}
	mass := cfg.Constants.DefaultParticleMass

	rng := rand.New(rand.NewPCG(7, 7))
	for i := range s.Grid.Cells {
		if s.Grid.Cells[i].Type != grid.Fluid {
			continue
		}
		x, y, z := s.Grid.To3D(i)
		if float64(y) >= fillY {
			continue
		}
		for p := 0; p < ppc; p++ {
			if s.Store.Len() >= s.maxParticles {
				return
			}
			jitter := vecmath.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
			pos := vecmath.Add(vecmath.Vec{X: float64(x), Y: float64(y), Z: float64(z)}, jitter)
			s.Store.AddFluid(pos, vecmath.Vec{}, mass)
		}
	}
}

// Tick advances the simulation by dt, running the full per-tick DAG in the
// fixed order: inflow+reset → p2g1 → p2g1_apply → p2g2 (+solids) →
// wall_to_fluid → grid_update → g2p (includes advect) → pump+boundary →
// surface_update.
func (s *Simulation) Tick(dt float64) {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseReset)
	// Inflow happens up front so a freshly spawned particle runs through
	// the full pipeline, boundary enforcement included, on its first tick.
	s.inflow()
	s.Grid.ResetScratch()

	s.perf.StartPhase(telemetry.PhaseP2G1)
	mpm.P2GStage1(s.Grid, s.Store)
	s.perf.StartPhase(telemetry.PhaseP2G1Apply)
	mpm.ApplyScatter(s.Grid, s.Store)

	s.perf.StartPhase(telemetry.PhaseP2G2)
	mpm.P2GStage2(s.Grid, s.Store, s.fluidModel, dt)
	mpm.P2GStage2Solids(s.Grid, s.Store, s.elasticModel, dt)
	mpm.ApplyScatter(s.Grid, s.Store)

	s.perf.StartPhase(telemetry.PhaseWallToFluid)
	mpm.WallToFluid(s.Grid)
	s.perf.StartPhase(telemetry.PhaseGridUpdate)
	mpm.GridUpdate(s.Grid, dt)

	s.perf.StartPhase(telemetry.PhaseG2P)
	mpm.G2P(s.Grid, s.Store, dt)

	s.perf.StartPhase(telemetry.PhaseBoundary)
	s.pumpTeleports += s.Pump.Apply(s.Store)
	boundary.Enforce(s.Store, s.lim, dt)
	if s.assertFinite {
		s.assertParticlesFinite()
	}

	s.perf.StartPhase(telemetry.PhaseSurface)
	surface.Update(s.Surface, s.Grid, s.Grid.GetSurfaceLevel())

	s.perf.EndTick()
}

// Perf exposes the rolling per-phase timing collector for telemetry
// consumers.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// assertParticlesFinite panics on the first NaN particle position. Gated
// behind Debug.AssertFinite; a NaN surviving to this point means a stage
// upstream diverged, and the boundary clamp alone cannot recover it.
func (s *Simulation) assertParticlesFinite() {
	for i := range s.Store.Fluid {
		p := &s.Store.Fluid[i]
		if math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y) || math.IsNaN(p.Pos.Z) {
			panic(fmt.Sprintf("sim: fluid particle %d has NaN position", p.ID))
		}
	}
	for i := range s.Store.Solid {
		p := &s.Store.Solid[i]
		if math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y) || math.IsNaN(p.Pos.Z) {
			panic(fmt.Sprintf("sim: solid particle %d has NaN position", p.ID))
		}
	}
}

// inflow draws one sample from the spray bar each tick, adding a fluid
// particle unless the store is already at capacity; dropped inflow is
// counted, not surfaced as an error.
func (s *Simulation) inflow() {
	if s.Store.Len() >= s.maxParticles {
		s.droppedInflow++
		return
	}
	pos := s.SprayBar.Sample()
	s.Store.AddFluid(pos, vecmath.Vec{}, s.defaultMass)
}

// SpawnSolid adds a neo-Hookean solid particle, subject to the same
// population cap as fluid inflow. Reports whether the particle was added.
func (s *Simulation) SpawnSolid(pos, vel vecmath.Vec) bool {
	if s.Store.Len() >= s.maxParticles {
		return false
	}
	s.Store.AddSolid(pos, vel, s.defaultMass)
	return true
}

// DroppedInflow reports how many inflow samples were skipped because the
// particle store was at capacity.
func (s *Simulation) DroppedInflow() int { return s.droppedInflow }

// PumpTeleports reports how many particles the pump has teleported from
// outlet to inlet since the simulation was created.
func (s *Simulation) PumpTeleports() int { return s.pumpTeleports }

package boundary

import (
	"testing"

	"github.com/pthm-cable/mlsmpm/forcefield"
	"github.com/pthm-cable/mlsmpm/particle"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

func testLimits() Limits {
	return Limits{
		WallMin: vecmath.Vec{X: 1.5, Y: 1.5, Z: 1.5},
		WallMax: vecmath.Vec{X: 8.5, Y: 8.5, Z: 8.5},
		Dim:     vecmath.Vec{X: 10, Y: 10, Z: 10},
	}
}

// Every particle position coordinate lands in
// [1.001, Gc-1.001] after boundary enforcement.
func TestEnforceClampsToInterior(t *testing.T) {
	store := particle.NewStore(4)
	store.AddFluid(vecmath.Vec{X: -5, Y: 20, Z: 3}, vecmath.Vec{}, 1)
	store.AddFluid(vecmath.Vec{X: 3, Y: 3, Z: 3}, vecmath.Vec{}, 1)

	Enforce(store, testLimits(), 1.0/60)

	lim := testLimits()
	for i := range store.Fluid {
		p := store.Fluid[i].Pos
		if p.X < wallMargin || p.X > lim.Dim.X-wallMargin {
			t.Errorf("particle %d X out of bounds: %v", i, p.X)
		}
		if p.Y < wallMargin || p.Y > lim.Dim.Y-wallMargin {
			t.Errorf("particle %d Y out of bounds: %v", i, p.Y)
		}
		if p.Z < wallMargin || p.Z > lim.Dim.Z-wallMargin {
			t.Errorf("particle %d Z out of bounds: %v", i, p.Z)
		}
	}
}

// The predictive wall reflection folds an outward-bound overshoot into
// velocity with the correct sign (the per-cell collider reflection lives
// in mpm.GridUpdate and is tested there).
func TestPredictiveReflectOpposesOvershoot(t *testing.T) {
	// eps = 0.1*dt ≈ 0.00167, so the lookahead from x=1.505 at vel -10
	// lands at ≈1.488, past the 1.5 wall.
	lim := testLimits()
	pos := vecmath.Vec{X: 1.505, Y: 5, Z: 5}
	vel := vecmath.Vec{X: -10, Y: 0, Z: 0}

	predictiveReflect(&pos, &vel, lim, 1.0/60)

	if vel.X <= -10 {
		t.Errorf("expected overshoot correction to increase vel.X, got %v", vel.X)
	}
}

// A particle within radius 1 of the pump source is
// teleported to target_center + offset with the pump's target velocity and
// zeroed affine momentum.
func TestPumpTeleport(t *testing.T) {
	outlet := forcefield.Volume{
		Center: vecmath.Vec{X: 5, Y: 5, Z: 5},
		Extent: vecmath.Vec{X: 1, Y: 1, Z: 1},
		Dir:    forcefield.Outward,
		Speed:  0,
	}
	inlet := forcefield.Volume{
		Center: vecmath.Vec{X: 20, Y: 5, Z: 5},
		Extent: vecmath.Vec{X: 1, Y: 1, Z: 1},
		Dir:    forcefield.Parallel,
		Parallel: vecmath.Vec{X: 2, Y: 0, Z: 0},
	}
	pump := NewPumpFromForceVolumes(outlet, inlet)

	store := particle.NewStore(1)
	store.AddFluid(vecmath.Vec{X: 5.3, Y: 5, Z: 5}, vecmath.Vec{X: 1, Y: 1, Z: 1}, 1)
	store.Fluid[0].Affine = vecmath.Diag(1, 1, 1)

	pump.Apply(store)

	got := store.Fluid[0].Pos
	offset := vecmath.Vec{X: 0.3, Y: 0, Z: 0}
	want := vecmath.Add(inlet.Center, offset)
	if got != want {
		t.Errorf("teleported position = %v, want %v", got, want)
	}
	if store.Fluid[0].Vel != pump.TargetVelocity {
		t.Errorf("teleported velocity = %v, want %v", store.Fluid[0].Vel, pump.TargetVelocity)
	}
	if store.Fluid[0].Affine != (vecmath.Mat3{}) {
		t.Errorf("expected affine momentum cleared, got %v", store.Fluid[0].Affine)
	}
}

func TestPumpIgnoresFarParticle(t *testing.T) {
	outlet := forcefield.Volume{Center: vecmath.Vec{X: 5, Y: 5, Z: 5}, Extent: vecmath.Vec{X: 2, Y: 2, Z: 2}}
	inlet := forcefield.Volume{Center: vecmath.Vec{X: 20, Y: 5, Z: 5}, Extent: vecmath.Vec{X: 1, Y: 1, Z: 1}, Dir: forcefield.Parallel}
	pump := NewPumpFromForceVolumes(outlet, inlet)

	store := particle.NewStore(1)
	store.AddFluid(vecmath.Vec{X: 8, Y: 5, Z: 5}, vecmath.Vec{X: 1, Y: 0, Z: 0}, 1)

	pump.Apply(store)

	if store.Fluid[0].Pos.X != 8 {
		t.Errorf("expected untouched particle, moved to %v", store.Fluid[0].Pos)
	}
}

package boundary

import (
	"github.com/pthm-cable/mlsmpm/forcefield"
	"github.com/pthm-cable/mlsmpm/particle"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

const pumpRadius = 1.0

// Pump couples an outlet and inlet force volume as a teleport: a particle
// drifting into the outlet reappears at the inlet carrying the inlet's own
// target velocity.
type Pump struct {
	Source         vecmath.Vec // outlet center
	Target         vecmath.Vec // inlet center
	TargetVelocity vecmath.Vec
}

// NewPumpFromForceVolumes builds a Pump whose target velocity is the
// inlet volume's own force evaluated at its own center; there is no
// independently configured exit speed.
func NewPumpFromForceVolumes(outlet, inlet forcefield.Volume) Pump {
	return Pump{
		Source:         outlet.Center,
		Target:         inlet.Center,
		TargetVelocity: inlet.ForceAt(inlet.Center),
	}
}

// Apply teleports every particle within pumpRadius of the source center to
// the target center (preserving its offset), resetting velocity to the
// pump's target velocity and clearing affine momentum. Returns the number
// of particles teleported this call, for telemetry.
func (p Pump) Apply(store *particle.Store) int {
	var teleports int
	for i := range store.Fluid {
		if p.applyOne(&store.Fluid[i]) {
			teleports++
		}
	}
	for i := range store.Solid {
		if p.applyOne(&store.Solid[i].Particle) {
			teleports++
		}
	}
	return teleports
}

func (p Pump) applyOne(part *particle.Particle) bool {
	offset := vecmath.Sub(part.Pos, p.Source)
	if vecmath.Norm(offset) > pumpRadius {
		return false
	}
	part.Pos = vecmath.Add(p.Target, offset)
	part.Vel = p.TargetVelocity
	part.Affine = vecmath.Mat3{}
	return true
}

package particle

import "github.com/pthm-cable/mlsmpm/vecmath"

// Store owns every particle in the simulation. Particles are never
// destroyed (the pump recycles them); the store only ever grows, up to
// MaxParticles enforced by the caller.
type Store struct {
	Fluid []Particle
	Solid []Solid

	nextID int32
}

// NewStore creates an empty store with room for the expected particle count.
func NewStore(capacityHint int) *Store {
	return &Store{Fluid: make([]Particle, 0, capacityHint)}
}

// AddFluid appends a new fluid particle and returns its assigned ID.
func (s *Store) AddFluid(pos, vel vecmath.Vec, mass float64) int32 {
	id := s.nextID
	s.nextID++
	s.Fluid = append(s.Fluid, Particle{Pos: pos, Vel: vel, Mass: mass, ID: id})
	return id
}

// AddSolid appends a new solid particle with an identity deformation
// gradient and returns its assigned ID.
func (s *Store) AddSolid(pos, vel vecmath.Vec, mass float64) int32 {
	id := s.nextID
	s.nextID++
	s.Solid = append(s.Solid, Solid{
		Particle: Particle{Pos: pos, Vel: vel, Mass: mass, ID: id},
		F:        vecmath.Identity(),
	})
	return id
}

// Len returns the total particle count (fluid + solid).
func (s *Store) Len() int { return len(s.Fluid) + len(s.Solid) }

// TotalMass sums the mass of every particle in the store.
func (s *Store) TotalMass() float64 {
	var total float64
	for i := range s.Fluid {
		total += s.Fluid[i].Mass
	}
	for i := range s.Solid {
		total += s.Solid[i].Mass
	}
	return total
}

// TotalMomentum sums mass*velocity over every particle in the store.
func (s *Store) TotalMomentum() vecmath.Vec {
	var total vecmath.Vec
	for i := range s.Fluid {
		total = vecmath.Add(total, vecmath.Scale(s.Fluid[i].Mass, s.Fluid[i].Vel))
	}
	for i := range s.Solid {
		total = vecmath.Add(total, vecmath.Scale(s.Solid[i].Mass, s.Solid[i].Vel))
	}
	return total
}

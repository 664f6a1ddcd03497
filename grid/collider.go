package grid

import "github.com/pthm-cable/mlsmpm/vecmath"

// ColliderHit is the result of a successful distance query.
type ColliderHit struct {
	Closest vecmath.Vec
	Inside  bool
}

// Collider is opaque static obstacle geometry. The only operation the grid
// consumes from it is a max-distance-bounded closest-point query; how the
// geometry is represented (mesh, primitive, signed-distance field) is left
// to the caller that constructs one.
type Collider interface {
	// ProjectPointWithMaxDistance returns the closest surface point to p and
	// whether a point was found within maxDist. A miss ("no collider
	// nearby") is not an error.
	ProjectPointWithMaxDistance(p vecmath.Vec, maxDist float64) (ColliderHit, bool)
}

// ApplyColliders bakes static obstacle geometry into the grid at startup.
// For every cell center and every collider, independently: a hit within 0.5
// marks the cell Solid; otherwise a hit within 1.0 appends a unit normal
// pointing from the cell toward the collider surface. Each collider runs
// both queries independently of the others.
func (g *Grid) ApplyColliders(colliders []Collider) {
	for i := range g.Cells {
		c := g.CellCenter(i)
		for _, col := range colliders {
			if _, ok := col.ProjectPointWithMaxDistance(c, 0.5); ok {
				g.Cells[i].Type = Solid
				continue
			}
			if hit, ok := col.ProjectPointWithMaxDistance(c, 1.0); ok {
				n := vecmath.Unit(vecmath.Sub(hit.Closest, c))
				g.Cells[i].ColliderNormals = append(g.Cells[i].ColliderNormals, n)
			}
		}
	}
	// Collider queries may have promoted Fluid cells to Solid; neighbor
	// lists must reflect the final typing.
	g.computeFluidNeighbors()
}

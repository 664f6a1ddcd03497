// Package grid implements the Eulerian background grid: cell typing,
// indexing, the per-tick scratch mass/velocity buffers, and the collision
// normals and fluid-neighbor bookkeeping that the MLS-MPM transfer stages
// read and write.
package grid

import (
	"log/slog"

	"github.com/pthm-cable/mlsmpm/vecmath"
)

// CellType classifies a grid cell. Solid on the outer shell, Air on the top
// slab, Fluid everywhere else; a cell's type is immutable after startup.
type CellType int

const (
	Fluid CellType = iota
	Air
	Solid
)

// Cell holds the per-cell state the transfer pipeline reads and writes.
type Cell struct {
	Type CellType

	Velocity vecmath.Vec
	Mass     float64

	// ExternalForce is gravity plus any baked force-volume contribution,
	// computed once at startup (see forcefield.BakeGridForces).
	ExternalForce vecmath.Vec

	// ColliderNormals are unit vectors pointing from this cell's center
	// toward nearby collider surfaces, populated by ApplyColliders.
	ColliderNormals []vecmath.Vec

	// FluidNeighbors holds, for Solid cells only, the indices of the Fluid
	// cells in its 3x3x3 neighborhood. Used by WallToFluid momentum feed.
	FluidNeighbors []int
}

// Grid is the 3D background lattice. Dim is (Gx, Gy, Gz); cell i sits at
// to_3d(i) = (i mod Gx, (i/Gx) mod Gy, i/(Gx*Gy)).
type Grid struct {
	Dim       [3]int
	CellScale float64

	Cells []Cell

	// TmpMass/TmpVelo are the per-tick scatter accumulation buffers shared
	// across p2g stage 1 and stage 2; they are reset at the start of every
	// tick (see ResetScratch) and are mutated only during serial apply
	// passes, per the concurrency model.
	TmpMass []float64
	TmpVelo []vecmath.Vec
}

// New allocates a grid sized to hold worldExtentCells (in grid units) at the
// given cell scale, padded by +2 in X/Z and +4 in Y for wall and air rows,
// and assigns the initial Fluid/Air/Solid typing.
func New(worldExtentCells vecmath.Vec, cellScale float64) *Grid {
	gx := int(worldExtentCells.X/cellScale) + 2
	gy := int(worldExtentCells.Y/cellScale) + 4
	gz := int(worldExtentCells.Z/cellScale) + 2

	g := &Grid{
		Dim:       [3]int{gx, gy, gz},
		CellScale: cellScale,
	}
	n := gx * gy * gz
	g.Cells = make([]Cell, n)
	g.TmpMass = make([]float64, n)
	g.TmpVelo = make([]vecmath.Vec, n)

	g.assignTypes()
	g.computeFluidNeighbors()
	return g
}

func (g *Grid) assignTypes() {
	gx, gy, gz := g.Dim[0], g.Dim[1], g.Dim[2]
	for i := range g.Cells {
		x, y, z := g.To3D(i)
		t := Fluid
		if x*y*z == 0 || x >= gx-1 || z >= gz-1 {
			t = Solid
		}
		if y >= gy-1 {
			t = Air
		}
		g.Cells[i].Type = t
	}
}

// computeFluidNeighbors populates FluidNeighbors for every Solid cell from
// the current typing. Called at construction and again after ApplyColliders
// since collider queries can promote Fluid cells to Solid.
func (g *Grid) computeFluidNeighbors() {
	gx, gz := g.Dim[0], g.Dim[2]
	for i := range g.Cells {
		if g.Cells[i].Type != Solid {
			g.Cells[i].FluidNeighbors = nil
			continue
		}
		x, y, z := g.To3D(i)
		var neighbors []int
		for dz := 0; dz < 3; dz++ {
			for dy := 0; dy < 3; dy++ {
				for dx := 0; dx < 3; dx++ {
					tx, ty, tz := x+dx, y+dy, z+dz
					if tx == 0 || ty == 0 || tz == 0 || tx > gx || tz > gz {
						continue
					}
					ox, oy, oz := tx-1, ty-1, tz-1
					if ox < 0 || oy < 0 || oz < 0 || ox >= g.Dim[0] || oy >= g.Dim[1] || oz >= g.Dim[2] {
						continue
					}
					oi := g.IndexOf(ox, oy, oz)
					if g.Cells[oi].Type == Fluid {
						neighbors = append(neighbors, oi)
					}
				}
			}
		}
		g.Cells[i].FluidNeighbors = neighbors
	}
}

// IndexOf returns the linear index for (x, y, z), clamped to the last valid
// cell for defensive safety.
func (g *Grid) IndexOf(x, y, z int) int {
	gx, gy := g.Dim[0], g.Dim[1]
	idx := x + gx*y + gx*gy*z
	if idx < 0 {
		return 0
	}
	if idx >= len(g.Cells) {
		return len(g.Cells) - 1
	}
	return idx
}

// IndexOfVec indexes a vector by truncating each component. A per-axis
// out-of-range lookup here indicates a bug upstream (boundary enforcement
// should prevent it) and is logged before the clamped index is returned.
func (g *Grid) IndexOfVec(v vecmath.Vec) int {
	x, y, z := int(v.X), int(v.Y), int(v.Z)
	if x < 0 || y < 0 || z < 0 || x >= g.Dim[0] || y >= g.Dim[1] || z >= g.Dim[2] {
		slog.Warn("grid: cell out of range", "x", x, "y", y, "z", z, "dim", g.Dim)
	}
	return g.IndexOf(x, y, z)
}

// To3D inverts IndexOf.
func (g *Grid) To3D(i int) (x, y, z int) {
	gx, gy := g.Dim[0], g.Dim[1]
	x = i % gx
	y = (i / gx) % gy
	z = i / (gx * gy)
	return
}

// CellCenter returns the grid-unit position of cell i's node.
func (g *Grid) CellCenter(i int) vecmath.Vec {
	x, y, z := g.To3D(i)
	return vecmath.Vec{X: float64(x), Y: float64(y), Z: float64(z)}
}

// ResetScratch zeroes the tmp mass/velocity buffers at the start of a tick.
func (g *Grid) ResetScratch() {
	for i := range g.TmpMass {
		g.TmpMass[i] = 0
		g.TmpVelo[i] = vecmath.Vec{}
	}
}

// GetSurfaceLevel returns the fixed grid row used as the free-surface proxy.
// Dynamic surface tracking is deferred.
func (g *Grid) GetSurfaceLevel() int { return g.Dim[1] - 5 }

package grid

import (
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/mlsmpm/vecmath"
)

func newTestGrid() *Grid {
	return New(vecmath.Vec{X: 8, Y: 8, Z: 8}, 1.0)
}

func TestIndexRoundTrip(t *testing.T) {
	g := newTestGrid()
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		x := rng.IntN(g.Dim[0])
		y := rng.IntN(g.Dim[1])
		z := rng.IntN(g.Dim[2])
		idx := g.IndexOf(x, y, z)
		gx, gy, gz := g.To3D(idx)
		if gx != x || gy != y || gz != z {
			t.Fatalf("round trip failed for (%d,%d,%d): got (%d,%d,%d)", x, y, z, gx, gy, gz)
		}
	}
}

func TestInitialTyping(t *testing.T) {
	g := newTestGrid()
	gx, gy, gz := g.Dim[0], g.Dim[1], g.Dim[2]

	// Walls.
	if g.Cells[g.IndexOf(0, 2, 2)].Type != Solid {
		t.Error("x=0 should be Solid")
	}
	if g.Cells[g.IndexOf(gx-1, 2, 2)].Type != Solid {
		t.Error("x=Gx-1 should be Solid")
	}
	if g.Cells[g.IndexOf(2, 2, 0)].Type != Solid {
		t.Error("z=0 should be Solid")
	}
	if g.Cells[g.IndexOf(2, 2, gz-1)].Type != Solid {
		t.Error("z=Gz-1 should be Solid")
	}
	if g.Cells[g.IndexOf(2, 0, 2)].Type != Solid {
		t.Error("y=0 should be Solid")
	}

	// Top slab is Air even above a side wall column.
	if g.Cells[g.IndexOf(0, gy-1, 2)].Type != Air {
		t.Error("y=Gy-1 should be Air even at x=0")
	}

	// Interior is Fluid.
	if g.Cells[g.IndexOf(gx/2, gy/2, gz/2)].Type != Fluid {
		t.Error("interior cell should be Fluid")
	}
}

func TestFluidNeighborsOfWallCell(t *testing.T) {
	g := newTestGrid()
	idx := g.IndexOf(0, 2, 2)
	if g.Cells[idx].Type != Solid {
		t.Fatal("expected wall cell to be Solid")
	}
	if len(g.Cells[idx].FluidNeighbors) == 0 {
		t.Error("expected wall cell adjacent to fluid to have fluid neighbors")
	}
	for _, n := range g.Cells[idx].FluidNeighbors {
		if g.Cells[n].Type != Fluid {
			t.Errorf("neighbor %d is not Fluid", n)
		}
	}
}

func TestResetScratch(t *testing.T) {
	g := newTestGrid()
	g.TmpMass[3] = 5
	g.TmpVelo[3] = vecmath.Vec{X: 1, Y: 2, Z: 3}
	g.ResetScratch()
	if g.TmpMass[3] != 0 || g.TmpVelo[3] != (vecmath.Vec{}) {
		t.Error("ResetScratch did not zero scratch buffers")
	}
}

func TestSurfaceLevel(t *testing.T) {
	g := newTestGrid()
	if got := g.GetSurfaceLevel(); got != g.Dim[1]-5 {
		t.Errorf("GetSurfaceLevel() = %d, want %d", got, g.Dim[1]-5)
	}
}

type fakeCollider struct {
	surface vecmath.Vec
}

func (f fakeCollider) ProjectPointWithMaxDistance(p vecmath.Vec, maxDist float64) (ColliderHit, bool) {
	d := vecmath.Norm(vecmath.Sub(p, f.surface))
	if d > maxDist {
		return ColliderHit{}, false
	}
	return ColliderHit{Closest: f.surface}, true
}

func TestApplyCollidersMarksSolidAndNormals(t *testing.T) {
	g := newTestGrid()
	col := fakeCollider{surface: vecmath.Vec{X: 4, Y: 4, Z: 4}}
	g.ApplyColliders([]Collider{col})

	solidIdx := g.IndexOf(4, 4, 4)
	if g.Cells[solidIdx].Type != Solid {
		t.Error("cell coincident with collider surface should become Solid")
	}

	nearIdx := g.IndexOf(5, 4, 4) // distance 1.0, within the 0.5..1.0 band
	if len(g.Cells[nearIdx].ColliderNormals) == 0 {
		t.Error("cell within 1.0 of collider should gain a normal")
	}
}

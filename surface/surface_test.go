package surface

import (
	"testing"

	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

// The vertex grid is (2*Gx-2) x (2*Gz-2).
func TestMeshVertexCount(t *testing.T) {
	gx, gz := 8, 6
	m := NewMesh(gx, gz)

	wantW, wantD := 2*gx-2, 2*gz-2
	if m.Width != wantW || m.Depth != wantD {
		t.Fatalf("dims = (%d,%d), want (%d,%d)", m.Width, m.Depth, wantW, wantD)
	}
	if len(m.Positions) != wantW*wantD {
		t.Errorf("len(Positions) = %d, want %d", len(m.Positions), wantW*wantD)
	}
}

func TestMeshIndicesCoverEveryQuad(t *testing.T) {
	m := NewMesh(5, 4)
	if len(m.Indices) == 0 {
		t.Fatal("expected non-empty index buffer")
	}
	for _, idx := range m.Indices {
		if int(idx) < 0 || int(idx) >= len(m.Positions) {
			t.Fatalf("index %d out of range [0,%d)", idx, len(m.Positions))
		}
	}
}

// Injecting a downward velocity impulse into a single fluid
// cell at the surface slice displaces the vertices whose sampling
// neighborhood includes that cell, all with matching (downward) sign.
func TestSurfaceRespondsToImpulse(t *testing.T) {
	g := grid.New(vecmath.Vec{X: 6, Y: 6, Z: 6}, 1.0)
	level := g.GetSurfaceLevel()

	m := NewMesh(g.Dim[0], g.Dim[2])
	Update(m, g, level)
	for _, p := range m.Positions {
		if p.Y != 0 {
			t.Fatalf("expected flat mesh before impulse, got y=%v", p.Y)
		}
	}

	// Mass lifts the surface, so the downward impulse has to outweigh it
	// for the net displacement to point down.
	cx, cz := g.Dim[0]/2, g.Dim[2]/2
	ci := g.IndexOf(cx, level, cz)
	g.Cells[ci].Mass = 1
	g.Cells[ci].Velocity = vecmath.Vec{Y: -3}

	Update(m, g, level)

	displaced := 0
	for _, p := range m.Positions {
		if p.Y != 0 {
			if p.Y > 0 {
				t.Errorf("expected non-positive displacement for downward impulse, got %v", p.Y)
			}
			displaced++
		}
	}
	if displaced == 0 {
		t.Error("expected at least one displaced vertex after impulse")
	}
}

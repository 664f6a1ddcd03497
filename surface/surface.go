package surface

import (
	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

// Update resamples every vertex of m from the grid's fixed surface slice.
// surfaceLevel is grid.GetSurfaceLevel(); placing the mesh at its world
// height (surfaceLevel * cell scale) is left to the consumer's transform.
func Update(m *Mesh, g *grid.Grid, surfaceLevel int) {
	for z := 0; z < m.Depth; z++ {
		for x := 0; x < m.Width; x++ {
			m.sampleVertex(g, x, z, surfaceLevel)
		}
	}
}

func (m *Mesh) sampleVertex(g *grid.Grid, x, z, surfaceLevel int) {
	cellX := x/2 + 1
	cellZ := z/2 + 1
	localX := x%2 - 1
	localZ := z%2 - 1

	var avg vecmath.Vec
	for nz := 0; nz < 2; nz++ {
		for nx := 0; nx < 2; nx++ {
			ix, iz := localX+nx, localZ+nz
			weight := weight2x2(ix, iz)
			ci := g.IndexOf(cellX+ix, surfaceLevel, cellZ+iz)
			c := g.Cells[ci]
			// Mass is added to each velocity component before weighting, so
			// resting water (mass, no motion) still lifts the surface.
			sample := vecmath.Add(c.Velocity, vecmath.Vec{X: c.Mass, Y: c.Mass, Z: c.Mass})
			avg = vecmath.Add(avg, vecmath.Scale(weight*0.075, sample))
		}
	}

	avg = vecmath.Scale(1.0/9, avg)

	vi := z*m.Width + x
	pos := vecmath.Vec{X: float64(x) / 2, Y: 0.75 * avg.Y, Z: float64(z) / 2}
	m.Positions[vi] = pos
	m.Colors[vi] = vecmath.Vec{Y: avg.Y}
	m.Normals[vi] = vecmath.Vec{X: 0.2 * avg.X, Y: 1.0, Z: 0.2 * avg.Z}
}

// weight2x2 returns 2^(2-(|ix|+|iz|)), the bilinear-like falloff used to
// blend the 2x2 neighborhood.
func weight2x2(ix, iz int) float64 {
	a := absInt(ix)
	b := absInt(iz)
	exp := 2 - (a + b)
	if exp < 0 {
		exp = 0
	}
	w := 1.0
	for i := 0; i < exp; i++ {
		w *= 2
	}
	return w
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

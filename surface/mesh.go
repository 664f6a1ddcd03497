// Package surface reconstructs the free-surface display mesh from a fixed
// grid slice each tick.
package surface

import "github.com/pthm-cable/mlsmpm/vecmath"

// Mesh is a displaced triangle-strip mesh over the grid's XZ footprint,
// sampled at the fixed surface slice. Its vertex grid has
// dimensions (2*Gx-2) x (2*Gz-2); Positions/Normals/Colors are parallel
// per-vertex attribute buffers, Indices is the triangle-strip index list.
type Mesh struct {
	Width, Depth int // vertex-grid dimensions: 2*Gx-2, 2*Gz-2

	Positions []vecmath.Vec
	Normals   []vecmath.Vec
	Colors    []vecmath.Vec // rgb packed as (r,g,b); only green is driven

	Indices []int32
}

// NewMesh allocates a mesh sized to the grid's footprint and builds its
// static triangle-strip index buffer once.
func NewMesh(gx, gz int) *Mesh {
	w, d := 2*gx-2, 2*gz-2
	n := w * d
	m := &Mesh{
		Width:     w,
		Depth:     d,
		Positions: make([]vecmath.Vec, n),
		Normals:   make([]vecmath.Vec, n),
		Colors:    make([]vecmath.Vec, n),
	}
	m.buildIndices()
	return m
}

// buildIndices lays out a row-major triangle strip with degenerate
// triangles stitching consecutive rows together, so the strip can be drawn
// as a single primitive.
func (m *Mesh) buildIndices() {
	w, d := m.Width, m.Depth
	m.Indices = m.Indices[:0]
	for z := 0; z < d-1; z++ {
		if z > 0 {
			// degenerate triangles: repeat the previous strip's last index
			// and the next strip's first index to stitch strips without a
			// primitive restart.
			m.Indices = append(m.Indices, int32(z*w+(w-1)))
			m.Indices = append(m.Indices, int32(z*w))
		}
		for x := 0; x < w; x++ {
			m.Indices = append(m.Indices, int32(z*w+x))
			m.Indices = append(m.Indices, int32((z+1)*w+x))
		}
	}
}

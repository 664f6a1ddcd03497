package vecmath

// QuadraticWeights computes the MPM quadratic B-spline weights (MPM course,
// eq. 123) for a particle offset diff ∈ [-0.5, 0.5] from its containing
// cell's center. Returns the three per-axis weight triples ({-1,0,+1}
// stencil offsets) whose products form the 27-cell stencil weight.
func QuadraticWeights(diff Vec) (wx, wy, wz [3]float64) {
	wx = axisWeights(diff.X)
	wy = axisWeights(diff.Y)
	wz = axisWeights(diff.Z)
	return
}

func axisWeights(d float64) [3]float64 {
	return [3]float64{
		0.5 * (0.5 - d) * (0.5 - d),
		0.75 - d*d,
		0.5 * (0.5 + d) * (0.5 + d),
	}
}

// CellAndDiff splits a particle position into its containing cell (floor)
// and the offset of the particle from that cell's center (pos - cell - 0.5).
func CellAndDiff(pos Vec) (cell Vec, diff Vec) {
	cell = Floor(pos)
	diff = Sub(pos, Add(cell, Vec{X: 0.5, Y: 0.5, Z: 0.5}))
	return
}

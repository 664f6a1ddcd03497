package mpm

import (
	"github.com/pthm-cable/mlsmpm/grid"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

// stencil27 computes the 27-cell neighborhood a particle at pos touches:
// the linear grid index, quadratic weight, and cell-to-particle distance
// for every (gx,gy,gz) offset. Shared by every p2g stage so the cell/diff/
// weight derivation happens in exactly one place.
func stencil27(g *grid.Grid, pos vecmath.Vec) (idx [27]int, weight [27]float64, dist [27]vecmath.Vec) {
	cell, diff := vecmath.CellAndDiff(pos)
	wx, wy, wz := vecmath.QuadraticWeights(diff)

	for gz := 0; gz < 3; gz++ {
		for gy := 0; gy < 3; gy++ {
			for gx := 0; gx < 3; gx++ {
				neighbor := vecmath.Vec{
					X: cell.X + float64(gx-1),
					Y: cell.Y + float64(gy-1),
					Z: cell.Z + float64(gz-1),
				}
				i := gx + 3*gy + 9*gz
				idx[i] = g.IndexOfVec(neighbor)
				weight[i] = wx[gx] * wy[gy] * wz[gz]
				dist[i] = vecmath.Add(vecmath.Sub(neighbor, pos), vecmath.Vec{X: 0.5, Y: 0.5, Z: 0.5})
			}
		}
	}
	return
}

package vecmath

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestQuadraticWeightsPartitionUnity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		diff := Vec{
			X: rng.Float64() - 0.5,
			Y: rng.Float64() - 0.5,
			Z: rng.Float64() - 0.5,
		}
		wx, wy, wz := QuadraticWeights(diff)

		var sum float64
		for gx := 0; gx < 3; gx++ {
			for gy := 0; gy < 3; gy++ {
				for gz := 0; gz < 3; gz++ {
					sum += wx[gx] * wy[gy] * wz[gz]
				}
			}
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Fatalf("diff=%v: weight sum = %v, want 1", diff, sum)
		}
	}
}

func TestQuadraticWeightsAtCellCenter(t *testing.T) {
	wx, _, _ := QuadraticWeights(Vec{})
	want := [3]float64{0.125, 0.75, 0.125}
	for i := range wx {
		if math.Abs(wx[i]-want[i]) > 1e-9 {
			t.Errorf("w[%d] = %v, want %v", i, wx[i], want[i])
		}
	}
}

func TestCellAndDiff(t *testing.T) {
	cell, diff := CellAndDiff(Vec{X: 3.2, Y: 4.9, Z: 1.5})
	if cell != (Vec{X: 3, Y: 4, Z: 1}) {
		t.Errorf("cell = %v, want (3,4,1)", cell)
	}
	wantDiff := Vec{X: -0.3, Y: 0.4, Z: 0}
	if math.Abs(diff.X-wantDiff.X) > 1e-9 || math.Abs(diff.Y-wantDiff.Y) > 1e-9 || math.Abs(diff.Z-wantDiff.Z) > 1e-9 {
		t.Errorf("diff = %v, want %v", diff, wantDiff)
	}
}

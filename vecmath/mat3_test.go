package vecmath

import (
	"math"
	"testing"
)

func TestMat3MulVecIdentity(t *testing.T) {
	v := Vec{X: 1, Y: 2, Z: 3}
	got := Identity().MulVec(v)
	if got != v {
		t.Errorf("Identity()*v = %v, want %v", got, v)
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Diag(2, 3, 4).Set(0, 1, 1).Set(2, 0, -1)
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible matrix")
	}
	prod := m.MulMat(inv)
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(prod.Get(i, j)-id.Get(i, j)) > 1e-9 {
				t.Errorf("m*inv[%d][%d] = %v, want %v", i, j, prod.Get(i, j), id.Get(i, j))
			}
		}
	}
}

func TestMat3DetSingular(t *testing.T) {
	m := Mat3{} // zero matrix
	if _, ok := m.Inverse(); ok {
		t.Error("expected singular zero matrix to be non-invertible")
	}
}

func TestOuter(t *testing.T) {
	a := Vec{X: 1, Y: 2, Z: 3}
	b := Vec{X: 4, Y: 5, Z: 6}
	m := Outer(a, b)
	if m.Get(0, 0) != 4 || m.Get(1, 2) != 12 || m.Get(2, 1) != 15 {
		t.Errorf("unexpected outer product: %+v", m)
	}
}

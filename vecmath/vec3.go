// Package vecmath provides the Vec3/Mat3 primitives shared by every MLS-MPM
// stage: grid indexing, APIC transfers, constitutive stresses, and collider
// geometry all build on these two types.
package vecmath

import "gonum.org/v1/gonum/spatial/r3"

// Vec is a 3D vector. It is a type alias for gonum's r3.Vec so that grid
// positions, particle state, and collider queries all share one arithmetic
// vocabulary (Add, Sub, Scale, Dot, Norm, Unit) without a wrapper layer.
type Vec = r3.Vec

// Add returns a+b.
func Add(a, b Vec) Vec { return r3.Add(a, b) }

// Sub returns a-b.
func Sub(a, b Vec) Vec { return r3.Sub(a, b) }

// Scale returns s*v.
func Scale(s float64, v Vec) Vec { return r3.Scale(s, v) }

// Dot returns a·b.
func Dot(a, b Vec) float64 { return r3.Dot(a, b) }

// Norm returns |v|.
func Norm(v Vec) float64 { return r3.Norm(v) }

// Unit returns v/|v|; the zero vector if v is zero.
func Unit(v Vec) Vec {
	n := r3.Norm(v)
	if n == 0 {
		return Vec{}
	}
	return r3.Scale(1/n, v)
}

// Floor returns the component-wise floor of v.
func Floor(v Vec) Vec {
	return Vec{X: floor(v.X), Y: floor(v.Y), Z: floor(v.Z)}
}

func floor(x float64) float64 {
	i := float64(int64(x))
	if x < 0 && i != x {
		i--
	}
	return i
}

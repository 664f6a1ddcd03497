package vecmath

import "github.com/go-gl/mathgl/mgl64"

// Mat3 is a 3x3 matrix. It backs affine momentum, deformation gradients,
// and stress tensors in the transfer stages. These are computed 27 times
// per particle per stage, so it wraps mgl64.Mat3, a fixed-size
// stack-allocated array, keeping the stencil loops allocation-free.
type Mat3 struct {
	m mgl64.Mat3
}

// Diag builds diag(a, b, c).
func Diag(a, b, c float64) Mat3 {
	return Mat3{mgl64.Diag3(mgl64.Vec3{a, b, c})}
}

// Identity returns the 3x3 identity matrix.
func Identity() Mat3 { return Mat3{mgl64.Ident3()} }

// Get returns the entry at (row, col).
func (m Mat3) Get(row, col int) float64 { return m.m.At(row, col) }

// Set returns a copy of m with the (row, col) entry replaced by v.
func (m Mat3) Set(row, col int, v float64) Mat3 {
	m.m.Set(row, col, v)
	return m
}

// Add returns m+other.
func (m Mat3) Add(other Mat3) Mat3 { return Mat3{m.m.Add(other.m)} }

// Sub returns m-other.
func (m Mat3) Sub(other Mat3) Mat3 { return Mat3{m.m.Sub(other.m)} }

// Scale returns s*m.
func (m Mat3) Scale(s float64) Mat3 { return Mat3{m.m.Mul(s)} }

// MulVec returns m*v (matrix times column vector).
func (m Mat3) MulVec(v Vec) Vec {
	r := m.m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec{X: r[0], Y: r[1], Z: r[2]}
}

// MulMat returns m*other.
func (m Mat3) MulMat(other Mat3) Mat3 { return Mat3{m.m.Mul3(other.m)} }

// Transpose returns mᵀ.
func (m Mat3) Transpose() Mat3 { return Mat3{m.m.Transpose()} }

// Trace returns the sum of the diagonal entries.
func (m Mat3) Trace() float64 { return m.m.Trace() }

// Det returns the determinant.
func (m Mat3) Det() float64 { return m.m.Det() }

// Inverse returns the matrix inverse and whether it exists (det != 0).
func (m Mat3) Inverse() (Mat3, bool) {
	if m.m.Det() == 0 {
		return Mat3{}, false
	}
	return Mat3{m.m.Inv()}, true
}

// Outer returns the outer product a⊗b, i.e. row i, column j holds a_i*b_j.
func Outer(a, b Vec) Mat3 {
	return Mat3{mgl64.Vec3{a.X, a.Y, a.Z}.OuterProd3(mgl64.Vec3{b.X, b.Y, b.Z})}
}

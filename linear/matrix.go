// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// At returns the element at the given row and column.
func (m *M3) At(row, col int) float32 { return m[col][row] }

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Det returns the determinant of m.
func (m *M3) Det() float32 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[1][0]*(m[0][1]*m[2][2]-m[0][2]*m[2][1]) +
		m[2][0]*(m[0][1]*m[1][2]-m[0][2]*m[1][1])
}

// Invert sets m to contain the inverse of n.
// n must be invertible.
func (m *M3) Invert(n *M3) {
	s0 := n[1][1]*n[2][2] - n[1][2]*n[2][1]
	s1 := n[1][0]*n[2][2] - n[1][2]*n[2][0]
	s2 := n[1][0]*n[2][1] - n[1][1]*n[2][0]
	idet := 1 / (n[0][0]*s0 - n[0][1]*s1 + n[0][2]*s2)
	var r M3
	r[0][0] = s0 * idet
	r[0][1] = -(n[0][1]*n[2][2] - n[0][2]*n[2][1]) * idet
	r[0][2] = (n[0][1]*n[1][2] - n[0][2]*n[1][1]) * idet
	r[1][0] = -s1 * idet
	r[1][1] = (n[0][0]*n[2][2] - n[0][2]*n[2][0]) * idet
	r[1][2] = -(n[0][0]*n[1][2] - n[0][2]*n[1][0]) * idet
	r[2][0] = s2 * idet
	r[2][1] = -(n[0][0]*n[2][1] - n[0][1]*n[2][0]) * idet
	r[2][2] = (n[0][0]*n[1][1] - n[0][1]*n[1][0]) * idet
	*m = r
}

// Scale sets m to contain a scaling matrix.
func (m *M3) Scale(x, y, z float32) { *m = M3{{x}, {1: y}, {2: z}} }

// RotateX sets m to contain a rotation of angle radians
// about the x axis.
func (m *M3) RotateX(angle float32) { m.FromMgl(mgl32.Rotate3DX(angle)) }

// RotateY sets m to contain a rotation of angle radians
// about the y axis.
func (m *M3) RotateY(angle float32) { m.FromMgl(mgl32.Rotate3DY(angle)) }

// RotateZ sets m to contain a rotation of angle radians
// about the z axis.
func (m *M3) RotateZ(angle float32) { m.FromMgl(mgl32.Rotate3DZ(angle)) }

// AxisAngle sets m to contain a rotation of angle radians
// about axis. axis need not be normalized.
func (m *M3) AxisAngle(angle float32, axis *V3) {
	var u V3
	u.Norm(axis)
	m.FromMgl(mgl32.HomogRotate3D(angle, mgl32.Vec3(u)).Mat3())
}

// Euler sets m to contain the rotation that results from
// rotating x radians about the x axis, then y radians
// about the y axis, then z radians about the z axis.
// The axes are fixed.
func (m *M3) Euler(x, y, z float32) {
	var rx, ry, rz M3
	rx.RotateX(x)
	ry.RotateY(y)
	rz.RotateZ(z)
	m.Mul(&rz, &ry)
	m.Mul(m, &rx)
}

// EulerAngles returns angles that Euler would use to
// produce the rotation matrix m.
// y is in the range [-π/2, π/2]. When y is at either end
// of the range, only x + z (or x - z) is defined and z
// is reported as 0.
func (m *M3) EulerAngles() (x, y, z float32) {
	sy := -m.At(2, 0)
	switch {
	case sy >= 1-1e-6:
		return atan2(m.At(0, 1), m.At(1, 1)), math.Pi / 2, 0
	case sy <= -1+1e-6:
		return atan2(-m.At(0, 1), m.At(1, 1)), -math.Pi / 2, 0
	}
	y = float32(math.Asin(float64(sy)))
	x = atan2(m.At(2, 1), m.At(2, 2))
	z = atan2(m.At(1, 0), m.At(0, 0))
	return
}

func atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

// FromMgl sets m to contain n.
func (m *M3) FromMgl(n mgl32.Mat3) {
	for i := range m {
		copy(m[i][:], n[i*3:i*3+3])
	}
}

// Mgl returns m as a mgl32.Mat3.
func (m *M3) Mgl() (n mgl32.Mat3) {
	for i := range m {
		copy(n[i*3:i*3+3], m[i][:])
	}
	return
}

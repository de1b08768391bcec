package vecmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Vec4 is a 4-component vector. It carries raw quaternion components
// through the spring tracker and generic 4-lane data elsewhere.
type Vec4 struct {
	X, Y, Z, W float64
}

func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}

func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W}
}

func (v Vec4) Scale(f float64) Vec4 {
	return Vec4{v.X * f, v.Y * f, v.Z * f, v.W * f}
}

func (v Vec4) Dot(o Vec4) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W
}

func (v Vec4) LenSqr() float64 {
	return v.Dot(v)
}

func (v Vec4) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// Normalized returns v scaled to unit length. v must be non-zero; use
// SafeNormalize4 when it may not be.
func (v Vec4) Normalized() Vec4 {
	return v.Scale(1 / v.Len())
}

// Lerp blends linearly from v to o.
func (v Vec4) Lerp(o Vec4, t float64) Vec4 {
	return v.Add(o.Sub(v).Scale(t))
}

// FromQuat copies the components of q into a Vec4 (W holds the real part).
func FromQuat(q quat.Number) Vec4 {
	return Vec4{X: q.Imag, Y: q.Jmag, Z: q.Kmag, W: q.Real}
}

// Quat reinterprets v as quaternion components without normalizing.
func (v Vec4) Quat() quat.Number {
	return quat.Number{Real: v.W, Imag: v.X, Jmag: v.Y, Kmag: v.Z}
}

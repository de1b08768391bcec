// Package quatmath provides rotation helpers on gonum quaternions: axis-angle
// conversion, fractional powers, first-order integration, and swing-twist
// decomposition with constrained interpolation (sterp).
//
// Quaternions use gonum's layout: Real is w, Imag/Jmag/Kmag are x/y/z.
package quatmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/mathutil"
)

// Identity is the zero rotation.
var Identity = quat.Number{Real: 1}

// DefaultAxis is returned by GetAxis when the rotation axis is undefined.
var DefaultAxis = r3.Vec{X: -1}

// Vec returns the vector part of q.
func Vec(q quat.Number) r3.Vec {
	return r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// Pure returns the quaternion with zero scalar part and vector part v.
func Pure(v r3.Vec) quat.Number {
	return quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
}

// Dot returns the 4D dot product of a and b.
func Dot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

func MagnitudeSqr(q quat.Number) float64 {
	return Dot(q, q)
}

func Magnitude(q quat.Number) float64 {
	return math.Sqrt(MagnitudeSqr(q))
}

// Normalize returns q scaled to unit length. q must be non-zero.
func Normalize(q quat.Number) quat.Number {
	return quat.Scale(1/Magnitude(q), q)
}

// AxisAngle builds a rotation of angle radians about axis.
// axis must already be normalized.
func AxisAngle(axis r3.Vec, angle float64) quat.Number {
	s, c := math.Sincos(0.5 * angle)
	return quat.Number{Real: c, Imag: s * axis.X, Jmag: s * axis.Y, Kmag: s * axis.Z}
}

// GetAxis returns the unit rotation axis of q, or DefaultAxis when q is
// (close to) the identity and the axis is undefined.
func GetAxis(q quat.Number) r3.Vec {
	v := Vec(q)
	n := r3.Norm(v)
	if n < mathutil.Epsilon {
		return DefaultAxis
	}
	return r3.Scale(1/n, v)
}

// GetAngle returns the rotation angle of q in [0, 2π].
func GetAngle(q quat.Number) float64 {
	return 2 * mathutil.AcosSafe(q.Real)
}

// FromAngularVector converts an angular vector (axis scaled by angle) to a
// rotation.
func FromAngularVector(v r3.Vec) quat.Number {
	n := r3.Norm(v)
	if n < mathutil.Epsilon {
		return Identity
	}
	return AxisAngle(r3.Scale(1/n, v), n)
}

// ToAngularVector is the inverse of FromAngularVector.
func ToAngularVector(q quat.Number) r3.Vec {
	return r3.Scale(GetAngle(q), GetAxis(q))
}

// Pow raises q to a fractional power by scaling its angle.
func Pow(q quat.Number, exp float64) quat.Number {
	return AxisAngle(GetAxis(q), GetAngle(q)*exp)
}

// IntegrateDerivative advances q by the rotation rate v (a quaternion
// derivative expressed as a per-second rotation) over dt.
func IntegrateDerivative(q, v quat.Number, dt float64) quat.Number {
	return quat.Mul(Pow(v, dt), q)
}

// Integrate advances q by the angular velocity omega (axis scaled by rad/s)
// over dt with a first-order step, then renormalizes.
func Integrate(q quat.Number, omega r3.Vec, dt float64) quat.Number {
	p := quat.Mul(Pure(r3.Scale(0.5, omega)), q)
	return Normalize(quat.Add(q, quat.Scale(dt, p)))
}

// Rotate rotates v by the unit quaternion q.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	// v' = v + 2w(r×v) + 2r×(r×v)
	r := Vec(q)
	t := r3.Scale(2, r3.Cross(r, v))
	return r3.Add(r3.Add(v, r3.Scale(q.Real, t)), r3.Cross(r, t))
}

// FromEuler builds a rotation from pitch (X), yaw (Y) and roll (Z), applied
// in YXZ order.
func FromEuler(pitch, yaw, roll float64) quat.Number {
	qx := AxisAngle(r3.Vec{X: 1}, pitch)
	qy := AxisAngle(r3.Vec{Y: 1}, yaw)
	qz := AxisAngle(r3.Vec{Z: 1}, roll)
	return quat.Mul(quat.Mul(qy, qx), qz)
}

// Slerp spherically interpolates between unit quaternions along the
// shorter arc.
func Slerp(a, b quat.Number, t float64) quat.Number {
	cos := Dot(a, b)
	if cos < 0 {
		b = quat.Scale(-1, b)
		cos = -cos
	}

	// Nearly parallel: sin(theta) is ill-conditioned, blend linearly.
	if cos > 1-mathutil.Epsilon {
		return Normalize(quat.Add(quat.Scale(1-t, a), quat.Scale(t, b)))
	}

	theta := mathutil.AcosSafe(cos)
	sinInv := 1 / math.Sin(theta)
	wa := math.Sin((1-t)*theta) * sinInv
	wb := math.Sin(t*theta) * sinInv
	return quat.Add(quat.Scale(wa, a), quat.Scale(wb, b))
}

// Equivalent reports whether a and b represent the same rotation within
// tol, treating q and -q as equal.
func Equivalent(a, b quat.Number, tol float64) bool {
	return math.Abs(Dot(a, b)) >= 1-tol
}

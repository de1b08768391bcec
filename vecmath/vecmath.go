// Package vecmath provides guarded vector operations on gonum r2/r3 vectors
// and the local Vec4 type.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
)

var (
	Up    = r3.Vec{Y: 1}
	Right = r3.Vec{X: 1}

	Right2 = r2.Vec{X: 1}
)

// Min and Max are the component-wise extremes, handy as fold seeds.
var (
	Min = r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	Max = r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
)

// Rotate2D rotates the X/Y components of v by angle, leaving Z unchanged.
func Rotate2D(v r3.Vec, angle float64) r3.Vec {
	s, c := math.Sincos(angle)
	return r3.Vec{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y, Z: v.Z}
}

// SafeNormalize2 returns v normalized, or fallback when |v|² ≤ Epsilon.
func SafeNormalize2(v, fallback r2.Vec) r2.Vec {
	if r2.Norm2(v) > mathutil.Epsilon {
		return r2.Unit(v)
	}
	return fallback
}

// SafeNormalize3 returns v normalized, or fallback when |v|² ≤ Epsilon.
func SafeNormalize3(v, fallback r3.Vec) r3.Vec {
	if r3.Norm2(v) > mathutil.Epsilon {
		return r3.Unit(v)
	}
	return fallback
}

// SafeNormalize4 returns v normalized, or fallback when |v|² ≤ Epsilon.
func SafeNormalize4(v, fallback Vec4) Vec4 {
	if v.LenSqr() > mathutil.Epsilon {
		return v.Normalized()
	}
	return fallback
}

// FindOrthogonal returns a unit vector orthogonal to v. The branch on
// |v̂.X| against 1/√3 keeps the chosen pair of components away from
// cancellation for every direction. The zero vector yields Right.
func FindOrthogonal(v r3.Vec) r3.Vec {
	var o r3.Vec
	if math.Abs(v.X) >= mathutil.Sqrt3Inv*r3.Norm(v) {
		o = r3.Vec{X: v.Y, Y: -v.X}
	} else {
		o = r3.Vec{Y: v.Z, Z: -v.Y}
	}
	n := r3.Norm(o)
	if n == 0 {
		return Right
	}
	return r3.Scale(1/n, o)
}

// FormOrthogonalBasis returns two vectors that complete an orthogonal basis
// with v. Unit input yields unit outputs.
func FormOrthogonalBasis(v r3.Vec) (a, b r3.Vec) {
	a = FindOrthogonal(v)
	b = r3.Cross(a, v)
	return a, b
}

// Slerp spherically interpolates between unit vectors a and b.
func Slerp(a, b r3.Vec, t float64) r3.Vec {
	dot := r3.Dot(a, b)

	if dot > 0.99999 {
		// Same direction: the sine denominator vanishes, blend linearly.
		return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
	}
	if dot < -0.99999 {
		// Opposite directions: the path is undefined, pick any great circle.
		axis := FindOrthogonal(a)
		return quatmath.Rotate(quatmath.AxisAngle(axis, mathutil.Pi*t), a)
	}

	rad := mathutil.AcosSafe(dot)
	sinInv := 1 / math.Sin(rad)
	return r3.Add(
		r3.Scale(math.Sin((1-t)*rad)*sinInv, a),
		r3.Scale(math.Sin(t*rad)*sinInv, b),
	)
}

// RotationBetween returns the shortest rotation taking unit vector from onto
// unit vector to. Opposite vectors rotate half a turn about an arbitrary
// orthogonal axis.
func RotationBetween(from, to r3.Vec) quat.Number {
	dot := r3.Dot(from, to)
	if dot < -1+mathutil.Epsilon {
		return quatmath.AxisAngle(FindOrthogonal(from), mathutil.Pi)
	}
	cross := r3.Cross(from, to)
	q := quat.Number{Real: 1 + dot, Imag: cross.X, Jmag: cross.Y, Kmag: cross.Z}
	return quatmath.Normalize(q)
}

// ClosestPointOnSegment returns the point on segment [segA, segB] nearest
// to p. A degenerate segment yields its midpoint.
func ClosestPointOnSegment(p, segA, segB r3.Vec) r3.Vec {
	v := r3.Sub(segB, segA)
	lenSqr := r3.Norm2(v)
	if lenSqr < mathutil.Epsilon {
		return r3.Scale(0.5, r3.Add(segA, segB))
	}
	d := mathutil.Saturate(r3.Dot(r3.Sub(p, segA), v) / lenSqr)
	return r3.Add(segA, r3.Scale(d, v))
}

// ClampLength scales v so its length lies in [minLen, maxLen]. Near-zero
// vectors are returned unchanged.
func ClampLength(v r3.Vec, minLen, maxLen float64) r3.Vec {
	lenSqr := r3.Norm2(v)
	if lenSqr < mathutil.Epsilon {
		return v
	}
	n := math.Sqrt(lenSqr)
	return r3.Scale(mathutil.Clamp(n, minLen, maxLen)/n, v)
}

// MinComponent returns the smallest of v's components.
func MinComponent(v r3.Vec) float64 {
	return math.Min(v.X, math.Min(v.Y, v.Z))
}

// MaxComponent returns the largest of v's components.
func MaxComponent(v r3.Vec) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Abs returns v with every component made non-negative.
func Abs(v r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// Mul multiplies component-wise.
func Mul(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// Div divides component-wise with no guard.
func Div(num, den r3.Vec) r3.Vec {
	return r3.Vec{X: num.X / den.X, Y: num.Y / den.Y, Z: num.Z / den.Z}
}

// DivSafe divides component-wise through InvSafe.
func DivSafe(num, den r3.Vec) r3.Vec {
	return r3.Vec{
		X: num.X * mathutil.InvSafe(den.X),
		Y: num.Y * mathutil.InvSafe(den.Y),
		Z: num.Z * mathutil.InvSafe(den.Z),
	}
}

// ClampBend limits the angle between vector and reference to maxBendAngle,
// keeping the length of vector. Near-zero inputs return vector unchanged.
func ClampBend(vector, reference r3.Vec, maxBendAngle float64) r3.Vec {
	vLenSqr := r3.Norm2(vector)
	if vLenSqr < mathutil.Epsilon {
		return vector
	}
	rLenSqr := r3.Norm2(reference)
	if rLenSqr < mathutil.Epsilon {
		return vector
	}

	vLen := math.Sqrt(vLenSqr)
	rLen := math.Sqrt(rLenSqr)
	vUnit := r3.Scale(1/vLen, vector)
	rUnit := r3.Scale(1/rLen, reference)

	angle := mathutil.AcosSafe(r3.Dot(rUnit, vUnit))
	if angle <= maxBendAngle {
		return vector
	}

	cross := r3.Cross(rUnit, vUnit)
	var axis r3.Vec
	if r3.Norm2(cross) > mathutil.Epsilon {
		axis = r3.Unit(cross)
	} else {
		axis = FindOrthogonal(rUnit)
	}

	bent := quatmath.Rotate(quatmath.AxisAngle(axis, maxBendAngle), rUnit)
	return r3.Scale(vLen, bent)
}

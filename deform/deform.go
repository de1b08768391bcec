// Package deform computes squash-and-stretch deformations from the motion of
// a point. A stretcher smooths the observed speed and direction with
// spring trackers and turns them into a volume-preserving scale along the
// direction of travel.
package deform

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
	"github.com/pthm-cable/squash/spring"
	"github.com/pthm-cable/squash/vecmath"
)

// Thresholds maps speed to stretch.
type Thresholds struct {
	MaxStretch float64
	MinSpeed   float64 // Stretch starts above this
	MaxSpeed   float64 // Full stretch at and above this; tracked speed is clamped here
}

// Thresholds2D are tuned for pixel-space motion.
var Thresholds2D = Thresholds{MaxStretch: 1, MinSpeed: 500, MaxSpeed: 2000}

// Thresholds3D are tuned for metre-scale motion.
var Thresholds3D = Thresholds{MaxStretch: 1, MinSpeed: 1, MaxSpeed: 20}

// Stretch returns the scale factor along the direction of travel for a
// tracked speed. It is 1 at or below MinSpeed and 1+MaxStretch at or above
// MaxSpeed.
func Stretch(speed float64, th Thresholds) float64 {
	s := math.Max(0, speed-th.MinSpeed) / math.Max(th.MaxSpeed-th.MinSpeed, mathutil.Epsilon)
	return 1 + th.MaxStretch*math.Min(1, s)
}

// Deformation is a scale along a unit axis.
type Deformation struct {
	Axis  r3.Vec  // Stretch direction (world space)
	Angle float64 // Stretch direction angle in the XY plane
	Scale float64 // Scale along Axis; 1 is undeformed
	Speed float64 // Tracked speed that produced Scale
}

// Identity is the undeformed state.
var Identity = Deformation{Axis: vecmath.Right, Scale: 1}

// Matrix2D returns R(a)·diag(scale, 1/scale)·R(-a): area-preserving
// stretch along the axis in the plane.
func (d Deformation) Matrix2D() *mat.Dense {
	s, c := math.Sincos(d.Angle)
	r := mat.NewDense(2, 2, []float64{c, -s, s, c})
	scale := mat.NewDense(2, 2, []float64{d.Scale, 0, 0, 1 / d.Scale})

	var rs, m mat.Dense
	rs.Mul(r, scale)
	m.Mul(&rs, r.T())
	return &m
}

// Matrix3D returns the full linear part of an object with rotation rot
// deformed by d: the stretch axis is taken into object space, scaled by
// (1/√scale, scale, 1/√scale) about it, and rotated back out. Volume is
// preserved.
func (d Deformation) Matrix3D(rot quat.Number) *mat.Dense {
	axisOS := quatmath.Rotate(quat.Conj(rot), vecmath.SafeNormalize3(d.Axis, vecmath.Up))
	a := vecmath.RotationBetween(vecmath.Up, axisOS)

	inv := 1 / math.Sqrt(d.Scale)
	scale := mat.NewDiagDense(3, []float64{inv, d.Scale, inv})

	var rs, m mat.Dense
	rs.Mul(RotationMatrix(quat.Mul(rot, a)), scale)
	m.Mul(&rs, RotationMatrix(quat.Conj(a)))
	return &m
}

// RotationMatrix returns the 3x3 matrix of the unit quaternion q.
func RotationMatrix(q quat.Number) *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for j, e := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		col := quatmath.Rotate(q, e)
		m.Set(0, j, col.X)
		m.Set(1, j, col.Y)
		m.Set(2, j, col.Z)
	}
	return m
}

// Apply2D multiplies p by the 2x2 matrix m.
func Apply2D(m mat.Matrix, p r2.Vec) r2.Vec {
	return r2.Vec{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y,
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y,
	}
}

// Apply3D multiplies p by the 3x3 matrix m.
func Apply3D(m mat.Matrix, p r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z,
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z,
		Z: m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z,
	}
}

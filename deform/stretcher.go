package deform

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
	"github.com/pthm-cable/squash/spring"
	"github.com/pthm-cable/squash/vecmath"
)

// DefaultSmoothing is the exponential preset both stretchers use for speed
// and direction unless told otherwise.
var DefaultSmoothing = spring.Exponential(0.01)

// Stretcher2D derives a deformation from successive positions in the plane.
type Stretcher2D struct {
	Thresholds Thresholds
	SpeedP     spring.Params
	DirP       spring.Params

	speed spring.Float
	dir   spring.Vec2
	prev  r2.Vec
}

// NewStretcher2D starts at pos, at rest, with the stretch direction along
// heading (radians).
func NewStretcher2D(pos r2.Vec, heading float64, th Thresholds) *Stretcher2D {
	s := &Stretcher2D{Thresholds: th, SpeedP: DefaultSmoothing, DirP: DefaultSmoothing, prev: pos}
	sin, cos := math.Sincos(heading)
	s.dir.ResetTo(r2.Vec{X: cos, Y: sin})
	return s
}

// Update observes the new position after dt seconds.
func (s *Stretcher2D) Update(pos r2.Vec, dt float64) Deformation {
	delta := r2.Sub(pos, s.prev)
	s.prev = pos

	speed := trackSpeed(&s.speed, r2.Norm(delta), dt, s.SpeedP, s.Thresholds.MaxSpeed)
	if speed > mathutil.Epsilon && r2.Norm2(delta) > mathutil.EpsilonSqr {
		s.dir.Track(r2.Unit(delta), s.DirP, dt)
	}

	axis := vecmath.SafeNormalize2(s.dir.Value(), vecmath.Right2)
	return Deformation{
		Axis:  r3.Vec{X: axis.X, Y: axis.Y},
		Angle: mathutil.Atan2(axis),
		Scale: Stretch(speed, s.Thresholds),
		Speed: speed,
	}
}

// Stretcher3D derives a deformation from successive positions in space.
type Stretcher3D struct {
	Thresholds Thresholds
	SpeedP     spring.Params
	DirP       spring.Params

	speed spring.Float
	dir   spring.Vec3
	prev  r3.Vec
}

// NewStretcher3D starts at pos, at rest, with the stretch direction along
// the local up axis of rot.
func NewStretcher3D(pos r3.Vec, rot quat.Number, th Thresholds) *Stretcher3D {
	s := &Stretcher3D{Thresholds: th, SpeedP: DefaultSmoothing, DirP: DefaultSmoothing, prev: pos}
	s.dir.ResetTo(quatmath.Rotate(rot, vecmath.Up))
	return s
}

// Update observes the new position after dt seconds.
func (s *Stretcher3D) Update(pos r3.Vec, dt float64) Deformation {
	delta := r3.Sub(pos, s.prev)
	s.prev = pos

	speed := trackSpeed(&s.speed, r3.Norm(delta), dt, s.SpeedP, s.Thresholds.MaxSpeed)
	if speed > mathutil.Epsilon && r3.Norm2(delta) > mathutil.EpsilonSqr {
		s.dir.Track(r3.Unit(delta), s.DirP, dt)
	}

	axis := vecmath.SafeNormalize3(s.dir.Value(), vecmath.Up)
	return Deformation{
		Axis:  axis,
		Angle: math.Atan2(axis.Y, axis.X),
		Scale: Stretch(speed, s.Thresholds),
		Speed: speed,
	}
}

// trackSpeed smooths the raw speed of a displacement and clamps the
// tracked magnitude to maxSpeed.
func trackSpeed(f *spring.Float, dist, dt float64, p spring.Params, maxSpeed float64) float64 {
	raw := dist / math.Max(dt, mathutil.Epsilon)
	v := f.Track(raw, p, dt)
	v = mathutil.Sign(v) * math.Min(maxSpeed, math.Abs(v))
	f.SetValue(v)
	return v
}

package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
	"github.com/pthm-cable/squash/spring"
	"github.com/pthm-cable/squash/vecmath"
)

var yawAxis = r3.Vec{Z: 1}

// OrientParams configures orientation tracking.
type OrientParams struct {
	Spring    spring.Params
	SwingRate float64 // 1/s
	TwistRate float64 // 1/s
	MaxLean   float64 // rad at MaxSpeed
	MaxSpeed  float64 // px/s
}

// OrientSystem turns each entity toward its direction of travel, leaning
// forward with speed.
type OrientSystem struct {
	filter ecs.Filter2[components.Velocity, components.Orientation]
	params OrientParams
}

// NewOrientSystem creates an orient system.
func NewOrientSystem(w *ecs.World, params OrientParams) *OrientSystem {
	return &OrientSystem{
		filter: *ecs.NewFilter2[components.Velocity, components.Orientation](w),
		params: params,
	}
}

// Update steps every orientation.
func (s *OrientSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		vel, o := query.Get()
		StepOrient(*vel, o, s.params, dt)
	}
}

// StepOrient advances one orientation by dt. Unless pinned, the target is
// rebuilt from the velocity. The spring output lands in Tracked, and
// Presented chases it with the twist about TwistAxis converging at
// TwistRate and the remaining swing at SwingRate.
func StepOrient(vel components.Velocity, o *components.Orientation, p OrientParams, dt float64) {
	if !o.Pinned {
		o.Target = HeadingTarget(vel.Vec(), o.Target, p.MaxSpeed, p.MaxLean)
	}
	o.Tracked = o.Spring.Track(o.Target, p.Spring, dt)
	o.Presented = quatmath.SterpSeparate(
		o.Presented, o.Tracked, o.TwistAxis,
		1-math.Exp(-p.SwingRate*dt),
		1-math.Exp(-p.TwistRate*dt),
	)
}

// HeadingTarget yaws about +Z to face vel and pitches forward about the
// local +Y axis in proportion to speed. Below Epsilon speed the previous
// target is kept so a stopped entity holds its facing.
func HeadingTarget(vel r2.Vec, prev quat.Number, maxSpeed, maxLean float64) quat.Number {
	speed := r2.Norm(vel)
	if speed < mathutil.Epsilon {
		return prev
	}
	yaw := quatmath.AxisAngle(yawAxis, mathutil.Atan2(vel))
	lean := quatmath.AxisAngle(vecmath.Up, maxLean*mathutil.Saturate(speed/math.Max(maxSpeed, mathutil.Epsilon)))
	return quat.Mul(yaw, lean)
}

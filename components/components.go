// Package components defines ECS components for the simulation.
package components

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/deform"
	"github.com/pthm-cable/squash/spring"
)

// Target is the point a follower chases. Anchor is where it rests when no
// driver moves it.
type Target struct {
	X, Y   float64
	Anchor r2.Vec
}

func (t Target) Vec() r2.Vec { return r2.Vec{X: t.X, Y: t.Y} }

func (t *Target) Set(v r2.Vec) { t.X, t.Y = v.X, v.Y }

// Follower tracks Position toward Target with a 2D spring.
type Follower struct {
	Spring spring.Vec2
	Error  float64 // Distance to target after the last step
}

// Orientation tracks a rotation toward a heading-derived target. Tracked is
// the raw spring output; Presented eases toward it through swing-twist
// interpolation so the twist about TwistAxis can lead the swing.
type Orientation struct {
	Spring    spring.Quat
	Target    quat.Number
	Tracked   quat.Number
	Presented quat.Number
	TwistAxis r3.Vec
	Pinned    bool // Target is held by the user instead of derived from heading
}

// NewOrientation returns an orientation at rest at q.
func NewOrientation(q quat.Number, twistAxis r3.Vec) Orientation {
	o := Orientation{Target: q, Tracked: q, Presented: q, TwistAxis: twistAxis}
	o.Spring.ResetTo(q)
	return o
}

// Squash holds the stretcher for an entity and its latest output. Exactly
// one of Flat and Solid is set.
type Squash struct {
	Flat   *deform.Stretcher2D
	Solid  *deform.Stretcher3D
	Deform deform.Deformation
}

// Wander offsets an entity's noise lookups so targets move independently.
type Wander struct {
	OffsetX, OffsetY float64
}

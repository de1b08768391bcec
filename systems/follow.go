package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/spring"
)

// FollowSystem springs each follower toward its target.
type FollowSystem struct {
	filter      ecs.Filter4[components.Position, components.Velocity, components.Target, components.Follower]
	params      spring.Params
	settleError float64
}

// NewFollowSystem creates a follow system using the given tracker preset.
// A follower counts as settled once its error drops below settleError.
func NewFollowSystem(w *ecs.World, params spring.Params, settleError float64) *FollowSystem {
	return &FollowSystem{
		filter:      *ecs.NewFilter4[components.Position, components.Velocity, components.Target, components.Follower](w),
		params:      params,
		settleError: settleError,
	}
}

// Update steps every follower and returns how many settled this tick.
func (s *FollowSystem) Update(dt float64) int {
	settled := 0
	query := s.filter.Query()
	for query.Next() {
		pos, vel, tgt, f := query.Get()
		if StepFollow(pos, vel, *tgt, f, s.params, s.settleError, dt) {
			settled++
		}
	}
	return settled
}

// StepFollow advances one follower by dt and writes the tracked position
// and velocity. It reports whether the follower just entered the settle band.
func StepFollow(pos *components.Position, vel *components.Velocity, tgt components.Target, f *components.Follower, p spring.Params, settleError, dt float64) bool {
	wasSettled := f.Error < settleError
	goal := tgt.Vec()

	v := f.Spring.Track(goal, p, dt)
	pos.Set(v)
	vel.Set(f.Spring.Velocity())

	f.Error = r2.Norm(r2.Sub(goal, v))
	return !wasSettled && f.Error < settleError
}

// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/config"
)

// WanderSystem moves each target along a smooth noise path around its anchor.
type WanderSystem struct {
	filter ecs.Filter2[components.Target, components.Wander]
	noise  opensimplex.Noise
	cfg    config.WanderConfig
	time   float64
}

// NewWanderSystem creates a wander system with its own noise field.
func NewWanderSystem(w *ecs.World, seed int64, cfg config.WanderConfig) *WanderSystem {
	return &WanderSystem{
		filter: *ecs.NewFilter2[components.Target, components.Wander](w),
		noise:  opensimplex.New(seed),
		cfg:    cfg,
	}
}

// Time returns the noise clock in seconds.
func (s *WanderSystem) Time() float64 { return s.time }

// SetTime moves the noise clock, used when restoring a snapshot.
func (s *WanderSystem) SetTime(t float64) { s.time = t }

// Update advances the noise clock by dt and repositions every target.
func (s *WanderSystem) Update(dt float64) {
	s.time += dt
	query := s.filter.Query()
	for query.Next() {
		tgt, wd := query.Get()
		tgt.Set(WanderPoint(s.noise, tgt.Anchor, *wd, s.time, s.cfg))
	}
}

// WanderPoint samples the wander path of one entity at time t.
func WanderPoint(noise opensimplex.Noise, anchor r2.Vec, wd components.Wander, t float64, cfg config.WanderConfig) r2.Vec {
	phase := t * cfg.Speed
	dx := noise.Eval2(anchor.X*cfg.Scale+wd.OffsetX, phase)
	dy := noise.Eval2(anchor.Y*cfg.Scale+wd.OffsetY, phase+wanderLane)
	return r2.Add(anchor, r2.Scale(cfg.Amplitude, r2.Vec{X: dx, Y: dy}))
}

// wanderLane separates the x and y noise rows so the axes decorrelate.
const wanderLane = 97.3

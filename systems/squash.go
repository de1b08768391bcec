package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/components"
)

// SquashSystem feeds positions to each entity's stretcher and caches the
// resulting deformation for rendering.
type SquashSystem struct {
	filter ecs.Filter2[components.Position, components.Squash]
}

// NewSquashSystem creates a squash system.
func NewSquashSystem(w *ecs.World) *SquashSystem {
	return &SquashSystem{
		filter: *ecs.NewFilter2[components.Position, components.Squash](w),
	}
}

// Update steps every stretcher.
func (s *SquashSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, sq := query.Get()
		StepSquash(*pos, sq, dt)
	}
}

// StepSquash observes pos on whichever stretcher the entity carries. The
// 3D stretcher sees the entity on the z = 0 plane.
func StepSquash(pos components.Position, sq *components.Squash, dt float64) {
	switch {
	case sq.Flat != nil:
		sq.Deform = sq.Flat.Update(pos.Vec(), dt)
	case sq.Solid != nil:
		sq.Deform = sq.Solid.Update(r3.Vec{X: pos.X, Y: pos.Y}, dt)
	}
}

package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/deform"
	"github.com/pthm-cable/squash/quatmath"
)

// spawnInitialPopulation lays out Population.Count entities.
func (g *Game) spawnInitialPopulation() {
	for _, p := range g.layout() {
		heading := g.rng.Float64() * 2 * math.Pi
		g.spawnEntity(p, heading)
	}
}

// layout returns the anchor points for the configured population.
func (g *Game) layout() []r2.Vec {
	pop := g.cfg.Population
	w, h := g.cfg.Derived.WorldW, g.cfg.Derived.WorldH
	points := make([]r2.Vec, 0, pop.Count)

	if pop.Layout == "random" {
		margin := pop.Radius * 2
		for i := 0; i < pop.Count; i++ {
			points = append(points, r2.Vec{
				X: margin + g.rng.Float64()*(w-2*margin),
				Y: margin + g.rng.Float64()*(h-2*margin),
			})
		}
		return points
	}

	// Grid centered in the world, as square as the count allows.
	cols := int(math.Ceil(math.Sqrt(float64(pop.Count))))
	if cols < 1 {
		return points
	}
	rows := (pop.Count + cols - 1) / cols
	origin := r2.Vec{
		X: w/2 - float64(cols-1)*pop.Spacing/2,
		Y: h/2 - float64(rows-1)*pop.Spacing/2,
	}
	for i := 0; i < pop.Count; i++ {
		points = append(points, r2.Add(origin, r2.Vec{
			X: float64(i%cols) * pop.Spacing,
			Y: float64(i/cols) * pop.Spacing,
		}))
	}
	return points
}

// spawnEntity creates a follower at rest on its own anchor.
func (g *Game) spawnEntity(anchor r2.Vec, heading float64) ecs.Entity {
	cfg := g.cfg
	g.nextID++

	pos := components.Position{X: anchor.X, Y: anchor.Y}
	vel := components.Velocity{}
	body := components.Body{ID: g.nextID, Radius: cfg.Population.Radius}
	tgt := components.Target{X: anchor.X, Y: anchor.Y, Anchor: anchor}

	var follow components.Follower
	follow.Spring.ResetTo(anchor)

	rot := quatmath.AxisAngle(r3.Vec{Z: 1}, heading)
	orient := components.NewOrientation(rot, g.twistAxis())

	sq := g.newSquash(anchor, heading, rot)

	wander := components.Wander{
		OffsetX: g.rng.Float64() * 1000,
		OffsetY: g.rng.Float64() * 1000,
	}

	entity := g.entityMapper.NewEntity(&pos, &vel, &body, &tgt, &follow, &orient, &sq, &wander)
	g.entityCount++
	return entity
}

// newSquash builds the stretcher for the configured squash mode.
func (g *Game) newSquash(pos r2.Vec, heading float64, rot quat.Number) components.Squash {
	sc := g.cfg.Squash
	th := deform.Thresholds{MaxStretch: sc.MaxStretch, MinSpeed: sc.MinSpeed, MaxSpeed: sc.MaxSpeed}

	var sq components.Squash
	if sc.Mode == "3d" {
		s := deform.NewStretcher3D(r3.Vec{X: pos.X, Y: pos.Y}, rot, th)
		s.SpeedP, s.DirP = g.cfg.Springs.Speed, g.cfg.Springs.Direction
		sq.Solid = s
	} else {
		s := deform.NewStretcher2D(pos, heading, th)
		s.SpeedP, s.DirP = g.cfg.Springs.Speed, g.cfg.Springs.Direction
		sq.Flat = s
	}
	sq.Deform = deform.Identity
	return sq
}

func (g *Game) twistAxis() r3.Vec {
	a := g.cfg.Orient.TwistAxis
	return r3.Unit(r3.Vec{X: a[0], Y: a[1], Z: a[2]})
}

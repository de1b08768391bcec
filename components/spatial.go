package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's world position in pixels.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Set overwrites the position from a vector.
func (p *Position) Set(v r2.Vec) { p.X, p.Y = v.X, v.Y }

// Velocity represents an entity's velocity in pixels per second.
type Velocity struct {
	X, Y float64
}

func (v Velocity) Vec() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

func (v *Velocity) Set(u r2.Vec) { v.X, v.Y = u.X, u.Y }

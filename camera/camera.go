// Package camera provides a 2D camera system for viewport control.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/squash/mathutil"
)

// Camera controls the viewport into a bounded world. The center is kept
// where the view stays inside the world whenever the world is larger than
// the view.
type Camera struct {
	// Center is the camera center in world coordinates
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport and world dimensions
	Viewport r2.Vec
	World    r2.Vec

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera that fits the whole world in the viewport.
func New(viewport, world r2.Vec) *Camera {
	c := &Camera{
		Viewport: viewport,
		World:    world,
		MaxZoom:  8.0,
	}
	c.MinZoom = fitZoom(viewport, world)
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole world just fits in the viewport.
func fitZoom(viewport, world r2.Vec) float64 {
	return math.Min(viewport.X/world.X, viewport.Y/world.Y)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(0.5, c.Viewport), r2.Scale(c.Zoom, r2.Sub(p, c.Center)))
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	return r2.Add(c.Center, r2.Scale(1/c.Zoom, r2.Sub(s, r2.Scale(0.5, c.Viewport))))
}

// IsVisible returns true if a circle at p with the given world radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return p.X+radius >= minX && p.X-radius <= maxX &&
		p.Y+radius >= minY && p.Y-radius <= maxY
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewport r2.Vec) {
	if viewport == c.Viewport {
		return
	}
	c.Viewport = viewport
	c.MinZoom = fitZoom(viewport, c.World)
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(delta r2.Vec) {
	c.Center = r2.Add(c.Center, r2.Scale(1/c.Zoom, delta))
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = mathutil.Clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under the screen
// point s fixed, as far as the bounds allow.
func (c *Camera) ZoomAt(s r2.Vec, factor float64) {
	anchor := c.ScreenToWorld(s)
	c.Zoom = mathutil.Clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	c.Center = r2.Sub(anchor, r2.Scale(1/c.Zoom, r2.Sub(s, r2.Scale(0.5, c.Viewport))))
	c.clampCenter()
}

// Reset returns the camera to the world center at fit zoom.
func (c *Camera) Reset() {
	c.Center = r2.Scale(0.5, c.World)
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	half := r2.Scale(0.5/c.Zoom, c.Viewport)
	return c.Center.X - half.X, c.Center.Y - half.Y, c.Center.X + half.X, c.Center.Y + half.Y
}

// clampCenter keeps the view inside the world on each axis where the
// world is wider than the view, and centers it otherwise.
func (c *Camera) clampCenter() {
	half := r2.Scale(0.5/c.Zoom, c.Viewport)
	c.Center.X = clampAxis(c.Center.X, half.X, c.World.X)
	c.Center.Y = clampAxis(c.Center.Y, half.Y, c.World.Y)
}

func clampAxis(center, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return mathutil.Clamp(center, half, size-half)
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/squash/systems"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Single step while paused
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		g.simulationStep()
	}

	if rl.IsKeyPressed(rl.KeyS) && g.snapshotDir != "" {
		g.saveSnapshot()
	}

	g.handleOverlayKeys()
	g.handleCameraInput()
	g.handleMouse()
}

// handleMouse drives targets with the left button and steers the
// orientation of the nearest entity with a right-button drag.
func (g *Game) handleMouse() {
	mouse := g.screenToWorld(rl.GetMousePosition())

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.Retarget(mouse)
	} else if g.luring {
		g.Release()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.selected, g.hasSel = g.nearestEntity(mouse)
	}
	if !g.hasSel || !g.world.Alive(g.selected) {
		g.hasSel = false
		return
	}

	o := g.orientMap.Get(g.selected)
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		pos := g.posMap.Get(g.selected)
		drag := r2.Sub(mouse, pos.Vec())
		// The drag points the entity; its length leans it as speed would.
		o.Target = systems.HeadingTarget(r2.Scale(steerGain, drag), o.Target, g.cfg.Squash.MaxSpeed, g.cfg.Orient.MaxLean)
		o.Pinned = true
		g.steering = true
	} else if g.steering {
		o.Pinned = false
		g.steering = false
	}
}

// steerGain converts drag length in pixels into an equivalent speed.
const steerGain = 10

// nearestEntity returns the entity closest to p.
func (g *Game) nearestEntity(p r2.Vec) (entity ecs.Entity, ok bool) {
	best := -1.0
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, _, _, _, _, _ := query.Get()
		d := r2.Norm2(r2.Sub(pos.Vec(), p))
		if !ok || d < best {
			best, entity, ok = d, query.Entity(), true
		}
	}
	return entity, ok
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
	g.camera.Resize(r2.Vec{X: float64(g.screenWidth), Y: float64(g.screenHeight)})
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	const panSpeed = 8.0

	// Arrow key panning
	var pan r2.Vec
	if rl.IsKeyDown(rl.KeyRight) {
		pan.X += panSpeed
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		pan.X -= panSpeed
	}
	if rl.IsKeyDown(rl.KeyDown) {
		pan.Y += panSpeed
	}
	if rl.IsKeyDown(rl.KeyUp) {
		pan.Y -= panSpeed
	}
	if pan != (r2.Vec{}) {
		g.camera.Pan(pan)
	}

	// Zoom toward the cursor with the mouse wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		g.camera.ZoomAt(r2.Vec{X: float64(m.X), Y: float64(m.Y)}, 1+float64(wheel)*0.1)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

func (g *Game) screenToWorld(v rl.Vector2) r2.Vec {
	return g.camera.ScreenToWorld(r2.Vec{X: float64(v.X), Y: float64(v.Y)})
}

func (g *Game) worldToScreen(p r2.Vec) rl.Vector2 {
	s := g.camera.WorldToScreen(p)
	return rl.NewVector2(float32(s.X), float32(s.Y))
}

package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/deform"
	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
	"github.com/pthm-cable/squash/ui"
	"github.com/pthm-cable/squash/vecmath"
)

var (
	backgroundColor = rl.Color{R: 18, G: 20, B: 26, A: 255}
	boundsColor     = rl.Color{R: 50, G: 56, B: 66, A: 255}
	bodyColor       = rl.Color{R: 90, G: 170, B: 230, A: 255}
	coldColor       = rl.Color{R: 80, G: 200, B: 120, A: 255}
	hotColor        = rl.Color{R: 230, G: 80, B: 70, A: 255}
)

// outlineSegments is the number of points on a body outline.
const outlineSegments = 16

// Draw renders the game state. It does nothing in headless mode.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	g.frameStats.Measure("draw", func() {
		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)

		g.drawWorldBounds()
		g.drawActiveOverlays()
		g.drawEntities()
		g.drawSelection()
		g.drawUI()

		rl.EndDrawing()
	})
}

func (g *Game) drawWorldBounds() {
	tl := g.worldToScreen(r2.Vec{})
	br := g.worldToScreen(r2.Vec{X: g.cfg.Derived.WorldW, Y: g.cfg.Derived.WorldH})
	rl.DrawRectangleLinesEx(rl.NewRectangle(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y), 2, boundsColor)
}

// drawEntities draws every visible body with its deformation applied.
func (g *Game) drawEntities() {
	solid := g.cfg.Squash.Mode == "3d"
	fan := make([]rl.Vector2, 0, outlineSegments+2)

	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, body, _, f, o, sq := query.Get()
		if !g.camera.IsVisible(pos.Vec(), body.Radius*2) {
			continue
		}

		outline := BodyOutline(pos.Vec(), body.Radius, o.Presented, sq.Deform, solid)
		fan = append(fan[:0], g.worldToScreen(pos.Vec()))
		for _, p := range outline {
			fan = append(fan, g.worldToScreen(p))
		}
		fan = append(fan, fan[1])

		color := g.bodyTint(f, o)
		rl.DrawTriangleFan(fan, color)
		rl.DrawLineStrip(fan[1:], rl.White)
	}
}

// bodyTint colors a body by the active tint overlay.
func (g *Game) bodyTint(f *components.Follower, o *components.Orientation) rl.Color {
	switch {
	case g.uiOverlays.IsEnabled(ui.OverlayLagTint):
		return lerpColor(coldColor, hotColor, orientationLag(o)/(math.Pi/2))
	case g.uiOverlays.IsEnabled(ui.OverlayErrorTint):
		return lerpColor(coldColor, hotColor, f.Error/200)
	}
	return bodyColor
}

// BodyOutline returns the world-space outline of a body at pos, nose along
// the local X axis, rotated by rot and deformed by d. Points run clockwise
// in world space so they wind counter-clockwise on a y-down screen. Flat
// bodies use only the yaw of rot and the planar stretch; solid bodies use
// the full rotation and the volume-preserving stretch, projected onto XY.
func BodyOutline(pos r2.Vec, radius float64, rot quat.Number, d deform.Deformation, solid bool) []r2.Vec {
	out := make([]r2.Vec, outlineSegments)

	if solid {
		m := d.Matrix3D(rot)
		for i := range out {
			p := deform.Apply3D(m, outlinePoint(i, radius))
			out[i] = r2.Add(pos, r2.Vec{X: p.X, Y: p.Y})
		}
		return out
	}

	fwd := quatmath.Rotate(rot, vecmath.Right)
	yaw := mathutil.Atan2(r2.Vec{X: fwd.X, Y: fwd.Y})
	s, c := math.Sincos(yaw)
	m := d.Matrix2D()
	for i := range out {
		p := outlinePoint(i, radius)
		turned := r2.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
		out[i] = r2.Add(pos, deform.Apply2D(m, turned))
	}
	return out
}

// outlinePoint is point i of a teardrop with its nose on +X.
func outlinePoint(i int, radius float64) r3.Vec {
	theta := -2 * math.Pi * float64(i) / outlineSegments
	s, c := math.Sincos(theta)
	nose := 1 + 0.4*math.Max(0, c)*math.Max(0, c)
	return r3.Vec{X: radius * c * nose, Y: radius * s}
}

// drawActiveOverlays renders all currently enabled overlays.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayTargets:
			g.drawTargets()
		case ui.OverlayVelocity:
			g.drawVelocities()
		case ui.OverlayAxes:
			g.drawAxes()
		case ui.OverlayAnchors:
			g.drawAnchors()
			// Tints are applied in drawEntities
		}
	}
}

func (g *Game) drawTargets() {
	col := rl.Color{R: 255, G: 200, B: 80, A: 160}
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, _, tgt, _, _, _ := query.Get()
		t := g.worldToScreen(tgt.Vec())
		rl.DrawLineV(g.worldToScreen(pos.Vec()), t, rl.Fade(col, 0.4))
		rl.DrawCircleLinesV(t, 4, col)
	}
}

func (g *Game) drawVelocities() {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, _, _, _, _, _ := query.Get()
		tip := r2.Add(pos.Vec(), r2.Scale(0.1, vel.Vec()))
		rl.DrawLineV(g.worldToScreen(pos.Vec()), g.worldToScreen(tip), rl.SkyBlue)
	}
}

// drawAxes draws the tracked forward axis in gray and the presented one
// in yellow.
func (g *Game) drawAxes() {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, body, _, _, o, _ := query.Get()
		from := g.worldToScreen(pos.Vec())
		for _, axis := range []struct {
			q   quat.Number
			col rl.Color
		}{{o.Tracked, rl.Gray}, {o.Presented, rl.Yellow}} {
			fwd := quatmath.Rotate(axis.q, vecmath.Right)
			tip := r2.Add(pos.Vec(), r2.Scale(2*body.Radius, r2.Vec{X: fwd.X, Y: fwd.Y}))
			rl.DrawLineV(from, g.worldToScreen(tip), axis.col)
		}
	}
}

func (g *Game) drawAnchors() {
	query := g.targetFilter.Query()
	for query.Next() {
		tgt := query.Get()
		a := g.worldToScreen(tgt.Anchor)
		rl.DrawLineV(rl.NewVector2(a.X-3, a.Y), rl.NewVector2(a.X+3, a.Y), rl.DarkGray)
		rl.DrawLineV(rl.NewVector2(a.X, a.Y-3), rl.NewVector2(a.X, a.Y+3), rl.DarkGray)
	}
}

// drawSelection highlights the selected entity and shows its readout.
func (g *Game) drawSelection() {
	if !g.hasSel || !g.world.Alive(g.selected) {
		return
	}
	pos := g.posMap.Get(g.selected)
	body := g.bodyMap.Get(g.selected)
	r := float32(body.Radius*g.camera.Zoom) * 1.8
	rl.DrawCircleLinesV(g.worldToScreen(pos.Vec()), r, rl.Yellow)

	f := g.followMap.Get(g.selected)
	o := g.orientMap.Get(g.selected)
	sq := g.squashMap.Get(g.selected)
	g.uiTracker.SetPosition(10, int32(g.screenHeight)-170)
	g.uiTracker.Draw(body.ID, components.TrackerFieldValues(f, sq, o))
}

// drawUI draws the HUD, perf panel and control legend.
func (g *Game) drawUI() {
	g.uiHUD.Draw(ui.HUDData{
		Title:    "Squash",
		Entities: g.entityCount,
		Mode:     g.cfg.Squash.Mode,
		Tick:     g.tick,
		Speed:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Luring:   g.luring,
		Parallel: g.useParallel(),
	})

	if g.showPerf {
		g.uiPerfPanel.SetPosition(int32(g.screenWidth)-240, 10)
		g.uiPerfPanel.Draw(g.perfCollector.Stats(), g.registry)
	}

	g.uiHUD.DrawControls(int32(g.screenHeight),
		"SPACE: Pause | < >: Speed | LMB: Lure | RMB: Select/Steer | T V X A: Overlays | L E: Tint | P: Perf | S: Snapshot")
}

// lerpColor blends a toward b by t clamped to [0, 1].
func lerpColor(a, b rl.Color, t float64) rl.Color {
	t = mathutil.Saturate(t)
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.uiOverlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.uiOverlays.Toggle(desc.ID)
		}
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
}

// Spring preview tool - live step response and a 2D follower with sliders.
//
// Usage: go run ./cmd/springpreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/squash/deform"
	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/spring"
	"github.com/pthm-cable/squash/telemetry"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	plotWidth    = 620
	plotHeight   = 300
	panelWidth   = windowWidth - plotWidth - 40

	settleBand   = 0.02
	plotDuration = 3.0 // seconds
)

// PreviewParams holds the slider state.
type PreviewParams struct {
	UseRatio bool // false: frequency + half-life, true: omega + zeta
	Hz       float32
	HalfLife float32
	Omega    float32
	Zeta     float32
	DT       float32
}

func defaultParams() PreviewParams {
	return PreviewParams{Hz: 2, HalfLife: 0.1, Omega: 12, Zeta: 0.5, DT: 1.0 / 60}
}

// Spring returns the tracker params selected by the sliders.
func (p PreviewParams) Spring() spring.Params {
	if p.UseRatio {
		return spring.DampingRatio(float64(p.Omega), float64(p.Zeta))
	}
	return spring.HalfLife(float64(p.Hz), float64(p.HalfLife))
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Spring Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()
	plot := rl.Rectangle{X: 10, Y: 10, Width: plotWidth, Height: plotHeight}
	arena := rl.Rectangle{X: 10, Y: plotHeight + 30, Width: plotWidth, Height: windowHeight - plotHeight - 40}

	var follower spring.Vec2
	center := r2.Vec{X: float64(arena.X + arena.Width/2), Y: float64(arena.Y + arena.Height/2)}
	follower.ResetTo(center)
	stretch := deform.NewStretcher2D(center, 0, deform.Thresholds2D)
	var clock float64

	for !rl.WindowShouldClose() {
		sp := params.Spring()
		dt := float64(params.DT)
		samples := spring.Response(sp, dt, int(math.Ceil(plotDuration/dt)))
		metrics := telemetry.AnalyzeResponse(samples, settleBand)

		// The follower chases the mouse inside the arena, else a figure eight.
		clock += float64(rl.GetFrameTime())
		goal := figureEight(center, float64(arena.Width)*0.35, float64(arena.Height)*0.35, clock)
		if m := rl.GetMousePosition(); rl.CheckCollisionPointRec(m, arena) {
			goal = r2.Vec{X: float64(m.X), Y: float64(m.Y)}
		}
		pos := follower.Track(goal, sp, dt)
		d := stretch.Update(pos, dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPlot(plot, samples, metrics)
		drawArena(arena, pos, goal, d)

		panelX := float32(plotWidth + 30)
		panelY := float32(10)
		rl.DrawText("Spring Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 200, Height: 30},
			toggleText(params.UseRatio, "Mode: damping ratio", "Mode: half-life")) {
			params.UseRatio = !params.UseRatio
		}
		panelY += 45

		if params.UseRatio {
			panelY = slider(panelX, panelY, "Angular frequency (rad/s)", &params.Omega, 0.5, 60, "%.2f")
			panelY = slider(panelX, panelY, "Damping ratio", &params.Zeta, 0, 2, "%.3f")
		} else {
			panelY = slider(panelX, panelY, "Frequency (Hz)", &params.Hz, 0.1, 10, "%.2f")
			panelY = slider(panelX, panelY, "Half-life (s)", &params.HalfLife, 0, 1, "%.3f")
		}
		panelY = slider(panelX, panelY, "Step dt (s)", &params.DT, 1.0/240, 1.0/15, "%.4f")

		omega, zeta, snap := sp.Resolve()
		lines := []string{
			fmt.Sprintf("omega %.3f  zeta %.3f  snap %v", omega, zeta, snap),
			fmt.Sprintf("overshoot %.1f%%  peak %.3fs", metrics.Overshoot*100, metrics.PeakTime),
			fmt.Sprintf("settle (%.0f%%) %.3fs  settled %v", settleBand*100, metrics.SettleTime, metrics.Settled),
			fmt.Sprintf("stretch %.2fx  speed %.0f px/s", d.Scale, d.Speed),
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.DarkGray)
			panelY += 18
		}
		panelY += 20

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			follower.ResetTo(center)
		}
		panelY += 50

		preset := presetYAML(sp)
		rl.DrawText("YAML preset:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(preset, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(preset)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bound to v and returns the next row.
func slider(x, y float32, label string, v *float32, min, max float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	*v = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		*v, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, *v), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return y + 35
}

func drawPlot(r rl.Rectangle, samples []spring.Sample, m telemetry.ResponseMetrics) {
	rl.DrawRectangleLinesEx(r, 1, rl.DarkGray)

	lo, hi := plotRange(samples)
	for _, level := range []float64{1 - settleBand, 1 + settleBand} {
		y := plotY(r, level, lo, hi)
		rl.DrawLineV(rl.NewVector2(r.X, y), rl.NewVector2(r.X+r.Width, y), rl.LightGray)
	}
	one := plotY(r, 1, lo, hi)
	rl.DrawLineV(rl.NewVector2(r.X, one), rl.NewVector2(r.X+r.Width, one), rl.Gray)

	if m.SettleTime > 0 {
		x := r.X + r.Width*float32(m.SettleTime/plotDuration)
		rl.DrawLineV(rl.NewVector2(x, r.Y), rl.NewVector2(x, r.Y+r.Height), rl.Orange)
	}
	rl.DrawLineStrip(plotPoints(r, samples, lo, hi), rl.Blue)
	rl.DrawText("step response", int32(r.X+6), int32(r.Y+6), 14, rl.Gray)
}

func drawArena(r rl.Rectangle, pos, goal r2.Vec, d deform.Deformation) {
	rl.DrawRectangleLinesEx(r, 1, rl.DarkGray)
	rl.DrawCircleLinesV(toVec2(goal), 5, rl.Orange)

	m := d.Matrix2D()
	pts := make([]rl.Vector2, 0, 33)
	for i := 0; i <= 32; i++ {
		theta := -2 * math.Pi * float64(i) / 32
		p := deform.Apply2D(m, r2.Vec{X: 18 * math.Cos(theta), Y: 18 * math.Sin(theta)})
		pts = append(pts, toVec2(r2.Add(pos, p)))
	}
	rl.DrawLineStrip(pts, rl.DarkBlue)
	rl.DrawText("follower (mouse or figure eight)", int32(r.X+6), int32(r.Y+6), 14, rl.Gray)
}

// plotRange returns the value range shown in the plot: at least [0, 1.2].
func plotRange(samples []spring.Sample) (lo, hi float64) {
	lo, hi = 0, 1.2
	for _, s := range samples {
		lo = math.Min(lo, s.Value)
		hi = math.Max(hi, s.Value)
	}
	return lo, hi
}

// plotY maps a value onto the plot's vertical axis, hi at the top.
func plotY(r rl.Rectangle, v, lo, hi float64) float32 {
	frac := mathutil.Saturate((v - lo) / math.Max(hi-lo, mathutil.Epsilon))
	return r.Y + r.Height*float32(1-frac)
}

// plotPoints maps samples over plotDuration onto the rectangle.
func plotPoints(r rl.Rectangle, samples []spring.Sample, lo, hi float64) []rl.Vector2 {
	pts := make([]rl.Vector2, 0, len(samples))
	for _, s := range samples {
		x := r.X + r.Width*float32(math.Min(s.Time/plotDuration, 1))
		pts = append(pts, rl.NewVector2(x, plotY(r, s.Value, lo, hi)))
	}
	return pts
}

func figureEight(c r2.Vec, ax, ay, t float64) r2.Vec {
	return r2.Vec{X: c.X + ax*math.Sin(t), Y: c.Y + ay*math.Sin(2*t)/2}
}

// presetYAML renders params as a config snippet.
func presetYAML(p spring.Params) string {
	out, err := yaml.Marshal(map[string]spring.Params{"preset": p})
	if err != nil {
		return err.Error()
	}
	return string(out)
}

func toVec2(v r2.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

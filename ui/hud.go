package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/systems"
	"github.com/pthm-cable/squash/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Entities int
	Mode     string
	Tick     int32
	Speed    int
	FPS      int32
	Paused   bool
	Luring   bool
	Parallel bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Entities: %d | Squash: %s | Parallel: %v", data.Entities, data.Mode, data.Parallel),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	switch {
	case data.Paused:
		status = "PAUSED"
	case data.Luring:
		status = "Luring"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase simulation timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders phase averages in registry order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	x, y := p.x, p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow)
	y += 16

	for _, info := range registry.All() {
		pct := stats.PhasePct[info.ID]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", info.Name, stats.PhaseAvg[info.ID].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// TrackerPanel shows the readout of one selected entity.
type TrackerPanel struct {
	renderer *Renderer
	descs    []components.FieldDescriptor
	x, y     int32
	width    int32
}

// NewTrackerPanel creates a panel for the tracker field descriptors.
func NewTrackerPanel(x, y, width int32) *TrackerPanel {
	return &TrackerPanel{
		renderer: NewRenderer(),
		descs:    components.TrackerFieldDescriptors(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TrackerPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Draw renders the entity id followed by one line per tracker field.
func (t *TrackerPanel) Draw(id uint32, values []float64) {
	r := t.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight + int32(len(t.descs))*(r.Theme.LineHeight+2)

	r.DrawPanel(t.x, t.y, t.width, height)
	y := r.DrawSectionHeader(t.x+pad, t.y+pad, fmt.Sprintf("Entity #%d", id))
	r.DrawFields(t.x+pad, y, t.descs, values, t.width-pad*2)
}

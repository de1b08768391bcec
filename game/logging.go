package game

import (
	"fmt"
	"io"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squash/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats dumps frame sections and simulation phases.
func (g *Game) logPerfStats() {
	total := g.frameStats.Total()
	Logf("=== Perf @ Tick %d (speed %dx) | FPS: %d ===", g.tick, g.stepsPerUpdate, rl.GetFPS())
	Logf("Total frame time: %s", total.Round(time.Microsecond))

	for _, name := range g.frameStats.SortedNames() {
		avg := g.frameStats.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		Logf("  %-18s %10s  %5.1f%%", name, avg.Round(time.Microsecond), pct)
	}

	ps := g.perfCollector.Stats()
	Logf("  --- Phases (per tick, %d entities) ---", g.entityCount)
	for _, phase := range telemetry.Phases {
		Logf("    %-16s %10s  %5.1f%%", g.registry.GetName(phase),
			ps.PhaseAvg[phase].Round(time.Microsecond), ps.PhasePct[phase])
	}
	g.logTrackerState()
	Logf("")
}

// logTrackerState logs a one-line summary of tracking health.
func (g *Game) logTrackerState() {
	sum := telemetry.ComputeStats(g.sampleWindow().Errors)
	Logf("Tracking: error mean %.2f p90 %.2f max %.2f | lure %v | parallel %v",
		sum.Mean, sum.P90, sum.Max, g.luring, g.useParallel())
}

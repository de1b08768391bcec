package game

import (
	"math"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/squash/config"
	"github.com/pthm-cable/squash/deform"
	"github.com/pthm-cable/squash/telemetry"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g
}

// withParallelThreshold gives g its own config copy with the threshold set.
func withParallelThreshold(g *Game, threshold int) {
	cfg := *g.cfg
	cfg.Physics.ParallelThreshold = threshold
	g.cfg = &cfg
}

func TestHeadlessStepping(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1, StepsPerUpdate: 5})

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 50 {
		t.Errorf("tick = %d, want 50", g.Tick())
	}
	if want := config.Cfg().Population.Count; g.EntityCount() != want {
		t.Errorf("entities = %d, want %d", g.EntityCount(), want)
	}

	// Every body should have left its anchor while chasing a wandering target.
	moved := 0
	for _, es := range g.Snapshot().Entities {
		if es.X != es.AnchorX || es.Y != es.AnchorY {
			moved++
		}
	}
	if moved == 0 {
		t.Error("no entity moved")
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	serial := newTestGame(t, Options{Seed: 7, StepsPerUpdate: 1})
	parallel := newTestGame(t, Options{Seed: 7, StepsPerUpdate: 1})
	withParallelThreshold(serial, 0)
	withParallelThreshold(parallel, 1)

	if serial.useParallel() || !parallel.useParallel() {
		t.Fatal("threshold override did not select the expected path")
	}

	for i := 0; i < 90; i++ {
		serial.UpdateHeadless()
		parallel.UpdateHeadless()
	}

	if diff := cmp.Diff(serial.Snapshot(), parallel.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(deformations(serial), deformations(parallel)); diff != "" {
		t.Errorf("deformation mismatch (-serial +parallel):\n%s", diff)
	}
}

func deformations(g *Game) []deform.Deformation {
	var out []deform.Deformation
	query := g.entityFilter.Query()
	for query.Next() {
		_, _, _, _, _, _, sq := query.Get()
		out = append(out, sq.Deform)
	}
	return out
}

func TestSnapshotRestore(t *testing.T) {
	orig := newTestGame(t, Options{Seed: 3, StepsPerUpdate: 1})
	for i := 0; i < 40; i++ {
		orig.UpdateHeadless()
	}
	snap := orig.Snapshot()

	restored := newTestGame(t, Options{Seed: 99, StepsPerUpdate: 1})
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	byID := cmpopts.SortSlices(func(a, b telemetry.EntityState) bool { return a.ID < b.ID })
	if diff := cmp.Diff(snap, restored.Snapshot(), byID); diff != "" {
		t.Fatalf("restored state mismatch (-want +got):\n%s", diff)
	}
	if restored.EntityCount() != orig.EntityCount() {
		t.Errorf("entities = %d, want %d", restored.EntityCount(), orig.EntityCount())
	}

	// Both continue along the same trajectory.
	for i := 0; i < 30; i++ {
		orig.UpdateHeadless()
		restored.UpdateHeadless()
	}
	approx := cmpopts.EquateApprox(0, 1e-6)
	if diff := cmp.Diff(orig.Snapshot(), restored.Snapshot(), byID, approx); diff != "" {
		t.Errorf("trajectories diverged (-orig +restored):\n%s", diff)
	}
}

func TestRestoreRejectsVersion(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	snap := g.Snapshot()
	snap.Version = telemetry.SnapshotVersion + 1

	if err := g.Restore(snap); err == nil {
		t.Fatal("expected an error for a future snapshot version")
	}
	if g.EntityCount() != config.Cfg().Population.Count {
		t.Error("a rejected snapshot should leave the world untouched")
	}
}

func TestStatsCallback(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newTestGame(t, Options{
		Seed:           5,
		StepsPerUpdate: 1,
		StatsWindowSec: 2,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	g.Retarget(r2.Vec{X: 100, Y: 100})
	g.Retarget(r2.Vec{X: 200, Y: 100}) // moving an active lure
	g.Release()
	g.Retarget(r2.Vec{X: 300, Y: 300})

	for i := 0; i < 250; i++ {
		g.UpdateHeadless()
	}

	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].Retargets != 2 {
		t.Errorf("retargets = %d, want 2", windows[0].Retargets)
	}
	if windows[1].WindowStartTick != windows[0].WindowEndTick {
		t.Errorf("windows not contiguous: %d then %d", windows[0].WindowEndTick, windows[1].WindowStartTick)
	}
	if windows[0].Entities != g.EntityCount() {
		t.Errorf("window entities = %d, want %d", windows[0].Entities, g.EntityCount())
	}
}

func TestLureGathersTargets(t *testing.T) {
	g := newTestGame(t, Options{Seed: 11, StepsPerUpdate: 1})
	lure := r2.Vec{X: 400, Y: 300}
	center := r2.Vec{X: g.cfg.Derived.WorldW / 2, Y: g.cfg.Derived.WorldH / 2}

	g.Retarget(lure)
	g.UpdateHeadless()

	query := g.targetFilter.Query()
	for query.Next() {
		tgt := query.Get()
		want := r2.Add(lure, r2.Scale(lureSpread, r2.Sub(tgt.Anchor, center)))
		if r2.Norm(r2.Sub(tgt.Vec(), want)) > 1e-9 {
			t.Fatalf("target %v, want %v", tgt.Vec(), want)
		}
	}

	g.Release()
	g.UpdateHeadless()

	bound := g.cfg.Wander.Amplitude * math.Sqrt2
	query = g.targetFilter.Query()
	for query.Next() {
		tgt := query.Get()
		if d := r2.Norm(r2.Sub(tgt.Vec(), tgt.Anchor)); d > bound+1e-9 {
			t.Fatalf("released target %v is %v from its anchor, want <= %v", tgt.Vec(), d, bound)
		}
	}
}

func TestParallelEmptyWorldTimesEveryPhase(t *testing.T) {
	g := newTestGame(t, Options{Seed: 2, StepsPerUpdate: 1})
	withParallelThreshold(g, 1)
	g.removeAll()

	if !g.useParallel() {
		t.Fatal("expected the parallel path")
	}
	g.simulationStep()

	got := g.perfCollector.Stats().PhaseAvg
	for _, phase := range telemetry.Phases {
		if _, ok := got[phase]; !ok {
			t.Errorf("phase %q was not timed", phase)
		}
	}
}

package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
	"github.com/pthm-cable/squash/systems"
	"github.com/pthm-cable/squash/telemetry"
	"github.com/pthm-cable/squash/vecmath"
)

// flushTelemetry closes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleWindow())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	if g.snapshotDir != "" {
		g.saveSnapshot()
	}
}

// sampleWindow collects per-entity tracker state for the window stats.
func (g *Game) sampleWindow() telemetry.Sample {
	s := telemetry.Sample{
		Errors:    make([]float64, 0, g.entityCount),
		Speeds:    make([]float64, 0, g.entityCount),
		Stretches: make([]float64, 0, g.entityCount),
		Lags:      make([]float64, 0, g.entityCount),
	}
	settle := g.cfg.Telemetry.SettleError

	query := g.entityFilter.Query()
	for query.Next() {
		_, vel, _, _, f, o, sq := query.Get()
		s.Errors = append(s.Errors, f.Error)
		s.Speeds = append(s.Speeds, sq.Deform.Speed)
		s.Stretches = append(s.Stretches, sq.Deform.Scale)
		s.Lags = append(s.Lags, orientationLag(o)*mathutil.Rad2Deg)
		if f.Error < settle && r2.Norm(vel.Vec()) < settle {
			s.Settled++
		}
	}
	return s
}

// orientationLag is the angle between the presented and target rotations.
func orientationLag(o *components.Orientation) float64 {
	return quatmath.GetAngle(quat.Mul(o.Target, quat.Conj(o.Presented)))
}

// recordTrace writes one row per entity every TraceEvery ticks.
func (g *Game) recordTrace() {
	every := int32(g.cfg.Telemetry.TraceEvery)
	if g.outputManager == nil || every <= 0 || g.tick%every != 0 {
		return
	}

	g.traceBuf = g.traceBuf[:0]
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, body, tgt, f, o, sq := query.Get()
		v := components.TrackerFieldValues(f, sq, o)
		g.traceBuf = append(g.traceBuf, telemetry.TraceRow{
			Tick:     g.tick,
			EntityID: body.ID,
			X:        pos.X,
			Y:        pos.Y,
			TargetX:  tgt.X,
			TargetY:  tgt.Y,
			Error:    v[0],
			Speed:    v[1],
			Stretch:  v[2],
			Twist:    v[3],
			Swing:    v[4],
		})
	}
	if err := g.outputManager.WriteTrace(g.traceBuf); err != nil {
		slog.Error("failed to write trace", "error", err)
	}
}

// saveSnapshot writes the current state to the snapshot directory.
func (g *Game) saveSnapshot() {
	path, err := telemetry.SaveSnapshot(g.Snapshot(), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// Snapshot captures every entity's tracker state.
func (g *Game) Snapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		Tick:        g.tick,
		WorldWidth:  g.cfg.Derived.WorldW,
		WorldHeight: g.cfg.Derived.WorldH,
		Entities:    make([]telemetry.EntityState, 0, g.entityCount),
	}

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, body, tgt, _, o, _ := query.Get()
		wd := g.wanderMap.Get(query.Entity())
		snap.Entities = append(snap.Entities, telemetry.EntityState{
			ID:          body.ID,
			Radius:      body.Radius,
			X:           pos.X,
			Y:           pos.Y,
			VelX:        vel.X,
			VelY:        vel.Y,
			TargetX:     tgt.X,
			TargetY:     tgt.Y,
			AnchorX:     tgt.Anchor.X,
			AnchorY:     tgt.Anchor.Y,
			Rotation:    vec4Array(o.Spring.Raw()),
			RotationVel: vec4Array(o.Spring.RawVelocity()),
			Presented:   quatArray(o.Presented),
			WanderX:     wd.OffsetX,
			WanderY:     wd.OffsetY,
		})
	}
	return snap
}

// Restore replaces the world's entities with those of snap. Stretchers
// restart at rest along the restored velocity.
func (g *Game) Restore(snap *telemetry.Snapshot) error {
	if snap.Version != telemetry.SnapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", snap.Version, telemetry.SnapshotVersion)
	}

	g.removeAll()
	g.entityCount = 0
	g.nextID = 0
	g.luring = false
	g.hasSel = false

	for _, es := range snap.Entities {
		pos := components.Position{X: es.X, Y: es.Y}
		vel := components.Velocity{X: es.VelX, Y: es.VelY}
		body := components.Body{ID: es.ID, Radius: es.Radius}
		anchor := r2.Vec{X: es.AnchorX, Y: es.AnchorY}
		tgt := components.Target{X: es.TargetX, Y: es.TargetY, Anchor: anchor}

		var follow components.Follower
		follow.Spring.ResetWith(pos.Vec(), vel.Vec())
		follow.Error = r2.Norm(r2.Sub(tgt.Vec(), pos.Vec()))

		raw := arrayQuat(es.Rotation)
		orient := components.NewOrientation(quatmath.Normalize(raw), g.twistAxis())
		orient.Spring.ResetWith(raw, arrayQuat(es.RotationVel))
		orient.Presented = arrayQuat(es.Presented)

		heading := mathutil.Atan2(vecmath.SafeNormalize2(vel.Vec(), vecmath.Right2))
		sq := g.newSquash(pos.Vec(), heading, orient.Tracked)

		wd := components.Wander{OffsetX: es.WanderX, OffsetY: es.WanderY}

		g.entityMapper.NewEntity(&pos, &vel, &body, &tgt, &follow, &orient, &sq, &wd)
		g.entityCount++
		g.nextID = max(g.nextID, es.ID)
	}

	g.tick = snap.Tick
	g.seed = snap.RNGSeed
	g.wander = systems.NewWanderSystem(g.world, snap.RNGSeed, g.cfg.Wander)
	g.wander.SetTime(float64(snap.Tick) * g.cfg.Physics.DT)
	return nil
}

// removeAll removes every tracked entity from the world.
func (g *Game) removeAll() {
	var entities []ecs.Entity
	query := g.entityFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.world.RemoveEntity(e)
	}
}

func quatArray(q quat.Number) [4]float64 {
	return [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real}
}

func arrayQuat(a [4]float64) quat.Number {
	return quat.Number{Imag: a[0], Jmag: a[1], Kmag: a[2], Real: a[3]}
}

func vec4Array(v vecmath.Vec4) [4]float64 {
	return [4]float64{v.X, v.Y, v.Z, v.W}
}

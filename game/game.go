// Package game hosts the simulation: an ark ECS world of followers chasing
// wandering targets, stepped at a fixed dt and drawn with raylib.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/squash/camera"
	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/config"
	"github.com/pthm-cable/squash/systems"
	"github.com/pthm-cable/squash/telemetry"
	"github.com/pthm-cable/squash/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	seed  int64
	cfg   *config.Config

	entityMapper *ecs.Map8[
		components.Position,
		components.Velocity,
		components.Body,
		components.Target,
		components.Follower,
		components.Orientation,
		components.Squash,
		components.Wander,
	]
	entityFilter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Body,
		components.Target,
		components.Follower,
		components.Orientation,
		components.Squash,
	]
	targetFilter *ecs.Filter1[components.Target]

	// Individual component mappers for lookups
	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	bodyMap   *ecs.Map[components.Body]
	followMap *ecs.Map[components.Follower]
	orientMap *ecs.Map[components.Orientation]
	squashMap *ecs.Map[components.Squash]
	wanderMap *ecs.Map[components.Wander]

	// Systems
	registry *systems.SystemRegistry
	wander   *systems.WanderSystem
	follow   *systems.FollowSystem
	orient   *systems.OrientSystem
	squash   *systems.SquashSystem

	parallel *parallelState

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	frameStats    *PerfStats
	statsCallback func(telemetry.WindowStats)
	traceBuf      []telemetry.TraceRow

	// State
	tick           int32
	paused         bool
	headless       bool
	logStats       bool
	snapshotDir    string
	stepsPerUpdate int
	entityCount    int
	nextID         uint32

	// Input
	luring   bool
	lure     r2.Vec
	steering bool
	selected ecs.Entity
	hasSel   bool

	camera                    *camera.Camera
	screenWidth, screenHeight float32

	// UI
	uiOverlays  *ui.OverlayRegistry
	uiHUD       *ui.HUD
	uiPerfPanel *ui.PerfPanel
	uiTracker   *ui.TrackerPanel
	showPerf    bool
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42, StepsPerUpdate: 1})
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		seed:  opts.Seed,
		cfg:   cfg,
		entityMapper: ecs.NewMap8[
			components.Position,
			components.Velocity,
			components.Body,
			components.Target,
			components.Follower,
			components.Orientation,
			components.Squash,
			components.Wander,
		](world),
		entityFilter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Body,
			components.Target,
			components.Follower,
			components.Orientation,
			components.Squash,
		](world),
		targetFilter: ecs.NewFilter1[components.Target](world),
		posMap:       ecs.NewMap[components.Position](world),
		velMap:       ecs.NewMap[components.Velocity](world),
		bodyMap:      ecs.NewMap[components.Body](world),
		followMap:    ecs.NewMap[components.Follower](world),
		orientMap:    ecs.NewMap[components.Orientation](world),
		squashMap:    ecs.NewMap[components.Squash](world),
		wanderMap:    ecs.NewMap[components.Wander](world),

		registry: systems.NewSystemRegistry(),
		wander:   systems.NewWanderSystem(world, opts.Seed, cfg.Wander),
		follow:   systems.NewFollowSystem(world, cfg.Springs.Follow, cfg.Telemetry.SettleError),
		orient:   systems.NewOrientSystem(world, orientParams(cfg)),
		squash:   systems.NewSquashSystem(world),

		parallel: newParallelState(cfg.Physics.Workers),

		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		frameStats:    NewPerfStats(),
		statsCallback: opts.StatsCallback,

		headless:       opts.Headless,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		stepsPerUpdate: stepsPerUpdate,

		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,

		uiOverlays:  ui.NewOverlayRegistry(),
		uiHUD:       ui.NewHUD(),
		uiPerfPanel: ui.NewPerfPanel(0, 10),
		uiTracker:   ui.NewTrackerPanel(10, 0, 260),
		showPerf:    opts.LogStats,
	}

	g.camera = camera.New(
		r2.Vec{X: float64(g.screenWidth), Y: float64(g.screenHeight)},
		r2.Vec{X: cfg.Derived.WorldW, Y: cfg.Derived.WorldH},
	)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.spawnInitialPopulation()

	slog.Info("game created",
		"seed", opts.Seed,
		"entities", g.entityCount,
		"squash_mode", cfg.Squash.Mode,
		"follow", cfg.Springs.Follow.String(),
		"rotation", cfg.Springs.Rotation.String(),
	)
	return g
}

func orientParams(cfg *config.Config) systems.OrientParams {
	return systems.OrientParams{
		Spring:    cfg.Springs.Rotation,
		SwingRate: cfg.Orient.SwingRate,
		TwistRate: cfg.Orient.TwistRate,
		MaxLean:   cfg.Orient.MaxLean,
		MaxSpeed:  cfg.Squash.MaxSpeed,
	}
}

// Update runs one frame in graphical mode: input, then stepsPerUpdate ticks.
func (g *Game) Update() {
	g.frameStats.Measure("input", g.handleInput)
	g.perfCollector.RecordFrame()

	if g.paused {
		return
	}
	g.frameStats.Measure("simulate", func() {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.simulationStep()
		}
	})
	if g.logStats && g.tick%600 < int32(g.stepsPerUpdate) {
		g.logPerfStats()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep advances the world by one fixed dt.
func (g *Game) simulationStep() {
	dt := g.cfg.Physics.DT
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseWander)
	g.wander.Update(dt)
	if g.luring {
		g.applyLure()
	}

	if g.useParallel() {
		g.stepParallel(dt)
	} else {
		g.perfCollector.StartPhase(telemetry.PhaseFollow)
		for n := g.follow.Update(dt); n > 0; n-- {
			g.collector.RecordSettle()
		}
		g.perfCollector.StartPhase(telemetry.PhaseOrient)
		g.orient.Update(dt)
		g.perfCollector.StartPhase(telemetry.PhaseSquash)
		g.squash.Update(dt)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.recordTrace()
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

func (g *Game) useParallel() bool {
	t := g.cfg.Physics.ParallelThreshold
	return t > 0 && g.entityCount >= t
}

// applyLure gathers every target around the lure point, keeping the
// formation of their anchors at a fraction of its spread.
func (g *Game) applyLure() {
	center := r2.Vec{X: g.cfg.Derived.WorldW / 2, Y: g.cfg.Derived.WorldH / 2}
	query := g.targetFilter.Query()
	for query.Next() {
		tgt := query.Get()
		tgt.Set(r2.Add(g.lure, r2.Scale(lureSpread, r2.Sub(tgt.Anchor, center))))
	}
}

const lureSpread = 0.15

// Retarget gathers every target around p until Release is called. Moving
// an active lure does not count as a new retarget.
func (g *Game) Retarget(p r2.Vec) {
	if !g.luring {
		g.collector.RecordRetarget()
	}
	g.luring = true
	g.lure = p
}

// Release lets targets return to wandering.
func (g *Game) Release() {
	g.luring = false
}

// Unload releases resources.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// EntityCount returns the number of tracked entities.
func (g *Game) EntityCount() int {
	return g.entityCount
}

package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/squash/components"
	"github.com/pthm-cable/squash/systems"
	"github.com/pthm-cable/squash/telemetry"
)

// stage selects which per-entity step a chunk runs.
type stage uint8

const (
	stageFollow stage = iota
	stageOrient
	stageSquash
)

// entitySnapshot holds a copy of one entity's tracked components. Workers
// step the copy; the results are written back single-threaded.
type entitySnapshot struct {
	Entity   ecs.Entity
	Pos      components.Position
	Vel      components.Velocity
	Target   components.Target
	Follower components.Follower
	Orient   components.Orientation
	Squash   components.Squash
	Settled  bool // Entered the settle band this tick
}

// workChunk represents a range of entities for a worker to process.
type workChunk struct {
	start, end int
	dt         float64
	stage      stage
}

// parallelState holds the worker pool. Each entity owns its trackers, so
// chunks never share mutable state.
type parallelState struct {
	snapshots  []entitySnapshot
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{
		numWorkers: workers,
		snapshots:  make([]entitySnapshot, 0, 512),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// stepParallel runs follow, orient and squash across the worker pool:
// snapshot, one dispatch per stage, then apply.
func (g *Game) stepParallel(dt float64) {
	g.perfCollector.StartPhase(telemetry.PhaseFollow)
	g.takeSnapshots()
	n := len(g.parallel.snapshots)

	g.dispatch(n, dt, stageFollow)
	g.perfCollector.StartPhase(telemetry.PhaseOrient)
	g.dispatch(n, dt, stageOrient)
	g.perfCollector.StartPhase(telemetry.PhaseSquash)
	g.dispatch(n, dt, stageSquash)

	g.applySnapshots()
}

// takeSnapshots copies every entity's tracked components (single-threaded).
func (g *Game) takeSnapshots() {
	g.parallel.snapshots = g.parallel.snapshots[:0]

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, _, tgt, f, o, sq := query.Get()
		g.parallel.snapshots = append(g.parallel.snapshots, entitySnapshot{
			Entity:   query.Entity(),
			Pos:      *pos,
			Vel:      *vel,
			Target:   *tgt,
			Follower: *f,
			Orient:   *o,
			Squash:   *sq,
		})
	}
}

// dispatch splits [0, n) into one chunk per worker and waits for all.
func (g *Game) dispatch(n int, dt float64, st stage) {
	// Ensure workers are running
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end, dt: dt, stage: st}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk steps a range of snapshots for a single worker.
func (g *Game) computeChunk(c workChunk) {
	snaps := g.parallel.snapshots[c.start:c.end]
	switch c.stage {
	case stageFollow:
		p, settle := g.cfg.Springs.Follow, g.cfg.Telemetry.SettleError
		for i := range snaps {
			s := &snaps[i]
			s.Settled = systems.StepFollow(&s.Pos, &s.Vel, s.Target, &s.Follower, p, settle, c.dt)
		}
	case stageOrient:
		p := orientParams(g.cfg)
		for i := range snaps {
			s := &snaps[i]
			systems.StepOrient(s.Vel, &s.Orient, p, c.dt)
		}
	case stageSquash:
		for i := range snaps {
			s := &snaps[i]
			systems.StepSquash(s.Pos, &s.Squash, c.dt)
		}
	}
}

// applySnapshots writes the stepped copies back to the world in snapshot
// order, which keeps the settle count deterministic.
func (g *Game) applySnapshots() {
	for i := range g.parallel.snapshots {
		s := &g.parallel.snapshots[i]
		*g.posMap.Get(s.Entity) = s.Pos
		*g.velMap.Get(s.Entity) = s.Vel
		*g.followMap.Get(s.Entity) = s.Follower
		*g.orientMap.Get(s.Entity) = s.Orient
		*g.squashMap.Get(s.Entity) = s.Squash
		if s.Settled {
			g.collector.RecordSettle()
		}
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}

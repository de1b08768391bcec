package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for current window
	settles   int
	retargets int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSettle records a follower coming to rest on its target.
func (c *Collector) RecordSettle() {
	c.settles++
}

// RecordRetarget records a user-driven target move.
func (c *Collector) RecordRetarget() {
	c.retargets++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample holds per-entity values taken at the end of a window.
type Sample struct {
	Errors    []float64 // Follower distance to target
	Speeds    []float64 // Smoothed squash speed
	Stretches []float64 // Squash scale factor
	Lags      []float64 // Presented-to-target orientation angle, degrees
	Settled   int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	errs := ComputeStats(s.Errors)
	speeds := ComputeStats(s.Speeds)
	stretches := ComputeStats(s.Stretches)
	lags := ComputeStats(s.Lags)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Entities:  len(s.Errors),
		Settles:   c.settles,
		Retargets: c.retargets,

		ErrorMean: errs.Mean,
		ErrorP50:  errs.P50,
		ErrorP90:  errs.P90,
		ErrorMax:  errs.Max,

		SpeedMean: speeds.Mean,
		SpeedMax:  speeds.Max,

		StretchMean: stretches.Mean,
		StretchMax:  stretches.Max,

		LagMean: lags.Mean,
		LagP90:  lags.P90,

		SettledCount: s.Settled,
	}

	c.windowStartTick = currentTick
	c.settles = 0
	c.retargets = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

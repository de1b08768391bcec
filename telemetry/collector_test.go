package telemetry

import "testing"

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if got := c.WindowDurationTicks(); got != 10 {
		t.Fatalf("WindowDurationTicks = %d, want 10", got)
	}
	if c.ShouldFlush(9) {
		t.Error("ShouldFlush(9) = true before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("ShouldFlush(10) = false at the window end")
	}

	c.RecordSettle()
	c.RecordSettle()
	c.RecordRetarget()

	stats := c.Flush(10, Sample{
		Errors:    []float64{0, 2, 4},
		Speeds:    []float64{100, 300, 200},
		Stretches: []float64{1, 1.5, 1.25},
		Lags:      []float64{10, 20, 30},
		Settled:   1,
	})

	if stats.Entities != 3 || stats.Settles != 2 || stats.Retargets != 1 || stats.SettledCount != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.ErrorMean != 2 || stats.ErrorMax != 4 {
		t.Errorf("error stats = mean %v max %v", stats.ErrorMean, stats.ErrorMax)
	}
	if stats.SpeedMax != 300 || stats.StretchMax != 1.5 || stats.LagMean != 20 {
		t.Errorf("speed/stretch/lag = %v/%v/%v", stats.SpeedMax, stats.StretchMax, stats.LagMean)
	}
	if stats.SimTimeSec != 1.0 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}

	// Counters reset and the next window starts where this one ended.
	next := c.Flush(20, Sample{})
	if next.Settles != 0 || next.Retargets != 0 || next.WindowStartTick != 10 {
		t.Errorf("second window = %+v", next)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0, 1.0/60)
	if got := c.WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks = %d, want 1", got)
	}
}

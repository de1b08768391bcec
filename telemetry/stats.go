// Package telemetry provides tracker health statistics, step-response
// analysis, performance timing, and CSV/JSON output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Entities int `csv:"entities"`

	// Events during window
	Settles   int `csv:"settles"`   // Followers that came to rest on their target
	Retargets int `csv:"retargets"` // Targets moved by the user

	// Tracking error (distance from follower to target, sampled at window end)
	ErrorMean float64 `csv:"error_mean"`
	ErrorP50  float64 `csv:"error_p50"`
	ErrorP90  float64 `csv:"error_p90"`
	ErrorMax  float64 `csv:"error_max"`

	// Smoothed speed from the squash stretchers
	SpeedMean float64 `csv:"speed_mean"`
	SpeedMax  float64 `csv:"speed_max"`

	// Stretch factor along the direction of travel
	StretchMean float64 `csv:"stretch_mean"`
	StretchMax  float64 `csv:"stretch_max"`

	// Angle between presented and target orientation, degrees
	LagMean float64 `csv:"lag_mean"`
	LagP90  float64 `csv:"lag_p90"`

	SettledCount int `csv:"settled"` // Followers currently at rest
}

// Summary is the distribution of one sampled quantity.
type Summary struct {
	Mean, P10, P50, P90, Max float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between the bracketing ranks
	idx := p * float64(n-1)
	lo := int(idx)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// ComputeStats summarizes values. The input is not modified.
func ComputeStats(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return Summary{
		Mean: sum / float64(n),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  sorted[n-1],
	}
}

// StdDev returns the population standard deviation of values.
func StdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("entities", s.Entities),
		slog.Int("settles", s.Settles),
		slog.Int("retargets", s.Retargets),
		slog.Float64("error_mean", s.ErrorMean),
		slog.Float64("error_p50", s.ErrorP50),
		slog.Float64("error_p90", s.ErrorP90),
		slog.Float64("error_max", s.ErrorMax),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("stretch_mean", s.StretchMean),
		slog.Float64("stretch_max", s.StretchMax),
		slog.Float64("lag_mean", s.LagMean),
		slog.Float64("lag_p90", s.LagP90),
		slog.Int("settled", s.SettledCount),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"entities", s.Entities,
		"settles", s.Settles,
		"retargets", s.Retargets,
		"error_mean", s.ErrorMean,
		"error_p90", s.ErrorP90,
		"speed_max", s.SpeedMax,
		"stretch_mean", s.StretchMean,
		"stretch_max", s.StretchMax,
		"lag_mean", s.LagMean,
		"settled", s.SettledCount,
	)
}

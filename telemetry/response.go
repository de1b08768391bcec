package telemetry

import (
	"math"

	"github.com/pthm-cable/squash/spring"
)

// ResponseMetrics characterizes a step response toward a target of 1.
type ResponseMetrics struct {
	Overshoot  float64 `csv:"overshoot"`   // Peak excursion past the target, as a fraction of the step
	PeakTime   float64 `csv:"peak_time"`   // Time of the peak value
	SettleTime float64 `csv:"settle_time"` // Last time the value was outside the band
	FinalError float64 `csv:"final_error"` // |1 - value| at the last sample
	Settled    bool    `csv:"settled"`     // Whether the response ended inside the band
}

// AnalyzeResponse measures a step response from 0 toward 1. band is the
// settle tolerance as a fraction of the step (e.g. 0.02 for 2%).
func AnalyzeResponse(samples []spring.Sample, band float64) ResponseMetrics {
	var m ResponseMetrics
	if len(samples) == 0 {
		return m
	}

	peak := math.Inf(-1)
	for _, s := range samples {
		if s.Value > peak {
			peak = s.Value
			m.PeakTime = s.Time
		}
		if math.Abs(1-s.Value) > band {
			m.SettleTime = s.Time
		}
	}

	m.Overshoot = math.Max(0, peak-1)
	last := samples[len(samples)-1]
	m.FinalError = math.Abs(1 - last.Value)
	m.Settled = m.FinalError <= band
	return m
}

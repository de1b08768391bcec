package main

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/pthm-cable/squash/spring"
	"github.com/pthm-cable/squash/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{3.5, 0.25}

	got := pv.Denormalize(pv.Normalize(raw))
	if diff := cmp.Diff(raw, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToParamsClamps(t *testing.T) {
	pv := NewParamVector()
	p := pv.ToParams([]float64{-5, 100})

	if diff := cmp.Diff(spring.HalfLife(0.1, 2), p); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestCost(t *testing.T) {
	goal := Goal{Overshoot: 0.1, SettleTime: 0.5, Band: 0.02}

	tests := []struct {
		name string
		m    telemetry.ResponseMetrics
		want float64
	}{
		{"exact", telemetry.ResponseMetrics{Overshoot: 0.1, SettleTime: 0.5, Settled: true}, 0},
		{"one band over", telemetry.ResponseMetrics{Overshoot: 0.12, SettleTime: 0.5, Settled: true}, 1},
		{"twice as slow", telemetry.ResponseMetrics{Overshoot: 0.1, SettleTime: 1, Settled: true}, 1},
		{"unsettled", telemetry.ResponseMetrics{Overshoot: 0.1, SettleTime: 0.5}, unsettledPenalty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cost(tt.m, goal); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cost = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateMatchesOwnResponse(t *testing.T) {
	const dt = 1.0 / 60
	pv := NewParamVector()
	raw := []float64{2, 0.1}

	e := NewEvaluator(pv, Goal{Band: 0.02}, dt, 3)
	m := telemetry.AnalyzeResponse(spring.Response(pv.ToParams(raw), dt, e.steps), 0.02)
	if !m.Settled {
		t.Fatalf("reference response did not settle: %+v", m)
	}

	e.goal = Goal{Overshoot: m.Overshoot, SettleTime: m.SettleTime, Band: 0.02}
	if cost := e.Evaluate(raw); cost > 1e-12 {
		t.Errorf("cost of the goal's own params = %v, want 0", cost)
	}
	if e.Last() != m {
		t.Errorf("Last() = %+v, want %+v", e.Last(), m)
	}
}

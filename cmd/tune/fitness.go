package main

import (
	"math"

	"github.com/pthm-cable/squash/spring"
	"github.com/pthm-cable/squash/telemetry"
)

// Goal is the desired step response.
type Goal struct {
	Overshoot  float64 // Fraction of the step, e.g. 0.1
	SettleTime float64 // Seconds to stay within Band
	Band       float64 // Settle tolerance as a fraction of the step
}

// Evaluator scores spring params against a Goal by simulating their step
// response at a fixed dt.
type Evaluator struct {
	params *ParamVector
	goal   Goal
	dt     float64
	steps  int

	last telemetry.ResponseMetrics
}

// NewEvaluator creates an evaluator simulating duration seconds per run.
func NewEvaluator(params *ParamVector, goal Goal, dt, duration float64) *Evaluator {
	return &Evaluator{
		params: params,
		goal:   goal,
		dt:     dt,
		steps:  int(math.Ceil(duration / dt)),
	}
}

// unsettledPenalty is added when the response never enters the band.
const unsettledPenalty = 10

// Evaluate computes the cost of a raw parameter vector (lower = better):
// squared overshoot error in units of the band plus squared relative
// settle time error.
func (e *Evaluator) Evaluate(raw []float64) float64 {
	p := e.params.ToParams(raw)
	m := telemetry.AnalyzeResponse(spring.Response(p, e.dt, e.steps), e.goal.Band)
	e.last = m
	return Cost(m, e.goal)
}

// Cost scores measured metrics against a goal.
func Cost(m telemetry.ResponseMetrics, g Goal) float64 {
	band := math.Max(g.Band, 1e-3)
	settle := math.Max(g.SettleTime, 1e-3)

	over := (m.Overshoot - g.Overshoot) / band
	st := (m.SettleTime - g.SettleTime) / settle
	cost := over*over + st*st
	if !m.Settled {
		cost += unsettledPenalty
	}
	return cost
}

// Last returns the metrics of the most recent Evaluate call.
func (e *Evaluator) Last() telemetry.ResponseMetrics {
	return e.last
}

// Package main fits half-life spring parameters to a desired step response
// (overshoot and settle time) with Nelder-Mead and prints the YAML preset.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/squash/config"
	"github.com/pthm-cable/squash/spring"
)

// EvalRow is one line of the evaluation log.
type EvalRow struct {
	Eval        int     `csv:"eval"`
	Cost        float64 `csv:"cost"`
	FrequencyHz float64 `csv:"frequency_hz"`
	HalfLife    float64 `csv:"half_life"`
	Omega       float64 `csv:"omega"`
	Zeta        float64 `csv:"zeta"`
	Overshoot   float64 `csv:"overshoot"`
	SettleTime  float64 `csv:"settle_time"`
	Settled     bool    `csv:"settled"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	preset := flag.String("preset", "follow", "Spring preset to replace: follow, speed, direction, rotation")
	overshoot := flag.Float64("overshoot", 0.1, "Target overshoot as a fraction of the step")
	settle := flag.Float64("settle", 0.5, "Target settle time in seconds")
	band := flag.Float64("band", 0.02, "Settle band as a fraction of the step")
	duration := flag.Float64("duration", 4, "Simulated seconds per evaluation")
	dt := flag.Float64("dt", 0, "Step size in seconds (0 = use config physics.dt)")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for eval log and best config (optional)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	if *dt <= 0 {
		*dt = cfg.Physics.DT
	}
	target, err := presetField(cfg, *preset)
	if err != nil {
		log.Fatal(err)
	}

	params := NewParamVector()
	goal := Goal{Overshoot: *overshoot, SettleTime: *settle, Band: *band}
	evaluator := NewEvaluator(params, goal, *dt, *duration)

	var rows []EvalRow
	best := struct {
		cost float64
		raw  []float64
	}{cost: 1e18}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			cost := evaluator.Evaluate(raw)

			clamped := params.Clamp(raw)
			if cost < best.cost {
				best.cost = cost
				best.raw = clamped
			}

			p := params.ToParams(raw)
			omega, zeta, _ := p.Resolve()
			m := evaluator.Last()
			rows = append(rows, EvalRow{
				Eval:        len(rows) + 1,
				Cost:        cost,
				FrequencyHz: clamped[0],
				HalfLife:    clamped[1],
				Omega:       omega,
				Zeta:        zeta,
				Overshoot:   m.Overshoot,
				SettleTime:  m.SettleTime,
				Settled:     m.Settled,
			})
			return cost
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.NelderMead{}

	fmt.Printf("Fitting %s: overshoot=%.3f settle=%.3fs band=%.3f dt=%.4f\n",
		*preset, goal.Overshoot, goal.SettleTime, goal.Band, *dt)

	start := time.Now()
	initX := params.Normalize(params.DefaultVector())
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	fitted := params.ToParams(best.raw)
	evaluator.Evaluate(best.raw)
	m := evaluator.Last()
	fmt.Printf("\n%d evaluations in %s, best cost %.6f\n", len(rows), time.Since(start).Round(time.Millisecond), best.cost)
	fmt.Printf("overshoot=%.4f peak=%.3fs settle=%.3fs settled=%v\n", m.Overshoot, m.PeakTime, m.SettleTime, m.Settled)

	out, err := yaml.Marshal(map[string]map[string]spring.Params{"springs": {*preset: fitted}})
	if err != nil {
		log.Fatalf("failed to marshal preset: %v", err)
	}
	fmt.Printf("\n%s", out)

	if *outputDir == "" {
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	f, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		log.Printf("failed to write eval log: %v", err)
	}

	*target = fitted
	cfgPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(cfgPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("Best config saved to: %s\n", cfgPath)
	}
}

// presetField returns the config slot for a named spring preset.
func presetField(cfg *config.Config, name string) (*spring.Params, error) {
	switch name {
	case "follow":
		return &cfg.Springs.Follow, nil
	case "speed":
		return &cfg.Springs.Speed, nil
	case "direction":
		return &cfg.Springs.Direction, nil
	case "rotation":
		return &cfg.Springs.Rotation, nil
	}
	return nil, fmt.Errorf("unknown preset %q", name)
}

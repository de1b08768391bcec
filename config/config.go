// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/squash/spring"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Springs    SpringsConfig    `yaml:"springs"`
	Squash     SquashConfig     `yaml:"squash"`
	Orient     OrientConfig     `yaml:"orient"`
	Wander     WanderConfig     `yaml:"wander"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in pixels (0 = use screen width)
	Height int `yaml:"height"` // World height in pixels (0 = use screen height)
}

// PhysicsConfig holds stepping parameters.
type PhysicsConfig struct {
	DT                float64 `yaml:"dt"`
	Workers           int     `yaml:"workers"`            // 0 = GOMAXPROCS
	ParallelThreshold int     `yaml:"parallel_threshold"` // Entity count above which updates fan out
}

// SpringsConfig holds the named tracker presets.
type SpringsConfig struct {
	Follow    spring.Params `yaml:"follow"`    // Follower position toward its target
	Speed     spring.Params `yaml:"speed"`     // Squash speed smoothing
	Direction spring.Params `yaml:"direction"` // Squash stretch direction smoothing
	Rotation  spring.Params `yaml:"rotation"`  // Orientation toward heading
}

// SquashConfig holds squash-and-stretch thresholds.
type SquashConfig struct {
	Mode       string  `yaml:"mode"` // "2d" or "3d"
	MaxStretch float64 `yaml:"max_stretch"`
	MinSpeed   float64 `yaml:"min_speed"` // Stretch starts above this (px/s)
	MaxSpeed   float64 `yaml:"max_speed"` // Full stretch at and above this (px/s)
}

// OrientConfig holds the constrained rotation rates.
type OrientConfig struct {
	TwistAxis [3]float64 `yaml:"twist_axis"`
	SwingRate float64    `yaml:"swing_rate"` // Exponential catch-up rate of the presented swing (1/s)
	TwistRate float64    `yaml:"twist_rate"` // Exponential catch-up rate of the presented twist (1/s)
	MaxLean   float64    `yaml:"max_lean"`   // Lean angle at full speed (rad)
}

// WanderConfig holds noise-driven target motion parameters.
type WanderConfig struct {
	Scale     float64 `yaml:"scale"`     // Noise frequency
	Speed     float64 `yaml:"speed"`     // Noise time scale
	Amplitude float64 `yaml:"amplitude"` // Target excursion from the anchor in pixels
}

// PopulationConfig holds entity layout parameters.
type PopulationConfig struct {
	Count   int     `yaml:"count"`
	Layout  string  `yaml:"layout"` // "grid" or "random"
	Spacing float64 `yaml:"spacing"`
	Radius  float64 `yaml:"radius"` // Draw radius of one entity
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	TraceEvery          int     `yaml:"trace_every"`   // Ticks between trace rows (0 = off)
	SettleError         float64 `yaml:"settle_error"` // Tracking error below which a follower counts as settled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW    float64 // Effective world width
	WorldH    float64 // Effective world height
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("%w: physics.dt must be positive, got %v", ErrInvalid, c.Physics.DT)
	}

	presets := []struct {
		name string
		p    spring.Params
	}{
		{"follow", c.Springs.Follow},
		{"speed", c.Springs.Speed},
		{"direction", c.Springs.Direction},
		{"rotation", c.Springs.Rotation},
	}
	for _, preset := range presets {
		if err := preset.p.Validate(); err != nil {
			return fmt.Errorf("%w: springs.%s: %w", ErrInvalid, preset.name, err)
		}
	}

	switch c.Squash.Mode {
	case "2d", "3d":
	default:
		return fmt.Errorf("%w: squash.mode must be 2d or 3d, got %q", ErrInvalid, c.Squash.Mode)
	}
	if c.Squash.MaxSpeed < c.Squash.MinSpeed {
		return fmt.Errorf("%w: squash.max_speed %v below min_speed %v", ErrInvalid, c.Squash.MaxSpeed, c.Squash.MinSpeed)
	}

	switch c.Population.Layout {
	case "grid", "random":
	default:
		return fmt.Errorf("%w: population.layout must be grid or random, got %q", ErrInvalid, c.Population.Layout)
	}
	if c.Population.Count < 0 {
		return fmt.Errorf("%w: population.count must not be negative", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	if c.Orient.TwistAxis == ([3]float64{}) {
		c.Orient.TwistAxis = [3]float64{0, 0, 1}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

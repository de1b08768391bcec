package spring

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/squash/mathutil"
)

// Mode selects how Params maps to (omega, zeta).
type Mode string

const (
	ModeDampingRatio Mode = "damping_ratio" // AngularFrequency + DampingRatio
	ModeHalfLife     Mode = "half_life"     // FrequencyHz + HalfLife
	ModeExponential  Mode = "exponential"   // HalfLife only, critically damped
)

// Params is the configurable parameter surface of a tracker.
type Params struct {
	Mode             Mode    `yaml:"mode"`
	AngularFrequency float64 `yaml:"angular_frequency,omitempty"` // rad/s
	DampingRatio     float64 `yaml:"damping_ratio,omitempty"`
	FrequencyHz      float64 `yaml:"frequency_hz,omitempty"`
	HalfLife         float64 `yaml:"half_life,omitempty"` // seconds
}

// DampingRatio returns Params for an explicit (omega, zeta) pair.
func DampingRatio(omega, zeta float64) Params {
	return Params{Mode: ModeDampingRatio, AngularFrequency: omega, DampingRatio: zeta}
}

// HalfLife returns Params for a frequency in Hz and a half-life.
func HalfLife(frequencyHz, halfLife float64) Params {
	return Params{Mode: ModeHalfLife, FrequencyHz: frequencyHz, HalfLife: halfLife}
}

// Exponential returns Params for critically damped decay with a half-life.
func Exponential(halfLife float64) Params {
	return Params{Mode: ModeExponential, HalfLife: halfLife}
}

// Resolve converts p into (omega, zeta). snap is true when the half-life is
// below Epsilon and the tracker should jump straight to its target.
// An unknown mode resolves to omega 0, which holds the value.
func (p Params) Resolve() (omega, zeta float64, snap bool) {
	switch p.Mode {
	case ModeDampingRatio:
		return p.AngularFrequency, p.DampingRatio, false
	case ModeHalfLife:
		if p.HalfLife < mathutil.Epsilon {
			return 0, 0, true
		}
		omega, zeta = HalfLifeCoefficients(p.FrequencyHz, p.HalfLife)
		return omega, zeta, false
	case ModeExponential:
		if p.HalfLife < mathutil.Epsilon {
			return 0, 0, true
		}
		omega, zeta = ExponentialCoefficients(p.HalfLife)
		return omega, zeta, false
	}
	return 0, 0, false
}

// ErrInvalidParams is wrapped by every Validate failure.
var ErrInvalidParams = errors.New("invalid spring params")

// Validate reports parameter sets that cannot have been intended. Trackers
// themselves accept any input; this is for configuration loading.
func (p Params) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidParams, name, v)
		}
		return nil
	}

	switch p.Mode {
	case ModeDampingRatio:
		if err := check("angular_frequency", p.AngularFrequency); err != nil {
			return err
		}
		return check("damping_ratio", p.DampingRatio)
	case ModeHalfLife:
		if err := check("frequency_hz", p.FrequencyHz); err != nil {
			return err
		}
		return check("half_life", p.HalfLife)
	case ModeExponential:
		return check("half_life", p.HalfLife)
	}
	return fmt.Errorf("%w: unknown mode %q", ErrInvalidParams, p.Mode)
}

// String formats p for logs.
func (p Params) String() string {
	omega, zeta, snap := p.Resolve()
	if snap {
		return fmt.Sprintf("%s(snap)", p.Mode)
	}
	return fmt.Sprintf("%s(omega=%.3f zeta=%.3f)", p.Mode, omega, zeta)
}

// Package spring tracks values toward moving targets with a damped harmonic
// oscillator integrated by an implicit Euler step. The step is stable for
// any dt and parameter combination, so it is safe at low or variable frame
// rates.
//
// One generic Tracker operates on fixed-size lane arrays; Float, Vec2,
// Vec3, Vec4 and Quat wrap it for the concrete value types.
package spring

import (
	"math"

	"github.com/pthm-cable/squash/mathutil"
)

// Lanes is the closed set of lane arrays a Tracker can integrate.
type Lanes interface {
	[1]float64 | [2]float64 | [3]float64 | [4]float64
}

// Tracker holds a value and its velocity. The zero value is at rest at the
// origin. A Tracker is owned by a single caller; distinct Trackers share no
// state.
type Tracker[V Lanes] struct {
	Value    V
	Velocity V
}

// Reset puts the tracker at rest at zero.
func (t *Tracker[V]) Reset() {
	var zero V
	t.Value = zero
	t.Velocity = zero
}

// ResetTo puts the tracker at rest at v.
func (t *Tracker[V]) ResetTo(v V) {
	var zero V
	t.Value = v
	t.Velocity = zero
}

// ResetWith sets both value and velocity.
func (t *Tracker[V]) ResetWith(v, vel V) {
	t.Value = v
	t.Velocity = vel
}

// TrackDampingRatio advances the tracker one step of dt seconds toward
// target, with angular frequency omega (rad/s) and damping ratio zeta.
// An omega below Epsilon has no restoring force: velocity is cleared and
// the value holds.
func (t *Tracker[V]) TrackDampingRatio(target V, omega, zeta, dt float64) V {
	if omega < mathutil.Epsilon {
		var zero V
		t.Velocity = zero
		return t.Value
	}

	f := 1 + 2*dt*zeta*omega
	oo := omega * omega
	hoo := dt * oo
	hhoo := dt * hoo
	detInv := 1 / (f + hhoo)

	var velSqr, deltaSqr float64
	for i := 0; i < len(target); i++ {
		x := t.Value[i]
		v := t.Velocity[i]
		detX := f*x + dt*v + hhoo*target[i]
		detV := v + hoo*(target[i]-x)

		x = detX * detInv
		v = detV * detInv
		t.Value[i] = x
		t.Velocity[i] = v

		d := target[i] - x
		velSqr += v * v
		deltaSqr += d * d
	}

	// Snap once at rest so the value does not creep asymptotically.
	if velSqr < mathutil.EpsilonSqr && deltaSqr < mathutil.EpsilonSqr {
		var zero V
		t.Velocity = zero
		t.Value = target
	}

	return t.Value
}

// TrackHalfLife advances toward target with an oscillation frequency in Hz
// and the half-life of the decay envelope in seconds. A half-life below
// Epsilon snaps straight to target.
func (t *Tracker[V]) TrackHalfLife(target V, frequencyHz, halfLife, dt float64) V {
	if halfLife < mathutil.Epsilon {
		t.snap(target)
		return t.Value
	}
	omega, zeta := HalfLifeCoefficients(frequencyHz, halfLife)
	return t.TrackDampingRatio(target, omega, zeta, dt)
}

// TrackExponential advances toward target with pure exponential decay of
// the given half-life (critical damping). A half-life below Epsilon snaps
// straight to target.
func (t *Tracker[V]) TrackExponential(target V, halfLife, dt float64) V {
	if halfLife < mathutil.Epsilon {
		t.snap(target)
		return t.Value
	}
	omega, zeta := ExponentialCoefficients(halfLife)
	return t.TrackDampingRatio(target, omega, zeta, dt)
}

// Track advances toward target using a parameter set.
func (t *Tracker[V]) Track(target V, p Params, dt float64) V {
	omega, zeta, snap := p.Resolve()
	if snap {
		t.snap(target)
		return t.Value
	}
	return t.TrackDampingRatio(target, omega, zeta, dt)
}

// Speed returns the magnitude of the velocity.
func (t *Tracker[V]) Speed() float64 {
	var sum float64
	for i := 0; i < len(t.Velocity); i++ {
		sum += t.Velocity[i] * t.Velocity[i]
	}
	return math.Sqrt(sum)
}

func (t *Tracker[V]) snap(target V) {
	var zero V
	t.Value = target
	t.Velocity = zero
}

// HalfLifeCoefficients converts a frequency in Hz and a half-life into
// (omega, zeta): omega = 2π·hz, zeta = ln2 / (omega·halfLife).
func HalfLifeCoefficients(frequencyHz, halfLife float64) (omega, zeta float64) {
	omega = frequencyHz * mathutil.TwoPi
	zeta = mathutil.Ln2 / (omega * halfLife)
	return omega, zeta
}

// ExponentialCoefficients converts a half-life into critically damped
// (omega, zeta): omega = ln2 / halfLife, zeta = 1.
func ExponentialCoefficients(halfLife float64) (omega, zeta float64) {
	return mathutil.Ln2 / halfLife, 1
}

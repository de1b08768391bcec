package spring

import (
	"gonum.org/v1/gonum/num/quat"

	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
	"github.com/pthm-cable/squash/vecmath"
)

// Quat tracks a rotation by integrating its four raw components as a plain
// 4-vector. The state is never renormalized between steps; Rotation
// normalizes on read. The drift this allows is negligible at the angular
// rates of secondary motion, and renormalizing every step would change the
// damping.
//
// The zero value is not a rotation; call Reset before use.
type Quat struct {
	t Tracker[[4]float64]
}

func quatLanes(q quat.Number) [4]float64 {
	return [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real}
}

func lanesQuat(l [4]float64) quat.Number {
	return quat.Number{Real: l[3], Imag: l[0], Jmag: l[1], Kmag: l[2]}
}

// Reset puts the tracker at rest at the identity rotation.
func (s *Quat) Reset() {
	s.t.ResetTo(quatLanes(quatmath.Identity))
}

// ResetTo puts the tracker at rest at q.
func (s *Quat) ResetTo(q quat.Number) {
	s.t.ResetTo(quatLanes(q))
}

// ResetWith sets the raw value and raw component velocity.
func (s *Quat) ResetWith(q, vel quat.Number) {
	s.t.ResetWith(quatLanes(q), quatLanes(vel))
}

// Raw returns the unnormalized tracked components.
func (s *Quat) Raw() vecmath.Vec4 {
	return vec4(s.t.Value)
}

// RawVelocity returns the component velocity.
func (s *Quat) RawVelocity() vecmath.Vec4 {
	return vec4(s.t.Velocity)
}

// Rotation returns the tracked value as a unit quaternion, or the identity
// if the raw components have collapsed to zero.
func (s *Quat) Rotation() quat.Number {
	q := lanesQuat(s.t.Value)
	if quatmath.MagnitudeSqr(q) < mathutil.Epsilon {
		return quatmath.Identity
	}
	return quatmath.Normalize(q)
}

// hemisphere flips target into the hemisphere of the current value so the
// tracker takes the short way around; q and -q are the same rotation.
func (s *Quat) hemisphere(target quat.Number) [4]float64 {
	l := quatLanes(target)
	var dot float64
	for i := range l {
		dot += l[i] * s.t.Value[i]
	}
	if dot < 0 {
		for i := range l {
			l[i] = -l[i]
		}
	}
	return l
}

// TrackDampingRatio steps toward target, taken in the hemisphere of the
// current value, with angular frequency omega and damping ratio zeta. It
// returns the normalized result.
func (s *Quat) TrackDampingRatio(target quat.Number, omega, zeta, dt float64) quat.Number {
	s.t.TrackDampingRatio(s.hemisphere(target), omega, zeta, dt)
	return s.Rotation()
}

// TrackHalfLife steps toward target on the short arc with an oscillation
// frequency in Hz and an envelope half-life in seconds.
func (s *Quat) TrackHalfLife(target quat.Number, frequencyHz, halfLife, dt float64) quat.Number {
	s.t.TrackHalfLife(s.hemisphere(target), frequencyHz, halfLife, dt)
	return s.Rotation()
}

// TrackExponential steps toward target on the short arc with critically
// damped decay of the given half-life.
func (s *Quat) TrackExponential(target quat.Number, halfLife, dt float64) quat.Number {
	s.t.TrackExponential(s.hemisphere(target), halfLife, dt)
	return s.Rotation()
}

// Track steps toward target on the short arc using a parameter set.
func (s *Quat) Track(target quat.Number, p Params, dt float64) quat.Number {
	s.t.Track(s.hemisphere(target), p, dt)
	return s.Rotation()
}

package spring

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/vecmath"
)

// Float tracks a scalar.
type Float struct {
	t Tracker[[1]float64]
}

// Reset, ResetTo and ResetWith set the state; Value and Velocity read it.
func (s *Float) Reset()                   { s.t.Reset() }
func (s *Float) ResetTo(v float64)        { s.t.ResetTo([1]float64{v}) }
func (s *Float) ResetWith(v, vel float64) { s.t.ResetWith([1]float64{v}, [1]float64{vel}) }
func (s *Float) Value() float64           { return s.t.Value[0] }
func (s *Float) Velocity() float64        { return s.t.Velocity[0] }

// SetValue overwrites the value without touching velocity.
func (s *Float) SetValue(v float64) { s.t.Value[0] = v }

// TrackDampingRatio steps toward target with angular frequency omega and
// damping ratio zeta, returning the new value.
func (s *Float) TrackDampingRatio(target, omega, zeta, dt float64) float64 {
	return s.t.TrackDampingRatio([1]float64{target}, omega, zeta, dt)[0]
}

// TrackHalfLife steps toward target with a frequency in Hz and an envelope
// half-life in seconds.
func (s *Float) TrackHalfLife(target, frequencyHz, halfLife, dt float64) float64 {
	return s.t.TrackHalfLife([1]float64{target}, frequencyHz, halfLife, dt)[0]
}

// TrackExponential steps toward target with critically damped decay.
func (s *Float) TrackExponential(target, halfLife, dt float64) float64 {
	return s.t.TrackExponential([1]float64{target}, halfLife, dt)[0]
}

// Track steps toward target using a parameter set.
func (s *Float) Track(target float64, p Params, dt float64) float64 {
	return s.t.Track([1]float64{target}, p, dt)[0]
}

// Vec2 tracks a 2D vector.
type Vec2 struct {
	t Tracker[[2]float64]
}

func lanes2(v r2.Vec) [2]float64 { return [2]float64{v.X, v.Y} }
func vec2(l [2]float64) r2.Vec   { return r2.Vec{X: l[0], Y: l[1]} }

// Reset, ResetTo and ResetWith set the state; Value and Velocity read it.
func (s *Vec2) Reset()                  { s.t.Reset() }
func (s *Vec2) ResetTo(v r2.Vec)        { s.t.ResetTo(lanes2(v)) }
func (s *Vec2) ResetWith(v, vel r2.Vec) { s.t.ResetWith(lanes2(v), lanes2(vel)) }
func (s *Vec2) Value() r2.Vec           { return vec2(s.t.Value) }
func (s *Vec2) Velocity() r2.Vec        { return vec2(s.t.Velocity) }

// TrackDampingRatio steps toward target with angular frequency omega and
// damping ratio zeta, returning the new value.
func (s *Vec2) TrackDampingRatio(target r2.Vec, omega, zeta, dt float64) r2.Vec {
	return vec2(s.t.TrackDampingRatio(lanes2(target), omega, zeta, dt))
}

// TrackHalfLife steps toward target with a frequency in Hz and an envelope
// half-life in seconds.
func (s *Vec2) TrackHalfLife(target r2.Vec, frequencyHz, halfLife, dt float64) r2.Vec {
	return vec2(s.t.TrackHalfLife(lanes2(target), frequencyHz, halfLife, dt))
}

// TrackExponential steps toward target with critically damped decay.
func (s *Vec2) TrackExponential(target r2.Vec, halfLife, dt float64) r2.Vec {
	return vec2(s.t.TrackExponential(lanes2(target), halfLife, dt))
}

// Track steps toward target using a parameter set.
func (s *Vec2) Track(target r2.Vec, p Params, dt float64) r2.Vec {
	return vec2(s.t.Track(lanes2(target), p, dt))
}

// Vec3 tracks a 3D vector.
type Vec3 struct {
	t Tracker[[3]float64]
}

func lanes3(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
func vec3(l [3]float64) r3.Vec   { return r3.Vec{X: l[0], Y: l[1], Z: l[2]} }

// Reset, ResetTo and ResetWith set the state; Value and Velocity read it.
func (s *Vec3) Reset()                  { s.t.Reset() }
func (s *Vec3) ResetTo(v r3.Vec)        { s.t.ResetTo(lanes3(v)) }
func (s *Vec3) ResetWith(v, vel r3.Vec) { s.t.ResetWith(lanes3(v), lanes3(vel)) }
func (s *Vec3) Value() r3.Vec           { return vec3(s.t.Value) }
func (s *Vec3) Velocity() r3.Vec        { return vec3(s.t.Velocity) }

// TrackDampingRatio steps toward target with angular frequency omega and
// damping ratio zeta, returning the new value.
func (s *Vec3) TrackDampingRatio(target r3.Vec, omega, zeta, dt float64) r3.Vec {
	return vec3(s.t.TrackDampingRatio(lanes3(target), omega, zeta, dt))
}

// TrackHalfLife steps toward target with a frequency in Hz and an envelope
// half-life in seconds.
func (s *Vec3) TrackHalfLife(target r3.Vec, frequencyHz, halfLife, dt float64) r3.Vec {
	return vec3(s.t.TrackHalfLife(lanes3(target), frequencyHz, halfLife, dt))
}

// TrackExponential steps toward target with critically damped decay.
func (s *Vec3) TrackExponential(target r3.Vec, halfLife, dt float64) r3.Vec {
	return vec3(s.t.TrackExponential(lanes3(target), halfLife, dt))
}

// Track steps toward target using a parameter set.
func (s *Vec3) Track(target r3.Vec, p Params, dt float64) r3.Vec {
	return vec3(s.t.Track(lanes3(target), p, dt))
}

// Vec4 tracks a 4D vector.
type Vec4 struct {
	t Tracker[[4]float64]
}

func lanes4(v vecmath.Vec4) [4]float64 { return [4]float64{v.X, v.Y, v.Z, v.W} }
func vec4(l [4]float64) vecmath.Vec4 {
	return vecmath.Vec4{X: l[0], Y: l[1], Z: l[2], W: l[3]}
}

// Reset, ResetTo and ResetWith set the state; Value and Velocity read it.
func (s *Vec4) Reset()                        { s.t.Reset() }
func (s *Vec4) ResetTo(v vecmath.Vec4)        { s.t.ResetTo(lanes4(v)) }
func (s *Vec4) ResetWith(v, vel vecmath.Vec4) { s.t.ResetWith(lanes4(v), lanes4(vel)) }
func (s *Vec4) Value() vecmath.Vec4           { return vec4(s.t.Value) }
func (s *Vec4) Velocity() vecmath.Vec4        { return vec4(s.t.Velocity) }

// TrackDampingRatio steps toward target with angular frequency omega and
// damping ratio zeta, returning the new value.
func (s *Vec4) TrackDampingRatio(target vecmath.Vec4, omega, zeta, dt float64) vecmath.Vec4 {
	return vec4(s.t.TrackDampingRatio(lanes4(target), omega, zeta, dt))
}

// TrackHalfLife steps toward target with a frequency in Hz and an envelope
// half-life in seconds.
func (s *Vec4) TrackHalfLife(target vecmath.Vec4, frequencyHz, halfLife, dt float64) vecmath.Vec4 {
	return vec4(s.t.TrackHalfLife(lanes4(target), frequencyHz, halfLife, dt))
}

// TrackExponential steps toward target with critically damped decay.
func (s *Vec4) TrackExponential(target vecmath.Vec4, halfLife, dt float64) vecmath.Vec4 {
	return vec4(s.t.TrackExponential(lanes4(target), halfLife, dt))
}

// Track steps toward target using a parameter set.
func (s *Vec4) Track(target vecmath.Vec4, p Params, dt float64) vecmath.Vec4 {
	return vec4(s.t.Track(lanes4(target), p, dt))
}

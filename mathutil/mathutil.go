// Package mathutil provides scalar constants and domain-safe math helpers
// shared by the vector, quaternion and spring packages.
package mathutil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Pi        = math.Pi
	TwoPi     = 2 * math.Pi
	HalfPi    = math.Pi / 2
	QuarterPi = math.Pi / 4
	SixthPi   = math.Pi / 6

	Sqrt2    = math.Sqrt2
	Sqrt2Inv = 1 / math.Sqrt2
	Sqrt3    = 1.7320508075688772
	Sqrt3Inv = 1 / Sqrt3

	Ln2 = math.Ln2

	// Epsilon is the threshold below which magnitudes, frequencies and
	// half-lives are treated as zero.
	Epsilon    = 1e-6
	EpsilonSqr = Epsilon * Epsilon

	Rad2Deg = 180 / math.Pi
	Deg2Rad = math.Pi / 180
)

// Saturate clamps x to [0, 1].
func Saturate(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Clamp clamps x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// AsinSafe is math.Asin with its argument clamped to [-1, 1], so inputs
// pushed slightly out of range by round-off never produce NaN.
func AsinSafe(x float64) float64 {
	return math.Asin(Clamp(x, -1, 1))
}

// AcosSafe is math.Acos with its argument clamped to [-1, 1].
func AcosSafe(x float64) float64 {
	return math.Acos(Clamp(x, -1, 1))
}

// Atan2 returns the angle of v measured from the +X axis.
func Atan2(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// InvSafe returns 1 / max(Epsilon, x).
func InvSafe(x float64) float64 {
	return 1 / math.Max(Epsilon, x)
}

// Seek moves current toward target by at most maxDelta without overshooting.
func Seek(current, target, maxDelta float64) float64 {
	delta := target - current
	delta = Sign(delta) * math.Min(maxDelta, math.Abs(delta))
	return current + delta
}

// Seek2 moves current toward target along the normalized delta by at most
// maxDelta.
func Seek2(current, target r2.Vec, maxDelta float64) r2.Vec {
	delta := r2.Sub(target, current)
	deltaLen := r2.Norm(delta)
	if deltaLen < Epsilon {
		return target
	}
	step := math.Min(maxDelta, deltaLen) / deltaLen
	return r2.Add(current, r2.Scale(step, delta))
}

// Seek3 is the 3D form of Seek2.
func Seek3(current, target r3.Vec, maxDelta float64) r3.Vec {
	delta := r3.Sub(target, current)
	deltaLen := r3.Norm(delta)
	if deltaLen < Epsilon {
		return target
	}
	step := math.Min(maxDelta, deltaLen) / deltaLen
	return r3.Add(current, r3.Scale(step, delta))
}

// Remainder returns a - trunc(a/b)*b. The result takes the sign of a.
func Remainder(a, b float64) float64 {
	return a - math.Trunc(a/b)*b
}

// RemainderInt is the integer form of Remainder (same as Go's %).
func RemainderInt(a, b int) int {
	return a - (a/b)*b
}

// Modulo returns the floor-based modulo of a by b; the result takes the
// sign of b, so Modulo(-1, 3) == 2 where Remainder(-1, 3) == -1.
func Modulo(a, b float64) float64 {
	return a - math.Floor(a/b)*b
}

// ModuloInt is the integer form of Modulo.
func ModuloInt(a, b int) int {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

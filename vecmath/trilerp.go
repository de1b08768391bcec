package vecmath

import "gonum.org/v1/gonum/spatial/r3"

func lerp3(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// TriLerp interpolates the eight corners of a cell. Corners are indexed
// z<<2 | y<<1 | x, so c[0] is (0,0,0) and c[7] is (1,1,1).
func TriLerp(c [8]r3.Vec, tx, ty, tz float64) r3.Vec {
	return TriLerpMasked(c, true, true, true, tx, ty, tz)
}

// TriLerpMasked is TriLerp where a disabled axis snaps to its low corner
// instead of blending.
func TriLerpMasked(c [8]r3.Vec, lerpX, lerpY, lerpZ bool, tx, ty, tz float64) r3.Vec {
	if !lerpX {
		tx = 0
	}
	if !lerpY {
		ty = 0
	}
	if !lerpZ {
		tz = 0
	}

	x00 := lerp3(c[0], c[1], tx)
	x10 := lerp3(c[2], c[3], tx)
	x01 := lerp3(c[4], c[5], tx)
	x11 := lerp3(c[6], c[7], tx)
	y0 := lerp3(x00, x10, ty)
	y1 := lerp3(x01, x11, ty)
	return lerp3(y0, y1, tz)
}

// TriLerpBox interpolates inside the axis-aligned box [lo, hi].
func TriLerpBox(lo, hi r3.Vec, lerpX, lerpY, lerpZ bool, tx, ty, tz float64) r3.Vec {
	var c [8]r3.Vec
	for i := range c {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		c[i] = p
	}
	return TriLerpMasked(c, lerpX, lerpY, lerpZ, tx, ty, tz)
}

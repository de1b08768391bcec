package quatmath

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/mathutil"
)

// DecomposeSwingTwist splits q into a twist about twistAxis and a swing
// about an axis orthogonal to it, such that twist*swing == q.
// twistAxis must be a unit vector.
func DecomposeSwingTwist(q quat.Number, twistAxis r3.Vec) (swing, twist quat.Number) {
	r := Vec(q)
	p := r3.Scale(r3.Dot(r, twistAxis), twistAxis)
	twist = quat.Number{Real: q.Real, Imag: p.X, Jmag: p.Y, Kmag: p.Z}

	// Singularity: a 180 degree rotation about an axis orthogonal to the
	// twist axis has no component along it and a zero scalar part, so the
	// whole projection is empty. Testing the projection rather than the
	// vector part keeps near-identity rotations out of this branch.
	// Both twist senses are valid here; always pick +π.
	if MagnitudeSqr(twist) < mathutil.Epsilon {
		// The swing carries twistAxis to where q sends it (its negation,
		// here); recovering it from the fixed twist keeps twist*swing == q.
		twist = AxisAngle(twistAxis, mathutil.Pi)
		swing = Normalize(quat.Mul(quat.Conj(twist), q))
		return swing, twist
	}

	twist = Normalize(twist)
	swing = quat.Mul(quat.Conj(twist), q)
	return swing, twist
}

// Sterp interpolates from a toward b with a single rate for both swing and
// twist.
func Sterp(a, b quat.Number, twistAxis r3.Vec, t float64) quat.Number {
	result, _, _ := SterpParts(a, b, twistAxis, t, t)
	return result
}

// SterpSeparate interpolates from a toward b, easing the swing and twist
// components of the relative rotation at independent rates.
func SterpSeparate(a, b quat.Number, twistAxis r3.Vec, tSwing, tTwist float64) quat.Number {
	result, _, _ := SterpParts(a, b, twistAxis, tSwing, tTwist)
	return result
}

// SterpParts is SterpSeparate that also returns the interpolated swing and
// twist of the relative rotation b*a⁻¹.
func SterpParts(a, b quat.Number, twistAxis r3.Vec, tSwing, tTwist float64) (result, swing, twist quat.Number) {
	rel := quat.Mul(b, quat.Conj(a))
	swingFull, twistFull := DecomposeSwingTwist(rel, twistAxis)

	swing = Slerp(Identity, swingFull, tSwing)
	twist = Slerp(Identity, twistFull, tTwist)

	result = quat.Mul(quat.Mul(twist, swing), a)
	return result, swing, twist
}

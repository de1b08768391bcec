package quatmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/mathutil"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func randomUnitVec(rng *rand.Rand) r3.Vec {
	for {
		v := r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		if n := r3.Norm2(v); n > 0.01 && n <= 1 {
			return r3.Unit(v)
		}
	}
}

func randomRotation(rng *rand.Rand) quat.Number {
	return AxisAngle(randomUnitVec(rng), (rng.Float64()*2-1)*mathutil.TwoPi)
}

func TestAxisAngleRoundTrip(t *testing.T) {
	axis := r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3})
	q := AxisAngle(axis, 1.25)

	if diff := cmp.Diff(axis, GetAxis(q), approx); diff != "" {
		t.Errorf("GetAxis mismatch (-want +got):\n%s", diff)
	}
	if got := GetAngle(q); math.Abs(got-1.25) > 1e-9 {
		t.Errorf("GetAngle = %v, want 1.25", got)
	}
	if got := Magnitude(q); math.Abs(got-1) > 1e-12 {
		t.Errorf("AxisAngle magnitude = %v, want 1", got)
	}
}

func TestGetAxisIdentityFallback(t *testing.T) {
	if got := GetAxis(Identity); got != DefaultAxis {
		t.Errorf("GetAxis(identity) = %v, want %v", got, DefaultAxis)
	}
	if got := GetAngle(Identity); got != 0 {
		t.Errorf("GetAngle(identity) = %v, want 0", got)
	}
}

func TestAngularVectorRoundTrip(t *testing.T) {
	v := r3.Vec{X: 0.3, Y: -0.2, Z: 0.9}
	if diff := cmp.Diff(v, ToAngularVector(FromAngularVector(v)), approx); diff != "" {
		t.Errorf("angular vector round trip (-want +got):\n%s", diff)
	}
	if got := FromAngularVector(r3.Vec{}); got != Identity {
		t.Errorf("FromAngularVector(0) = %v, want identity", got)
	}
}

func TestPow(t *testing.T) {
	axis := r3.Vec{Z: 1}
	q := AxisAngle(axis, 1.0)
	half := Pow(q, 0.5)
	if got := GetAngle(half); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Pow(q, 0.5) angle = %v, want 0.5", got)
	}
	if !Equivalent(quat.Mul(half, half), q, 1e-12) {
		t.Errorf("half*half = %v, want %v", quat.Mul(half, half), q)
	}
}

func TestIntegrateMatchesConstantRotation(t *testing.T) {
	omega := r3.Vec{Y: 2} // 2 rad/s about +Y
	q := Identity
	const dt = 1.0 / 1000
	for i := 0; i < 1000; i++ {
		q = Integrate(q, omega, dt)
	}

	if got := Magnitude(q); math.Abs(got-1) > 1e-12 {
		t.Errorf("integrated magnitude = %v, want 1", got)
	}
	want := AxisAngle(r3.Vec{Y: 1}, 2)
	if !Equivalent(q, want, 1e-5) {
		t.Errorf("Integrate after 1s = %v, want ≈ %v", q, want)
	}

	viaDerivative := IntegrateDerivative(Identity, FromAngularVector(omega), 1)
	if !Equivalent(viaDerivative, want, 1e-12) {
		t.Errorf("IntegrateDerivative = %v, want %v", viaDerivative, want)
	}
}

func TestRotate(t *testing.T) {
	q := AxisAngle(r3.Vec{Z: 1}, mathutil.HalfPi)
	got := Rotate(q, r3.Vec{X: 1})
	if diff := cmp.Diff(r3.Vec{Y: 1}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Rotate +X by 90° about Z (-want +got):\n%s", diff)
	}
}

func TestSlerpEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		a, b := randomRotation(rng), randomRotation(rng)
		if !Equivalent(Slerp(a, b, 0), a, 1e-12) {
			t.Fatalf("Slerp(a, b, 0) != a for a=%v b=%v", a, b)
		}
		if !Equivalent(Slerp(a, b, 1), b, 1e-12) {
			t.Fatalf("Slerp(a, b, 1) != b for a=%v b=%v", a, b)
		}
		if m := Magnitude(Slerp(a, b, 0.37)); math.Abs(m-1) > 1e-9 {
			t.Fatalf("Slerp midpoint magnitude = %v", m)
		}
	}
}

func TestFromEulerYaw(t *testing.T) {
	q := FromEuler(0, mathutil.HalfPi, 0)
	got := Rotate(q, r3.Vec{Z: 1})
	if diff := cmp.Diff(r3.Vec{X: 1}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("yaw 90° of +Z (-want +got):\n%s", diff)
	}
}

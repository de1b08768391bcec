package vecmath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestFindOrthogonal(t *testing.T) {
	tests := []struct {
		name string
		v    r3.Vec
	}{
		{"x axis", r3.Vec{X: 1}},
		{"y axis", r3.Vec{Y: 1}},
		{"z axis", r3.Vec{Z: 1}},
		{"diagonal", r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1})},
		{"unnormalized", r3.Vec{X: 0.2, Y: -4, Z: 7}},
		{"tiny", r3.Vec{X: 1e-9, Y: 2e-9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := FindOrthogonal(tt.v)
			if n := r3.Norm(o); math.Abs(n-1) > 1e-9 {
				t.Errorf("|FindOrthogonal(%v)| = %v, want 1", tt.v, n)
			}
			if d := math.Abs(r3.Dot(o, r3.Unit(tt.v))); d > 1e-9 {
				t.Errorf("FindOrthogonal(%v) = %v, dot = %v", tt.v, o, d)
			}
		})
	}

	if got := FindOrthogonal(r3.Vec{}); got != Right {
		t.Errorf("FindOrthogonal(0) = %v, want %v", got, Right)
	}
}

func TestFormOrthogonalBasis(t *testing.T) {
	v := r3.Unit(r3.Vec{X: 0.3, Y: 0.5, Z: -0.8})
	a, b := FormOrthogonalBasis(v)
	for _, d := range []float64{r3.Dot(a, v), r3.Dot(b, v), r3.Dot(a, b)} {
		if math.Abs(d) > 1e-12 {
			t.Fatalf("basis not orthogonal: a=%v b=%v v=%v", a, b, v)
		}
	}
	if n := r3.Norm(b); math.Abs(n-1) > 1e-12 {
		t.Errorf("|b| = %v, want 1", n)
	}
}

func TestSlerp(t *testing.T) {
	a := r3.Vec{X: 1}
	b := r3.Vec{Y: 1}

	if diff := cmp.Diff(a, Slerp(a, b, 0), approx); diff != "" {
		t.Errorf("Slerp(a, b, 0) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b, Slerp(a, b, 1), approx); diff != "" {
		t.Errorf("Slerp(a, b, 1) (-want +got):\n%s", diff)
	}
	mid := r3.Vec{X: mathutil.Sqrt2Inv, Y: mathutil.Sqrt2Inv}
	if diff := cmp.Diff(mid, Slerp(a, b, 0.5), approx); diff != "" {
		t.Errorf("Slerp(a, b, 0.5) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(a, Slerp(a, a, 0.3), approx); diff != "" {
		t.Errorf("Slerp(a, a, t) (-want +got):\n%s", diff)
	}

	// Opposite directions still give a unit vector on some great circle.
	half := Slerp(a, r3.Vec{X: -1}, 0.5)
	if n := r3.Norm(half); math.Abs(n-1) > 1e-9 {
		t.Errorf("|Slerp(a, -a, 0.5)| = %v, want 1", n)
	}
	if d := math.Abs(r3.Dot(half, a)); d > 1e-9 {
		t.Errorf("Slerp(a, -a, 0.5) = %v, want orthogonal to a", half)
	}
}

func TestRotationBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to r3.Vec
	}{
		{"quarter", r3.Vec{X: 1}, r3.Vec{Y: 1}},
		{"same", r3.Vec{Z: 1}, r3.Vec{Z: 1}},
		{"opposite", Up, r3.Vec{Y: -1}},
		{"oblique", r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3}), r3.Unit(r3.Vec{X: -2, Y: 0.5, Z: 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := RotationBetween(tt.from, tt.to)
			got := quatmath.Rotate(q, tt.from)
			if diff := cmp.Diff(tt.to, got, approx); diff != "" {
				t.Errorf("rotated from (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := r3.Vec{}
	b := r3.Vec{X: 10}
	tests := []struct {
		name string
		p    r3.Vec
		want r3.Vec
	}{
		{"interior", r3.Vec{X: 4, Y: 3}, r3.Vec{X: 4}},
		{"before start", r3.Vec{X: -5, Y: 1}, a},
		{"past end", r3.Vec{X: 15, Z: -2}, b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClosestPointOnSegment(tt.p, a, b); got != tt.want {
				t.Errorf("ClosestPointOnSegment(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if got := ClosestPointOnSegment(r3.Vec{X: 5}, r3.Vec{Y: 2}, r3.Vec{Y: 2}); got != (r3.Vec{Y: 2}) {
		t.Errorf("degenerate segment = %v, want midpoint", got)
	}
}

func TestClampLength(t *testing.T) {
	v := r3.Vec{X: 3, Y: 4}
	if got := r3.Norm(ClampLength(v, 0, 2)); math.Abs(got-2) > 1e-12 {
		t.Errorf("clamped down to %v, want 2", got)
	}
	if got := r3.Norm(ClampLength(v, 10, 20)); math.Abs(got-10) > 1e-12 {
		t.Errorf("clamped up to %v, want 10", got)
	}
	if got := ClampLength(r3.Vec{}, 1, 2); got != (r3.Vec{}) {
		t.Errorf("zero vector changed to %v", got)
	}
}

func TestClampBend(t *testing.T) {
	ref := r3.Vec{Y: 1}

	t.Run("within limit", func(t *testing.T) {
		v := r3.Vec{X: 0.1, Y: 1}
		if got := ClampBend(v, ref, 0.5); got != v {
			t.Errorf("ClampBend changed %v to %v", v, got)
		}
	})

	t.Run("beyond limit", func(t *testing.T) {
		v := r3.Vec{X: 2}
		got := ClampBend(v, ref, mathutil.QuarterPi)
		if n := r3.Norm(got); math.Abs(n-2) > 1e-12 {
			t.Errorf("length = %v, want 2", n)
		}
		angle := mathutil.AcosSafe(r3.Dot(r3.Unit(got), ref))
		if math.Abs(angle-mathutil.QuarterPi) > 1e-9 {
			t.Errorf("bend angle = %v, want π/4", angle)
		}
		if got.X <= 0 {
			t.Errorf("bent toward the wrong side: %v", got)
		}
	})

	t.Run("antiparallel", func(t *testing.T) {
		got := ClampBend(r3.Vec{Y: -1}, ref, 0.3)
		angle := mathutil.AcosSafe(r3.Dot(r3.Unit(got), ref))
		if math.Abs(angle-0.3) > 1e-9 {
			t.Errorf("bend angle = %v, want 0.3", angle)
		}
	})
}

func TestTriLerp(t *testing.T) {
	lo := r3.Vec{X: 0, Y: 0, Z: 0}
	hi := r3.Vec{X: 2, Y: 4, Z: 8}

	got := TriLerpBox(lo, hi, true, true, true, 0.5, 0.25, 1)
	if got != (r3.Vec{X: 1, Y: 1, Z: 8}) {
		t.Errorf("TriLerpBox = %v", got)
	}

	masked := TriLerpBox(lo, hi, true, false, true, 0.5, 0.25, 1)
	if masked != (r3.Vec{X: 1, Y: 0, Z: 8}) {
		t.Errorf("TriLerpBox with Y masked = %v", masked)
	}

	var c [8]r3.Vec
	for i := range c {
		c[i] = r3.Vec{X: float64(i)}
	}
	if got := TriLerp(c, 1, 1, 1); got != c[7] {
		t.Errorf("TriLerp at (1,1,1) = %v, want %v", got, c[7])
	}
}

func TestVec4(t *testing.T) {
	v := Vec4{X: 1, Y: 2, Z: 2, W: 4}
	if got := v.Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := SafeNormalize4(Vec4{}, Vec4{W: 1}); got != (Vec4{W: 1}) {
		t.Errorf("SafeNormalize4 fallback = %v", got)
	}
	q := v.Quat()
	if FromQuat(q) != v {
		t.Errorf("FromQuat(v.Quat()) = %v, want %v", FromQuat(q), v)
	}
}

func TestComponentWise(t *testing.T) {
	a := r3.Vec{X: 2, Y: -3, Z: 4}
	b := r3.Vec{X: 0.5, Y: 2, Z: -8}

	if got := MinComponent(a); got != -3 {
		t.Errorf("MinComponent(%v) = %v, want -3", a, got)
	}
	if got := MaxComponent(a); got != 4 {
		t.Errorf("MaxComponent(%v) = %v, want 4", a, got)
	}

	tests := []struct {
		name string
		got  r3.Vec
		want r3.Vec
	}{
		{"abs", Abs(a), r3.Vec{X: 2, Y: 3, Z: 4}},
		{"mul", Mul(a, b), r3.Vec{X: 1, Y: -6, Z: -32}},
		{"div", Div(a, b), r3.Vec{X: 4, Y: -1.5, Z: -0.5}},
		{"div safe", DivSafe(a, r3.Vec{X: 0.5, Y: 2, Z: 4}), r3.Vec{X: 4, Y: -1.5, Z: 1}},
		{"div safe zero denominator", DivSafe(a, r3.Vec{X: 0, Y: 2, Z: 4}), r3.Vec{X: 2 / mathutil.Epsilon, Y: -1.5, Z: 1}},
		{"rotate2d quarter turn", Rotate2D(r3.Vec{X: 1, Y: 2, Z: 5}, math.Pi/2), r3.Vec{X: -2, Y: 1, Z: 5}},
		{"rotate2d half turn", Rotate2D(r3.Vec{X: 1, Z: -3}, math.Pi), r3.Vec{X: -1, Z: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	zero := DivSafe(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	for _, c := range []float64{zero.X, zero.Y, zero.Z} {
		if math.IsInf(c, 0) || math.IsNaN(c) {
			t.Fatalf("DivSafe by zero vector = %v, want finite", zero)
		}
	}
}

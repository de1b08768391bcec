package mathutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSafeInverseTrig(t *testing.T) {
	// Slightly out of domain from round-off must not produce NaN.
	if got := AcosSafe(1 + 1e-12); got != 0 {
		t.Errorf("AcosSafe(1+ε) = %v, want 0", got)
	}
	if got := AcosSafe(-1 - 1e-12); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("AcosSafe(-1-ε) = %v, want π", got)
	}
	if got := AsinSafe(2); math.Abs(got-HalfPi) > 1e-12 {
		t.Errorf("AsinSafe(2) = %v, want π/2", got)
	}
	if got := AsinSafe(-2); math.Abs(got+HalfPi) > 1e-12 {
		t.Errorf("AsinSafe(-2) = %v, want -π/2", got)
	}
}

func TestInvSafe(t *testing.T) {
	if got := InvSafe(0); got != 1/Epsilon {
		t.Errorf("InvSafe(0) = %v, want %v", got, 1/Epsilon)
	}
	if got := InvSafe(-5); got != 1/Epsilon {
		t.Errorf("InvSafe(-5) = %v, want %v", got, 1/Epsilon)
	}
	if got := InvSafe(4); got != 0.25 {
		t.Errorf("InvSafe(4) = %v, want 0.25", got)
	}
}

func TestSeek(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, maxStep float64
		want                     float64
	}{
		{"step up", 0, 10, 3, 3},
		{"step down", 0, -10, 3, -3},
		{"no overshoot", 0, 2, 3, 2},
		{"at target", 5, 5, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Seek(tt.current, tt.target, tt.maxStep); got != tt.want {
				t.Errorf("Seek(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.maxStep, got, tt.want)
			}
		})
	}
}

func TestSeekVectorNormalizesStep(t *testing.T) {
	got := Seek2(r2.Vec{}, r2.Vec{X: 3, Y: 4}, 1)
	if math.Abs(got.X-0.6) > 1e-12 || math.Abs(got.Y-0.8) > 1e-12 {
		t.Errorf("Seek2 stepped %v, want (0.6, 0.8)", got)
	}

	got3 := Seek3(r3.Vec{}, r3.Vec{Z: 0.5}, 1)
	if got3 != (r3.Vec{Z: 0.5}) {
		t.Errorf("Seek3 overshot: %v", got3)
	}
}

func TestModuloVsRemainder(t *testing.T) {
	if got := Remainder(-1, 3); got != -1 {
		t.Errorf("Remainder(-1, 3) = %v, want -1", got)
	}
	if got := Modulo(-1, 3); got != 2 {
		t.Errorf("Modulo(-1, 3) = %v, want 2", got)
	}
	if got := Modulo(7.5, 2); got != 1.5 {
		t.Errorf("Modulo(7.5, 2) = %v, want 1.5", got)
	}
	if got := RemainderInt(-7, 3); got != -1 {
		t.Errorf("RemainderInt(-7, 3) = %v, want -1", got)
	}
	if got := ModuloInt(-7, 3); got != 2 {
		t.Errorf("ModuloInt(-7, 3) = %v, want 2", got)
	}
	if got := ModuloInt(7, -3); got != -2 {
		t.Errorf("ModuloInt(7, -3) = %v, want -2", got)
	}
}

func TestAtan2(t *testing.T) {
	if got := Atan2(r2.Vec{Y: 1}); math.Abs(got-HalfPi) > 1e-12 {
		t.Errorf("Atan2(+Y) = %v, want π/2", got)
	}
}

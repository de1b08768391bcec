package deform

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/squash/quatmath"
	"github.com/pthm-cable/squash/vecmath"
)

const frame = 1.0 / 60

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestStretch(t *testing.T) {
	th := Thresholds{MaxStretch: 1, MinSpeed: 100, MaxSpeed: 300}
	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"at rest", 0, 1},
		{"below min", 99, 1},
		{"halfway", 200, 1.5},
		{"at max", 300, 2},
		{"above max", 1e6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stretch(tt.speed, th); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Stretch(%v) = %v, want %v", tt.speed, got, tt.want)
			}
		})
	}

	// Degenerate thresholds step straight to full stretch.
	if got := Stretch(5, Thresholds{MaxStretch: 0.5, MinSpeed: 1, MaxSpeed: 1}); got != 1.5 {
		t.Errorf("Stretch with min == max = %v, want 1.5", got)
	}
}

func TestMatrix2DPreservesArea(t *testing.T) {
	d := Deformation{Angle: 0.7, Scale: 1.8}
	m := d.Matrix2D()
	if det := mat.Det(m); math.Abs(det-1) > 1e-12 {
		t.Errorf("det = %v, want 1", det)
	}

	axis := r2.Vec{X: math.Cos(0.7), Y: math.Sin(0.7)}
	if diff := cmp.Diff(r2.Scale(1.8, axis), Apply2D(m, axis), approx); diff != "" {
		t.Errorf("axis not stretched (-want +got):\n%s", diff)
	}
	perp := r2.Vec{X: -axis.Y, Y: axis.X}
	if diff := cmp.Diff(r2.Scale(1/1.8, perp), Apply2D(m, perp), approx); diff != "" {
		t.Errorf("perpendicular not squashed (-want +got):\n%s", diff)
	}
}

func TestMatrix3DPreservesVolume(t *testing.T) {
	rot := quatmath.AxisAngle(r3.Unit(r3.Vec{X: 1, Y: 1}), 0.9)
	axis := r3.Unit(r3.Vec{X: 0.2, Y: -1, Z: 0.4})
	d := Deformation{Axis: axis, Scale: 1.5}

	m := d.Matrix3D(rot)
	if det := mat.Det(m); math.Abs(det-1) > 1e-9 {
		t.Errorf("det = %v, want 1", det)
	}

	// A local point lying on the stretch axis ends up scaled along it.
	local := quatmath.Rotate(quat.Conj(rot), axis)
	if diff := cmp.Diff(r3.Scale(1.5, axis), Apply3D(m, local), approx); diff != "" {
		t.Errorf("axis not stretched (-want +got):\n%s", diff)
	}

	// Without deformation the matrix is just the rotation.
	plain := Deformation{Axis: axis, Scale: 1}.Matrix3D(rot)
	if !mat.EqualApprox(plain, RotationMatrix(rot), 1e-12) {
		t.Errorf("unit scale matrix differs from rotation:\n%v", mat.Formatted(plain))
	}
}

func TestStretcher2D(t *testing.T) {
	th := Thresholds{MaxStretch: 1, MinSpeed: 500, MaxSpeed: 2000}
	s := NewStretcher2D(r2.Vec{}, 0, th)

	if d := s.Update(r2.Vec{}, frame); d.Scale != 1 {
		t.Errorf("at rest scale = %v, want 1", d.Scale)
	}

	// 3000 px/s straight down: tracked speed clamps at MaxSpeed.
	pos := r2.Vec{}
	var d Deformation
	for i := 0; i < 60; i++ {
		pos.Y += 3000 * frame
		d = s.Update(pos, frame)
	}
	if math.Abs(d.Speed-2000) > 1e-9 {
		t.Errorf("tracked speed = %v, want clamped 2000", d.Speed)
	}
	if math.Abs(d.Scale-2) > 1e-9 {
		t.Errorf("scale = %v, want 2", d.Scale)
	}
	if diff := cmp.Diff(r3.Vec{Y: 1}, d.Axis, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("axis (-want +got):\n%s", diff)
	}

	// Stopping relaxes the stretch but keeps the last direction.
	for i := 0; i < 120; i++ {
		d = s.Update(pos, frame)
	}
	if d.Scale != 1 {
		t.Errorf("stopped scale = %v, want 1", d.Scale)
	}
	if d.Axis.Y < 0.99 {
		t.Errorf("stopped axis = %v, want to keep +Y", d.Axis)
	}
}

func TestStretcher3D(t *testing.T) {
	s := NewStretcher3D(r3.Vec{}, quatmath.Identity, Thresholds3D)

	d := s.Update(r3.Vec{}, frame)
	if d.Scale != 1 {
		t.Errorf("at rest scale = %v, want 1", d.Scale)
	}
	if d.Axis != vecmath.Up {
		t.Errorf("initial axis = %v, want %v", d.Axis, vecmath.Up)
	}

	pos := r3.Vec{}
	for i := 0; i < 60; i++ {
		pos.X += 10.5 * frame
		d = s.Update(pos, frame)
	}
	if math.Abs(d.Scale-1.5) > 1e-6 {
		t.Errorf("scale at 10.5 m/s = %v, want 1.5", d.Scale)
	}
	if d.Axis.X < 0.999 {
		t.Errorf("axis = %v, want +X", d.Axis)
	}
}

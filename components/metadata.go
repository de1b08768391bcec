package components

import (
	"github.com/pthm-cable/squash/mathutil"
	"github.com/pthm-cable/squash/quatmath"
)

// FieldDescriptor describes a component field for HUD display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Max    float64 // Full scale for bars; 0 renders text only
}

// TrackerFieldDescriptors returns metadata for the per-entity readout.
// The order matches TrackerFieldValues.
func TrackerFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "error", Label: "Error", Format: "%.1f px", Max: 200},
		{ID: "speed", Label: "Speed", Format: "%.0f px/s", Max: 2000},
		{ID: "stretch", Label: "Stretch", Format: "%.2fx", Max: 2},
		{ID: "twist", Label: "Twist", Format: "%.0f deg"},
		{ID: "swing", Label: "Swing", Format: "%.0f deg"},
	}
}

// TrackerFieldValues returns the current values for TrackerFieldDescriptors.
func TrackerFieldValues(f *Follower, sq *Squash, o *Orientation) []float64 {
	swing, twist := quatmath.DecomposeSwingTwist(o.Presented, o.TwistAxis)
	return []float64{
		f.Error,
		sq.Deform.Speed,
		sq.Deform.Scale,
		quatmath.GetAngle(twist) * mathutil.Rad2Deg,
		quatmath.GetAngle(swing) * mathutil.Rad2Deg,
	}
}

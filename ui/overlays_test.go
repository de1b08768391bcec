package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/go-cmp/cmp"
)

func TestOverlayDefaults(t *testing.T) {
	r := NewOverlayRegistry()

	if diff := cmp.Diff([]OverlayID{OverlayTargets}, r.EnabledOverlays()); diff != "" {
		t.Errorf("default overlays mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"debug", "tint"}, r.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlayToggleExclusive(t *testing.T) {
	r := NewOverlayRegistry()

	if !r.Toggle(OverlayLagTint) {
		t.Fatal("lag tint should turn on")
	}
	if !r.Toggle(OverlayErrorTint) {
		t.Fatal("error tint should turn on")
	}
	if r.IsEnabled(OverlayLagTint) {
		t.Error("enabling error tint should disable lag tint")
	}

	r.SetEnabled(OverlayLagTint, true)
	if r.IsEnabled(OverlayErrorTint) {
		t.Error("enabling lag tint should disable error tint")
	}

	// Exclusivity only binds the tint pair
	r.SetEnabled(OverlayVelocity, true)
	if !r.IsEnabled(OverlayLagTint) || !r.IsEnabled(OverlayTargets) {
		t.Error("debug overlays should not disable tints or other debug overlays")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	r := NewOverlayRegistry()

	id, on, ok := r.HandleKeyPress(rl.KeyT)
	if !ok || id != OverlayTargets || on {
		t.Errorf("T: got (%q, %v, %v), want (targets, false, true)", id, on, ok)
	}

	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle anything")
	}
}

func TestOverlayByCategory(t *testing.T) {
	r := NewOverlayRegistry()

	var ids []OverlayID
	for _, d := range r.ByCategory("tint") {
		ids = append(ids, d.ID)
	}
	if diff := cmp.Diff([]OverlayID{OverlayLagTint, OverlayErrorTint}, ids); diff != "" {
		t.Errorf("tint overlays mismatch (-want +got):\n%s", diff)
	}
}

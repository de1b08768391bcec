package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func near(a, b r2.Vec) bool {
	return r2.Norm(r2.Sub(a, b)) < 1e-9
}

func TestNew(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})

	// Should be centered on world at fit zoom
	if cam.Center != (r2.Vec{X: 1280, Y: 720}) {
		t.Errorf("expected camera at (1280, 720), got %v", cam.Center)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom 0.5, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})

	// Camera center should map to screen center
	if s := cam.WorldToScreen(cam.Center); !near(s, r2.Vec{X: 640, Y: 360}) {
		t.Errorf("expected screen center (640, 360), got %v", s)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.SetZoom(2)
	cam.Pan(r2.Vec{X: 300, Y: -120})

	testCases := []r2.Vec{
		{X: 640, Y: 360},  // center
		{X: 100, Y: 100},  // top-left
		{X: 1200, Y: 600}, // near bottom-right
	}

	for _, s := range testCases {
		w := cam.ScreenToWorld(s)
		if back := cam.WorldToScreen(w); !near(back, s) {
			t.Errorf("roundtrip failed: %v -> %v -> %v", s, w, back)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.SetZoom(1)

	cam.Pan(r2.Vec{X: -1e6, Y: 1e6})

	// Half the view is 640x360 world units at zoom 1
	if cam.Center != (r2.Vec{X: 640, Y: 1080}) {
		t.Errorf("expected center clamped to (640, 1080), got %v", cam.Center)
	}
	minX, _, _, maxY := cam.VisibleWorldBounds()
	if minX != 0 || maxY != 1440 {
		t.Errorf("view escaped the world: minX=%v maxY=%v", minX, maxY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})

	// MinZoom should be min(1280/2560, 720/1440) = 0.5
	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(100) // Above max
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestFitZoomShowsWholeWorld(t *testing.T) {
	// Asymmetric world/viewport ratios
	cam := New(r2.Vec{X: 800, Y: 600}, r2.Vec{X: 1600, Y: 800})

	// MinZoom should be min(800/1600, 600/800) = 0.5
	if math.Abs(cam.MinZoom-0.5) > 1e-12 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	// The limiting dimension fits exactly; the other has margin and stays centered.
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != 0 || maxX != 1600 {
		t.Errorf("visible x range [%v, %v], want [0, 1600]", minX, maxX)
	}
	if minY != -200 || maxY != 1000 {
		t.Errorf("visible y range [%v, %v], want [-200, 1000]", minY, maxY)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cursor := r2.Vec{X: 500, Y: 300}
	before := cam.ScreenToWorld(cursor)

	cam.ZoomAt(cursor, 2)

	if cam.Zoom != 1 {
		t.Fatalf("zoom = %v, want 1", cam.Zoom)
	}
	if after := cam.ScreenToWorld(cursor); !near(after, before) {
		t.Errorf("cursor world point moved from %v to %v", before, after)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.SetZoom(1)

	// Visible range in world coords: (640, 360) to (1920, 1080)
	if !cam.IsVisible(r2.Vec{X: 1280, Y: 720}, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(r2.Vec{X: 2400, Y: 1300}, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(r2.Vec{X: 600, Y: 720}, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestResize(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.Resize(r2.Vec{X: 2560, Y: 1440})

	if cam.MinZoom != 1 || cam.Zoom != 1 {
		t.Errorf("after resize MinZoom=%v Zoom=%v, want 1 and 1", cam.MinZoom, cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(r2.Vec{X: 1280, Y: 720}, r2.Vec{X: 2560, Y: 1440})
	cam.SetZoom(2.5)
	cam.Pan(r2.Vec{X: 400, Y: 400})

	cam.Reset()

	if cam.Center != (r2.Vec{X: 1280, Y: 720}) {
		t.Errorf("expected center (1280, 720), got %v", cam.Center)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %v, got %f", cam.MinZoom, cam.Zoom)
	}
}

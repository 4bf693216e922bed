package render

import (
	"path/filepath"
	"testing"

	"github.com/taigrr/meshkit/pkg/math3d"
)

func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestWireframeDrawMesh(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	cam := NewCamera()
	cam.AspectRatio = 1
	w := NewWireframe(cam, fb)

	w.DrawMesh(facingTriangle(0), math3d.Identity(), ColorCyan)
	if countColor(fb, ColorCyan) == 0 {
		t.Error("Expected triangle edges to be drawn")
	}
	// Wireframes leave the interior empty.
	if fb.GetPixel(20, 20) == ColorCyan {
		t.Error("Triangle interior should not be filled")
	}
}

func TestWireframeSkipsHiddenGeometry(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	w := NewWireframe(NewCamera(), fb)

	behind := math3d.FromRotationTranslation(math3d.QuatIdentity(), math3d.V4(0, 0, 10, 1))
	w.DrawMesh(facingTriangle(0), behind, ColorCyan)
	w.DrawBounds(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1), behind, ColorCyan)

	if n := countColor(fb, ColorCyan); n != 0 {
		t.Errorf("Expected nothing drawn, got %d pixels", n)
	}
}

func TestWireframeDrawAxes(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	w := NewWireframe(NewCamera(), fb)
	w.DrawAxes(1)

	if countColor(fb, ColorRed) == 0 || countColor(fb, ColorGreen) == 0 {
		t.Error("Expected X and Y axes to be visible")
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(4, 4, ColorRed)
	if countColor(fb, ColorRed) != 0 {
		t.Error("Out of bounds writes should be dropped")
	}
	if fb.GetPixel(10, 10) != (Color{}) {
		t.Error("Out of bounds reads should be transparent")
	}

	fb.DrawLine(0, 0, 3, 3, ColorRed)
	if countColor(fb, ColorRed) != 4 {
		t.Errorf("Expected 4 diagonal pixels, got %d", countColor(fb, ColorRed))
	}

	fb.Resize(8, 2)
	if len(fb.Pixels) != 16 {
		t.Errorf("Expected 16 pixels after resize, got %d", len(fb.Pixels))
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorGray)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	if img := fb.ToImage(); img.RGBAAt(1, 1) != ColorGray {
		t.Errorf("Unexpected image pixel %v", img.RGBAAt(1, 1))
	}
}

func TestShade(t *testing.T) {
	if got := Shade(RGB(200, 100, 50), 0.5); got != RGB(100, 50, 25) {
		t.Errorf("Expected half intensity, got %v", got)
	}
	if got := Shade(ColorWhite, 2); got != ColorWhite {
		t.Errorf("Intensity should clamp to 1, got %v", got)
	}
}

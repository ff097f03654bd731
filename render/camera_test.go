package render

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/objects2d/object"
)

func TestCameraWorldToScreen(t *testing.T) {
	cases := []struct {
		name  string
		zoom  float64
		world cp.Vector
		want  cp.Vector
	}{
		{"center_zoom1", 1, cp.Vector{X: 50, Y: 25}, cp.Vector{X: 50, Y: 25}},
		{"origin_zoom2", 2, cp.Vector{X: 25, Y: 12.5}, cp.Vector{X: 0, Y: 0}},
		{"center_zoom2", 2, cp.Vector{X: 50, Y: 25}, cp.Vector{X: 50, Y: 25}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(100, 50, c.zoom)
			if got := cam.WorldToScreen(c.world); got != c.want {
				t.Fatalf("WorldToScreen(%v) = %v, want %v", c.world, got, c.want)
			}
			if back := cam.ScreenToWorld(c.want); back != c.world {
				t.Fatalf("ScreenToWorld(%v) = %v, want %v", c.want, back, c.world)
			}
		})
	}
}

func TestCameraSnapToClampsToWorld(t *testing.T) {
	cases := []struct {
		name           string
		worldW, worldH int
		x, y           float64
		wantX, wantY   float64
	}{
		{"unbounded", 0, 0, -500, 900, -500, 900},
		{"clamped_low", 1000, 1000, 0, 0, 50, 25},
		{"clamped_high", 1000, 1000, 2000, 2000, 950, 975},
		{"world_smaller_than_view", 60, 20, 0, 0, 30, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(100, 50, 1)
			cam.SetWorldBounds(c.worldW, c.worldH)
			cam.SnapTo(c.x, c.y)
			if cam.PosX != c.wantX || cam.PosY != c.wantY {
				t.Fatalf("pos = (%v,%v), want (%v,%v)", cam.PosX, cam.PosY, c.wantX, c.wantY)
			}
		})
	}
}

func TestCameraUpdateSmooths(t *testing.T) {
	cam := NewCamera(100, 50, 1)
	cam.SetSmooth(0.5)
	cam.SnapTo(0, 0)
	cam.Update(100, 0)
	if cam.PosX != 50 {
		t.Fatalf("PosX = %v, want 50", cam.PosX)
	}

	cam.SetSmooth(0)
	cam.Update(7, 3)
	if cam.PosX != 7 || cam.PosY != 3 {
		t.Fatalf("zero smoothing should jump to the target, got (%v,%v)", cam.PosX, cam.PosY)
	}
}

func TestCameraWithoutTargetDropsDraws(t *testing.T) {
	cam := NewCamera(100, 50, 1)
	var r object.Renderer = cam
	r.DrawImage(&object.Image{Size: cp.Vector{X: 4, Y: 4}})
	r.DrawShape(object.Rect{Size: cp.Vector{X: 4, Y: 4}}, 1)
}

func TestColorHelpers(t *testing.T) {
	if got := colorOr(nil); got != object.HitboxColor {
		t.Fatalf("nil color should fall back to the hitbox color, got %v", got)
	}
	blue := color.RGBA{B: 0xff, A: 0xff}
	if got := colorOr(blue); got != blue {
		t.Fatalf("explicit color replaced: %v", got)
	}

	if got := fcolorToRGBA(cp.FColor{R: 2, G: -1, B: 1, A: 1}); got != (color.RGBA{R: 255, G: 0, B: 255, A: 255}) {
		t.Fatalf("fcolorToRGBA = %v", got)
	}

	static := cp.NewBox(cp.NewStaticBody(), 2, 2, 0)
	dynamic := cp.NewBox(cp.NewBody(1, 1), 2, 2, 0)
	if shapeColor(static) == shapeColor(dynamic) {
		t.Fatalf("static and dynamic shapes should be told apart")
	}
}

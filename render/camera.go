package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/objects2d/assets"
	"github.com/milk9111/objects2d/common"
	"github.com/milk9111/objects2d/object"
)

// Camera maps world coordinates onto a target image. It implements
// object.Renderer, drawing into whatever target was set for the frame.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64

	target *ebiten.Image
}

// NewCamera creates a camera with the given logical screen size and initial
// zoom, looking at the screen center.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
	}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW = float64(w)
	c.worldH = float64(h)
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// SetTarget sets the image subsequent draws go to. Draws without a target
// are dropped.
func (c *Camera) SetTarget(target *ebiten.Image) {
	c.target = target
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// WorldToScreen converts a world position to target pixels.
func (c *Camera) WorldToScreen(p cp.Vector) cp.Vector {
	left, top := c.ViewTopLeft()
	return cp.Vector{X: (p.X - left) * c.zoom, Y: (p.Y - top) * c.zoom}
}

// ScreenToWorld converts target pixels to a world position.
func (c *Camera) ScreenToWorld(p cp.Vector) cp.Vector {
	left, top := c.ViewTopLeft()
	return cp.Vector{X: p.X/c.zoom + left, Y: p.Y/c.zoom + top}
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate Update loop to get consistent smoothing.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}
	c.constrain()
}

// SnapTo immediately centers the camera on the given world coordinates.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.constrain()
}

func (c *Camera) constrain() {
	// snap position to 1/zoom grid to align source texels to integer screen pixels
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := float64(c.screenW) / c.zoom / 2.0
	halfH := float64(c.screenH) / c.zoom / 2.0
	c.PosX = constrainAxis(c.PosX, halfW, c.worldW)
	c.PosY = constrainAxis(c.PosY, halfH, c.worldH)
}

func constrainAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world-half < half {
		// world smaller than view: center on world
		return world / 2.0
	}
	return common.Clamp(pos, half, world-half)
}

// DrawImage draws img scaled to its size. A nil source draws the placeholder
// icon.
func (c *Camera) DrawImage(img *object.Image) {
	if c.target == nil || img == nil || img.Size.X <= 0 || img.Size.Y <= 0 {
		return
	}
	src := img.Source
	if src == nil {
		src = assets.Icon()
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	pos := c.WorldToScreen(img.Position)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(img.Size.X/float64(b.Dx())*c.zoom, img.Size.Y/float64(b.Dy())*c.zoom)
	op.GeoM.Translate(pos.X, pos.Y)
	op.Filter = ebiten.FilterNearest
	c.target.DrawImage(src, op)
}

// DrawShape strokes the outline of a hitbox shape.
func (c *Camera) DrawShape(shape object.Shape, width float64) {
	if c.target == nil || shape == nil {
		return
	}
	stroke := float32(width * c.zoom)

	switch s := shape.(type) {
	case object.Rect:
		pos := c.WorldToScreen(s.Position)
		w, h := s.Size.X*c.zoom, s.Size.Y*c.zoom
		vector.StrokeRect(c.target, float32(pos.X), float32(pos.Y), float32(w), float32(h), stroke, colorOr(s.Color), false)
	case object.CircleShape:
		center := c.WorldToScreen(s.Center)
		vector.StrokeCircle(c.target, float32(center.X), float32(center.Y), float32(s.Radius*c.zoom), stroke, colorOr(s.Color), true)
	}
}

func colorOr(clr color.Color) color.Color {
	if clr == nil {
		return object.HitboxColor
	}
	return clr
}

package object

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Image is the visual representation of an object. Position is the top-left
// corner in world coordinates and Size the drawn extent.
type Image struct {
	// Source is drawn scaled to Size. A nil Source draws the engine placeholder.
	Source   *ebiten.Image
	Position cp.Vector
	Size     cp.Vector
	Kind     ShapeKind
}

func (img *Image) MoveAt(pos cp.Vector) {
	img.Position = pos
}

func (img *Image) Move(delta cp.Vector) {
	img.Position = img.Position.Add(delta)
}

// Renderer is the draw capability objects are rendered through.
type Renderer interface {
	DrawImage(img *Image)
	DrawShape(shape Shape, width float64)
}

package object

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
)

// ShapeKind selects the collision geometry of an object. The numeric value
// doubles as the Chipmunk collision type of the object's shape.
type ShapeKind int

const (
	Rectangle ShapeKind = iota + 1
	Circle
)

func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rect"
	case Circle:
		return "circle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

func (k ShapeKind) collisionType() cp.CollisionType {
	return cp.CollisionType(k)
}

// HitboxColor is the outline color used for hitbox overlays.
var HitboxColor = color.RGBA{R: 0xff, A: 0xff}

// Shape is a transient shape descriptor handed to Renderer.DrawShape.
type Shape interface {
	Kind() ShapeKind
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Position cp.Vector
	Size     cp.Vector
	Color    color.Color
}

func (Rect) Kind() ShapeKind { return Rectangle }

// CircleShape is a circle anchored at its center.
type CircleShape struct {
	Center cp.Vector
	Radius float64
	Color  color.Color
}

func (CircleShape) Kind() ShapeKind { return Circle }

package script

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/objects2d/object"
)

type fakeScene struct {
	dt float64
}

func (s *fakeScene) DeltaTime() float64 { return s.dt }
func (s *fakeScene) Renderer() object.Renderer { return nopRenderer{} }

type nopRenderer struct{}

func (nopRenderer) DrawImage(*object.Image) {}
func (nopRenderer) DrawShape(object.Shape, float64) {}

// newRegistered returns a static 2x2 rect centered on the origin, registered
// with a collection stepping dt per frame.
func newRegistered(t *testing.T, dt float64) (*object.Objects, *object.Object) {
	t.Helper()
	objs, err := object.NewObjects(&fakeScene{dt: dt})
	if err != nil {
		t.Fatalf("NewObjects: %v", err)
	}
	obj := object.NewRect(cp.Vector{}, 2, 2)
	if err := objs.Add(obj); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return objs, obj
}

func positionX(t *testing.T, obj *object.Object) float64 {
	t.Helper()
	pos, err := obj.Position()
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	return pos.X
}

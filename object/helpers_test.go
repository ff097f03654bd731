package object

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type fakeScene struct {
	dt     float64
	render Renderer
}

func (s *fakeScene) DeltaTime() float64 { return s.dt }
func (s *fakeScene) Renderer() Renderer { return s.render }

type drawCall struct {
	image *Image
	shape Shape
	width float64
}

type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) DrawImage(img *Image) {
	r.calls = append(r.calls, drawCall{image: img})
}

func (r *recordingRenderer) DrawShape(shape Shape, width float64) {
	r.calls = append(r.calls, drawCall{shape: shape, width: width})
}

func (r *recordingRenderer) reset() {
	r.calls = nil
}

func newTestObjects(t *testing.T, opts ...CollectionOption) (*Objects, *fakeScene, *recordingRenderer) {
	t.Helper()
	r := &recordingRenderer{}
	s := &fakeScene{dt: 1.0 / 60.0, render: r}
	c, err := NewObjects(s, opts...)
	if err != nil {
		t.Fatalf("NewObjects: %v", err)
	}
	return c, s, r
}

func mustAdd(t *testing.T, c *Objects, objs ...*Object) {
	t.Helper()
	for _, obj := range objs {
		if err := c.Add(obj); err != nil {
			t.Fatalf("Add(%s): %v", obj, err)
		}
	}
}

func dynamic() Option {
	return WithPhysics(Physics{Mass: 1})
}

func vecNear(a, b cp.Vector) bool {
	const eps = 1e-9
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx > -eps && dx < eps && dy > -eps && dy < eps
}

// recorder counts hook invocations and records what Update observed.
type recorder struct {
	BaseScript
	starts     int
	updates    int
	destroys   int
	collisions []*Object
	seen       []cp.Vector
	updateErr  error
}

func (r *recorder) Start(*Object) error {
	r.starts++
	return nil
}

func (r *recorder) Update(obj *Object, dt float64) error {
	r.updates++
	if pos, err := obj.Position(); err == nil {
		r.seen = append(r.seen, pos)
	}
	return r.updateErr
}

func (r *recorder) OnDestroy(*Object) error {
	r.destroys++
	return nil
}

func (r *recorder) OnCollision(_ *Object, other *Object) error {
	r.collisions = append(r.collisions, other)
	return nil
}

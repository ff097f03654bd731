package object

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestPhysicsManagerAdd(t *testing.T) {
	cases := []struct {
		name     string
		obj      func() *Object
		wantPos  cp.Vector
		wantType int
	}{
		{
			name:     "static_rect_centered_on_spawn",
			obj:      func() *Object { return NewRect(cp.Vector{X: 10, Y: 20}, 4, 6) },
			wantPos:  cp.Vector{X: 10, Y: 20},
			wantType: cp.BODY_STATIC,
		},
		{
			name:     "dynamic_rect",
			obj:      func() *Object { return NewRect(cp.Vector{X: -5, Y: 5}, 10, 2, dynamic()) },
			wantPos:  cp.Vector{X: -5, Y: 5},
			wantType: cp.BODY_DYNAMIC,
		},
		{
			name:     "circle_at_spawn",
			obj:      func() *Object { return NewCircle(cp.Vector{X: 10, Y: 20}, 5, dynamic()) },
			wantPos:  cp.Vector{X: 5, Y: 15},
			wantType: cp.BODY_DYNAMIC,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pm := NewPhysicsManager(PhysicsConfig{}, nil)
			obj := c.obj()
			if err := pm.Add(obj); err != nil {
				t.Fatalf("Add: %v", err)
			}
			body, shape := obj.Rigidbody(), obj.CollisionShape()
			if body == nil || shape == nil {
				t.Fatalf("expected both handles, got body=%v shape=%v", body, shape)
			}
			if got := body.Position(); !vecNear(got, c.wantPos) {
				t.Fatalf("body position = %v, want %v", got, c.wantPos)
			}
			if got := body.GetType(); got != c.wantType {
				t.Fatalf("body type = %d, want %d", got, c.wantType)
			}
			if !pm.Space().ContainsBody(body) || !pm.Space().ContainsShape(shape) {
				t.Fatalf("body and shape should be in the space")
			}
			if shape.Body() != body {
				t.Fatalf("shape should be attached to the object's body")
			}
			if shape.UserData != obj {
				t.Fatalf("shape user data should point back to the object")
			}
		})
	}
}

func TestPhysicsManagerAppliesParameters(t *testing.T) {
	pm := NewPhysicsManager(PhysicsConfig{}, nil)
	obj := NewRect(cp.Vector{}, 2, 2, WithPhysics(Physics{Mass: 3, Friction: 0.4, Elasticity: 0.7}))
	if err := pm.Add(obj); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := obj.CollisionShape().Friction(); got != 0.4 {
		t.Fatalf("friction = %v, want 0.4", got)
	}
	if got := obj.CollisionShape().Elasticity(); got != 0.7 {
		t.Fatalf("elasticity = %v, want 0.7", got)
	}
	if got := obj.Rigidbody().Mass(); got != 3 {
		t.Fatalf("mass = %v, want 3", got)
	}
}

func TestPhysicsManagerRejectsBadObjects(t *testing.T) {
	cases := []struct {
		name string
		obj  *Object
		want error
	}{
		{"unknown_kind", New(cp.Vector{}, cp.Vector{X: 1, Y: 1}, ShapeKind(9)), ErrUnknownShape},
		{"zero_width_rect", NewRect(cp.Vector{}, 0, 4), ErrInvalidSize},
		{"negative_radius", NewCircle(cp.Vector{}, -1), ErrInvalidSize},
		{"nil", nil, ErrNilObject},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pm := NewPhysicsManager(PhysicsConfig{}, nil)
			err := pm.Add(c.obj)
			if !errors.Is(err, c.want) {
				t.Fatalf("Add error = %v, want %v", err, c.want)
			}
			if c.obj != nil && (c.obj.Rigidbody() != nil || c.obj.CollisionShape() != nil) {
				t.Fatalf("failed registration must not assign handles")
			}
		})
	}
}

func TestPhysicsManagerRemove(t *testing.T) {
	pm := NewPhysicsManager(PhysicsConfig{}, nil)
	obj := NewCircle(cp.Vector{}, 3, dynamic())
	if err := pm.Add(obj); err != nil {
		t.Fatalf("Add: %v", err)
	}
	body, shape := obj.Rigidbody(), obj.CollisionShape()

	if err := pm.Remove(obj); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if pm.Space().ContainsBody(body) || pm.Space().ContainsShape(shape) {
		t.Fatalf("body and shape should be gone from the space")
	}
}

func TestPhysicsManagerUpdateAppliesGravity(t *testing.T) {
	pm := NewPhysicsManager(PhysicsConfig{Gravity: cp.Vector{Y: 10}}, nil)
	obj := NewRect(cp.Vector{}, 2, 2, dynamic())
	if err := pm.Add(obj); err != nil {
		t.Fatalf("Add: %v", err)
	}

	for i := 0; i < 3; i++ {
		pm.Update(1)
	}
	if got := obj.Rigidbody().Position().Y; got <= 0 {
		t.Fatalf("dynamic body should fall under gravity, y = %v", got)
	}
	if got := pm.Gravity(); got.Y != 10 {
		t.Fatalf("gravity = %v, want {0 10}", got)
	}
}

func TestPhysicsManagerLockedDuringStep(t *testing.T) {
	c, _, _ := newTestObjects(t)
	obj := NewRect(cp.Vector{}, 2, 2, dynamic())
	other := NewRect(cp.Vector{X: 10}, 2, 2)
	mustAdd(t, c, obj, other)

	pm := c.Physics()
	pm.Update(1.0 / 60.0)
	if pm.Locked() {
		t.Fatalf("space should be unlocked once the step returns")
	}

	pm.stepping = true
	cases := []struct {
		name string
		call func() error
	}{
		{"add", func() error { return pm.Add(NewRect(cp.Vector{}, 1, 1)) }},
		{"remove", func() error { return pm.Remove(obj) }},
		{"reindex", func() error { return pm.Reindex(obj.CollisionShape()) }},
		{"move_at", func() error { return obj.MoveAt(cp.Vector{X: 3}) }},
		{"pop", func() error { _, err := c.Pop(0); return err }},
		{"clear", func() error { return c.Clear() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, ErrSpaceLocked) {
				t.Fatalf("error = %v, want ErrSpaceLocked", err)
			}
		})
	}
	pm.stepping = false

	if c.Len() != 2 || !pm.Space().ContainsShape(obj.CollisionShape()) {
		t.Fatalf("locked calls must leave the collection untouched")
	}
}

func TestPhysicsManagerReindex(t *testing.T) {
	pm := NewPhysicsManager(PhysicsConfig{}, nil)
	if err := pm.Reindex(nil); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("Reindex(nil) error = %v, want ErrNotRegistered", err)
	}

	obj := NewRect(cp.Vector{}, 4, 6)
	if err := pm.Add(obj); err != nil {
		t.Fatalf("Add: %v", err)
	}
	shape := obj.CollisionShape()
	obj.Rigidbody().SetPosition(cp.Vector{X: -50, Y: 10})
	if err := pm.Reindex(shape); err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if !pm.Space().ContainsShape(shape) || shape.Body() != obj.Rigidbody() {
		t.Fatalf("shape should stay in the space on the same body")
	}
	if bb := shape.BB(); bb.L != -52 || bb.R != -48 || bb.B != 7 || bb.T != 13 {
		t.Fatalf("bounds = %+v, want L=-52 R=-48 B=7 T=13", bb)
	}
}

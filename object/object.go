package object

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Physics holds the parameters consumed once when an object is registered.
type Physics struct {
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

// DefaultPhysics is applied to every new object: an immovable body.
var DefaultPhysics = Physics{Mass: 1, Static: true}

func (p Physics) mass() float64 {
	if p.Mass <= 0 {
		return 1
	}
	return p.Mass
}

// Object is a single entity bound to a physics body once registered with an
// Objects collection.
type Object struct {
	id      int
	manager *Objects

	body  *cp.Body
	shape *cp.Shape

	image     *Image
	spawn     cp.Vector
	size      cp.Vector
	kind      ShapeKind
	physics   Physics
	invisible bool

	scripts []*attachedScript
}

// Option configures an Object at construction.
type Option func(*Object)

// WithImage sets the source image drawn for the object.
func WithImage(src *ebiten.Image) Option {
	return func(o *Object) {
		o.image.Source = src
	}
}

// WithPhysics replaces the default physics parameters.
func WithPhysics(p Physics) Option {
	return func(o *Object) {
		o.physics = p
	}
}

// Hidden constructs the object invisible.
func Hidden() Option {
	return func(o *Object) {
		o.invisible = true
	}
}

// New creates an unregistered object centered on pos. For circles size.X is
// the radius; for rectangles size is the width and height.
func New(pos, size cp.Vector, kind ShapeKind, opts ...Option) *Object {
	var spawn, imgSize cp.Vector
	if kind == Circle {
		size = cp.Vector{X: size.X, Y: size.X}
		spawn = pos.Sub(size)
		imgSize = size.Mult(2)
	} else {
		spawn = pos.Sub(size.Mult(0.5))
		imgSize = size
	}

	o := &Object{
		image: &Image{
			Position: spawn,
			Size:     imgSize,
			Kind:     kind,
		},
		spawn:   spawn,
		size:    size,
		kind:    kind,
		physics: DefaultPhysics,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewRect creates a rectangular object of w by h centered on pos.
func NewRect(pos cp.Vector, w, h float64, opts ...Option) *Object {
	return New(pos, cp.Vector{X: w, Y: h}, Rectangle, opts...)
}

// NewCircle creates a circular object of the given radius.
func NewCircle(pos cp.Vector, radius float64, opts ...Option) *Object {
	return New(pos, cp.Vector{X: radius, Y: radius}, Circle, opts...)
}

func (o *Object) ID() int { return o.id }
func (o *Object) Manager() *Objects { return o.manager }
func (o *Object) Rigidbody() *cp.Body { return o.body }
func (o *Object) CollisionShape() *cp.Shape { return o.shape }
func (o *Object) Image() *Image { return o.image }
func (o *Object) Spawn() cp.Vector { return o.spawn }
func (o *Object) Kind() ShapeKind { return o.kind }
func (o *Object) Physics() Physics { return o.physics }
func (o *Object) Static() bool { return o.physics.Static }
func (o *Object) Invisible() bool { return o.invisible }
func (o *Object) SetInvisible(invisible bool) { o.invisible = invisible }

// Size returns the width and height for rectangles and {r, r} for circles.
func (o *Object) Size() cp.Vector {
	return o.size
}

// Radius returns the circle radius, or zero for other kinds.
func (o *Object) Radius() float64 {
	if o.kind != Circle {
		return 0
	}
	return o.size.X
}

// Registered reports whether the object currently owns physics handles.
func (o *Object) Registered() bool {
	return o.body != nil && o.shape != nil
}

// AddPhysics records physics parameters. They are consumed at registration.
func (o *Object) AddPhysics(mass, friction, elasticity float64, static bool) error {
	return o.SetPhysics(Physics{Mass: mass, Friction: friction, Elasticity: elasticity, Static: static})
}

func (o *Object) SetPhysics(p Physics) error {
	if o.Registered() {
		return ErrAlreadyRegistered
	}
	o.physics = p
	return nil
}

// Position returns the object position in external coordinates: the
// top-left corner for rectangles and the center for circles.
func (o *Object) Position() (cp.Vector, error) {
	if !o.Registered() {
		return cp.Vector{}, ErrNotRegistered
	}
	pos := o.body.Position()
	if o.kind == Rectangle {
		pos = pos.Sub(o.size.Mult(0.5))
	}
	return pos, nil
}

// Move offsets the physics body by delta.
func (o *Object) Move(delta cp.Vector) error {
	if !o.Registered() {
		return ErrNotRegistered
	}
	return o.MoveAt(o.body.Position().Add(delta))
}

// MoveAt writes pos onto the physics body and reindexes its shape.
func (o *Object) MoveAt(pos cp.Vector) error {
	if !o.Registered() || o.manager == nil {
		return ErrNotRegistered
	}
	physics := o.manager.physics
	if physics.Locked() {
		return ErrSpaceLocked
	}

	o.body.SetPosition(pos)
	return physics.Reindex(o.shape)
}

func (o *Object) Velocity() (cp.Vector, error) {
	if !o.Registered() {
		return cp.Vector{}, ErrNotRegistered
	}
	return o.body.Velocity(), nil
}

func (o *Object) SetVelocity(v cp.Vector) error {
	if !o.Registered() {
		return ErrNotRegistered
	}
	o.body.SetVelocityVector(v)
	return nil
}

// Hitbox returns a transient debug outline at the current position.
func (o *Object) Hitbox() (Shape, error) {
	pos, err := o.Position()
	if err != nil {
		return nil, err
	}
	switch o.kind {
	case Rectangle:
		return Rect{Position: pos, Size: o.size, Color: HitboxColor}, nil
	case Circle:
		return CircleShape{Center: pos, Radius: o.size.X, Color: HitboxColor}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(o.kind))
	}
}

// AttachScript appends s to the scripts run by the object.
func (o *Object) AttachScript(s Script) {
	if s == nil {
		return
	}
	o.scripts = append(o.scripts, &attachedScript{script: s})
}

// Scripts returns the attached scripts in run order.
func (o *Object) Scripts() []Script {
	out := make([]Script, 0, len(o.scripts))
	for _, s := range o.scripts {
		out = append(out, s.script)
	}
	return out
}

// update runs the scripts then moves the image onto the body.
func (o *Object) update(dt float64) error {
	for _, s := range o.scripts {
		if !s.started {
			s.started = true
			if err := s.script.Start(o); err != nil {
				return fmt.Errorf("start script %T: %w", s.script, err)
			}
		}
		if err := s.script.Update(o, dt); err != nil {
			return fmt.Errorf("update script %T: %w", s.script, err)
		}
		if !o.Registered() {
			// a script removed its own object
			return nil
		}
	}

	o.syncImage()
	return nil
}

func (o *Object) syncImage() {
	if o.image == nil || o.body == nil {
		return
	}
	o.image.MoveAt(o.body.Position())
	switch o.kind {
	case Rectangle:
		o.image.Move(o.size.Mult(-0.5))
	case Circle:
		o.image.Move(o.size.Neg())
	}
}

// Draw issues an image draw and, when the owning collection shows hitboxes,
// an outline of the hitbox.
func (o *Object) Draw(r Renderer) error {
	if o.invisible {
		return nil
	}
	if r == nil {
		return ErrNoRenderer
	}
	r.DrawImage(o.image)

	if o.manager == nil || !o.manager.showHitbox {
		return nil
	}
	hitbox, err := o.Hitbox()
	if err != nil {
		return err
	}
	r.DrawShape(hitbox, 1)
	return nil
}

func (o *Object) collide(other *Object) error {
	for _, s := range o.scripts {
		if err := s.script.OnCollision(o, other); err != nil {
			return fmt.Errorf("collision script %T: %w", s.script, err)
		}
	}
	return nil
}

func (o *Object) destroy() error {
	var errs []error
	for _, s := range o.scripts {
		if err := s.script.OnDestroy(o); err != nil {
			errs = append(errs, fmt.Errorf("destroy script %T: %w", s.script, err))
		}
	}
	return errors.Join(errs...)
}

// detach returns the object to the unregistered state.
func (o *Object) detach() {
	if o.body != nil {
		o.body.UserData = nil
	}
	if o.shape != nil {
		o.shape.UserData = nil
	}
	o.body = nil
	o.shape = nil
	o.manager = nil
	o.id = 0
}

func (o *Object) String() string {
	return fmt.Sprintf("object#%d(%s)", o.id, o.kind)
}

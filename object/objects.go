package object

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
)

// Objects owns a PhysicsManager and the ordered set of live objects of a
// scene. Insertion order is update and draw order.
type Objects struct {
	physics *PhysicsManager
	data    []*Object
	counter int

	scene      Scene
	render     Renderer
	showHitbox bool

	physicsCfg PhysicsConfig
	logger     *log.Logger
}

// CollectionOption configures an Objects collection.
type CollectionOption func(*Objects)

// WithRenderer overrides the scene's default render target.
func WithRenderer(r Renderer) CollectionOption {
	return func(c *Objects) {
		c.render = r
	}
}

// WithHitboxes sets the initial hitbox overlay state, usually from the
// debug flag given at startup.
func WithHitboxes(show bool) CollectionOption {
	return func(c *Objects) {
		c.showHitbox = show
	}
}

// WithGravity sets the gravity of every space the collection creates.
func WithGravity(gravity cp.Vector) CollectionOption {
	return func(c *Objects) {
		c.physicsCfg.Gravity = gravity
	}
}

// WithIterations sets the solver iterations of every space the collection
// creates.
func WithIterations(n int) CollectionOption {
	return func(c *Objects) {
		c.physicsCfg.Iterations = n
	}
}

func WithLogger(logger *log.Logger) CollectionOption {
	return func(c *Objects) {
		c.logger = logger
	}
}

// NewObjects creates a collection attached to scene.
func NewObjects(scene Scene, opts ...CollectionOption) (*Objects, error) {
	if scene == nil {
		return nil, ErrNoScene
	}

	c := &Objects{scene: scene}
	for _, opt := range opts {
		opt(c)
	}
	if c.render == nil {
		c.render = scene.Renderer()
	}
	if c.render == nil {
		return nil, ErrNoRenderer
	}
	if c.logger == nil {
		c.logger = log.Default().WithPrefix("objects")
	}
	c.physics = NewPhysicsManager(c.physicsCfg, c.logger.WithPrefix("physics"))
	return c, nil
}

// NewObjectsFromContext creates a collection attached to the nearest scene
// bound to ctx with WithScene.
func NewObjectsFromContext(ctx context.Context, opts ...CollectionOption) (*Objects, error) {
	scene, ok := SceneFromContext(ctx)
	if !ok {
		return nil, ErrNoScene
	}
	return NewObjects(scene, opts...)
}

func (c *Objects) Scene() Scene { return c.scene }
func (c *Objects) Renderer() Renderer { return c.render }
func (c *Objects) Physics() *PhysicsManager { return c.physics }
func (c *Objects) Len() int { return len(c.data) }
func (c *Objects) ShowHitbox() bool { return c.showHitbox }
func (c *Objects) SetShowHitbox(show bool) { c.showHitbox = show }
func (c *Objects) ToggleHitbox() { c.showHitbox = !c.showHitbox }
func (c *Objects) SetGravity(gravity cp.Vector) { c.physics.SetGravity(gravity) }

// Total returns the number of ids handed out since the last Clear.
func (c *Objects) Total() int {
	return c.counter
}

// At returns the live object at index i.
func (c *Objects) At(i int) (*Object, error) {
	if i < 0 || i >= len(c.data) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(c.data))
	}
	return c.data[i], nil
}

// Get returns the live object with the given id.
func (c *Objects) Get(id int) (*Object, bool) {
	for _, obj := range c.data {
		if obj.id == id {
			return obj, true
		}
	}
	return nil, false
}

// All iterates the live objects in insertion order.
func (c *Objects) All() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for _, obj := range c.data {
			if !yield(obj) {
				return
			}
		}
	}
}

// Add registers obj: it receives the next id, a physics body and shape, and
// joins the live set. If physics registration fails obj is left unregistered.
func (c *Objects) Add(obj *Object) error {
	if obj == nil {
		return ErrNilObject
	}
	if obj.manager != nil || obj.Registered() {
		return ErrAlreadyRegistered
	}

	id := c.counter + 1
	obj.id = id
	obj.manager = c
	if err := c.physics.Add(obj); err != nil {
		obj.id = 0
		obj.manager = nil
		return fmt.Errorf("add object: %w", err)
	}
	c.counter = id
	c.data = append(c.data, obj)

	c.logger.Debug("object added", "id", id, "shape", obj.kind, "static", obj.physics.Static)
	return nil
}

// Remove takes obj out of the collection, running its destroy hooks and
// destroying its physics handles.
func (c *Objects) Remove(obj *Object) error {
	i := slices.Index(c.data, obj)
	if obj == nil || i < 0 {
		return ErrNotFound
	}
	_, err := c.Pop(i)
	return err
}

// Pop removes and returns the object at index i. Destroy hooks run while the
// object still owns its physics handles.
func (c *Objects) Pop(i int) (*Object, error) {
	obj, err := c.At(i)
	if err != nil {
		return nil, err
	}
	if c.physics.Locked() {
		return nil, ErrSpaceLocked
	}
	c.data = slices.Delete(c.data, i, i+1)

	id := obj.id
	destroyErr := obj.destroy()
	if err := c.physics.Remove(obj); err != nil {
		destroyErr = errors.Join(destroyErr, err)
	}
	obj.detach()

	c.logger.Debug("object removed", "id", id)
	if destroyErr != nil {
		return obj, fmt.Errorf("remove object %d: %w", id, destroyErr)
	}
	return obj, nil
}

// Clear destroys every live object and replaces the physics manager with a
// fresh one. Ids restart at 1.
func (c *Objects) Clear() error {
	if c.physics.Locked() {
		return ErrSpaceLocked
	}
	var errs []error
	for _, obj := range c.data {
		if err := obj.destroy(); err != nil {
			errs = append(errs, fmt.Errorf("clear object %d: %w", obj.id, err))
		}
		obj.detach()
	}
	n := len(c.data)

	c.physics = NewPhysicsManager(c.physicsCfg, c.logger.WithPrefix("physics"))
	c.data = nil
	c.counter = 0

	c.logger.Debug("objects cleared", "count", n)
	return errors.Join(errs...)
}

// Update steps the physics once for the scene's delta time, delivers the
// collisions of that step, then updates every live object in order.
func (c *Objects) Update() error {
	dt := c.scene.DeltaTime()
	c.physics.Update(dt)

	for _, ct := range c.physics.drainContacts() {
		if ct.self.manager != c || ct.other.manager != c {
			continue
		}
		if err := ct.self.collide(ct.other); err != nil {
			return fmt.Errorf("object %d: %w", ct.self.id, err)
		}
	}

	for _, obj := range slices.Clone(c.data) {
		if obj.manager != c {
			continue
		}
		if err := obj.update(dt); err != nil {
			return fmt.Errorf("object %d: %w", obj.id, err)
		}
	}
	return nil
}

// Draw draws every live object in insertion order.
func (c *Objects) Draw() error {
	for obj := range c.All() {
		if err := obj.Draw(c.render); err != nil {
			return fmt.Errorf("draw object %d: %w", obj.id, err)
		}
	}
	return nil
}

// Snapshot is a read-only view of a live object for inspectors.
type Snapshot struct {
	ID        int
	Kind      ShapeKind
	Position  cp.Vector
	Size      cp.Vector
	Static    bool
	Invisible bool
	Scripts   []string
}

// Describe returns a snapshot of every live object in insertion order.
func (c *Objects) Describe() []Snapshot {
	out := make([]Snapshot, 0, len(c.data))
	for obj := range c.All() {
		pos, _ := obj.Position()
		snap := Snapshot{
			ID:        obj.id,
			Kind:      obj.kind,
			Position:  pos,
			Size:      obj.size,
			Static:    obj.physics.Static,
			Invisible: obj.invisible,
		}
		for _, s := range obj.scripts {
			snap.Scripts = append(snap.Scripts, fmt.Sprintf("%T", s.script))
		}
		out = append(out, snap)
	}
	return out
}

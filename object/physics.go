package object

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
)

const defaultIterations = 10

// PhysicsConfig configures a fresh simulation space.
type PhysicsConfig struct {
	Gravity    cp.Vector
	Iterations int
}

// PhysicsManager owns one Chipmunk space and the bodies and shapes created in
// it for registered objects.
type PhysicsManager struct {
	space         *cp.Space
	logger        *log.Logger
	contacts      contactQueue
	handlersReady bool
	stepping      bool

	// touching pairs whose arbiters a Reindex dropped; their next begin is
	// not a new collision
	carried map[shapePair]struct{}
}

type shapePair struct {
	a, b *cp.Shape
}

// NewPhysicsManager creates a manager around an empty space.
func NewPhysicsManager(cfg PhysicsConfig, logger *log.Logger) *PhysicsManager {
	if logger == nil {
		logger = log.Default().WithPrefix("physics")
	}
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}

	space := cp.NewSpace()
	space.Iterations = uint(iterations)
	space.SetGravity(cfg.Gravity)

	pm := &PhysicsManager{
		space:  space,
		logger: logger,
	}
	pm.ensureHandlers()
	return pm
}

// Space returns the underlying Chipmunk space.
func (pm *PhysicsManager) Space() *cp.Space {
	if pm == nil {
		return nil
	}
	return pm.space
}

// Add creates the body and collision shape for obj and adds both to the
// space. On error nothing is added and obj is left untouched.
func (pm *PhysicsManager) Add(obj *Object) error {
	if obj == nil {
		return ErrNilObject
	}
	if obj.body != nil || obj.shape != nil {
		return ErrAlreadyRegistered
	}
	if pm.stepping {
		return ErrSpaceLocked
	}

	var (
		body  *cp.Body
		shape *cp.Shape
		err   error
	)
	switch obj.kind {
	case Rectangle:
		body, shape, err = pm.newRect(obj)
	case Circle:
		body, shape, err = pm.newCircle(obj)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownShape, int(obj.kind))
	}
	if err != nil {
		return err
	}

	shape.SetFriction(obj.physics.Friction)
	shape.SetElasticity(obj.physics.Elasticity)
	shape.SetCollisionType(obj.kind.collisionType())
	shape.UserData = obj
	body.UserData = obj

	pm.space.AddBody(body)
	pm.space.AddShape(shape)

	obj.body = body
	obj.shape = shape

	pm.logger.Debug("body added", "shape", obj.kind, "static", obj.physics.Static, "pos", body.Position())
	return nil
}

func (pm *PhysicsManager) newRect(obj *Object) (*cp.Body, *cp.Shape, error) {
	w, h := obj.size.X, obj.size.Y
	if w <= 0 || h <= 0 {
		return nil, nil, fmt.Errorf("%w: rect %gx%g", ErrInvalidSize, w, h)
	}

	mass := obj.physics.mass()
	body := newBody(obj.physics.Static, mass, cp.MomentForBox(mass, w, h))
	body.SetPosition(cp.Vector{X: obj.spawn.X + w/2, Y: obj.spawn.Y + h/2})

	return body, cp.NewBox(body, w, h, 0), nil
}

func (pm *PhysicsManager) newCircle(obj *Object) (*cp.Body, *cp.Shape, error) {
	r := obj.size.X
	if r <= 0 {
		return nil, nil, fmt.Errorf("%w: radius %g", ErrInvalidSize, r)
	}

	mass := obj.physics.mass()
	body := newBody(obj.physics.Static, mass, cp.MomentForCircle(mass, 0, r, cp.Vector{}))
	body.SetPosition(obj.spawn)

	return body, cp.NewCircle(body, r, cp.Vector{}), nil
}

func newBody(static bool, mass, moment float64) *cp.Body {
	if static {
		return cp.NewStaticBody()
	}
	return cp.NewBody(mass, moment)
}

// Remove takes the body and shape of obj out of the space. Handles that
// belong to another space are ignored.
func (pm *PhysicsManager) Remove(obj *Object) error {
	if obj == nil {
		return ErrNilObject
	}
	if pm.stepping {
		return ErrSpaceLocked
	}
	if obj.shape != nil && pm.space.ContainsShape(obj.shape) {
		pm.space.RemoveShape(obj.shape)
	}
	if obj.body != nil && pm.space.ContainsBody(obj.body) {
		pm.space.RemoveBody(obj.body)
	}
	return nil
}

// Update advances the simulation by exactly dt.
func (pm *PhysicsManager) Update(dt float64) {
	pm.stepping = true
	defer func() {
		pm.stepping = false
		clear(pm.carried)
	}()
	pm.space.Step(dt)
}

// Locked reports whether a step is in progress. The space must not be
// modified until it returns.
func (pm *PhysicsManager) Locked() bool {
	return pm.stepping
}

func (pm *PhysicsManager) SetGravity(gravity cp.Vector) {
	pm.space.SetGravity(gravity)
}

func (pm *PhysicsManager) Gravity() cp.Vector {
	return pm.space.Gravity()
}

// Reindex refreshes the bounding box and spatial index entry of shape after
// its body was moved by hand. The shape is taken out of the space and added
// back; contacts it had are carried over so they are not reported again.
func (pm *PhysicsManager) Reindex(shape *cp.Shape) error {
	if pm.stepping {
		return ErrSpaceLocked
	}
	if shape == nil || !pm.space.ContainsShape(shape) {
		return ErrNotRegistered
	}

	shape.Body().EachArbiter(func(arb *cp.Arbiter) {
		a, b := arb.Shapes()
		if a != shape && b != shape {
			return
		}
		if pm.carried == nil {
			pm.carried = make(map[shapePair]struct{})
		}
		pm.carried[shapePair{a, b}] = struct{}{}
		pm.carried[shapePair{b, a}] = struct{}{}
	})

	pm.space.RemoveShape(shape)
	pm.space.AddShape(shape)
	return nil
}

func (pm *PhysicsManager) drainContacts() []contact {
	return pm.contacts.drain()
}

func (pm *PhysicsManager) ensureHandlers() {
	if pm.handlersReady {
		return
	}

	for _, kind := range []ShapeKind{Rectangle, Circle} {
		handler := pm.space.NewWildcardCollisionHandler(kind.collisionType())
		handler.UserData = pm
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			manager, ok := userData.(*PhysicsManager)
			if !ok || manager == nil {
				return true
			}
			shapeA, shapeB := arb.Shapes()
			if _, ok := manager.carried[shapePair{shapeA, shapeB}]; ok {
				return true
			}
			self, okA := shapeA.UserData.(*Object)
			other, okB := shapeB.UserData.(*Object)
			if okA && okB {
				manager.contacts.push(contact{self: self, other: other})
			}
			return true
		}
	}

	pm.handlersReady = true
}

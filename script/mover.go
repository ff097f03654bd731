package script

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/objects2d/object"
)

type MoverParams struct {
	// Velocity in world units per second.
	Velocity cp.Vector
	// Bounce reverses the velocity on every collision.
	Bounce bool
}

// Mover drives its object at a constant velocity. Dynamic bodies get the
// velocity set on them so the solver stops them at obstacles; static bodies
// are translated by hand.
type Mover struct {
	object.BaseScript
	velocity cp.Vector
	bounce   bool
}

func NewMover(_ *object.Object, p MoverParams) (object.Script, error) {
	return &Mover{velocity: p.Velocity, bounce: p.Bounce}, nil
}

func (m *Mover) Velocity() cp.Vector { return m.velocity }

func (m *Mover) Update(obj *object.Object, dt float64) error {
	if !obj.Static() {
		return obj.SetVelocity(m.velocity)
	}
	return obj.Move(m.velocity.Mult(dt))
}

func (m *Mover) OnCollision(*object.Object, *object.Object) error {
	if m.bounce {
		m.velocity = m.velocity.Neg()
	}
	return nil
}

package object

// Script is a behavior attached to an Object. Every hook receives the owning
// object explicitly. Returning an error aborts the current frame.
//
// Start runs once, immediately before the first Update of the script.
// OnDestroy runs when the object is removed, popped or cleared from its
// collection. OnCollision runs after the physics step for each collision that
// began during that step, once for each object involved.
type Script interface {
	Start(obj *Object) error
	Update(obj *Object, dt float64) error
	OnDestroy(obj *Object) error
	OnCollision(obj, other *Object) error
}

// BaseScript provides no-op hooks for embedding.
type BaseScript struct{}

func (BaseScript) Start(*Object) error { return nil }
func (BaseScript) Update(*Object, float64) error { return nil }
func (BaseScript) OnDestroy(*Object) error { return nil }
func (BaseScript) OnCollision(*Object, *Object) error { return nil }

// ScriptFunc builds a script bound to obj from a typed parameter record.
type ScriptFunc[P any] func(obj *Object, params P) (Script, error)

// AddScript constructs a script for obj with params and attaches it.
func AddScript[P any](obj *Object, newScript ScriptFunc[P], params P) (Script, error) {
	if obj == nil {
		return nil, ErrNilObject
	}
	s, err := newScript(obj, params)
	if err != nil {
		return nil, err
	}
	obj.AttachScript(s)
	return s, nil
}

type attachedScript struct {
	script  Script
	started bool
}

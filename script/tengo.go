package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/objects2d/object"
)

const (
	hookStart     = "start"
	hookUpdate    = "update"
	hookDestroy   = "on_destroy"
	hookCollision = "on_collision"
)

var hookCalls = []struct {
	name string
	call string
}{
	{hookStart, "start(__object, __state)"},
	{hookUpdate, "update(__object, __state, __dt)"},
	{hookDestroy, "on_destroy(__object, __state)"},
	{hookCollision, "on_collision(__object, __other, __state)"},
}

type TengoParams struct {
	// Name identifies the script in errors and, when Source is empty, is
	// resolved with Load.
	Name   string
	Source []byte
	// Vars is exposed to the script as the global map params.
	Vars map[string]any
}

// Tengo runs the optional start, update, on_destroy and on_collision
// functions of a tengo source as object hooks. Top-level statements of the
// source run before every hook; values that must survive between hooks go in
// the state map handed to each of them.
type Tengo struct {
	name     string
	vars     map[string]any
	compiled *tengo.Compiled
	hooks    map[string]bool
	state    *tengo.Map

	release func(*Tengo)
}

// NewTengo is the object.ScriptFunc for tengo scripts.
func NewTengo(_ *object.Object, p TengoParams) (object.Script, error) {
	return CompileTengo(p)
}

// CompileTengo compiles p without binding it to an object.
func CompileTengo(p TengoParams) (*Tengo, error) {
	src := p.Source
	if len(src) == 0 && p.Name != "" {
		data, err := Load("", p.Name)
		if err != nil {
			return nil, err
		}
		src = data
	}
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySource, p.Name)
	}

	compiled, hooks, err := compileTengo(p.Name, src, p.Vars)
	if err != nil {
		return nil, err
	}
	return &Tengo{
		name:     p.Name,
		vars:     p.Vars,
		compiled: compiled,
		hooks:    hooks,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (t *Tengo) Name() string { return t.name }

// Defines reports whether the source provides the named hook.
func (t *Tengo) Defines(hook string) bool {
	return t.hooks[hook]
}

// State returns a copy of the persistent state map.
func (t *Tengo) State() map[string]any {
	out, _ := tengo.ToInterface(t.state).(map[string]any)
	return out
}

// Reload recompiles the script from src. State is kept and start does not run
// again. On error the previous program stays active.
func (t *Tengo) Reload(src []byte) error {
	if len(strings.TrimSpace(string(src))) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptySource, t.name)
	}
	compiled, hooks, err := compileTengo(t.name, src, t.vars)
	if err != nil {
		return err
	}
	t.compiled = compiled
	t.hooks = hooks
	return nil
}

func (t *Tengo) Start(obj *object.Object) error {
	return t.run(hookStart, obj, nil, 0)
}

func (t *Tengo) Update(obj *object.Object, dt float64) error {
	return t.run(hookUpdate, obj, nil, dt)
}

func (t *Tengo) OnDestroy(obj *object.Object) error {
	err := t.run(hookDestroy, obj, nil, 0)
	if t.release != nil {
		t.release(t)
		t.release = nil
	}
	return err
}

func (t *Tengo) OnCollision(obj, other *object.Object) error {
	return t.run(hookCollision, obj, other, 0)
}

func (t *Tengo) run(hook string, obj, other *object.Object, dt float64) error {
	if !t.hooks[hook] {
		return nil
	}

	vars := []struct {
		name  string
		value any
	}{
		{"__phase", hook},
		{"__object", bindObject(obj)},
		{"__other", bindObject(other)},
		{"__state", t.state},
		{"__dt", dt},
		{"__result", tengo.UndefinedValue},
	}
	for _, v := range vars {
		if err := t.compiled.Set(v.name, v.value); err != nil {
			return fmt.Errorf("%s %s: %w", t.name, hook, err)
		}
	}
	if err := t.compiled.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", t.name, hook, err)
	}

	if e, ok := t.compiled.Get("__result").Object().(*tengo.Error); ok {
		msg, ok := tengo.ToString(e.Value)
		if !ok {
			msg = e.String()
		}
		return fmt.Errorf("%s %s: %w: %s", t.name, hook, ErrScriptFailed, msg)
	}
	return nil
}

// compileTengo runs src once to find which hooks it defines, then compiles it
// again with a dispatcher calling only those.
func compileTengo(name string, src []byte, vars map[string]any) (*tengo.Compiled, map[string]bool, error) {
	first, err := buildTengo(src, vars)
	if err != nil {
		return nil, nil, fmt.Errorf("compile %s: %w", name, err)
	}
	if err := first.Run(); err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", name, err)
	}

	hooks := make(map[string]bool, len(hookCalls))
	var dispatch strings.Builder
	for _, h := range hookCalls {
		if !first.IsDefined(h.name) || !first.Get(h.name).Object().CanCall() {
			continue
		}
		hooks[h.name] = true
		fmt.Fprintf(&dispatch, "if __phase == %q { __result = %s }\n", h.name, h.call)
	}

	full := string(src) + "\n" + dispatch.String()
	compiled, err := buildTengo([]byte(full), vars)
	if err != nil {
		return nil, nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return compiled, hooks, nil
}

func buildTengo(src []byte, vars map[string]any) (*tengo.Compiled, error) {
	if vars == nil {
		vars = map[string]any{}
	}

	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	globals := []struct {
		name  string
		value any
	}{
		{"__phase", ""},
		{"__object", map[string]any{}},
		{"__other", map[string]any{}},
		{"__state", map[string]any{}},
		{"__dt", 0.0},
		{"__result", nil},
		{"params", vars},
	}
	for _, g := range globals {
		if err := s.Add(g.name, g.value); err != nil {
			return nil, fmt.Errorf("bind %s: %w", g.name, err)
		}
	}
	return s.Compile()
}

// bindObject exposes obj to scripts as a map of callables.
func bindObject(obj *object.Object) tengo.Object {
	if obj == nil {
		return tengo.UndefinedValue
	}

	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"id": &tengo.UserFunction{Name: "id", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Int{Value: int64(obj.ID())}, nil
		}},
		"kind": &tengo.UserFunction{Name: "kind", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.String{Value: obj.Kind().String()}, nil
		}},
		"position":     vectorGetter("position", obj.Position),
		"velocity":     vectorGetter("velocity", obj.Velocity),
		"move":         vectorSetter("move", obj.Move),
		"move_at":      vectorSetter("move_at", obj.MoveAt),
		"set_velocity": vectorSetter("set_velocity", obj.SetVelocity),
		"invisible": &tengo.UserFunction{Name: "invisible", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if obj.Invisible() {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}},
		"set_invisible": &tengo.UserFunction{Name: "set_invisible", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			obj.SetInvisible(!args[0].IsFalsy())
			return tengo.UndefinedValue, nil
		}},
	}}
}

func vectorGetter(name string, get func() (cp.Vector, error)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := get()
		if err != nil {
			return errorValue(err), nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}, nil
	}}
}

func vectorSetter(name string, set func(cp.Vector) error) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		if err := set(cp.Vector{X: x, Y: y}); err != nil {
			return errorValue(err), nil
		}
		return tengo.UndefinedValue, nil
	}}
}

func errorValue(err error) tengo.Object {
	return &tengo.Error{Value: &tengo.String{Value: err.Error()}}
}

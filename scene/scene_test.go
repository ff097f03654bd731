package scene

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/objects2d/object"
)

type countingRenderer struct {
	images int
	shapes int
}

func (r *countingRenderer) DrawImage(*object.Image) { r.images++ }
func (r *countingRenderer) DrawShape(object.Shape, float64) { r.shapes++ }

func TestFixedClock(t *testing.T) {
	cases := []struct {
		name     string
		dt       float64
		maxDelta float64
		want     float64
	}{
		{"plain", 0.01, 0.05, 0.01},
		{"capped", 0.1, 0.05, 0.05},
		{"uncapped", 0.1, 0, 0.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := NewFixedClock(c.dt, c.maxDelta)
			if got := clock.Tick(); got != c.want {
				t.Fatalf("Tick = %v, want %v", got, c.want)
			}
			if clock.DeltaTime() != c.want || clock.Frames() != 1 {
				t.Fatalf("DeltaTime = %v frames = %d", clock.DeltaTime(), clock.Frames())
			}
		})
	}
}

func TestMeasuredClock(t *testing.T) {
	base := time.Unix(100, 0)
	ticks := []time.Time{base, base.Add(20 * time.Millisecond), base.Add(2 * time.Second)}
	i := 0

	clock := NewMeasuredClock(0.05)
	clock.now = func() time.Time {
		now := ticks[i]
		i++
		return now
	}

	want := []float64{0, 0.02, 0.05}
	for frame, w := range want {
		if got := clock.Tick(); got != w {
			t.Fatalf("frame %d: dt = %v, want %v", frame, got, w)
		}
	}
}

func TestSceneNewObjects(t *testing.T) {
	r := &countingRenderer{}
	s := New("test", WithRenderer(r), WithClock(NewFixedClock(0.5, 1)))

	c, err := s.NewObjects()
	if err != nil {
		t.Fatalf("NewObjects: %v", err)
	}
	if c.Scene() != s || c.Renderer() != r {
		t.Fatalf("collection not bound to the scene")
	}

	fromCtx, err := object.NewObjectsFromContext(s.Context(context.Background()))
	if err != nil {
		t.Fatalf("NewObjectsFromContext: %v", err)
	}
	if fromCtx.Scene() != s {
		t.Fatalf("context should resolve the scene")
	}
	if len(s.Collections()) != 1 {
		t.Fatalf("only collections created through the scene are driven by it")
	}
}

func TestSceneUpdateOrder(t *testing.T) {
	r := &countingRenderer{}
	s := New("test", WithRenderer(r), WithClock(NewFixedClock(0.5, 1)))
	c, err := s.NewObjects()
	if err != nil {
		t.Fatalf("NewObjects: %v", err)
	}

	var order []string
	obj := object.NewRect(cp.Vector{}, 2, 2)
	obj.AttachScript(&orderScript{order: &order})
	if err := c.Add(obj); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.AddSystem(SystemFunc(func(s *Scene) error {
		order = append(order, "system")
		return nil
	}))

	if err := s.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(order) != 2 || order[0] != "system" || order[1] != "script" {
		t.Fatalf("order = %v", order)
	}
	if s.DeltaTime() != 0.5 {
		t.Fatalf("DeltaTime = %v, want 0.5", s.DeltaTime())
	}

	s.SetPaused(true)
	order = nil
	if err := s.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(order) != 1 || order[0] != "system" {
		t.Fatalf("paused order = %v, want only systems", order)
	}
	if s.DeltaTime() != 0 {
		t.Fatalf("paused DeltaTime = %v, want 0", s.DeltaTime())
	}

	if err := s.Draw(nil); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if r.images != 1 {
		t.Fatalf("images drawn = %d, want 1", r.images)
	}
}

func TestSceneUpdateErrors(t *testing.T) {
	boom := errors.New("boom")
	s := New("test", WithRenderer(&countingRenderer{}))
	c, err := s.NewObjects()
	if err != nil {
		t.Fatalf("NewObjects: %v", err)
	}
	obj := object.NewRect(cp.Vector{}, 2, 2)
	var order []string
	obj.AttachScript(&orderScript{order: &order})
	if err := c.Add(obj); err != nil {
		t.Fatalf("Add: %v", err)
	}

	s.AddSystem(SystemFunc(func(*Scene) error { return boom }))
	if err := s.Update(); !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}
	if len(order) != 0 {
		t.Fatalf("collections must not run after a failing system")
	}
}

func TestPausedSceneWrapsSystemErrors(t *testing.T) {
	boom := errors.New("boom")
	s := New("test", WithRenderer(&countingRenderer{}))
	s.AddSystem(SystemFunc(func(*Scene) error { return boom }))
	s.SetPaused(true)

	err := s.Update()
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}
	if !strings.Contains(err.Error(), "scene test") {
		t.Fatalf("error %q does not name the scene", err)
	}
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	boom := errors.New("boom")
	var order []string
	record := func(name string, err error) System {
		return SystemFunc(func(*Scene) error {
			order = append(order, name)
			return err
		})
	}

	sched := NewScheduler(record("a", nil))
	sched.Add(nil)
	sched.Add(record("b", nil))
	if err := sched.Update(nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v, want [a b]", order)
	}

	order = nil
	sched.Add(record("c", boom))
	sched.Add(record("d", nil))
	if err := sched.Update(nil); !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("systems after a failing one must not run, order = %v", order)
	}
}

type orderScript struct {
	object.BaseScript
	order *[]string
}

func (s *orderScript) Update(*object.Object, float64) error {
	*s.order = append(*s.order, "script")
	return nil
}

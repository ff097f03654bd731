package scene

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/objects2d/common"
	"github.com/milk9111/objects2d/object"
	"github.com/milk9111/objects2d/render"
)

// Scene is the per-frame context object collections attach to. It owns the
// frame clock and the default render target, and drives its systems and
// collections once per frame.
type Scene struct {
	name     string
	clock    *Clock
	renderer object.Renderer
	logger   *log.Logger

	scheduler   *Scheduler
	collections []*object.Objects
	paused      bool
}

type Option func(*Scene)

func WithClock(c *Clock) Option {
	return func(s *Scene) {
		s.clock = c
	}
}

func WithRenderer(r object.Renderer) Option {
	return func(s *Scene) {
		s.renderer = r
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Scene) {
		s.logger = logger
	}
}

func New(name string, opts ...Option) *Scene {
	s := &Scene{name: name, scheduler: NewScheduler()}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewFixedClock(0, common.MaxDelta)
	}
	if s.renderer == nil {
		s.renderer = render.NewCamera(common.BaseWidth, common.BaseHeight, 1)
	}
	if s.logger == nil {
		s.logger = log.Default().WithPrefix("scene")
	}
	return s
}

func (s *Scene) Name() string { return s.name }
func (s *Scene) DeltaTime() float64 { return s.clock.DeltaTime() }
func (s *Scene) Renderer() object.Renderer { return s.renderer }
func (s *Scene) Clock() *Clock { return s.clock }
func (s *Scene) Paused() bool { return s.paused }
func (s *Scene) SetPaused(paused bool) { s.paused = paused }

// Context binds the scene into parent so collections created below it resolve
// this scene.
func (s *Scene) Context(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return object.WithScene(parent, s)
}

// NewObjects creates a collection attached to the scene. It is updated and
// drawn with the scene, in creation order.
func (s *Scene) NewObjects(opts ...object.CollectionOption) (*object.Objects, error) {
	opts = append([]object.CollectionOption{object.WithLogger(s.logger.WithPrefix("objects"))}, opts...)
	c, err := object.NewObjects(s, opts...)
	if err != nil {
		return nil, err
	}
	s.collections = append(s.collections, c)
	return c, nil
}

// Collections returns the collections created through the scene.
func (s *Scene) Collections() []*object.Objects {
	return append([]*object.Objects(nil), s.collections...)
}

func (s *Scene) AddSystem(system System) {
	s.scheduler.Add(system)
}

// Update ticks the clock, then runs the systems and every collection. While
// paused only the systems run, so input can still resume the scene.
func (s *Scene) Update() error {
	if s.paused {
		s.clock.dt = 0
		if err := s.scheduler.Update(s); err != nil {
			return fmt.Errorf("scene %s: %w", s.name, err)
		}
		return nil
	}

	s.clock.Tick()
	if err := s.scheduler.Update(s); err != nil {
		return fmt.Errorf("scene %s: %w", s.name, err)
	}
	for i, c := range s.collections {
		if err := c.Update(); err != nil {
			return fmt.Errorf("scene %s: collection %d: %w", s.name, i, err)
		}
	}
	return nil
}

// Draw draws every collection onto screen.
func (s *Scene) Draw(screen *ebiten.Image) error {
	if t, ok := s.renderer.(interface{ SetTarget(*ebiten.Image) }); ok {
		t.SetTarget(screen)
	}
	for i, c := range s.collections {
		if err := c.Draw(); err != nil {
			return fmt.Errorf("scene %s: collection %d: %w", s.name, i, err)
		}
	}
	return nil
}

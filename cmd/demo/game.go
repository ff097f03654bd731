package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/objects2d/config"
	"github.com/milk9111/objects2d/object"
	"github.com/milk9111/objects2d/render"
	"github.com/milk9111/objects2d/scene"
	"github.com/milk9111/objects2d/script"
)

var background = color.RGBA{R: 0x18, G: 0x1c, B: 0x24, A: 0xff}

type Game struct {
	cfg    config.Config
	logger *log.Logger

	scene   *scene.Scene
	camera  *render.Camera
	objects *object.Objects
	scripts *script.Registry

	ui        *ebitenui.UI
	showSpace bool
	clipboard bool
	quit      bool
	status    string
}

func NewGame(cfg config.Config, logger *log.Logger) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		logger:    logger,
		camera:    render.NewCamera(cfg.Window.Width, cfg.Window.Height, cfg.Window.Zoom),
		scripts:   script.NewRegistry(cfg.Scripts.Dir, logger.WithPrefix("script")),
		showSpace: cfg.Debug.Space,
	}

	var clock *scene.Clock
	if cfg.Frame.Measured {
		clock = scene.NewMeasuredClock(cfg.Frame.MaxDelta)
	} else {
		clock = scene.NewFixedClock(0, cfg.Frame.MaxDelta)
	}
	g.scene = scene.New("demo",
		scene.WithClock(clock),
		scene.WithRenderer(g.camera),
		scene.WithLogger(logger.WithPrefix("scene")),
	)
	g.scene.AddSystem(scene.SystemFunc(g.handleInput))

	objs, err := g.scene.NewObjects(
		object.WithHitboxes(cfg.Debug.Hitboxes),
		object.WithGravity(cp.Vector{X: cfg.Physics.Gravity[0], Y: cfg.Physics.Gravity[1]}),
		object.WithIterations(cfg.Physics.Iterations),
	)
	if err != nil {
		return nil, err
	}
	g.objects = objs

	if cfg.Scripts.Watch {
		if err := g.scripts.Watch(); err != nil {
			logger.Warn("script hot reload disabled", "err", err)
		}
	}
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboard = true
	}

	g.ui = NewPauseUI(g)
	if err := g.populate(); err != nil {
		return nil, err
	}
	return g, nil
}

// populate builds the demo level: a floor and walls, a patrolling platform
// and a pusher hovering just above the floor, bouncing between the walls.
func (g *Game) populate() error {
	w, h := float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)

	static := []*object.Object{
		object.NewRect(cp.Vector{X: w / 2, Y: h - 10}, w, 20, object.WithPhysics(object.Physics{Static: true, Friction: 0.8})),
		object.NewRect(cp.Vector{X: 10, Y: h / 2}, 20, h, object.WithPhysics(object.Physics{Static: true, Friction: 0.8})),
		object.NewRect(cp.Vector{X: w - 10, Y: h / 2}, 20, h, object.WithPhysics(object.Physics{Static: true, Friction: 0.8})),
	}
	for _, obj := range static {
		if err := g.objects.Add(obj); err != nil {
			return err
		}
	}

	platform := object.NewRect(cp.Vector{X: w / 2, Y: h * 0.6}, 160, 16, object.WithPhysics(object.Physics{Static: true, Friction: 1}))
	if _, err := object.AddScript(platform, g.scripts.New, script.TengoParams{
		Name: "patrol",
		Vars: map[string]any{"speed": 80.0, "distance": 200.0},
	}); err != nil {
		return fmt.Errorf("platform script: %w", err)
	}
	if err := g.objects.Add(platform); err != nil {
		return err
	}

	pusher := object.NewRect(cp.Vector{X: w / 2, Y: h - 41}, 40, 40, object.WithPhysics(object.Physics{Mass: 5}))
	if _, err := object.AddScript(pusher, script.NewMover, script.MoverParams{Velocity: cp.Vector{X: 120}, Bounce: true}); err != nil {
		return err
	}
	if err := g.objects.Add(pusher); err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		if err := g.spawnBall(cp.Vector{X: w/2 - 100 + float64(i)*50, Y: 80}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) spawnBall(pos cp.Vector) error {
	ball := object.NewCircle(pos, 12, object.WithPhysics(object.Physics{Mass: 1, Friction: 0.6, Elasticity: 0.5}))
	if _, err := object.AddScript(ball, g.scripts.New, script.TengoParams{Name: "blink"}); err != nil {
		return fmt.Errorf("ball script: %w", err)
	}
	return g.objects.Add(ball)
}

// reset destroys every object and rebuilds the level.
func (g *Game) reset() error {
	if err := g.objects.Clear(); err != nil {
		g.logger.Warn("clear", "err", err)
	}
	return g.populate()
}

func (g *Game) handleInput(s *scene.Scene) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.SetPaused(!s.Paused())
	}
	if s.Paused() {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.objects.ToggleHitbox()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.showSpace = !g.showSpace
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyObjects()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if err := g.spawnBall(g.camera.ScreenToWorld(cp.Vector{X: float64(x), Y: float64(y)})); err != nil {
			g.logger.Warn("spawn", "err", err)
		}
	}
	return nil
}

// copyObjects puts a YAML dump of the live objects on the clipboard.
func (g *Game) copyObjects() {
	data, err := yaml.Marshal(g.objects.Describe())
	if err != nil {
		g.logger.Error("describe objects", "err", err)
		return
	}
	if !g.clipboard {
		g.logger.Info("objects", "dump", string(data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = fmt.Sprintf("copied %d objects", g.objects.Len())
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if n := g.scripts.Apply(); n > 0 {
		g.status = fmt.Sprintf("reloaded %d scripts", n)
	}
	if err := g.scene.Update(); err != nil {
		return err
	}
	if g.scene.Paused() {
		g.ui.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if err := g.scene.Draw(screen); err != nil {
		g.logger.Error("draw", "err", err)
	}
	if g.showSpace {
		render.DrawSpace(screen, g.objects.Physics().Space(), g.camera)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Objects: %d    FPS: %.2f    [H]itboxes [F2] space [R]eset [C]opy [P]ause\n%s",
		g.objects.Len(), ebiten.ActualFPS(), g.status))

	if g.scene.Paused() {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if err := g.scripts.Close(); err != nil {
		g.logger.Warn("close script watcher", "err", err)
	}
}

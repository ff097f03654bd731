package object

import "context"

// Scene is the enclosing per-frame state an Objects collection attaches to.
type Scene interface {
	// DeltaTime returns the time step of the current frame.
	DeltaTime() float64
	// Renderer returns the default render target of the scene.
	Renderer() Renderer
}

type sceneKey struct{}

// WithScene returns a copy of ctx in which s is the enclosing scene.
func WithScene(ctx context.Context, s Scene) context.Context {
	return context.WithValue(ctx, sceneKey{}, s)
}

// SceneFromContext returns the nearest scene bound with WithScene.
func SceneFromContext(ctx context.Context) (Scene, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(sceneKey{}).(Scene)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

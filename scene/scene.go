// Package scene holds the fractal scenes, the transforms they are driven by
// and the lifecycle controller that sequences them against a rendering
// surface.
package scene

import (
	"fractal-explorer/input"
	"fractal-explorer/renderer"
)

// Scene is one full-screen fractal. The surface callbacks and OnDrawFrame run
// on the goroutine that owns the graphics context. OnTouchEvent may be called
// from any goroutine.
type Scene interface {
	// OnAttach is called when the scene becomes the active one.
	OnAttach()
	// OnSurfaceCreated builds GPU resources. A returned error leaves the
	// scene without a surface.
	OnSurfaceCreated(ctx renderer.Context) error
	// OnSurfaceChanged adapts to a new surface size in pixels.
	OnSurfaceChanged(ctx renderer.Context, width, height int)
	// OnDrawFrame renders into the framebuffer bound for drawing when it is
	// called.
	OnDrawFrame(ctx renderer.Context)
	OnTouchEvent(e input.Event)
	// OnDetach releases GPU resources. ctx is nil when no surface was ever
	// created.
	OnDetach(ctx renderer.Context)
}

package gesture

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"fractal-explorer/input"
)

// Target receives the transform updates a Router derives from touch input.
// All calls are made from Router.OnTouchEvent.
type Target interface {
	ScaleZoom(factor float64)
	Pan(dx, dy float64)
	Rotate(angle float64)
	MarkDirty()
	// SurfaceHeight is the current surface height in pixels.
	SurfaceHeight() float64
}

// Router resolves pinch, twist, drag and double-tap drag into zoom, pan and
// rotation on a Target. It is not safe for concurrent use; callers
// serialize events, usually under the lock that guards the target.
type Router struct {
	target Target

	scale  ScaleDetector
	rotate RotateDetector
	tap    TapDetector

	prev      mgl64.Vec2 // last single pointer position
	prevFocus mgl64.Vec2 // last pinch focus
	flush     bool       // discard the next single pointer move
	doubleTap bool
}

// NewRouter returns a Router driving target.
func NewRouter(target Target) *Router {
	return &Router{target: target}
}

// OnTouchEvent routes one event.
func (r *Router) OnTouchEvent(e input.Event) {
	r.target.MarkDirty()

	if r.rotate.OnTouchEvent(e) {
		r.target.Rotate(r.rotate.LifetimeRotation())
	}

	switch r.scale.OnTouchEvent(e) {
	case ScaleBegin:
		r.prevFocus = r.scale.Focus()
	case ScaleStep:
		r.target.ScaleZoom(r.scale.ScaleFactor())
		focus := r.scale.Focus()
		delta := focus.Sub(r.prevFocus)
		r.prevFocus = focus
		r.target.Pan(delta[0], delta[1])
	case ScaleEnd:
		r.flush = true
	}

	switch r.tap.OnTouchEvent(e) {
	case TapDouble, TapDoubleEvent:
		r.doubleTap = true
	case TapSingleConfirmed:
		r.doubleTap = false
	}

	// Sequence end. Rotation carries over to the next sequence.
	if e.Action == input.ActionUp || e.Action == input.ActionCancel {
		r.flush = false
		r.doubleTap = false
		return
	}

	if r.scale.InProgress() || r.rotate.Active() {
		return
	}

	switch e.Action {
	case input.ActionDown:
		r.prev = mgl64.Vec2{e.X(), e.Y()}
	case input.ActionMove:
		pos := mgl64.Vec2{e.X(), e.Y()}
		d := pos.Sub(r.prev)
		r.prev = pos
		switch {
		case r.flush:
			r.flush = false
		case r.doubleTap:
			h := r.target.SurfaceHeight()
			if h <= 0 {
				return
			}
			r.target.ScaleZoom(gomath.Pow((d[1]+h)/h, 4))
		default:
			r.target.Pan(d[0], d[1])
		}
	}
}

// DoubleTapInProgress reports whether drags currently zoom.
func (r *Router) DoubleTapInProgress() bool { return r.doubleTap }

// FlushPending reports whether the next single pointer move will be dropped.
func (r *Router) FlushPending() bool { return r.flush }

// Rotation is the accumulated twist in radians.
func (r *Router) Rotation() float64 { return r.rotate.LifetimeRotation() }

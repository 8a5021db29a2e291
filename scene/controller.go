package scene

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"fractal-explorer/input"
	"fractal-explorer/renderer"
)

// ErrInvalidTransition is returned when a lifecycle call arrives in a state
// that cannot accept it.
var ErrInvalidTransition = errors.New("invalid scene transition")

// State is a Controller lifecycle state.
type State int32

const (
	Detached State = iota
	Attached
	SurfaceCreated
	SurfaceSized
	Running
)

func (s State) String() string {
	switch s {
	case Detached:
		return "detached"
	case Attached:
		return "attached"
	case SurfaceCreated:
		return "surface-created"
	case SurfaceSized:
		return "surface-sized"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Controller sequences a Scene through its lifecycle:
//
//	Detached -> Attached -> SurfaceCreated -> SurfaceSized -> Running
//
// A surface change from SurfaceSized or Running re-enters SurfaceSized and
// Detach returns to Detached from anywhere. Lifecycle calls are serialized;
// touch events are forwarded concurrently and dropped while detached.
type Controller struct {
	mu    sync.Mutex
	scene Scene
	state atomic.Int32
	ctx   renderer.Context // set once a surface exists

	dropped atomic.Int64
}

// NewController returns a detached controller for s.
func NewController(s Scene) *Controller {
	return &Controller{scene: s}
}

// Scene returns the controlled scene.
func (c *Controller) Scene() Scene { return c.scene }

// State returns the current lifecycle state.
func (c *Controller) State() State { return State(c.state.Load()) }

// Dropped counts touch events discarded while detached.
func (c *Controller) Dropped() int64 { return c.dropped.Load() }

func (c *Controller) set(s State) {
	from := c.State()
	c.state.Store(int32(s))
	Logger().Debug("scene state", "from", from.String(), "to", s.String())
}

func (c *Controller) invalid(op string) error {
	return fmt.Errorf("%s in state %s: %w", op, c.State(), ErrInvalidTransition)
}

// Attach activates the scene.
func (c *Controller) Attach() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.State() != Detached {
		return c.invalid("attach")
	}
	c.scene.OnAttach()
	c.set(Attached)
	return nil
}

// SurfaceCreated hands the scene a fresh graphics context. When the scene
// fails to build its resources the controller stays Attached.
func (c *Controller) SurfaceCreated(ctx renderer.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.State() != Attached {
		return c.invalid("surface created")
	}
	if err := c.scene.OnSurfaceCreated(ctx); err != nil {
		return fmt.Errorf("surface created: %w", err)
	}
	c.ctx = ctx
	c.set(SurfaceCreated)
	return nil
}

// SurfaceChanged reports a new surface size.
func (c *Controller) SurfaceChanged(ctx renderer.Context, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.State() {
	case SurfaceCreated, SurfaceSized, Running:
	default:
		return c.invalid("surface changed")
	}
	c.ctx = ctx
	c.scene.OnSurfaceChanged(ctx, width, height)
	c.set(SurfaceSized)
	return nil
}

// DrawFrame renders one frame.
func (c *Controller) DrawFrame(ctx renderer.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.State() {
	case SurfaceSized, Running:
	default:
		return c.invalid("draw frame")
	}
	c.scene.OnDrawFrame(ctx)
	if c.State() != Running {
		c.set(Running)
	}
	return nil
}

// TouchEvent forwards e to the scene unless it is detached. It reports
// whether the event was delivered.
func (c *Controller) TouchEvent(e input.Event) bool {
	if c.State() == Detached {
		c.dropped.Add(1)
		return false
	}
	c.scene.OnTouchEvent(e)
	return true
}

// Detach releases the scene's GPU resources. Detaching a detached scene does
// nothing.
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.State() == Detached {
		return
	}
	c.scene.OnDetach(c.ctx)
	c.ctx = nil
	c.set(Detached)
}

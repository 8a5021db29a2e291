package scene

import (
	"fmt"
	"sync"

	"fractal-explorer/gesture"
	"fractal-explorer/input"
	fmath "fractal-explorer/math"
	"fractal-explorer/prefs"
	"fractal-explorer/renderer"
)

// Mandelbrot is the 2D explorer. It renders into an offscreen framebuffer
// only when input or configuration changed since the last frame and blits
// that image to the display every frame.
type Mandelbrot struct {
	mu          sync.Mutex // guards the fields down to accentDirty
	view        ViewTransform2D
	router      *gesture.Router
	surface     renderer.Size
	dirty       bool
	accentIndex int
	accentDirty bool

	program renderer.Program
	quad    *renderer.Quad
	fbm     *renderer.FramebufferManager

	// Redraws counts frames rendered into the offscreen framebuffer.
	Redraws int
}

// NewMandelbrot creates the explorer with the accent colour saved in store,
// if any.
func NewMandelbrot(store prefs.Store) *Mandelbrot {
	m := &Mandelbrot{
		view:        NewViewTransform2D(),
		dirty:       true,
		accentIndex: DefaultAccentColorIndex,
	}
	if store != nil {
		if i, ok := store.MandelbrotAccentColorIndex(); ok {
			m.accentIndex = ClampAccentColorIndex(i)
		}
	}
	m.router = gesture.NewRouter((*mandelbrotGestures)(m))
	return m
}

// OnAttach schedules a redraw.
func (m *Mandelbrot) OnAttach() {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
}

// OnSurfaceCreated builds the program and quad and sets the static uniforms.
func (m *Mandelbrot) OnSurfaceCreated(ctx renderer.Context) error {
	program, err := ctx.NewProgram(renderer.MandelbrotVertexShader, renderer.MandelbrotFragmentShader)
	if err != nil {
		return fmt.Errorf("mandelbrot program: %w", err)
	}
	quad, err := renderer.NewQuad(ctx)
	if err != nil {
		ctx.DeleteProgram(program)
		return fmt.Errorf("mandelbrot: %w", err)
	}
	m.program = program
	m.quad = quad
	m.fbm = renderer.NewFramebufferManager(ctx)

	m.mu.Lock()
	surface := m.surface
	accent := AccentColors[m.accentIndex].RGB
	m.accentDirty = false
	m.dirty = true
	m.mu.Unlock()

	ctx.ClearColor(renderer.ColorRed)
	ctx.UseProgram(program)
	quad.Bind(ctx)
	ctx.SetUniform2f(program, renderer.UniformViewPortResolution, float32(surface.Width), float32(surface.Height))
	ctx.SetUniform3f(program, renderer.UniformAccentColor, accent)
	return nil
}

// OnSurfaceChanged resizes the offscreen image and schedules a redraw.
func (m *Mandelbrot) OnSurfaceChanged(ctx renderer.Context, width, height int) {
	m.mu.Lock()
	m.surface = renderer.Size{Width: width, Height: height}
	m.view.SetPixelsPerUnit(width, height)
	m.dirty = true
	m.mu.Unlock()

	ctx.Viewport(0, 0, width, height)
	ctx.UseProgram(m.program)
	ctx.SetUniform2f(m.program, renderer.UniformViewPortResolution, float32(width), float32(height))

	if err := m.fbm.EnsureSize(width, height); err != nil {
		Logger().Warn("mandelbrot offscreen framebuffer not resized", "err", err)
	}
}

// OnDrawFrame re-renders the fractal when dirty and presents it.
func (m *Mandelbrot) OnDrawFrame(ctx renderer.Context) {
	displayDraw := ctx.Integer(renderer.BindingDrawFramebuffer)
	displayRead := ctx.Integer(renderer.BindingReadFramebuffer)

	if !m.fbm.Valid() {
		ctx.Clear()
		return
	}

	m.mu.Lock()
	redraw := m.dirty
	view := m.view.Snapshot()
	surface := m.surface
	accentDirty := m.accentDirty
	accent := AccentColors[m.accentIndex].RGB
	m.dirty = false
	m.accentDirty = false
	m.mu.Unlock()

	fb := m.fbm.Framebuffer()
	if redraw {
		ctx.BindFramebuffer(renderer.TargetFramebuffer, fb.ID)
		ctx.Viewport(0, 0, fb.Size.Width, fb.Size.Height)
		ctx.Clear()
		ctx.UseProgram(m.program)
		if accentDirty {
			ctx.SetUniform3f(m.program, renderer.UniformAccentColor, accent)
		}
		ctx.SetUniform1f(m.program, renderer.UniformZoom, float32(view.Zoom))
		ctx.SetUniform2f(m.program, renderer.UniformCenterOffset, float32(view.CenterOffset[0]), float32(view.CenterOffset[1]))
		ctx.SetUniformMat2(m.program, renderer.UniformRotationMat, fmath.Mat2To32(view.Rotation))
		m.quad.Draw(ctx)
		m.Redraws++

		ctx.BindFramebuffer(renderer.TargetDrawFramebuffer, displayDraw)
		ctx.BindFramebuffer(renderer.TargetReadFramebuffer, displayRead)
		ctx.Viewport(0, 0, surface.Width, surface.Height)
	}

	m.fbm.Blit(displayDraw, surface, m.BlitFilter())
}

// OnTouchEvent feeds the gesture router.
func (m *Mandelbrot) OnTouchEvent(e input.Event) {
	m.mu.Lock()
	m.router.OnTouchEvent(e)
	m.mu.Unlock()
}

// OnDetach releases GPU resources. ctx may be nil.
func (m *Mandelbrot) OnDetach(ctx renderer.Context) {
	if ctx == nil {
		return
	}
	if m.fbm != nil {
		m.fbm.Destroy()
	}
	if m.quad != nil {
		m.quad.Destroy(ctx)
		m.quad = nil
	}
	if m.program != 0 {
		ctx.DeleteProgram(m.program)
		m.program = 0
	}
}

// SetAccentColorIndex selects a tint; out of range indices are clamped.
func (m *Mandelbrot) SetAccentColorIndex(i int) {
	m.mu.Lock()
	m.accentIndex = ClampAccentColorIndex(i)
	m.accentDirty = true
	m.dirty = true
	m.mu.Unlock()
}

// AccentColorIndex returns the selected tint.
func (m *Mandelbrot) AccentColorIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accentIndex
}

// Status names the selected tint.
func (m *Mandelbrot) Status() string {
	return "accent " + AccentColors[m.AccentColorIndex()].Name
}

// View returns a copy of the current view transform.
func (m *Mandelbrot) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view.Snapshot()
}

// Dirty reports whether the next frame will re-render the fractal.
func (m *Mandelbrot) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Framebuffers exposes the offscreen framebuffer manager, nil before the
// surface is created.
func (m *Mandelbrot) Framebuffers() *renderer.FramebufferManager { return m.fbm }

// BlitFilter is the filter used to present the offscreen image.
func (m *Mandelbrot) BlitFilter() renderer.Filter { return renderer.FilterLinear }

// mandelbrotGestures is the gesture target view of a Mandelbrot. Its methods
// run from OnTouchEvent with mu held.
type mandelbrotGestures Mandelbrot

func (g *mandelbrotGestures) ScaleZoom(factor float64) { g.view.ScaleZoom(factor) }
func (g *mandelbrotGestures) Pan(dx, dy float64)       { g.view.Pan(dx, dy) }
func (g *mandelbrotGestures) Rotate(angle float64)     { g.view.Rotate(angle) }
func (g *mandelbrotGestures) MarkDirty()               { g.dirty = true }
func (g *mandelbrotGestures) SurfaceHeight() float64   { return float64(g.surface.Height) }

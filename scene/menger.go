package scene

import (
	"fmt"
	"sync"
	"time"

	"fractal-explorer/input"
	"fractal-explorer/prefs"
	"fractal-explorer/renderer"
	"fractal-explorer/sensor"
)

// Clock returns a monotonic timestamp.
type Clock func() time.Duration

// SystemClock measures time since its first use.
func SystemClock() Clock {
	start := time.Now()
	return func() time.Duration { return time.Since(start) }
}

func deciseconds(d time.Duration) float64 {
	return float64(d) / float64(100*time.Millisecond)
}

// MengerPrison flies a camera through an endlessly repeating Menger sponge
// "prison", steered by a rotation source. It renders at a reduced resolution
// and scales the result up with nearest filtering. When the camera hits a
// wall the flight starts over.
type MengerPrison struct {
	source      sensor.RotationSource
	orientation sensor.Orientation
	clock       Clock

	mu             sync.Mutex // guards the fields down to resets
	camera         CameraState3D
	firstFrameTime float64
	resIndex       int
	pointerDown    bool
	resets         int

	// owned by the render goroutine
	resolutions ResolutionTable
	surface     renderer.Size
	drawnIndex  int
	program     renderer.Program
	quad        *renderer.Quad
	fbm         *renderer.FramebufferManager
}

// NewMengerPrison creates the prison scene. The resolution index saved in
// store, if any, is clamped to the resolution table. A nil clock uses
// SystemClock.
func NewMengerPrison(source sensor.RotationSource, store prefs.Store, orientation sensor.Orientation, clock Clock) *MengerPrison {
	if clock == nil {
		clock = SystemClock()
	}
	s := &MengerPrison{
		source:      source,
		orientation: orientation,
		clock:       clock,
		camera:      NewCameraState3D(),
		resIndex:    DefaultResolutionIndex,
		drawnIndex:  DefaultResolutionIndex,
	}
	if store != nil {
		if i, ok := store.MengerResolutionIndex(); ok {
			s.resIndex = ClampResolutionIndex(i)
		}
	}
	return s
}

// OnAttach starts the rotation source.
func (s *MengerPrison) OnAttach() {
	s.source.Init()
}

// OnSurfaceCreated builds the program and quad and starts the flight clock.
func (s *MengerPrison) OnSurfaceCreated(ctx renderer.Context) error {
	frag := renderer.MengerPrisonFragmentShader(BoxDimen, HitDist, MaxIterations)
	program, err := ctx.NewProgram(renderer.UVVertexShader, frag)
	if err != nil {
		return fmt.Errorf("menger prison program: %w", err)
	}
	quad, err := renderer.NewQuad(ctx)
	if err != nil {
		ctx.DeleteProgram(program)
		return fmt.Errorf("menger prison: %w", err)
	}
	s.program = program
	s.quad = quad
	s.fbm = renderer.NewFramebufferManager(ctx)
	quad.Bind(ctx)

	s.mu.Lock()
	s.firstFrameTime = deciseconds(s.clock())
	s.mu.Unlock()

	ctx.ClearColor(renderer.ColorDarkRed)
	ctx.UseProgram(program)
	ctx.SetUniform1i(program, renderer.UniformIterations, MaxIterations)
	return nil
}

// OnSurfaceChanged rebuilds the resolution table for the new size.
func (s *MengerPrison) OnSurfaceChanged(ctx renderer.Context, width, height int) {
	s.surface = renderer.Size{Width: width, Height: height}
	s.resolutions = NewResolutionTable(width, height)

	s.mu.Lock()
	s.drawnIndex = s.resIndex
	s.mu.Unlock()

	s.resize(ctx)
}

// resize allocates the offscreen framebuffer for drawnIndex and updates the
// viewport uniform to whatever framebuffer ends up current.
func (s *MengerPrison) resize(ctx renderer.Context) {
	res := s.resolutions[s.drawnIndex]
	if err := s.fbm.EnsureSize(res.Width, res.Height); err != nil {
		Logger().Warn("menger prison offscreen framebuffer not resized",
			"resolutionIndex", s.drawnIndex, "err", err)
	}
	if !s.fbm.Valid() {
		return
	}
	size := s.fbm.Framebuffer().Size
	ctx.UseProgram(s.program)
	ctx.SetUniform2f(s.program, renderer.UniformViewPortResolution, float32(size.Width), float32(size.Height))
}

// OnDrawFrame moves the camera, resets on collision and renders.
func (s *MengerPrison) OnDrawFrame(ctx renderer.Context) {
	displayDraw := ctx.Integer(renderer.BindingDrawFramebuffer)
	displayRead := ctx.Integer(renderer.BindingReadFramebuffer)

	now := deciseconds(s.clock())
	rotation := s.source.RotationMatrix(s.orientation)

	s.mu.Lock()
	dt := s.camera.Tick(now - s.firstFrameTime)
	s.camera.Orient(rotation)
	speed := CameraSpeedNormal
	if s.pointerDown {
		speed = CameraSpeedFast
	}
	s.camera.Advance(dt, speed)
	collided := Collides(s.camera.Position)
	if collided {
		s.camera.Reset()
		s.firstFrameTime = now
		s.resets++
	}
	position := s.camera.Position
	resIndex := s.resIndex
	s.mu.Unlock()

	if collided {
		s.source.Reset()
		Logger().Info("camera hit the prison, restarting flight")
	}

	if resIndex != s.drawnIndex {
		s.drawnIndex = resIndex
		s.resize(ctx)
	}
	if !s.fbm.Valid() {
		ctx.Clear()
		return
	}

	fb := s.fbm.Framebuffer()
	ctx.Viewport(0, 0, fb.Size.Width, fb.Size.Height)
	ctx.BindFramebuffer(renderer.TargetFramebuffer, fb.ID)
	ctx.Clear()
	ctx.UseProgram(s.program)
	ctx.SetUniform3f(s.program, renderer.UniformRayOrigin, position)
	ctx.SetUniformMat3(s.program, renderer.UniformCameraRotationMat, rotation)
	s.quad.Draw(ctx)

	ctx.Viewport(0, 0, s.surface.Width, s.surface.Height)
	ctx.BindFramebuffer(renderer.TargetDrawFramebuffer, displayDraw)
	ctx.BindFramebuffer(renderer.TargetReadFramebuffer, displayRead)
	s.fbm.Blit(displayDraw, s.surface, s.BlitFilter())
}

// OnTouchEvent tracks whether a pointer is down.
func (s *MengerPrison) OnTouchEvent(e input.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch e.Action {
	case input.ActionDown:
		s.pointerDown = true
	case input.ActionUp, input.ActionCancel:
		s.pointerDown = false
	}
}

// OnDetach resets the rotation source and releases GPU resources.
func (s *MengerPrison) OnDetach(ctx renderer.Context) {
	s.source.Reset()
	if ctx == nil {
		return
	}
	if s.fbm != nil {
		s.fbm.Destroy()
	}
	if s.quad != nil {
		s.quad.Destroy(ctx)
		s.quad = nil
	}
	if s.program != 0 {
		ctx.DeleteProgram(s.program)
		s.program = 0
	}
}

// SetResolutionIndex picks the offscreen resolution; out of range indices
// are clamped. The framebuffer is swapped on the next frame. Safe to call
// from any goroutine.
func (s *MengerPrison) SetResolutionIndex(i int) {
	s.mu.Lock()
	s.resIndex = ClampResolutionIndex(i)
	s.mu.Unlock()
}

// ResolutionIndex returns the selected resolution.
func (s *MengerPrison) ResolutionIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resIndex
}

// Status describes the render resolution as a fraction of the surface.
func (s *MengerPrison) Status() string {
	return fmt.Sprintf("resolution x%g", ResolutionFactors[s.ResolutionIndex()])
}

// Camera returns a copy of the camera state.
func (s *MengerPrison) Camera() CameraState3D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

// Resets counts collisions that restarted the flight.
func (s *MengerPrison) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

// Framebuffers exposes the offscreen framebuffer manager, nil before the
// surface is created.
func (s *MengerPrison) Framebuffers() *renderer.FramebufferManager { return s.fbm }

// BlitFilter is the filter used to present the offscreen image. Nearest
// sampling keeps reduced resolutions blocky instead of blurred.
func (s *MengerPrison) BlitFilter() renderer.Filter { return renderer.FilterNearest }

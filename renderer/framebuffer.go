package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrFramebufferIncomplete is returned when the graphics context rejects a
	// freshly allocated framebuffer.
	ErrFramebufferIncomplete = errors.New("framebuffer incomplete")
	// ErrInvalidSize is returned for zero or negative framebuffer dimensions.
	ErrInvalidSize = errors.New("invalid framebuffer size")
)

// Framebuffer is an offscreen render target with a single colour texture.
type Framebuffer struct {
	ID           uint32
	ColorTexture uint32
	Size         Size
}

// FramebufferManager owns one offscreen framebuffer for one scene. The
// framebuffer is never resized in place: a size change destroys it and
// allocates a new one.
type FramebufferManager struct {
	ctx Context
	fb  Framebuffer

	// Allocations counts successful framebuffer creations.
	Allocations int
}

// NewFramebufferManager returns a manager with no framebuffer allocated.
func NewFramebufferManager(ctx Context) *FramebufferManager {
	return &FramebufferManager{ctx: ctx}
}

// Framebuffer returns the current framebuffer. ID is 0 when none exists.
func (m *FramebufferManager) Framebuffer() Framebuffer { return m.fb }

// Valid reports whether a framebuffer has been allocated.
func (m *FramebufferManager) Valid() bool { return m.fb.ID != 0 }

// EnsureSize makes the managed framebuffer width×height.
//
// It is a no-op when the current framebuffer already matches. Otherwise a new
// framebuffer is allocated with the caller's framebuffer and texture bindings
// saved and restored around it. When the new framebuffer is complete the old
// one is deleted; when it is incomplete the new one is deleted instead, the
// old (stale) framebuffer stays current and ErrFramebufferIncomplete is
// returned.
func (m *FramebufferManager) EnsureSize(width, height int) error {
	size := Size{Width: width, Height: height}
	if size.Empty() {
		return fmt.Errorf("ensure %v: %w", size, ErrInvalidSize)
	}
	if m.fb.ID != 0 && m.fb.Size == size {
		return nil
	}

	ctx := m.ctx
	origDraw := ctx.Integer(BindingDrawFramebuffer)
	origRead := ctx.Integer(BindingReadFramebuffer)
	origUnit := ctx.Integer(BindingActiveTexture)

	fbID := ctx.GenFramebuffer()
	ctx.BindFramebuffer(TargetFramebuffer, fbID)

	texID := ctx.GenTexture()
	ctx.ActiveTexture(0)
	origTex := ctx.Integer(BindingTexture2D)
	ctx.BindTexture2D(texID)
	ctx.TexImage2DRGB(width, height)
	ctx.TexFilter(FilterLinear, FilterLinear)
	ctx.FramebufferTexture2D(texID)

	complete, status := ctx.FramebufferStatus()

	ctx.BindFramebuffer(TargetDrawFramebuffer, origDraw)
	ctx.BindFramebuffer(TargetReadFramebuffer, origRead)
	ctx.BindTexture2D(origTex)
	ctx.ActiveTexture(origUnit)

	if !complete {
		ctx.DeleteFramebuffer(fbID)
		ctx.DeleteTexture(texID)
		Logger().Warn("offscreen framebuffer incomplete",
			"size", size.String(), "status", fmt.Sprintf("0x%X", status),
			"stale", m.fb.ID != 0)
		return fmt.Errorf("ensure %v (status 0x%X): %w", size, status, ErrFramebufferIncomplete)
	}

	m.release()
	m.fb = Framebuffer{ID: fbID, ColorTexture: texID, Size: size}
	m.Allocations++
	Logger().Debug("offscreen framebuffer allocated", "id", fbID, "size", size.String())
	return nil
}

// Blit copies the managed framebuffer onto dst, scaling to dstSize.
func (m *FramebufferManager) Blit(dst uint32, dstSize Size, filter Filter) {
	if m.fb.ID == 0 {
		return
	}
	Blit(m.ctx, m.fb.ID, m.fb.Size, dst, dstSize, filter)
}

// Destroy deletes the framebuffer and its texture.
func (m *FramebufferManager) Destroy() {
	m.release()
}

func (m *FramebufferManager) release() {
	if m.fb.ID != 0 {
		m.ctx.DeleteFramebuffer(m.fb.ID)
	}
	if m.fb.ColorTexture != 0 {
		m.ctx.DeleteTexture(m.fb.ColorTexture)
	}
	m.fb = Framebuffer{}
}

// Blit copies colour buffer 0 of src into dst, scaling between the sizes with
// the given filter. The read and draw bindings in effect before the call are
// restored afterwards.
func Blit(ctx Context, src uint32, srcSize Size, dst uint32, dstSize Size, filter Filter) {
	origDraw := ctx.Integer(BindingDrawFramebuffer)
	origRead := ctx.Integer(BindingReadFramebuffer)

	ctx.BindFramebuffer(TargetReadFramebuffer, src)
	ctx.BindFramebuffer(TargetDrawFramebuffer, dst)
	ctx.BlitFramebuffer(srcSize, dstSize, filter)

	ctx.BindFramebuffer(TargetReadFramebuffer, origRead)
	ctx.BindFramebuffer(TargetDrawFramebuffer, origDraw)
}

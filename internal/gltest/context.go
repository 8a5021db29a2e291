// Package gltest provides a recording renderer.Context for tests that
// exercise GPU-facing code without a GL context.
package gltest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"fractal-explorer/renderer"
)

// BlitCall records one BlitFramebuffer invocation.
type BlitCall struct {
	Read, Draw uint32
	Src, Dst   renderer.Size
	Filter     renderer.Filter
}

// DrawCall records one DrawElements invocation.
type DrawCall struct {
	Program     renderer.Program
	Framebuffer uint32
	Count       int32
}

// Context is a fake renderer.Context that tracks object lifetimes and
// binding state and records the calls made on it. It is not safe for
// concurrent use, mirroring a real GL context.
type Context struct {
	// Incomplete makes FramebufferStatus report failure.
	Incomplete bool
	// CompileErr is returned by NewProgram when set.
	CompileErr error

	DrawFramebuffer uint32
	ReadFramebuffer uint32
	ActiveUnit      uint32
	Texture2D       map[uint32]uint32 // unit -> texture
	CurrentProgram  renderer.Program
	Viewports       [][4]int
	ClearColors     []renderer.Color
	Clears          int

	Framebuffers map[uint32]renderer.Size // live framebuffer -> attached texture size
	Textures     map[uint32]renderer.Size
	Programs     map[renderer.Program]bool
	VertexArrays map[uint32]bool
	Attachments  map[uint32]uint32 // framebuffer -> colour texture
	TexFilters   map[uint32][2]renderer.Filter

	Uniforms map[string]any
	Blits    []BlitCall
	Draws    []DrawCall

	DeletedFramebuffers []uint32
	DeletedTextures     []uint32

	nextID uint32
}

// New returns an empty fake context with the default framebuffer (0) bound.
func New() *Context {
	return &Context{
		Texture2D:    make(map[uint32]uint32),
		Framebuffers: make(map[uint32]renderer.Size),
		Textures:     make(map[uint32]renderer.Size),
		Programs:     make(map[renderer.Program]bool),
		VertexArrays: make(map[uint32]bool),
		Attachments:  make(map[uint32]uint32),
		TexFilters:   make(map[uint32][2]renderer.Filter),
		Uniforms:     make(map[string]any),
	}
}

func (c *Context) id() uint32 {
	c.nextID++
	return c.nextID
}

func (c *Context) NewProgram(vertexSrc, fragmentSrc string) (renderer.Program, error) {
	if c.CompileErr != nil {
		return 0, c.CompileErr
	}
	p := renderer.Program(c.id())
	c.Programs[p] = true
	return p, nil
}

func (c *Context) UseProgram(p renderer.Program) { c.CurrentProgram = p }

func (c *Context) DeleteProgram(p renderer.Program) { delete(c.Programs, p) }

func (c *Context) SetUniform1i(p renderer.Program, name string, v int32)   { c.Uniforms[name] = v }
func (c *Context) SetUniform1f(p renderer.Program, name string, v float32) { c.Uniforms[name] = v }
func (c *Context) SetUniform2f(p renderer.Program, name string, x, y float32) {
	c.Uniforms[name] = mgl32.Vec2{x, y}
}
func (c *Context) SetUniform3f(p renderer.Program, name string, v mgl32.Vec3)   { c.Uniforms[name] = v }
func (c *Context) SetUniformMat2(p renderer.Program, name string, m mgl32.Mat2) { c.Uniforms[name] = m }
func (c *Context) SetUniformMat3(p renderer.Program, name string, m mgl32.Mat3) { c.Uniforms[name] = m }

func (c *Context) NewVertexArray(vertices []float32, indices []uint32) (renderer.VertexArray, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return renderer.VertexArray{}, fmt.Errorf("empty geometry")
	}
	va := renderer.VertexArray{VAO: c.id(), VBO: c.id(), EBO: c.id(), IndexCount: int32(len(indices))}
	c.VertexArrays[va.VAO] = true
	return va, nil
}

func (c *Context) BindVertexArray(va renderer.VertexArray) {}

func (c *Context) DeleteVertexArray(va renderer.VertexArray) { delete(c.VertexArrays, va.VAO) }

func (c *Context) DrawElements(count int32) {
	c.Draws = append(c.Draws, DrawCall{Program: c.CurrentProgram, Framebuffer: c.DrawFramebuffer, Count: count})
}

func (c *Context) ClearColor(col renderer.Color) { c.ClearColors = append(c.ClearColors, col) }
func (c *Context) Clear()                        { c.Clears++ }
func (c *Context) Viewport(x, y, width, height int) {
	c.Viewports = append(c.Viewports, [4]int{x, y, width, height})
}

func (c *Context) GenFramebuffer() uint32 {
	id := c.id()
	c.Framebuffers[id] = renderer.Size{}
	return id
}

func (c *Context) DeleteFramebuffer(id uint32) {
	delete(c.Framebuffers, id)
	delete(c.Attachments, id)
	c.DeletedFramebuffers = append(c.DeletedFramebuffers, id)
}

func (c *Context) BindFramebuffer(target renderer.Target, id uint32) {
	switch target {
	case renderer.TargetFramebuffer:
		c.DrawFramebuffer, c.ReadFramebuffer = id, id
	case renderer.TargetDrawFramebuffer:
		c.DrawFramebuffer = id
	case renderer.TargetReadFramebuffer:
		c.ReadFramebuffer = id
	}
}

func (c *Context) FramebufferTexture2D(texture uint32) {
	c.Attachments[c.DrawFramebuffer] = texture
	c.Framebuffers[c.DrawFramebuffer] = c.Textures[texture]
}

func (c *Context) FramebufferStatus() (bool, uint32) {
	if c.Incomplete {
		return false, 0x8CD6 // FRAMEBUFFER_INCOMPLETE_ATTACHMENT
	}
	return true, 0x8CD5
}

func (c *Context) GenTexture() uint32 {
	id := c.id()
	c.Textures[id] = renderer.Size{}
	return id
}

func (c *Context) DeleteTexture(id uint32) {
	delete(c.Textures, id)
	delete(c.TexFilters, id)
	c.DeletedTextures = append(c.DeletedTextures, id)
}

func (c *Context) ActiveTexture(unit uint32) { c.ActiveUnit = unit }

func (c *Context) BindTexture2D(id uint32) { c.Texture2D[c.ActiveUnit] = id }

func (c *Context) TexImage2DRGB(width, height int) {
	c.Textures[c.Texture2D[c.ActiveUnit]] = renderer.Size{Width: width, Height: height}
}

func (c *Context) TexFilter(min, mag renderer.Filter) {
	c.TexFilters[c.Texture2D[c.ActiveUnit]] = [2]renderer.Filter{min, mag}
}

func (c *Context) Integer(b renderer.Binding) uint32 {
	switch b {
	case renderer.BindingDrawFramebuffer:
		return c.DrawFramebuffer
	case renderer.BindingReadFramebuffer:
		return c.ReadFramebuffer
	case renderer.BindingActiveTexture:
		return c.ActiveUnit
	case renderer.BindingTexture2D:
		return c.Texture2D[c.ActiveUnit]
	}
	return 0
}

func (c *Context) BlitFramebuffer(src, dst renderer.Size, filter renderer.Filter) {
	c.Blits = append(c.Blits, BlitCall{Read: c.ReadFramebuffer, Draw: c.DrawFramebuffer, Src: src, Dst: dst, Filter: filter})
}

// ReadPixels returns a vertical gradient: row y is filled with byte value y.
func (c *Context) ReadPixels(size renderer.Size) []byte {
	buf := make([]byte, size.Width*size.Height*4)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			i := (y*size.Width + x) * 4
			buf[i], buf[i+1], buf[i+2], buf[i+3] = byte(y), byte(y), byte(y), 255
		}
	}
	return buf
}

// DrawsInto returns the draws issued while fb was the draw framebuffer.
func (c *Context) DrawsInto(fb uint32) []DrawCall {
	var out []DrawCall
	for _, d := range c.Draws {
		if d.Framebuffer == fb {
			out = append(out, d)
		}
	}
	return out
}

// Reset clears the recorded calls but keeps object and binding state.
func (c *Context) Reset() {
	c.Blits = nil
	c.Draws = nil
	c.Viewports = nil
	c.ClearColors = nil
	c.Clears = 0
	c.DeletedFramebuffers = nil
	c.DeletedTextures = nil
}

var _ renderer.Context = (*Context)(nil)

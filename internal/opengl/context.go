// Package opengl implements renderer.Context on top of OpenGL 4.1 core.
package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"fractal-explorer/renderer"
)

// Context issues renderer.Context calls to the GL context current on the
// calling thread.
type Context struct {
	uniforms map[renderer.Program]map[string]int32
}

// NewContext loads the GL function pointers. A GL context must be current.
func NewContext() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	renderer.Logger().Info("OpenGL initialized", "version", version)
	return &Context{uniforms: make(map[renderer.Program]map[string]int32)}, nil
}

func (c *Context) NewProgram(vertexSrc, fragmentSrc string) (renderer.Program, error) {
	prog, err := newProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	p := renderer.Program(prog)
	c.uniforms[p] = make(map[string]int32)
	return p, nil
}

func (c *Context) UseProgram(p renderer.Program) { gl.UseProgram(uint32(p)) }

func (c *Context) DeleteProgram(p renderer.Program) {
	gl.DeleteProgram(uint32(p))
	delete(c.uniforms, p)
}

// location caches uniform lookups per program. Uniform setters act on the
// program currently in use, so p must be bound.
func (c *Context) location(p renderer.Program, name string) int32 {
	locs, ok := c.uniforms[p]
	if !ok {
		locs = make(map[string]int32)
		c.uniforms[p] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	locs[name] = loc
	return loc
}

func (c *Context) SetUniform1i(p renderer.Program, name string, v int32) {
	gl.Uniform1i(c.location(p, name), v)
}

func (c *Context) SetUniform1f(p renderer.Program, name string, v float32) {
	gl.Uniform1f(c.location(p, name), v)
}

func (c *Context) SetUniform2f(p renderer.Program, name string, x, y float32) {
	gl.Uniform2f(c.location(p, name), x, y)
}

func (c *Context) SetUniform3f(p renderer.Program, name string, v mgl32.Vec3) {
	gl.Uniform3f(c.location(p, name), v[0], v[1], v[2])
}

func (c *Context) SetUniformMat2(p renderer.Program, name string, m mgl32.Mat2) {
	gl.UniformMatrix2fv(c.location(p, name), 1, false, &m[0])
}

func (c *Context) SetUniformMat3(p renderer.Program, name string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(c.location(p, name), 1, false, &m[0])
}

func (c *Context) NewVertexArray(vertices []float32, indices []uint32) (renderer.VertexArray, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return renderer.VertexArray{}, fmt.Errorf("empty geometry")
	}
	var va renderer.VertexArray
	gl.GenVertexArrays(1, &va.VAO)
	gl.GenBuffers(1, &va.VBO)
	gl.GenBuffers(1, &va.EBO)
	gl.BindVertexArray(va.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, va.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	const stride = int32(4 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	va.IndexCount = int32(len(indices))
	return va, nil
}

func (c *Context) BindVertexArray(va renderer.VertexArray) { gl.BindVertexArray(va.VAO) }

func (c *Context) DeleteVertexArray(va renderer.VertexArray) {
	if va.EBO != 0 {
		gl.DeleteBuffers(1, &va.EBO)
	}
	if va.VBO != 0 {
		gl.DeleteBuffers(1, &va.VBO)
	}
	if va.VAO != 0 {
		gl.DeleteVertexArrays(1, &va.VAO)
	}
}

func (c *Context) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (c *Context) ClearColor(col renderer.Color) { gl.ClearColor(col.R, col.G, col.B, col.A) }

func (c *Context) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (c *Context) DeleteFramebuffer(id uint32) { gl.DeleteFramebuffers(1, &id) }

func (c *Context) BindFramebuffer(target renderer.Target, id uint32) {
	gl.BindFramebuffer(glTarget(target), id)
}

func (c *Context) FramebufferTexture2D(texture uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)
}

func (c *Context) FramebufferStatus() (bool, uint32) {
	s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	return s == gl.FRAMEBUFFER_COMPLETE, s
}

func (c *Context) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (c *Context) DeleteTexture(id uint32) { gl.DeleteTextures(1, &id) }

func (c *Context) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (c *Context) BindTexture2D(id uint32) { gl.BindTexture(gl.TEXTURE_2D, id) }

func (c *Context) TexImage2DRGB(width, height int) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
}

func (c *Context) TexFilter(min, mag renderer.Filter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(mag))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (c *Context) Integer(b renderer.Binding) uint32 {
	var v int32
	switch b {
	case renderer.BindingDrawFramebuffer:
		gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &v)
	case renderer.BindingReadFramebuffer:
		gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &v)
	case renderer.BindingActiveTexture:
		gl.GetIntegerv(gl.ACTIVE_TEXTURE, &v)
		return uint32(v) - gl.TEXTURE0
	case renderer.BindingTexture2D:
		gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &v)
	}
	return uint32(v)
}

func (c *Context) BlitFramebuffer(src, dst renderer.Size, filter renderer.Filter) {
	gl.BlitFramebuffer(
		0, 0, int32(src.Width), int32(src.Height),
		0, 0, int32(dst.Width), int32(dst.Height),
		gl.COLOR_BUFFER_BIT, uint32(glFilter(filter)))
}

func (c *Context) ReadPixels(size renderer.Size) []byte {
	buf := make([]byte, size.Width*size.Height*4)
	if len(buf) == 0 {
		return buf
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(size.Width), int32(size.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}

func glTarget(t renderer.Target) uint32 {
	switch t {
	case renderer.TargetDrawFramebuffer:
		return gl.DRAW_FRAMEBUFFER
	case renderer.TargetReadFramebuffer:
		return gl.READ_FRAMEBUFFER
	}
	return gl.FRAMEBUFFER
}

func glFilter(f renderer.Filter) int32 {
	if f == renderer.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

var _ renderer.Context = (*Context)(nil)

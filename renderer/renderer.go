// Package renderer defines the graphics capability surface the scenes draw
// through, plus the pieces built on top of it that every scene shares: the
// offscreen framebuffer manager, the full-screen quad and the shader sources.
//
// Nothing in this package calls OpenGL directly. internal/opengl provides the
// real Context and internal/gltest a recording fake.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a linear RGBA colour.
type Color struct {
	R, G, B, A float32
}

var (
	ColorRed     = Color{1, 0, 0, 1}
	ColorDarkRed = Color{0.5, 0, 0, 1}
)

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height int
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Filter selects the sampling used when a blit scales.
type Filter int

const (
	FilterNearest Filter = iota // blocky, point sampled
	FilterLinear
)

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Target selects which framebuffer binding point BindFramebuffer changes.
type Target int

const (
	TargetFramebuffer     Target = iota // both draw and read
	TargetDrawFramebuffer
	TargetReadFramebuffer
)

// Binding names a piece of global state readable through Context.Integer.
type Binding int

const (
	BindingDrawFramebuffer Binding = iota
	BindingReadFramebuffer
	BindingActiveTexture // texture unit index, 0 based
	BindingTexture2D     // texture bound to TEXTURE_2D on the active unit
)

// Program is a linked shader program.
type Program uint32

// VertexArray holds the buffer objects of an uploaded indexed mesh.
type VertexArray struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Context is the immediate-mode graphics capability surface. Every method
// must be called from the goroutine that owns the GL context.
type Context interface {
	NewProgram(vertexSrc, fragmentSrc string) (Program, error)
	UseProgram(p Program)
	DeleteProgram(p Program)
	SetUniform1i(p Program, name string, v int32)
	SetUniform1f(p Program, name string, v float32)
	SetUniform2f(p Program, name string, x, y float32)
	SetUniform3f(p Program, name string, v mgl32.Vec3)
	SetUniformMat2(p Program, name string, m mgl32.Mat2)
	SetUniformMat3(p Program, name string, m mgl32.Mat3)

	// NewVertexArray uploads interleaved vec2 position + vec2 uv vertices and
	// a triangle index list.
	NewVertexArray(vertices []float32, indices []uint32) (VertexArray, error)
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)
	DrawElements(count int32)

	ClearColor(c Color)
	Clear()
	Viewport(x, y, width, height int)

	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target Target, id uint32)
	// FramebufferTexture2D attaches texture as colour attachment 0 of the
	// framebuffer bound to TargetFramebuffer.
	FramebufferTexture2D(texture uint32)
	// FramebufferStatus reports whether the framebuffer bound to
	// TargetFramebuffer is complete, with the raw status code.
	FramebufferStatus() (complete bool, status uint32)

	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit uint32)
	BindTexture2D(id uint32)
	// TexImage2DRGB allocates RGB8 storage for the bound 2D texture.
	TexImage2DRGB(width, height int)
	// TexFilter sets min/mag filters and clamp-to-edge wrapping on the bound
	// 2D texture. No mipmaps are generated.
	TexFilter(min, mag Filter)

	Integer(b Binding) uint32

	// BlitFramebuffer copies colour buffer 0 of the read framebuffer,
	// rectangle (0,0)-src, into the draw framebuffer rectangle (0,0)-dst.
	BlitFramebuffer(src, dst Size, filter Filter)
	// ReadPixels returns tightly packed RGBA rows of the read framebuffer,
	// bottom row first.
	ReadPixels(size Size) []byte
}

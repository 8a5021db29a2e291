package renderer

import "fmt"

// quadVertices covers clip space with two triangles: vec2 position, vec2 uv.
var quadVertices = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

// Quad is the full-screen quad both scenes rasterise their fragment shader over.
type Quad struct {
	va VertexArray
}

// NewQuad uploads the quad geometry.
func NewQuad(ctx Context) (*Quad, error) {
	va, err := ctx.NewVertexArray(quadVertices, quadIndices)
	if err != nil {
		return nil, fmt.Errorf("quad: %w", err)
	}
	return &Quad{va: va}, nil
}

// Bind makes the quad's vertex array current.
func (q *Quad) Bind(ctx Context) {
	ctx.BindVertexArray(q.va)
}

// Draw binds and draws the quad with the current program.
func (q *Quad) Draw(ctx Context) {
	ctx.BindVertexArray(q.va)
	ctx.DrawElements(q.va.IndexCount)
}

// Destroy frees the quad's buffers.
func (q *Quad) Destroy(ctx Context) {
	if q.va.VAO == 0 {
		return
	}
	ctx.DeleteVertexArray(q.va)
	q.va = VertexArray{}
}

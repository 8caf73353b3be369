package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/contribscape/internal/engine/picking"
	"github.com/Faultbox/contribscape/internal/engine/scene/shaders"
	"github.com/Faultbox/contribscape/internal/engine/shader"
	"github.com/Faultbox/contribscape/pkg/math"
)

// HighlightColor is the default marker color.
var HighlightColor = [4]float32{1, 1, 1, 0.9}

// LineRenderer draws the hover marker. It implements picking.HighlightLayer;
// at most one marker is resident at a time.
type LineRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	count   int32

	Color [4]float32
}

var _ picking.HighlightLayer = (*LineRenderer)(nil)

// NewLineRenderer compiles the line shader and allocates the marker buffer.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	lr := &LineRenderer{program: program, Color: HighlightColor}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)
	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, picking.MarkerVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return lr, nil
}

// Replace uploads m over the previous marker.
func (lr *LineRenderer) Replace(m *picking.Marker) {
	if m == nil || len(m.Vertices) == 0 {
		lr.Clear()
		return
	}
	verts := m.Vertices
	if len(verts) > picking.MarkerVertexCount*3 {
		verts = verts[:picking.MarkerVertexCount*3]
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	lr.count = int32(len(verts) / 3)
}

// Clear hides the marker.
func (lr *LineRenderer) Clear() {
	lr.count = 0
}

// Render draws the marker if one is set.
func (lr *LineRenderer) Render(viewProj math.Mat4) {
	if lr.count == 0 {
		return
	}
	lr.program.Use()
	lr.program.SetMat4("uViewProj", &viewProj)
	lr.program.SetVec4("uColor", lr.Color)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthFunc(gl.LEQUAL)

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.LINES, 0, lr.count)
	gl.BindVertexArray(0)

	gl.DepthFunc(gl.LESS)
}

// Destroy releases GPU resources.
func (lr *LineRenderer) Destroy() {
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.program != nil {
		lr.program.Delete()
	}
	lr.count = 0
}

package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/contribscape/internal/engine/scene/shaders"
	"github.com/Faultbox/contribscape/internal/engine/shader"
	"github.com/Faultbox/contribscape/pkg/math"
)

// PointRenderer draws the ambient particle field. Positions are streamed
// every frame.
type PointRenderer struct {
	program  *shader.Program
	vao      uint32
	vbo      uint32
	capacity int
	count    int32

	Color [4]float32
	Size  float32
}

// NewPointRenderer allocates room for capacity points.
func NewPointRenderer(capacity int) (*PointRenderer, error) {
	program, err := shader.NewProgram(shaders.PointVertexShader, shaders.PointFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("point shader: %w", err)
	}
	pr := &PointRenderer{
		program:  program,
		capacity: capacity,
		Color:    [4]float32{0.6, 1, 0.7, 0.55},
		Size:     6,
	}

	gl.GenVertexArrays(1, &pr.vao)
	gl.BindVertexArray(pr.vao)
	gl.GenBuffers(1, &pr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, max(capacity, 1)*3*4, nil, gl.STREAM_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return pr, nil
}

// Update uploads positions, 3 floats per point. Points beyond capacity are dropped.
func (pr *PointRenderer) Update(positions []float32) {
	n := min(len(positions)/3, pr.capacity)
	pr.count = int32(n)
	if n == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*3*4, gl.Ptr(positions))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the points with additive blending and no depth writes.
func (pr *PointRenderer) Render(viewProj math.Mat4, eye [3]float32) {
	if pr.count == 0 {
		return
	}
	pr.program.Use()
	pr.program.SetMat4("uViewProj", &viewProj)
	pr.program.SetVec3("uEye", eye)
	pr.program.SetFloat("uPointSize", pr.Size)
	pr.program.SetVec4("uColor", pr.Color)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.DepthMask(false)

	gl.BindVertexArray(pr.vao)
	gl.DrawArrays(gl.POINTS, 0, pr.count)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.PROGRAM_POINT_SIZE)
}

// Destroy releases GPU resources.
func (pr *PointRenderer) Destroy() {
	if pr.vbo != 0 {
		gl.DeleteBuffers(1, &pr.vbo)
		pr.vbo = 0
	}
	if pr.vao != 0 {
		gl.DeleteVertexArrays(1, &pr.vao)
		pr.vao = 0
	}
	if pr.program != nil {
		pr.program.Delete()
	}
}

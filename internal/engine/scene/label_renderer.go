package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/contribscape/internal/engine/scene/shaders"
	"github.com/Faultbox/contribscape/internal/engine/shader"
	"github.com/Faultbox/contribscape/internal/engine/text"
	"github.com/Faultbox/contribscape/pkg/math"
)

// labelQuad is a label resident on the GPU.
type labelQuad struct {
	texture       uint32
	anchor        [3]float32
	width, height float32
}

// LabelRenderer draws text labels as camera-facing billboards.
type LabelRenderer struct {
	program *shader.Program

	// Billboard quad mesh
	vao uint32
	vbo uint32

	labels []labelQuad
	Tint   [4]float32
}

// NewLabelRenderer compiles the billboard shader and builds the unit quad.
func NewLabelRenderer() (*LabelRenderer, error) {
	program, err := shader.NewProgram(shaders.BillboardVertexShader, shaders.BillboardFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("billboard shader: %w", err)
	}
	lr := &LabelRenderer{program: program, Tint: [4]float32{1, 1, 1, 1}}
	lr.createQuad()
	return lr, nil
}

func (lr *LabelRenderer) createQuad() {
	// Corner (XY), TexCoord (UV); the quad's bottom center sits at the origin
	vertices := []float32{
		-0.5, 0.0, 0.0, 1.0,
		0.5, 0.0, 1.0, 1.0,
		0.5, 1.0, 1.0, 0.0,
		-0.5, 0.0, 0.0, 1.0,
		0.5, 1.0, 1.0, 0.0,
		-0.5, 1.0, 0.0, 0.0,
	}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)

	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// SetLabels replaces the resident labels, uploading one texture each.
func (lr *LabelRenderer) SetLabels(labels []text.Label) {
	lr.clearLabels()
	for _, l := range labels {
		if l.Image == nil {
			continue
		}
		w, h := l.Size()
		lr.labels = append(lr.labels, labelQuad{
			texture: uploadRGBA(l.Image.Pix, l.Image.Bounds().Dx(), l.Image.Bounds().Dy()),
			anchor:  l.Anchor,
			width:   w,
			height:  h,
		})
	}
}

// Count returns the number of resident labels.
func (lr *LabelRenderer) Count() int {
	return len(lr.labels)
}

func uploadRGBA(pix []uint8, width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Render draws every label facing the camera described by view.
func (lr *LabelRenderer) Render(viewProj, view math.Mat4) {
	if lr.vao == 0 || len(lr.labels) == 0 {
		return
	}
	camRight, camUp := view.ViewAxes()

	lr.program.Use()
	lr.program.SetMat4("uViewProj", &viewProj)
	lr.program.SetVec3("uCamRight", camRight.Array())
	lr.program.SetVec3("uCamUp", camUp.Array())
	lr.program.SetVec4("uTint", lr.Tint)
	lr.program.SetInt("uTexture", 0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	// Keep depth testing, skip depth writes
	gl.DepthMask(false)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(lr.vao)
	for _, l := range lr.labels {
		lr.program.SetVec3("uWorldPos", l.anchor)
		lr.program.SetVec2("uSpriteSize", l.width, l.height)
		gl.BindTexture(gl.TEXTURE_2D, l.texture)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.DepthMask(true)
}

func (lr *LabelRenderer) clearLabels() {
	for i := range lr.labels {
		gl.DeleteTextures(1, &lr.labels[i].texture)
	}
	lr.labels = lr.labels[:0]
}

// Destroy releases all resources.
func (lr *LabelRenderer) Destroy() {
	lr.clearLabels()
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	if lr.program != nil {
		lr.program.Delete()
	}
}

package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/contribscape/internal/engine/lighting"
	"github.com/Faultbox/contribscape/internal/engine/scene/shaders"
	"github.com/Faultbox/contribscape/internal/engine/shader"
	"github.com/Faultbox/contribscape/internal/engine/shadow"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/pkg/math"
)

// Shadows is the state of the shadow pass handed to the lit pass.
type Shadows struct {
	Map           *shadow.Map
	LightViewProj math.Mat4
	// Strength is how dark full shadow is, 0 disables the lookup.
	Strength float32
}

// TerrainRenderer draws the closed terrain mesh with per-vertex colors.
type TerrainRenderer struct {
	program      *shader.Program
	depthProgram *shader.Program

	vao        uint32
	posVBO     uint32
	colorVBO   uint32
	normalVBO  uint32
	ebo        uint32
	indexCount int32

	// Bounds
	MinBounds [3]float32
	MaxBounds [3]float32
}

// NewTerrainRenderer compiles the terrain and depth shaders.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	depth, err := shader.NewProgram(shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("depth shader: %w", err)
	}
	return &TerrainRenderer{program: program, depthProgram: depth}, nil
}

// LoadMesh uploads mesh, replacing any previous one.
func (tr *TerrainRenderer) LoadMesh(mesh *terrain.Mesh) error {
	if len(mesh.Indices) == 0 {
		return fmt.Errorf("terrain mesh has no triangles")
	}
	tr.clearMesh()

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	tr.posVBO = uploadAttrib(0, mesh.Positions)
	tr.colorVBO = uploadAttrib(1, mesh.Colors)
	tr.normalVBO = uploadAttrib(2, mesh.Normals)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	tr.indexCount = int32(len(mesh.Indices))
	tr.MinBounds = mesh.Bounds.Min
	tr.MaxBounds = mesh.Bounds.Max
	return nil
}

// uploadAttrib creates a static VBO of vec3s bound to attribute location
// loc of the current VAO.
func uploadAttrib(loc uint32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

// RenderDepth draws the terrain into the bound shadow map.
func (tr *TerrainRenderer) RenderDepth(lightViewProj math.Mat4) {
	if tr.vao == 0 {
		return
	}
	tr.depthProgram.Use()
	tr.depthProgram.SetMat4("uLightViewProj", &lightViewProj)

	gl.BindVertexArray(tr.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Render draws the lit terrain. sh may be nil.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, eye [3]float32, sun lighting.Sun, fog Fog, sh *Shadows) {
	if tr.vao == 0 {
		return
	}

	tr.program.Use()
	tr.program.SetMat4("uViewProj", &viewProj)
	tr.program.SetVec3("uLightDir", sun.Direction())
	tr.program.SetVec3("uDiffuse", sun.Diffuse)
	tr.program.SetFloat("uAmbient", sun.Ambient)
	tr.program.SetVec3("uEye", eye)
	tr.program.SetVec3("uFogColor", fog.Color)
	tr.program.SetFloat("uFogNear", fog.Near)
	tr.program.SetFloat("uFogFar", fog.Far)

	if sh != nil && sh.Map != nil {
		sh.Map.BindTexture(gl.TEXTURE1)
		tr.program.SetInt("uShadowMap", 1)
		tr.program.SetMat4("uLightViewProj", &sh.LightViewProj)
		tr.program.SetFloat("uShadowStrength", sh.Strength)
	} else {
		tr.program.SetFloat("uShadowStrength", 0)
	}

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.BindVertexArray(tr.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)

	gl.Disable(gl.CULL_FACE)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (tr *TerrainRenderer) clearMesh() {
	for _, vbo := range []*uint32{&tr.posVBO, &tr.colorVBO, &tr.normalVBO, &tr.ebo} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	tr.indexCount = 0
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearMesh()
	if tr.program != nil {
		tr.program.Delete()
	}
	if tr.depthProgram != nil {
		tr.depthProgram.Delete()
	}
}

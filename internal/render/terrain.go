// Package render draws the terrain mesh with OpenGL 4.1 core. Every call
// must happen on the goroutine that owns the GL context.
package render

import (
	_ "embed"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/camera"
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/terrain"
)

var (
	//go:embed shaders/terrain.vert
	terrainVert string
	//go:embed shaders/terrain.frag
	terrainFrag string
)

// Sky is the clear color.
var Sky = mgl32.Vec4{0.53, 0.73, 0.92, 1}

var lightDir = mgl32.Vec3{-0.4, -1, -0.3}

// TerrainRenderer owns the GPU copy of one terrain.Mesh.
type TerrainRenderer struct {
	shader *Shader
	vao    uint32
	vbo    uint32 // positions
	cbo    uint32 // colors
	ebo    uint32

	indexCount int32
	generation uint64
}

// NewTerrainRenderer compiles the terrain program and allocates buffers.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	shader, err := NewShader(terrainVert, terrainFrag)
	if err != nil {
		return nil, err
	}
	r := &TerrainRenderer{shader: shader}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &r.cbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cbo)
	gl.VertexAttribPointerWithOffset(1, 4, gl.UNSIGNED_BYTE, true, 4, 0)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	return r, nil
}

// Generation returns the generation of the last uploaded mesh.
func (r *TerrainRenderer) Generation() uint64 { return r.generation }

// Upload replaces the GPU buffers with m. The mesh is copied; the caller
// keeps ownership.
func (r *TerrainRenderer) Upload(m terrain.Mesh, generation uint64) {
	defer profiling.Track("render.Upload")()

	r.generation = generation
	r.indexCount = int32(len(m.Indices))

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*int(unsafe.Sizeof(mgl32.Vec3{})), bufferPtr(m.Positions), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Colors)*4, bufferPtr(m.Colors), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, bufferPtr(m.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
}

func bufferPtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}

// Draw renders the uploaded mesh from pose.
func (r *TerrainRenderer) Draw(pose camera.Pose, aspect float32, wireframe bool) {
	defer profiling.Track("render.Draw")()

	gl.ClearColor(Sky[0], Sky[1], Sky[2], Sky[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.indexCount == 0 {
		return
	}

	if wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.shader.Use()
	r.shader.SetMat4("viewProj", pose.ViewProjection(aspect))
	r.shader.SetVec3("lightDir", lightDir)
	r.shader.SetBool("wireframe", wireframe)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Dispose frees GPU resources.
func (r *TerrainRenderer) Dispose() {
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.cbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteVertexArrays(1, &r.vao)
	r.shader.Delete()
}

package wireframe

import (
	"voxel-viewer/internal/graphics"
	"voxel-viewer/internal/graphics/renderer"
	"voxel-viewer/internal/profiling"
	"voxel-viewer/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// outlineScale lifts the outline just off the block faces.
const outlineScale = 1.01

var outlineColor = mgl32.Vec3{0, 0, 0}

// Wireframe outlines the block under the crosshair.
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.LoadShader(graphics.ShaderLine)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(world.CubeWireframeVertices)*4, gl.Ptr(world.CubeWireframeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

// Model places the unit outline around cell p.
func Model(w *world.World, p world.GridPos) mgl32.Mat4 {
	c := w.GridToWorld(p)
	s := 2 * w.CubeSize() * outlineScale
	return mgl32.Translate3D(c[0], c[1], c[2]).Mul4(mgl32.Scale3D(s, s, s))
}

func (w *Wireframe) Render(ctx *renderer.RenderContext) error {
	if !ctx.Target.Hit {
		return nil
	}
	defer profiling.Track("renderer.wireframe")()

	w.shader.Use()
	w.shader.SetMat4("proj", ctx.Proj)
	w.shader.SetMat4("view", ctx.View)
	w.shader.SetMat4("model", Model(ctx.World, ctx.Target.HitPosition))
	w.shader.SetVec3("color", outlineColor)

	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(world.CubeWireframeVertices)/3))
	gl.BindVertexArray(0)
	return nil
}

func (w *Wireframe) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
		w.vao = 0
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
		w.vbo = 0
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}

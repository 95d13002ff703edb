package crosshair

import (
	"voxel-viewer/internal/graphics"
	"voxel-viewer/internal/graphics/renderer"
	"voxel-viewer/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultArm is the half-length of each line in normalised device units.
const DefaultArm = 0.02

// Vertices returns the two line segments of a plus sign with the given arm.
func Vertices(arm float32) []float32 {
	return []float32{
		-arm, 0, arm, 0,
		0, -arm, 0, arm,
	}
}

// Crosshair draws a plus sign at the screen centre.
type Crosshair struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	count  int32
}

// NewCrosshair creates a new crosshair renderable
func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

func (c *Crosshair) Init() error {
	var err error
	c.shader, err = graphics.LoadShader(graphics.ShaderCrosshair)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	verts := Vertices(DefaultArm)
	c.count = int32(len(verts) / 2)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (c *Crosshair) Render(ctx *renderer.RenderContext) error {
	defer profiling.Track("renderer.crosshair")()

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	c.shader.Use()
	c.shader.SetFloat("aspectRatio", ctx.Aspect)
	gl.BindVertexArray(c.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, c.count)
	gl.BindVertexArray(0)
	return nil
}

func (c *Crosshair) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (c *Crosshair) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}

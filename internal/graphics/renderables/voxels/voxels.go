package voxels

import (
	"errors"
	"fmt"

	"voxel-viewer/internal/graphics"
	"voxel-viewer/internal/graphics/renderer"
	"voxel-viewer/internal/logging"
	"voxel-viewer/internal/profiling"
	"voxel-viewer/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var ErrBufferCreate = errors.New("voxels: GPU buffer unavailable")

// Buffer slots.
const (
	bufPositions = iota
	bufUVs
	bufNormals
	bufInstances
	bufCulled
	bufCount
)

// Texture units.
const (
	unitBlocks = 0
	unitShadow = 1
)

type attribute struct {
	Name     string
	Location uint32
	Buffer   int
	Size     int32
	Integer  bool // int16 components read as ivec
	Divisor  uint32
}

// attributes mirrors the inputs of the voxel and depth vertex shaders.
var attributes = [...]attribute{
	{Name: "aPos", Location: 0, Buffer: bufPositions, Size: 3},
	{Name: "aUV", Location: 1, Buffer: bufUVs, Size: 2},
	{Name: "aNormal", Location: 2, Buffer: bufNormals, Size: 3},
	{Name: "aInstance", Location: 3, Buffer: bufInstances, Size: world.InstanceStride, Integer: true, Divisor: 1},
}

const instanceAttribute = 3

func (a attribute) stride() int32 {
	if a.Integer {
		return a.Size * 2
	}
	return a.Size * 4
}

// Voxels draws the visible world cache as one instanced cube draw.
type Voxels struct {
	shader      *graphics.Shader
	textures    *graphics.TextureArray
	texturesDir string
	log         logging.Logger

	vao      uint32
	buffers  [bufCount]uint32
	capacity [bufCount]int // bytes allocated per buffer

	positionsReady  bool
	attributesReady bool

	culled []int16
}

func New(texturesDir string, log logging.Logger) *Voxels {
	return &Voxels{texturesDir: texturesDir, log: logging.OrNop(log)}
}

func (v *Voxels) Init() error {
	var err error
	v.shader, err = graphics.LoadShader(graphics.ShaderVoxel)
	if err != nil {
		return err
	}

	layers, err := graphics.PrepareLayers(v.texturesDir, world.TextureNames(), graphics.DefaultLayerSize, v.log)
	if err != nil {
		return err
	}
	v.textures, err = graphics.NewTextureArray(layers)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &v.vao)
	if v.vao == 0 {
		return fmt.Errorf("%w: vertex array", ErrBufferCreate)
	}
	for i := range v.buffers {
		gl.GenBuffers(1, &v.buffers[i])
		if v.buffers[i] == 0 {
			return fmt.Errorf("%w: buffer %d", ErrBufferCreate, i)
		}
	}

	gl.BindVertexArray(v.vao)
	for _, a := range attributes {
		v.pointAttribute(a, v.buffers[a.Buffer])
	}
	gl.BindVertexArray(0)

	v.shader.Use()
	v.shader.SetInt("blockTextures", unitBlocks)
	v.shader.SetInt("shadowMap", unitShadow)
	return nil
}

func (v *Voxels) pointAttribute(a attribute, buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.EnableVertexAttribArray(a.Location)
	if a.Integer {
		gl.VertexAttribIPointerWithOffset(a.Location, a.Size, gl.SHORT, a.stride(), 0)
	} else {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, a.stride(), 0)
	}
	gl.VertexAttribDivisor(a.Location, a.Divisor)
}

func (v *Voxels) ready() error {
	if v.vao == 0 || v.buffers[bufInstances] == 0 {
		return fmt.Errorf("%w: Init has not created the instance buffer", ErrBufferCreate)
	}
	return nil
}

// upload writes data into buffer slot i, growing the store when needed.
func (v *Voxels) upload(i int, data any, bytes int) {
	if bytes == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, v.buffers[i])
	if bytes > v.capacity[i] {
		gl.BufferData(gl.ARRAY_BUFFER, bytes, gl.Ptr(data), gl.DYNAMIC_DRAW)
		v.capacity[i] = bytes
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, bytes, gl.Ptr(data))
}

// sync uploads the mesh once and the instances when the batch is stale. It
// reports whether instances were uploaded.
func (v *Voxels) sync(w *world.World, b world.RenderBatch) bool {
	defer profiling.Track("renderer.voxels.sync")()

	if !v.positionsReady && len(b.Vertices) > 0 {
		v.upload(bufPositions, b.Vertices, len(b.Vertices)*4)
		v.positionsReady = true
	}
	if !v.attributesReady && b.UVs != nil {
		v.upload(bufUVs, b.UVs, len(b.UVs)*4)
		v.upload(bufNormals, b.Normals, len(b.Normals)*4)
		v.attributesReady = true
	}

	if !b.Stale {
		return false
	}
	v.upload(bufInstances, b.Instances, len(b.Instances)*2)
	w.MarkUploaded()
	return true
}

func (v *Voxels) draw(count int) {
	if count == 0 {
		return
	}
	gl.BindVertexArray(v.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, world.CubeVertexCount, int32(count))
}

// Render draws the lit, textured cubes.
func (v *Voxels) Render(ctx *renderer.RenderContext) error {
	if err := v.ready(); err != nil {
		return err
	}
	defer profiling.Track("renderer.voxels")()

	b := ctx.World.RenderInstances(false)
	uploaded := v.sync(ctx.World, b)

	count := b.Count
	if ctx.CPUCull {
		v.culled = ctx.World.CullInstances(ctx.Camera, v.culled)
		count = len(v.culled) / world.InstanceStride
		v.upload(bufCulled, v.culled, len(v.culled)*2)
		gl.BindVertexArray(v.vao)
		v.pointAttribute(attributes[instanceAttribute], v.buffers[bufCulled])
		defer v.pointAttribute(attributes[instanceAttribute], v.buffers[bufInstances])
	}

	v.shader.Use()
	v.shader.SetMat4("view", ctx.View)
	v.shader.SetMat4("proj", ctx.Proj)
	v.shader.SetMat4("lightSpace", ctx.LightSpace)
	v.shader.SetVec3("gridOrigin", ctx.World.GridOrigin())
	v.shader.SetFloat("cubeSize", ctx.World.CubeSize())
	v.shader.SetVec3("eye", ctx.Eye)
	v.shader.SetVec3("lightDir", ctx.Light.Direction.Normalize())
	v.shader.SetVec4("illumination", ctx.Light.Illumination)
	v.shader.SetFloat("ambient", ctx.Light.Ambient)
	v.shader.SetFloat("specularExp", ctx.Light.SpecularExp)

	v.textures.Bind(unitBlocks)
	v.shader.SetBool("shadowsEnabled", ctx.ShadowMap != 0)
	if ctx.ShadowMap != 0 {
		gl.ActiveTexture(gl.TEXTURE0 + unitShadow)
		gl.BindTexture(gl.TEXTURE_2D, ctx.ShadowMap)
	}

	if ctx.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	v.draw(count)
	gl.BindVertexArray(0)

	if ctx.Metrics != nil {
		ctx.Metrics.ObserveDraw(count, uploaded)
	}
	return nil
}

// RenderDepth draws every visible instance with the currently bound program.
// The shadow pass uses it with the depth shader.
func (v *Voxels) RenderDepth(ctx *renderer.RenderContext) error {
	if err := v.ready(); err != nil {
		return err
	}
	b := ctx.World.RenderInstances(true)
	v.sync(ctx.World, b)
	v.draw(b.Count)
	gl.BindVertexArray(0)
	return nil
}

func (v *Voxels) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (v *Voxels) Dispose() {
	for i := range v.buffers {
		if v.buffers[i] != 0 {
			gl.DeleteBuffers(1, &v.buffers[i])
			v.buffers[i] = 0
		}
	}
	v.capacity = [bufCount]int{}
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
		v.vao = 0
	}
	if v.textures != nil {
		v.textures.Delete()
	}
	if v.shader != nil {
		v.shader.Delete()
	}
	v.positionsReady, v.attributesReady = false, false
}

package shadow

import (
	"errors"
	"fmt"

	"voxel-viewer/internal/graphics"
	"voxel-viewer/internal/graphics/renderer"
	"voxel-viewer/internal/logging"
	"voxel-viewer/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var ErrFramebufferIncomplete = errors.New("shadow: framebuffer incomplete")

const (
	DefaultMapSize  = 2048
	DefaultDistance = 64
)

// DepthRenderer draws scene geometry with the currently bound program.
type DepthRenderer interface {
	RenderDepth(ctx *renderer.RenderContext) error
}

// Shadow renders the scene depth from the light into a depth texture and
// publishes it through the render context.
type Shadow struct {
	caster   DepthRenderer
	size     int
	distance float32
	log      logging.Logger

	shader   *graphics.Shader
	fbo      uint32
	depthTex uint32

	width, height int
}

func New(caster DepthRenderer, size int, distance float32, log logging.Logger) *Shadow {
	if size <= 0 {
		size = DefaultMapSize
	}
	if distance <= 0 {
		distance = DefaultDistance
	}
	return &Shadow{caster: caster, size: size, distance: distance, log: logging.OrNop(log)}
}

func (s *Shadow) Init() error {
	var err error
	s.shader, err = graphics.LoadShader(graphics.ShaderDepth)
	if err != nil {
		return err
	}

	gl.GenTextures(1, &s.depthTex)
	gl.BindTexture(gl.TEXTURE_2D, s.depthTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, int32(s.size), int32(s.size), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &s.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, s.depthTex, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: status 0x%x", ErrFramebufferIncomplete, status)
	}

	s.log.Debugf("shadow map %dx%d, distance %.0f", s.size, s.size, s.distance)
	return nil
}

func (s *Shadow) Render(ctx *renderer.RenderContext) error {
	defer profiling.Track("renderer.shadow")()

	camMin, camMax := ctx.Camera.AxisAlignedBoundingBox()
	worldMin, worldMax := ctx.World.Bounds()
	lo, hi := Region(ctx.Eye, camMin, camMax, worldMin, worldMax, s.distance)
	lightSpace := LightSpaceMatrix(ctx.Light.Direction, lo, hi)

	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, int32(s.size), int32(s.size))
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.CullFace(gl.FRONT)

	s.shader.Use()
	s.shader.SetMat4("lightSpace", lightSpace)
	s.shader.SetVec3("gridOrigin", ctx.World.GridOrigin())
	s.shader.SetFloat("cubeSize", ctx.World.CubeSize())
	err := s.caster.RenderDepth(ctx)

	gl.CullFace(gl.BACK)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	if err != nil {
		return err
	}

	ctx.LightSpace = lightSpace
	ctx.ShadowMap = s.depthTex
	return nil
}

func (s *Shadow) SetViewport(width, height int) {
	s.width, s.height = width, height
}

func (s *Shadow) Dispose() {
	if s.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.fbo)
		s.fbo = 0
	}
	if s.depthTex != 0 {
		gl.DeleteTextures(1, &s.depthTex)
		s.depthTex = 0
	}
	if s.shader != nil {
		s.shader.Delete()
	}
}

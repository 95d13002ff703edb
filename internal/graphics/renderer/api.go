package renderer

import (
	"voxel-viewer/internal/camera"
	"voxel-viewer/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is the single directional light of the scene.
type Light struct {
	Direction    mgl32.Vec3 // towards the light
	Illumination mgl32.Vec4
	Ambient      float32
	SpecularExp  float32
}

func DefaultLight() Light {
	return Light{
		Direction:    mgl32.Vec3{0, 5, 1},
		Illumination: mgl32.Vec4{0.5, 0.5, 0.5, 1},
		Ambient:      0.4,
		SpecularExp:  2,
	}
}

// DrawObserver receives per-frame draw statistics.
type DrawObserver interface {
	ObserveDraw(count int, uploaded bool)
}

// RenderContext is built once per frame and passed to every renderable in
// order. Earlier passes may fill fields read by later ones.
type RenderContext struct {
	Camera *camera.Camera
	World  *world.World
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
	Eye    mgl32.Vec3
	Aspect float32

	Light Light
	// LightSpace and ShadowMap are set by the shadow pass. ShadowMap is 0 when
	// no shadow pass ran this frame.
	LightSpace mgl32.Mat4
	ShadowMap  uint32

	// Target is the cell under the crosshair.
	Target world.RaycastResult

	CPUCull   bool
	Wireframe bool

	Metrics DrawObserver
}

// NewRenderContext fills the camera-derived fields.
func NewRenderContext(cam *camera.Camera, w *world.World, dt float64) *RenderContext {
	return &RenderContext{
		Camera:     cam,
		World:      w,
		DT:         dt,
		View:       cam.ViewMatrix(),
		Proj:       cam.ProjectionMatrix(),
		Eye:        cam.Eye(),
		Aspect:     cam.Aspect(),
		Light:      DefaultLight(),
		LightSpace: mgl32.Ident4(),
	}
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx *RenderContext) error
	Dispose()
	SetViewport(width, height int)
}

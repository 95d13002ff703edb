package renderer

import (
	"fmt"

	"voxel-viewer/internal/logging"
	"voxel-viewer/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer runs its renderables in order every frame.
type Renderer struct {
	renderables []Renderable
	initialized bool
	log         logging.Logger

	ClearColor mgl32.Vec4
	width      int
	height     int
}

// NewRenderer creates a new renderer with the given renderables
func NewRenderer(log logging.Logger, rs ...Renderable) *Renderer {
	return &Renderer{
		renderables: rs,
		log:         logging.OrNop(log),
		ClearColor:  mgl32.Vec4{0.53, 0.81, 0.92, 1.0},
	}
}

// Init configures GL state and initialises every renderable. On failure the
// renderables initialised so far are disposed.
func (r *Renderer) Init() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	for i, rd := range r.renderables {
		if err := rd.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				r.renderables[j].Dispose()
			}
			return fmt.Errorf("renderable %d (%T): %w", i, rd, err)
		}
	}
	r.initialized = true
	r.log.Debugf("renderer initialised with %d renderables", len(r.renderables))
	return nil
}

// Render clears the default framebuffer and runs every renderable. It
// panics when called before Init.
func (r *Renderer) Render(ctx *RenderContext) error {
	if !r.initialized {
		r.log.Errorf("Render called before Init")
		panic("renderer: Render called before Init")
	}
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(r.ClearColor[0], r.ClearColor[1], r.ClearColor[2], r.ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, rd := range r.renderables {
		if err := rd.Render(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SetViewport resizes the default framebuffer viewport and forwards the
// size to every renderable.
func (r *Renderer) SetViewport(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	for _, rd := range r.renderables {
		rd.SetViewport(width, height)
	}
}

func (r *Renderer) Viewport() (width, height int) { return r.width, r.height }

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	if !r.initialized {
		return
	}
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.initialized = false
}

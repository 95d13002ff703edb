package viewer

import (
	"time"

	"voxel-viewer/internal/config"
	"voxel-viewer/internal/graphics/renderer"
	"voxel-viewer/internal/logging"
	"voxel-viewer/internal/metrics"
	"voxel-viewer/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the processing time above which a frame is logged.
const slowFrame = 16 * time.Millisecond

// App drives the window loop: input, viewer update, render, frame pacing.
type App struct {
	window   *glfw.Window
	viewer   *Viewer
	renderer *renderer.Renderer
	metrics  *metrics.Exporter // may be nil
	log      logging.Logger

	fpsLimiter *FPSLimiter
	counter    frameCounter
	lastTime   time.Time
	captured   bool
	err        error
}

func NewApp(window *glfw.Window, v *Viewer, r *renderer.Renderer, m *metrics.Exporter, log logging.Logger) *App {
	a := &App{
		window:     window,
		viewer:     v,
		renderer:   r,
		metrics:    m,
		log:        logging.OrNop(log),
		fpsLimiter: NewFPSLimiter(),
		lastTime:   time.Now(),
	}

	v.Input.Attach(window)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.SetViewport(width, height)
	})
	window.SetRefreshCallback(func(w *glfw.Window) {
		a.render(0)
		w.SwapBuffers()
	})

	width, height := window.GetFramebufferSize()
	a.SetViewport(width, height)
	return a
}

// SetViewport resizes the renderer and updates the camera aspect ratio.
func (a *App) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.renderer.SetViewport(width, height)
	a.viewer.Camera.SetAspect(float32(width) / float32(height))
}

// Run loops until the window is closed or rendering fails.
func (a *App) Run() error {
	a.log.Infof("world %d rows, %d blocks; instance cache cold=%t",
		a.viewer.World.Depth(), a.viewer.World.TotalBlocks(), a.viewer.World.Cold())
	for !a.window.ShouldClose() && a.err == nil {
		a.tick()
	}
	return a.err
}

func (a *App) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime).Seconds()
	a.lastTime = start

	glfw.PollEvents()

	if a.viewer.Update(dt) {
		a.window.SetShouldClose(true)
	}
	a.syncCursor()

	a.render(dt)
	a.window.SwapBuffers()

	elapsed := time.Since(start)
	if elapsed > slowFrame {
		a.log.Infof("Slow frame: %v. Top tasks: %s", elapsed, profiling.TopN(5))
	}
	if a.metrics != nil {
		a.metrics.ObserveFrame(elapsed)
	}
	a.frameStats(time.Now())

	a.viewer.Input.PostUpdate()
	a.fpsLimiter.Wait()
}

func (a *App) render(dt float64) {
	v := a.viewer
	ctx := renderer.NewRenderContext(v.Camera, v.World, dt)
	ctx.Target = v.Target
	ctx.CPUCull = config.GetCPUCull()
	ctx.Wireframe = v.Wireframe
	if a.metrics != nil {
		ctx.Metrics = a.metrics
	}

	if err := a.renderer.Render(ctx); err != nil {
		a.log.Errorf("render: %v", err)
		a.err = err
	}
}

func (a *App) frameStats(now time.Time) {
	if !a.counter.tick(now) {
		return
	}
	stats := a.viewer.World.Stats()
	if a.metrics != nil {
		a.metrics.SetFPS(a.counter.fps)
		a.metrics.ObserveWorld(stats)
	}
	a.log.Debugf("fps=%d visible=%d/%d total=%d edits=%d desyncs=%d",
		a.counter.fps, stats.Visible, stats.Capacity, stats.Total, stats.Edits, stats.Desyncs)
	if a.viewer.Profiling {
		a.log.Infof("profile: %s", profiling.TopN(8))
	}
}

func (a *App) syncCursor() {
	if a.captured == a.viewer.CursorCaptured {
		return
	}
	a.captured = a.viewer.CursorCaptured
	if a.captured {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.viewer.Input.ResetCursor()
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

package main

import (
	"fmt"

	"voxel-viewer/internal/config"
	"voxel-viewer/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	forward = mgl32.Vec3{0, 0, -1}
	up      = mgl32.Vec3{0, 1, 0}
)

func setupWindow(ws config.WindowSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(ws.Width, ws.Height, ws.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	glfw.SwapInterval(0)
	return window, nil
}

// spawnPoint is one block above the column at the centre of the world.
func spawnPoint(w *world.World) mgl32.Vec3 {
	z := w.Depth() / 2
	x := w.Width(z) / 2
	p := world.GridPos{X: x, Y: w.ColumnHeight(x, z) + 1, Z: z}
	return w.GridToWorld(p)
}

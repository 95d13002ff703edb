package viewer

import (
	"math"
	"testing"
	"time"

	"voxel-viewer/internal/camera"
	"voxel-viewer/internal/config"
	"voxel-viewer/internal/input"
	"voxel-viewer/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / referenceFPS

func withDefaults(t *testing.T) {
	t.Helper()
	config.Apply(config.Default())
	t.Cleanup(func() { config.Apply(config.Default()) })
}

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	withDefaults(t)

	heights := [][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
	w, err := world.New(heights, world.DefaultOptions())
	require.NoError(t, err)

	cam := camera.New(1)
	return New(cam, w, input.NewInputManager(), nil)
}

func lookY(v *Viewer) float64 {
	return float64(v.Camera.LookDir().Y())
}

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }

func TestInitialTiltFollowsCamera(t *testing.T) {
	v := newTestViewer(t)
	assert.InDelta(t, 0, v.Tilt(), 1e-4)

	v.Camera.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, -1}, mgl32.Vec3{0, 1, 0})
	v = New(v.Camera, v.World, v.Input, nil)
	assert.InDelta(t, -45, v.Tilt(), 1e-3)
}

func TestTiltSaturatesAtMaxPitch(t *testing.T) {
	v := newTestViewer(t)
	config.SetMaxPitch(85)

	v.TiltBy(50)
	assert.InDelta(t, 50, v.Tilt(), 1e-4)
	assert.InDelta(t, -sinDeg(50), lookY(v), 1e-4, "positive tilt looks down")

	v.TiltBy(50)
	assert.InDelta(t, 85, v.Tilt(), 1e-4)
	assert.InDelta(t, -sinDeg(50), lookY(v), 1e-4, "camera is not moved past the limit")

	v.TiltBy(-60)
	assert.InDelta(t, 25, v.Tilt(), 1e-4)

	v.TiltBy(-200)
	assert.InDelta(t, -85, v.Tilt(), 1e-4)
}

func TestPanKeysAndMouse(t *testing.T) {
	v := newTestViewer(t)
	config.SetPanSpeed(5)
	config.SetMouseSensitivity(0.5)

	v.Input.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	v.Update(frame)
	assert.InDelta(t, -5, v.Tilt(), 1e-3)
	assert.Greater(t, lookY(v), 0.0, "pan up raises the view")
	v.Input.HandleKeyEvent(glfw.KeyUp, glfw.Release)
	v.Input.PostUpdate()

	// Mouse motion only applies while the cursor is captured.
	v.Input.HandleCursorPos(100, 100)
	v.Input.HandleCursorPos(100, 120)
	v.Update(frame)
	assert.InDelta(t, -5, v.Tilt(), 1e-3)
	v.Input.PostUpdate()

	v.CursorCaptured = true
	v.Input.HandleCursorPos(100, 130)
	v.Update(frame)
	assert.InDelta(t, 0, v.Tilt(), 1e-3)
}

func TestMovementScalesWithFrameTime(t *testing.T) {
	v := newTestViewer(t)
	config.SetMoveSpeed(0.5)

	v.Input.HandleKeyEvent(glfw.KeyW, glfw.Press)
	v.Update(2 * frame)
	assert.InDelta(t, -1, v.Camera.Eye().Z(), 1e-4)
}

func TestFirstClickCapturesCursor(t *testing.T) {
	v := newTestViewer(t)
	target := world.GridPos{X: 1, Y: 0, Z: 1}
	v.Camera.LookAt(mgl32.Vec3{0, 5, 0}, v.World.GridToWorld(target), mgl32.Vec3{0, 1, 0})

	v.Input.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	v.Update(frame)
	assert.True(t, v.CursorCaptured)
	assert.Equal(t, world.BlockGrass, v.World.Block(target))
	v.Input.PostUpdate()

	v.Input.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Release)
	v.Input.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	v.Update(frame)
	assert.True(t, v.World.Block(target).IsAir(), "edit targets the camera look-at point")
	assert.Equal(t, 1, v.World.Stats().Edits)
}

func TestEditPlacesSelectedBlock(t *testing.T) {
	v := newTestViewer(t)
	v.CursorCaptured = true
	target := world.GridPos{X: 1, Y: 1, Z: 1}
	v.Camera.LookAt(mgl32.Vec3{0, 5, 0.01}, v.World.GridToWorld(target), mgl32.Vec3{0, 1, 0})

	v.Input.HandleKeyEvent(glfw.Key5, glfw.Press)
	v.Update(frame)
	assert.Equal(t, world.BlockCobblestone, v.World.PlaceBlock())
	v.Input.PostUpdate()

	assert.True(t, v.Edit(true))
	assert.Equal(t, world.BlockCobblestone, v.World.Block(target))
	assert.False(t, v.Edit(true), "placing into a solid cell is a no-op")
}

func TestToggles(t *testing.T) {
	v := newTestViewer(t)
	v.World.FillOffsetCache()
	require.False(t, v.World.Cold())

	for _, k := range []glfw.Key{glfw.KeyC, glfw.KeyP, glfw.KeyV, glfw.KeyF, glfw.KeyR} {
		v.Input.HandleKeyEvent(k, glfw.Press)
	}
	v.Update(frame)

	assert.True(t, config.GetCPUCull())
	assert.False(t, v.World.PruneOnPlace())
	assert.True(t, v.Profiling)
	assert.True(t, v.Wireframe)
	assert.True(t, v.World.Cold())
}

func TestQuitAndReleaseCursor(t *testing.T) {
	v := newTestViewer(t)
	v.CursorCaptured = true

	v.Input.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	assert.False(t, v.Update(frame))
	assert.False(t, v.CursorCaptured)
	v.Input.PostUpdate()

	v.Input.HandleKeyEvent(glfw.KeyF10, glfw.Press)
	assert.True(t, v.Update(frame))
}

func TestTargetFromRaycast(t *testing.T) {
	v := newTestViewer(t)
	target := world.GridPos{X: 1, Y: 0, Z: 1}
	v.Camera.LookAt(mgl32.Vec3{-0.5, 3, -0.49}, v.World.GridToWorld(target), mgl32.Vec3{0, 1, 0})

	v.Update(frame)
	require.True(t, v.Target.Hit)
	assert.Equal(t, target, v.Target.HitPosition)
}

func TestFrameCounter(t *testing.T) {
	var c frameCounter
	start := time.Unix(100, 0)

	assert.False(t, c.tick(start))
	assert.False(t, c.tick(start.Add(500*time.Millisecond)))
	assert.True(t, c.tick(start.Add(time.Second)))
	assert.Equal(t, 3, c.fps)

	assert.False(t, c.tick(start.Add(1500*time.Millisecond)))
	assert.True(t, c.tick(start.Add(2*time.Second)))
	assert.Equal(t, 2, c.fps)
}

func TestFPSLimiter(t *testing.T) {
	withDefaults(t)

	config.SetFPSLimit(0)
	l := NewFPSLimiter()
	start := time.Now()
	l.Wait()
	assert.Less(t, time.Since(start), 5*time.Millisecond)

	config.SetFPSLimit(100)
	start = time.Now()
	l.Wait()
	l.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 19*time.Millisecond)
}

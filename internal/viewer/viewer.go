package viewer

import (
	"math"

	"voxel-viewer/internal/camera"
	"voxel-viewer/internal/config"
	"voxel-viewer/internal/input"
	"voxel-viewer/internal/logging"
	"voxel-viewer/internal/profiling"
	"voxel-viewer/internal/world"
)

// referenceFPS is the frame rate at which configured speeds apply per frame.
const referenceFPS = 60

// Viewer turns input actions into camera motion and world edits. It holds no
// GL state.
type Viewer struct {
	Camera *camera.Camera
	World  *world.World
	Input  *input.InputManager
	log    logging.Logger

	// tilt accumulates camera.PanUp degrees; positive tilts the view down.
	tilt float32

	CursorCaptured bool
	Wireframe      bool
	Profiling      bool

	// Target is the cell under the crosshair after the last Update.
	Target world.RaycastResult
}

func New(cam *camera.Camera, w *world.World, im *input.InputManager, log logging.Logger) *Viewer {
	v := &Viewer{Camera: cam, World: w, Input: im, log: logging.OrNop(log)}
	// A camera looking up has negative tilt.
	dir := cam.LookDir()
	v.tilt = -float32(math.Asin(float64(dir.Y())) * 180 / math.Pi)
	return v
}

// Tilt returns the accumulated pitch in degrees, positive when looking down.
func (v *Viewer) Tilt() float32 { return v.tilt }

// TiltBy pans the camera vertically unless the accumulated tilt would pass
// the configured limit, in which case the tilt saturates and the camera is
// left as is.
func (v *Viewer) TiltBy(deg float32) {
	limit := config.GetMaxPitch()
	next := v.tilt + deg
	if float32(math.Abs(float64(next))) > limit {
		if next > 0 {
			v.tilt = limit
		} else {
			v.tilt = -limit
		}
		return
	}
	v.tilt = next
	v.Camera.PanUp(deg)
}

// Edit places or removes the block at the camera target point.
func (v *Viewer) Edit(place bool) bool {
	at := v.Camera.At()
	changed := v.World.ChangePoint(at, place)
	if changed {
		v.log.Debugf("edit place=%t at %v -> %v, visible=%d", place, at, v.World.WorldToGrid(at), v.World.VisibleCount())
	}
	return changed
}

// Update applies one frame of input. It returns true when the viewer should
// quit.
func (v *Viewer) Update(dt float64) bool {
	defer profiling.Track("viewer.Update")()

	im := v.Input
	if im.JustPressed(input.ActionQuit) {
		return true
	}

	scale := float32(dt * referenceFPS)
	move := config.GetMoveSpeed() * scale
	pan := config.GetPanSpeed() * scale

	if im.IsActive(input.ActionMoveForward) {
		v.Camera.MoveForwards(move)
	}
	if im.IsActive(input.ActionMoveBackward) {
		v.Camera.MoveBackwards(move)
	}
	if im.IsActive(input.ActionMoveLeft) {
		v.Camera.MoveLeft(move)
	}
	if im.IsActive(input.ActionMoveRight) {
		v.Camera.MoveRight(move)
	}
	if im.IsActive(input.ActionMoveUp) {
		v.Camera.MoveUp(move)
	}
	if im.IsActive(input.ActionMoveDown) {
		v.Camera.MoveDown(move)
	}

	if im.IsActive(input.ActionPanLeft) {
		v.Camera.PanLeft(pan)
	}
	if im.IsActive(input.ActionPanRight) {
		v.Camera.PanRight(pan)
	}
	if im.IsActive(input.ActionPanUp) {
		v.TiltBy(-pan)
	}
	if im.IsActive(input.ActionPanDown) {
		v.TiltBy(pan)
	}

	if v.CursorCaptured {
		dx, dy := im.CursorDelta()
		sens := config.GetMouseSensitivity()
		if dx != 0 {
			v.Camera.PanRight(float32(dx) * sens)
		}
		if dy != 0 {
			v.TiltBy(float32(dy) * sens)
		}
	}

	v.handleEdits()
	v.handleToggles()

	v.Target = v.World.Raycast(v.Camera.Eye(), v.Camera.LookDir(), world.MinReachDistance, world.MaxReachDistance)
	return false
}

func (v *Viewer) handleEdits() {
	im := v.Input
	remove := im.JustPressed(input.ActionRemoveBlock)
	place := im.JustPressed(input.ActionPlaceBlock)

	// The first click only captures the cursor.
	if !v.CursorCaptured {
		if remove || place {
			v.CursorCaptured = true
		}
		return
	}
	if remove {
		v.Edit(false)
	}
	if place {
		v.Edit(true)
	}
}

func (v *Viewer) handleToggles() {
	im := v.Input
	for i, a := range input.BlockActions {
		if im.JustPressed(a) {
			v.World.SetPlaceBlock(world.Block(i + 1))
			v.log.Infof("placing %s", v.World.PlaceBlock())
		}
	}

	if im.JustPressed(input.ActionReleaseCursor) {
		v.CursorCaptured = false
	}
	if im.JustPressed(input.ActionToggleCull) {
		config.SetCPUCull(!config.GetCPUCull())
		v.log.Infof("cpu culling: %t", config.GetCPUCull())
	}
	if im.JustPressed(input.ActionTogglePruning) {
		v.World.SetPruneOnPlace(!v.World.PruneOnPlace())
		v.log.Infof("prune on place: %t", v.World.PruneOnPlace())
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		v.Profiling = !v.Profiling
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		v.Wireframe = !v.Wireframe
	}
	if im.JustPressed(input.ActionRebuildCache) {
		v.World.Destroy()
		v.log.Infof("instance cache dropped, rebuilding")
	}
}

package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default projection parameters
const (
	DefaultFOV  = 60.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Camera is a free-look perspective camera described by an eye point, a look-at
// target and an up reference. The view matrix is rebuilt on every move or pan and
// the frustum is derived lazily from view and projection.
type Camera struct {
	eye mgl32.Vec3
	at  mgl32.Vec3
	up  mgl32.Vec3

	fov    float32 // degrees
	aspect float32
	near   float32
	far    float32

	view       mgl32.Mat4
	projection mgl32.Mat4

	// bumped whenever eye/at/up or the projection changes
	generation uint64
	frustum    frustumCache
}

type frustumCache struct {
	pointsGen uint64
	hasPoints bool
	points    [8]mgl32.Vec3

	planesGen uint64
	hasPlanes bool
	planes    [6]mgl32.Vec4
}

// New creates a camera at the origin looking down -Z with +Y up.
func New(aspect float32) *Camera {
	return NewWithProjection(DefaultFOV, aspect, DefaultNear, DefaultFar)
}

// NewWithProjection creates a camera at the origin looking down -Z with the given
// vertical field of view in degrees.
func NewWithProjection(fovDeg, aspect, near, far float32) *Camera {
	c := &Camera{
		eye:    mgl32.Vec3{0, 0, 0},
		at:     mgl32.Vec3{0, 0, -1},
		up:     mgl32.Vec3{0, 1, 0},
		fov:    fovDeg,
		aspect: aspect,
		near:   near,
		far:    far,
	}
	c.rebuildProjection()
	c.rebuildView()
	return c
}

// Eye returns the world-space camera position.
func (c *Camera) Eye() mgl32.Vec3 { return c.eye }

// At returns the world-space look-at target.
func (c *Camera) At() mgl32.Vec3 { return c.at }

// Up returns the up reference vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

func (c *Camera) FOV() float32    { return c.fov }
func (c *Camera) Aspect() float32 { return c.aspect }
func (c *Camera) Near() float32   { return c.near }
func (c *Camera) Far() float32    { return c.far }

// ViewMatrix returns the current look-at matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 { return c.view }

// ProjectionMatrix returns the current perspective matrix.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// ViewProjection returns projection × view.
func (c *Camera) ViewProjection() mgl32.Mat4 { return c.projection.Mul4(c.view) }

// LookDir returns the normalized direction from eye to target.
func (c *Camera) LookDir() mgl32.Vec3 { return c.at.Sub(c.eye).Normalize() }

// SetAspect updates the projection aspect ratio, e.g. after a window resize.
func (c *Camera) SetAspect(aspect float32) {
	if aspect == c.aspect {
		return
	}
	c.aspect = aspect
	c.rebuildProjection()
	c.invalidate()
}

// LookAt places the camera explicitly. at must differ from eye.
func (c *Camera) LookAt(eye, at, up mgl32.Vec3) {
	c.eye = eye
	c.at = at
	c.up = up
	c.rebuildView()
	c.invalidate()
}

// Move displaces eye and target together along the look direction, the lateral
// axis cross(up, look) and the up axis.
func (c *Camera) Move(forward, lateral, vertical float32) {
	lookDir := c.at.Sub(c.eye).Normalize()
	lateralDir := c.up.Cross(lookDir).Normalize()
	upDir := c.up.Normalize()

	total := lookDir.Mul(forward).
		Add(lateralDir.Mul(lateral)).
		Add(upDir.Mul(vertical))

	c.eye = c.eye.Add(total)
	c.at = c.at.Add(total)

	c.rebuildView()
	c.invalidate()
}

// Pan rotates the look vector by yaw degrees about up, then by pitch degrees about
// the lateral axis. The up vector is left untouched, so pitching past ±90° flips
// the apparent horizon.
func (c *Camera) Pan(yawDeg, pitchDeg float32) {
	look := c.at.Sub(c.eye)
	lateral := c.up.Cross(look).Normalize()

	rot := mgl32.HomogRotate3D(mgl32.DegToRad(yawDeg), c.up.Normalize()).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(pitchDeg), lateral))
	look = rot.Mul4x1(look.Vec4(0)).Vec3()

	c.at = c.eye.Add(look)

	c.rebuildView()
	c.invalidate()
}

func (c *Camera) MoveForwards(speed float32)  { c.Move(speed, 0, 0) }
func (c *Camera) MoveBackwards(speed float32) { c.Move(-speed, 0, 0) }
func (c *Camera) MoveLeft(speed float32)      { c.Move(0, speed, 0) }
func (c *Camera) MoveRight(speed float32)     { c.Move(0, -speed, 0) }
func (c *Camera) MoveUp(speed float32)        { c.Move(0, 0, speed) }
func (c *Camera) MoveDown(speed float32)      { c.Move(0, 0, -speed) }

func (c *Camera) PanLeft(angle float32)  { c.Pan(angle, 0) }
func (c *Camera) PanRight(angle float32) { c.Pan(-angle, 0) }
func (c *Camera) PanUp(angle float32)    { c.Pan(0, angle) }
func (c *Camera) PanDown(angle float32)  { c.Pan(0, -angle) }

func (c *Camera) rebuildView() {
	c.view = mgl32.LookAtV(c.eye, c.at, c.up)
}

func (c *Camera) rebuildProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// invalidate moves the frustum cache to the dirty state.
func (c *Camera) invalidate() {
	c.generation++
	c.frustum.hasPoints = false
	c.frustum.hasPlanes = false
}

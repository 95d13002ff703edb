package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frustum corner indices as returned by FrustumPoints.
const (
	FarTopRight = iota
	FarTopLeft
	FarBottomRight
	FarBottomLeft
	NearTopRight
	NearTopLeft
	NearBottomRight
	NearBottomLeft
)

// Frustum plane indices as returned by FrustumPlanes.
const (
	PlaneTop = iota
	PlaneRight
	PlaneLeft
	PlaneBottom
	PlaneNear
	PlaneFar
)

// Clip-space depth used for the near and far corners.
const (
	clipNearZ = 0
	clipFarZ  = 1
)

// planeTriples lists, per plane, the corners fed to planeFromPoints. The winding
// makes every normal point out of the frustum.
var planeTriples = [6][3]int{
	PlaneTop:    {FarTopRight, NearTopRight, FarTopLeft},
	PlaneRight:  {FarBottomRight, NearTopRight, FarTopRight},
	PlaneLeft:   {FarTopLeft, NearTopLeft, FarBottomLeft},
	PlaneBottom: {FarBottomLeft, NearBottomRight, FarBottomRight},
	PlaneNear:   {NearTopLeft, NearTopRight, NearBottomLeft},
	PlaneFar:    {FarTopLeft, FarBottomLeft, FarTopRight},
}

// FrustumPoints returns the eight world-space frustum corners, far corners
// first, right before left and top before bottom within each group.
func (c *Camera) FrustumPoints() [8]mgl32.Vec3 {
	if c.frustum.hasPoints && c.frustum.pointsGen == c.generation {
		return c.frustum.points
	}

	inv := c.projection.Mul4(c.view).Inv()

	var points [8]mgl32.Vec3
	for i := range points {
		corner := mgl32.Vec4{1, 1, clipFarZ, 1}
		if i&1 != 0 {
			corner[0] = -1
		}
		if i&2 != 0 {
			corner[1] = -1
		}
		if i&4 != 0 {
			corner[2] = clipNearZ
		}
		p := inv.Mul4x1(corner)
		points[i] = p.Vec3().Mul(1 / p.W())
	}

	c.frustum.points = points
	c.frustum.pointsGen = c.generation
	c.frustum.hasPoints = true
	return points
}

// FrustumPlanes returns the top, right, left, bottom, near and far planes as
// (nx, ny, nz, d) with unit, outward-facing normals.
func (c *Camera) FrustumPlanes() [6]mgl32.Vec4 {
	if c.frustum.hasPlanes && c.frustum.planesGen == c.generation {
		return c.frustum.planes
	}

	p := c.FrustumPoints()
	var planes [6]mgl32.Vec4
	for i, t := range planeTriples {
		planes[i] = planeFromPoints(p[t[0]], p[t[1]], p[t[2]])
	}

	c.frustum.planes = planes
	c.frustum.planesGen = c.generation
	c.frustum.hasPlanes = true
	return planes
}

// planeFromPoints builds the plane through three points with normal
// (p1-p2) × (p3-p2).
func planeFromPoints(p1, p2, p3 mgl32.Vec3) mgl32.Vec4 {
	normal := p1.Sub(p2).Cross(p3.Sub(p2)).Normalize()
	return normal.Vec4(-p1.Dot(normal))
}

// SignedDistance is positive when point lies on the side the plane normal faces.
func SignedDistance(plane mgl32.Vec4, point mgl32.Vec3) float32 {
	return plane[0]*point[0] + plane[1]*point[1] + plane[2]*point[2] + plane[3]
}

// PointInFrustum reports whether point is on the inner side of all six planes.
func (c *Camera) PointInFrustum(point mgl32.Vec3) bool {
	for _, pl := range c.FrustumPlanes() {
		if SignedDistance(pl, point) > 0 {
			return false
		}
	}
	return true
}

// SphereInFrustum reports whether a sphere is at least partly inside the frustum.
func (c *Camera) SphereInFrustum(center mgl32.Vec3, radius float32) bool {
	for _, pl := range c.FrustumPlanes() {
		if SignedDistance(pl, center) > radius {
			return false
		}
	}
	return true
}

// AxisAlignedBoundingBox returns the componentwise min and max of the frustum
// corners.
func (c *Camera) AxisAlignedBoundingBox() (minPt, maxPt mgl32.Vec3) {
	points := c.FrustumPoints()
	minPt = points[0]
	maxPt = points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			minPt[i] = float32(math.Min(float64(minPt[i]), float64(p[i])))
			maxPt[i] = float32(math.Max(float64(maxPt[i]), float64(p[i])))
		}
	}
	return minPt, maxPt
}

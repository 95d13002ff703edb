package shadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minRadius keeps the light projection finite for degenerate regions.
const minRadius = 1

// Region is the box the shadow map covers: the camera frustum box clipped to
// shadowDistance around the eye and to the world bounds. When the clipped
// camera box misses the world entirely the world box is used.
func Region(eye, camMin, camMax, worldMin, worldMax mgl32.Vec3, shadowDistance float32) (minPt, maxPt mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		lo := max(camMin[i], eye[i]-shadowDistance)
		hi := min(camMax[i], eye[i]+shadowDistance)
		minPt[i] = max(lo, worldMin[i])
		maxPt[i] = min(hi, worldMax[i])
	}
	for i := 0; i < 3; i++ {
		if minPt[i] > maxPt[i] {
			return worldMin, worldMax
		}
	}
	return minPt, maxPt
}

// LightSpaceMatrix returns an orthographic light projection times view that
// maps the bounding sphere of [minPt, maxPt] into clip space. lightDir points
// towards the light.
func LightSpaceMatrix(lightDir, minPt, maxPt mgl32.Vec3) mgl32.Mat4 {
	dir := lightDir.Normalize()
	center := minPt.Add(maxPt).Mul(0.5)
	radius := float32(math.Max(float64(maxPt.Sub(minPt).Len()/2), minRadius))

	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(dir.Dot(up))) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	eye := center.Add(dir.Mul(radius))
	view := mgl32.LookAtV(eye, center, up)
	proj := mgl32.Ortho(-radius, radius, -radius, radius, 0, 2*radius)
	return proj.Mul4(view)
}

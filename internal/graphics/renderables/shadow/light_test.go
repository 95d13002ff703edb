package shadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRegionClipsToWorldAndDistance(t *testing.T) {
	worldMin, worldMax := mgl32.Vec3{-10, 0, -10}, mgl32.Vec3{10, 20, 10}
	camMin, camMax := mgl32.Vec3{-500, -500, -500}, mgl32.Vec3{500, 500, 500}

	lo, hi := Region(mgl32.Vec3{}, camMin, camMax, worldMin, worldMax, 64)
	assert.Equal(t, worldMin, lo)
	assert.Equal(t, worldMax, hi)

	lo, hi = Region(mgl32.Vec3{}, camMin, camMax, worldMin, worldMax, 5)
	assert.Equal(t, mgl32.Vec3{-5, 0, -5}, lo)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, hi)

	// Camera box entirely outside the world.
	lo, hi = Region(mgl32.Vec3{150, 150, 150}, mgl32.Vec3{100, 100, 100}, mgl32.Vec3{200, 200, 200}, worldMin, worldMax, 64)
	assert.Equal(t, worldMin, lo)
	assert.Equal(t, worldMax, hi)
}

func TestLightSpaceMatrixContainsRegion(t *testing.T) {
	tests := []struct {
		name     string
		light    mgl32.Vec3
		min, max mgl32.Vec3
	}{
		{"default light", mgl32.Vec3{0, 5, 1}, mgl32.Vec3{-10, 0, -10}, mgl32.Vec3{10, 20, 10}},
		{"overhead", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 4, 4}},
		{"degenerate box", mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}, mgl32.Vec3{2, 2, 2}},
	}

	const eps = 1e-3
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LightSpaceMatrix(tt.light, tt.min, tt.max)
			for i := 0; i < 8; i++ {
				corner := tt.min
				if i&1 != 0 {
					corner[0] = tt.max[0]
				}
				if i&2 != 0 {
					corner[1] = tt.max[1]
				}
				if i&4 != 0 {
					corner[2] = tt.max[2]
				}
				p := m.Mul4x1(corner.Vec4(1))
				for axis := 0; axis < 3; axis++ {
					assert.LessOrEqual(t, p[axis], float32(1+eps), "corner %d axis %d", i, axis)
					assert.GreaterOrEqual(t, p[axis], float32(-1-eps), "corner %d axis %d", i, axis)
				}
			}
		})
	}
}

func TestLightSpaceDepthFollowsLight(t *testing.T) {
	m := LightSpaceMatrix(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 10, 1})
	high := m.Mul4x1(mgl32.Vec4{0, 10, 0, 1})
	low := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Less(t, high[2], low[2], "points nearer the light have smaller depth")
}

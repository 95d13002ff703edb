package world

import (
	"voxel-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 8.0
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      GridPos
	AdjacentPosition GridPos // last in-grid empty cell before the hit
	HasAdjacent      bool
	Distance         float32
	Hit              bool
}

// Raycast marches from start along direction and returns the first solid cell
// between minDist and maxDist.
func (w *World) Raycast(start, direction mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	defer profiling.Track("world.Raycast")()

	direction = direction.Normalize()
	stepSize := w.cubeSize / 25
	steps := int(maxDist / stepSize)

	result := RaycastResult{}
	var lastEmpty GridPos
	hasEmpty := false

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		if dist < minDist {
			continue
		}

		x, y, z := w.rawGrid(start.Add(direction.Mul(dist)))
		if x < 0 || y < 0 || z < 0 {
			hasEmpty = false
			continue
		}
		cell := GridPos{x, y, z}

		if !w.grid.get(cell).IsAir() {
			result.HitPosition = cell
			result.AdjacentPosition = lastEmpty
			result.HasAdjacent = hasEmpty
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmpty = cell
		hasEmpty = w.grid.inBounds(cell)
	}

	return result
}

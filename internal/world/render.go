package world

import (
	"voxel-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderBatch is everything one instanced draw of the world needs.
type RenderBatch struct {
	Vertices []float32 // cube positions, xyz
	UVs      []float32 // nil for depth-only batches
	Normals  []float32 // nil for depth-only batches

	// Instances holds Count entries of (gx, gy, gz, texture index).
	Instances []int16
	Count     int
	// Stale is set when Instances changed since the last MarkUploaded.
	Stale bool
}

// VertexCount is the number of cube vertices drawn per instance.
func (b RenderBatch) VertexCount() int { return len(b.Vertices) / 3 }

// RenderInstances fills the visible cache if it is cold and returns the draw
// batch. depthOnly leaves out the UV and normal streams.
func (w *World) RenderInstances(depthOnly bool) RenderBatch {
	w.FillOffsetCache()

	b := RenderBatch{
		Vertices:  w.mesh.Vertices,
		Instances: w.Instances(),
		Count:     w.VisibleCount(),
		Stale:     w.Stale(),
	}
	if !depthOnly {
		b.UVs = w.mesh.UVs
		b.Normals = w.mesh.Normals
	}
	return b
}

// Stale reports whether the instance data changed since the last upload.
func (w *World) Stale() bool { return w.generation != w.uploaded }

// MarkUploaded records that the current instance data is on the GPU.
func (w *World) MarkUploaded() { w.uploaded = w.generation }

// GridOrigin is the value subtracted from instance grid coordinates before
// scaling by 2*CubeSize, for rectangular grids.
func (w *World) GridOrigin() mgl32.Vec3 {
	return mgl32.Vec3{float32(w.grid.width(0)) / 2, 0, float32(w.grid.depth()) / 2}
}

// SphereTester is satisfied by camera.Camera.
type SphereTester interface {
	SphereInFrustum(center mgl32.Vec3, radius float32) bool
}

// CullInstances appends to dst[:0] the live entries whose bounding sphere of
// radius 2*CubeSize passes the tester, and returns the result.
func (w *World) CullInstances(t SphereTester, dst []int16) []int16 {
	defer profiling.Track("world.CullInstances")()

	dst = dst[:0]
	src := w.Instances()
	radius := 2 * w.cubeSize
	for o := 0; o+InstanceStride <= len(src); o += InstanceStride {
		p := GridPos{int(src[o]), int(src[o+1]), int(src[o+2])}
		if t.SphereInFrustum(w.GridToWorld(p), radius) {
			dst = append(dst, src[o:o+InstanceStride]...)
		}
	}
	return dst
}

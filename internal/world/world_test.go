package world

import (
	"bytes"
	"math/rand"
	"testing"

	"voxel-viewer/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatHeights(width, depth, height int) [][]int {
	heights := make([][]int, depth)
	for z := range heights {
		heights[z] = make([]int, width)
		for x := range heights[z] {
			heights[z][x] = height
		}
	}
	return heights
}

func newTestWorld(t testing.TB, heights [][]int, mutate func(*Options)) *World {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	w, err := New(heights, opts)
	require.NoError(t, err)
	return w
}

// cacheSet returns the live cache positions and fails on duplicates.
func cacheSet(t testing.TB, w *World) map[GridPos]int16 {
	t.Helper()
	set := make(map[GridPos]int16)
	inst := w.Instances()
	for o := 0; o < len(inst); o += InstanceStride {
		p := GridPos{int(inst[o]), int(inst[o+1]), int(inst[o+2])}
		_, dup := set[p]
		require.False(t, dup, "duplicate cache entry %v", p)
		set[p] = inst[o+3]
	}
	return set
}

func scanSet(w *World) map[GridPos]int16 {
	set := make(map[GridPos]int16)
	for _, e := range w.scanExposed() {
		set[e.pos] = e.tex
	}
	return set
}

func TestNewRejectsBadHeightmaps(t *testing.T) {
	tests := []struct {
		name    string
		heights [][]int
		want    error
	}{
		{"nil", nil, ErrEmptyHeightmap},
		{"empty rows", [][]int{{}, {}}, ErrEmptyHeightmap},
		{"negative", [][]int{{1, -1}}, ErrNegativeHeight},
		{"too wide", [][]int{make([]int, 40000)}, ErrCoordinateRange},
		{"too tall", [][]int{{40000}}, ErrCoordinateRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.heights, DefaultOptions())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSingleColumnIsFullyVisible(t *testing.T) {
	w := newTestWorld(t, [][]int{{3}}, nil)

	assert.Equal(t, 3, w.TotalBlocks())
	assert.True(t, w.Cold())
	assert.Equal(t, 0, w.VisibleCount())

	w.FillOffsetCache()
	assert.Equal(t, 3, w.VisibleCount())
	assert.Equal(t, 3, w.Stats().Capacity)
	assert.Equal(t, 1, w.Stats().Rebuilds)

	// Idempotent while the cache exists.
	w.FillOffsetCache()
	assert.Equal(t, 1, w.Stats().Rebuilds)
}

func TestColumnLayering(t *testing.T) {
	w := newTestWorld(t, [][]int{{6}}, nil)

	want := []Block{BlockStone, BlockStone, BlockStone, BlockDirt, BlockDirt, BlockGrass, BlockAir}
	for y, b := range want {
		assert.Equal(t, b, w.Block(GridPos{0, y, 0}), "y=%d", y)
	}
	assert.Equal(t, 6+DefaultHeadroom, w.ColumnHeight(0, 0))

	w.FillOffsetCache()
	set := cacheSet(t, w)
	assert.Equal(t, BlockGrass.TextureIndex(), set[GridPos{0, 5, 0}])
	assert.Equal(t, BlockStone.TextureIndex(), set[GridPos{0, 0, 0}])
}

func TestEnclosedCellIsNotExposed(t *testing.T) {
	w := newTestWorld(t, flatHeights(3, 3, 3), func(o *Options) { o.Headroom = 0 })
	centre := GridPos{1, 1, 1}

	assert.False(t, w.IsExposed(centre))
	// The floor never exposes.
	assert.False(t, w.IsExposed(GridPos{1, 0, 1}))
	assert.True(t, w.IsExposed(GridPos{1, 2, 1}))
	assert.True(t, w.IsExposed(GridPos{0, 1, 1}))

	w.FillOffsetCache()
	assert.Equal(t, 25, w.VisibleCount())
	assert.False(t, w.Visible(centre))

	require.True(t, w.ChangeCell(centre, false))
	require.True(t, w.ChangeCell(centre, true))
	assert.False(t, w.IsExposed(centre))
	assert.False(t, w.Visible(centre))
	assert.Equal(t, 25, w.VisibleCount())
	assert.Equal(t, scanSet(w), cacheSet(t, w))
}

func TestLegacyPlacementKeepsEnclosedBlocks(t *testing.T) {
	w := newTestWorld(t, flatHeights(3, 3, 3), func(o *Options) {
		o.Headroom = 0
		o.PruneOnPlace = false
	})
	w.FillOffsetCache()
	centre := GridPos{1, 1, 1}

	require.True(t, w.ChangeCell(centre, false))
	assert.Equal(t, 26, w.VisibleCount(), "removal reveals the cell below")
	assert.Zero(t, w.Stats().Desyncs)

	require.True(t, w.ChangeCell(centre, true))
	assert.Equal(t, 27, w.VisibleCount())
	assert.True(t, w.Visible(centre))
	assert.True(t, w.Visible(GridPos{1, 0, 1}))
	assert.Len(t, scanSet(w), 25)

	w.SetPruneOnPlace(true)
	require.True(t, w.ChangeCell(centre, false))
	require.True(t, w.ChangeCell(centre, true))
	assert.False(t, w.Visible(GridPos{1, 0, 1}))
}

func TestGridWorldRoundTrip(t *testing.T) {
	heights := [][]int{{1, 2, 3}, {4, 5}, {1, 1, 1, 1}, {0}}
	for _, cubeSize := range []float32{0.5, 0.25, 1.5} {
		w := newTestWorld(t, heights, func(o *Options) { o.CubeSize = cubeSize })
		for z := 0; z < w.Depth(); z++ {
			for x := 0; x < w.Width(z); x++ {
				for y := 0; y < w.ColumnHeight(x, z); y++ {
					p := GridPos{x, y, z}
					assert.Equal(t, p, w.WorldToGrid(w.GridToWorld(p)), "cubeSize %v", cubeSize)
				}
			}
		}
	}
}

func TestWorldToGridClampsAtZero(t *testing.T) {
	w := newTestWorld(t, flatHeights(4, 4, 1), nil)

	assert.Equal(t, GridPos{0, 0, 0}, w.WorldToGrid(mgl32.Vec3{-100, -100, -100}))
	assert.Equal(t, GridPos{2, 0, 2}, w.WorldToGrid(mgl32.Vec3{0, 0, 0}))
	// Halves round up.
	assert.Equal(t, GridPos{3, 1, 2}, w.WorldToGrid(mgl32.Vec3{0.5, 0.5, 0.49}))
}

func TestIdempotentEdits(t *testing.T) {
	w := newTestWorld(t, flatHeights(4, 4, 2), nil)
	w.FillOffsetCache()
	w.MarkUploaded()

	target := w.GridToWorld(GridPos{1, 2, 1})
	assert.True(t, w.ChangePoint(target, true))
	assert.False(t, w.ChangePoint(target, true))
	assert.Equal(t, 4*4*2+1, w.TotalBlocks())
	assert.True(t, w.Stale())

	w.MarkUploaded()
	before := cacheSet(t, w)
	air := w.GridToWorld(GridPos{2, 5, 2})
	assert.False(t, w.ChangePoint(air, false))
	assert.Equal(t, 4*4*2+1, w.TotalBlocks())
	assert.False(t, w.Stale())
	assert.Equal(t, before, cacheSet(t, w))

	// Outside the allocated grid.
	assert.False(t, w.ChangeCell(GridPos{1, 2 + DefaultHeadroom, 1}, true))
	assert.False(t, w.ChangeCell(GridPos{9, 0, 0}, false))
	assert.Equal(t, 1, w.Stats().Edits)
}

func TestPlacedBlockUsesPlaceBlock(t *testing.T) {
	w := newTestWorld(t, flatHeights(2, 2, 1), func(o *Options) { o.PlaceBlock = BlockSand })
	w.FillOffsetCache()

	p := GridPos{0, 1, 0}
	require.True(t, w.ChangeCell(p, true))
	assert.Equal(t, BlockSand, w.Block(p))
	assert.Equal(t, BlockSand.TextureIndex(), cacheSet(t, w)[p])

	w.SetPlaceBlock(BlockAir)
	assert.Equal(t, BlockSand, w.PlaceBlock())
}

func TestIncrementalCacheMatchesFullScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	heights := make([][]int, 8)
	for z := range heights {
		heights[z] = make([]int, 8)
		for x := range heights[z] {
			heights[z][x] = 1 + rng.Intn(5)
		}
	}
	w := newTestWorld(t, heights, func(o *Options) { o.Headroom = 3 })
	w.FillOffsetCache()

	for i := 0; i < 500; i++ {
		z := rng.Intn(w.Depth())
		x := rng.Intn(w.Width(z))
		y := rng.Intn(w.ColumnHeight(x, z))
		w.ChangeCell(GridPos{x, y, z}, rng.Intn(2) == 0)

		require.Equal(t, scanSet(w), cacheSet(t, w), "after edit %d", i)
	}
	assert.Zero(t, w.Stats().Desyncs)

	solid := 0
	for z := 0; z < w.Depth(); z++ {
		for x := 0; x < w.Width(z); x++ {
			for y := 0; y < w.ColumnHeight(x, z); y++ {
				if !w.Block(GridPos{x, y, z}).IsAir() {
					solid++
				}
			}
		}
	}
	assert.Equal(t, solid, w.TotalBlocks())
}

func TestRemovalRevealsNeighbours(t *testing.T) {
	w := newTestWorld(t, flatHeights(3, 3, 3), func(o *Options) { o.Headroom = 0 })
	w.FillOffsetCache()

	// Dig down through the top into the enclosed centre.
	require.True(t, w.ChangeCell(GridPos{1, 2, 1}, false))
	assert.True(t, w.Visible(GridPos{1, 1, 1}))
	assert.Equal(t, 25, w.VisibleCount())

	require.True(t, w.ChangeCell(GridPos{1, 1, 1}, false))
	assert.True(t, w.Visible(GridPos{1, 0, 1}))
	assert.Equal(t, scanSet(w), cacheSet(t, w))
}

func TestRemovalCompactsInOrder(t *testing.T) {
	w := newTestWorld(t, [][]int{{3}}, nil)
	w.FillOffsetCache()

	require.True(t, w.ChangeCell(GridPos{0, 1, 0}, false))
	// Scan order is bottom to top; the survivors keep their relative order.
	assert.Equal(t, []int16{
		0, 0, 0, BlockDirt.TextureIndex(),
		0, 2, 0, BlockGrass.TextureIndex(),
	}, w.Instances())
	assert.Equal(t, 3, w.Stats().Capacity)
}

func TestCacheGrowsExactlyToFit(t *testing.T) {
	w := newTestWorld(t, [][]int{{3}}, nil)
	w.FillOffsetCache()

	require.True(t, w.ChangeCell(GridPos{0, 2, 0}, false))
	assert.Equal(t, 2, w.VisibleCount())
	require.True(t, w.ChangeCell(GridPos{0, 2, 0}, true))
	assert.Equal(t, 3, w.Stats().Capacity)

	require.True(t, w.ChangeCell(GridPos{0, 3, 0}, true))
	assert.Equal(t, 4, w.VisibleCount())
	assert.Equal(t, 4, w.Stats().Capacity)
}

func TestDesyncResetsCache(t *testing.T) {
	var out, errOut bytes.Buffer
	w := newTestWorld(t, flatHeights(3, 3, 2), func(o *Options) {
		o.Logger = logging.NewWriterLogger("world", false, &out, &errOut)
	})
	w.FillOffsetCache()

	p := GridPos{0, 1, 0}
	require.True(t, w.cache.remove(p))

	assert.True(t, w.ChangeCell(p, false))
	assert.True(t, w.Cold())
	assert.Equal(t, 0, w.VisibleCount())
	assert.Empty(t, w.Instances())
	assert.Equal(t, 1, w.Stats().Desyncs)
	assert.Contains(t, errOut.String(), "WARN")

	// The grid edit survives and the next fill is consistent with it.
	assert.Equal(t, 3*3*2-1, w.TotalBlocks())
	batch := w.RenderInstances(false)
	assert.Equal(t, len(scanSet(w)), batch.Count)
	assert.Equal(t, scanSet(w), cacheSet(t, w))
}

func TestEditsWhileColdSkipCache(t *testing.T) {
	w := newTestWorld(t, flatHeights(2, 2, 2), nil)

	require.True(t, w.ChangeCell(GridPos{0, 1, 0}, false))
	assert.True(t, w.Cold())
	assert.Zero(t, w.Stats().Desyncs)

	w.FillOffsetCache()
	assert.Equal(t, scanSet(w), cacheSet(t, w))
}

func TestDestroyRebuilds(t *testing.T) {
	w := newTestWorld(t, flatHeights(4, 4, 3), nil)
	w.FillOffsetCache()
	first := cacheSet(t, w)

	w.Destroy()
	assert.True(t, w.Cold())
	assert.Nil(t, w.Instances())

	w.FillOffsetCache()
	assert.Equal(t, first, cacheSet(t, w))
	assert.Equal(t, 2, w.Stats().Rebuilds)
}

func TestRenderInstances(t *testing.T) {
	w := newTestWorld(t, flatHeights(2, 2, 1), nil)

	batch := w.RenderInstances(false)
	assert.Equal(t, 4, batch.Count)
	assert.Len(t, batch.Instances, 4*InstanceStride)
	assert.Equal(t, CubeVertexCount, batch.VertexCount())
	assert.Len(t, batch.UVs, CubeVertexCount*2)
	assert.Len(t, batch.Normals, CubeVertexCount*3)
	assert.True(t, batch.Stale)

	w.MarkUploaded()
	depth := w.RenderInstances(true)
	assert.False(t, depth.Stale)
	assert.Nil(t, depth.UVs)
	assert.Nil(t, depth.Normals)
	assert.Equal(t, 4, depth.Count)

	w.ChangeCell(GridPos{0, 1, 0}, true)
	assert.True(t, w.RenderInstances(true).Stale)
}

func TestCubeMeshExtent(t *testing.T) {
	m := NewCubeMesh(0.5)
	require.Len(t, m.Vertices, CubeVertexCount*3)
	for _, v := range m.Vertices {
		assert.InDelta(t, 0.5, mgl32.Abs(v), 1e-6)
	}
	for i := 0; i < CubeVertexCount; i++ {
		n := mgl32.Vec3{m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]}
		v := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		// Every vertex lies on the face its normal points out of.
		assert.InDelta(t, 0.5, v.Dot(n), 1e-6)
	}
}

type halfSpace struct{ maxX float32 }

func (h halfSpace) SphereInFrustum(center mgl32.Vec3, radius float32) bool {
	return center.X()-radius <= h.maxX
}

func TestCullInstances(t *testing.T) {
	w := newTestWorld(t, flatHeights(8, 1, 1), nil)
	w.FillOffsetCache()

	// Cell centres are at x = -4..3; radius is 1.
	culled := w.CullInstances(halfSpace{maxX: -2}, nil)
	require.Len(t, culled, 4*InstanceStride)
	for o := 0; o < len(culled); o += InstanceStride {
		assert.LessOrEqual(t, culled[o], int16(3))
	}

	reused := w.CullInstances(halfSpace{maxX: 100}, culled)
	assert.Equal(t, w.Instances(), reused)
}

func TestRaycast(t *testing.T) {
	w := newTestWorld(t, flatHeights(5, 5, 1), func(o *Options) { o.Headroom = 4 })
	start := w.GridToWorld(GridPos{2, 3, 2})

	down := w.Raycast(start, mgl32.Vec3{0, -1, 0}, MinReachDistance, MaxReachDistance)
	require.True(t, down.Hit)
	assert.Equal(t, GridPos{2, 0, 2}, down.HitPosition)
	assert.True(t, down.HasAdjacent)
	assert.Equal(t, GridPos{2, 1, 2}, down.AdjacentPosition)
	assert.InDelta(t, 2.5, down.Distance, 0.05)

	up := w.Raycast(start, mgl32.Vec3{0, 1, 0}, MinReachDistance, MaxReachDistance)
	assert.False(t, up.Hit)

	short := w.Raycast(start, mgl32.Vec3{0, -1, 0}, MinReachDistance, 1)
	assert.False(t, short.Hit)
}

func TestBlockNames(t *testing.T) {
	names := TextureNames()
	require.Len(t, names, PaletteSize)
	assert.Equal(t, "planks", names[0])
	assert.Equal(t, "stone", names[PaletteSize-1])
	assert.Equal(t, "air", BlockAir.String())
	assert.Equal(t, "unknown", Block(200).String())
	assert.False(t, Block(200).Valid())
}

func BenchmarkFillOffsetCache(b *testing.B) {
	heights := make([][]int, 128)
	for z := range heights {
		heights[z] = make([]int, 128)
		for x := range heights[z] {
			heights[z][x] = 10 + (x*7+z*3)%12
		}
	}
	w := newTestWorld(b, heights, nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Destroy()
		w.FillOffsetCache()
	}
}

func BenchmarkChangeCell(b *testing.B) {
	w := newTestWorld(b, flatHeights(128, 128, 16), nil)
	w.FillOffsetCache()
	p := GridPos{64, 15, 64}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.ChangeCell(p, i%2 == 1)
	}
}

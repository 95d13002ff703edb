package world

import (
	"math"

	"voxel-viewer/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultCubeSize = 0.5
	DefaultHeadroom = 16
)

type Options struct {
	// CubeSize is the half-extent of one block in world units.
	CubeSize float32
	// Headroom is the number of air cells allocated above every column so
	// blocks can be placed on top of the terrain.
	Headroom int
	// PruneOnPlace removes neighbours that a placement fully encloses from the
	// visible cache. When false, placement appends the new block
	// unconditionally and never prunes.
	PruneOnPlace bool
	// PlaceBlock is the code written by placements.
	PlaceBlock Block
	Logger     logging.Logger
}

func DefaultOptions() Options {
	return Options{
		CubeSize:     DefaultCubeSize,
		Headroom:     DefaultHeadroom,
		PruneOnPlace: true,
		PlaceBlock:   BlockPlanks,
	}
}

// Stats is a snapshot of the world counters.
type Stats struct {
	Visible  int // live entries in the visible cache
	Capacity int // allocated cache entries
	Total    int // solid cells
	Rebuilds int // full cache scans
	Desyncs  int // cache resets caused by a failed removal
	Edits    int // effective ChangePoint/ChangeCell calls
}

// World is a fixed-size grid of blocks plus the cache of blocks that have at
// least one exposed face. It is not safe for concurrent use.
type World struct {
	grid     *grid
	cubeSize float32
	opts     Options
	log      logging.Logger

	cache      *instanceCache // nil while cold
	generation uint64         // bumped on every cache mutation
	uploaded   uint64         // generation last handed to the GPU

	mesh  *CubeMesh
	stats Stats
}

// New builds the grid from column heights indexed [z][x]. Rows may differ in
// width. The visible cache starts cold; FillOffsetCache or RenderInstances
// populate it.
func New(heights [][]int, opts Options) (*World, error) {
	if opts.CubeSize <= 0 {
		opts.CubeSize = DefaultCubeSize
	}
	if opts.Headroom < 0 {
		opts.Headroom = 0
	}
	if opts.PlaceBlock.IsAir() || !opts.PlaceBlock.Valid() {
		opts.PlaceBlock = BlockPlanks
	}

	g, solid, err := newGrid(heights, opts.Headroom)
	if err != nil {
		return nil, err
	}

	w := &World{
		grid:       g,
		cubeSize:   opts.CubeSize,
		opts:       opts,
		log:        logging.OrNop(opts.Logger),
		generation: 1,
		mesh:       NewCubeMesh(opts.CubeSize),
	}
	w.stats.Total = solid
	return w, nil
}

func (w *World) CubeSize() float32 { return w.cubeSize }

// Depth is the number of rows along z.
func (w *World) Depth() int { return w.grid.depth() }

// Width is the number of columns in row z.
func (w *World) Width(z int) int { return w.grid.width(z) }

// ColumnHeight is the allocated height of column (x, z), headroom included.
func (w *World) ColumnHeight(x, z int) int { return w.grid.columnHeight(x, z) }

// InBounds reports whether p addresses an allocated cell.
func (w *World) InBounds(p GridPos) bool { return w.grid.inBounds(p) }

// Block returns the block at p; anything outside the grid is air.
func (w *World) Block(p GridPos) Block { return w.grid.get(p) }

// TotalBlocks is the number of solid cells.
func (w *World) TotalBlocks() int { return w.stats.Total }

// PruneOnPlace reports the placement mode.
func (w *World) PruneOnPlace() bool { return w.opts.PruneOnPlace }

// SetPruneOnPlace switches the placement mode for subsequent edits.
func (w *World) SetPruneOnPlace(on bool) { w.opts.PruneOnPlace = on }

// PlaceBlock is the code written by placements.
func (w *World) PlaceBlock() Block { return w.opts.PlaceBlock }

// SetPlaceBlock changes the code written by placements. Air and unknown codes
// are ignored.
func (w *World) SetPlaceBlock(b Block) {
	if b.IsAir() || !b.Valid() {
		return
	}
	w.opts.PlaceBlock = b
}

func (w *World) Stats() Stats {
	s := w.stats
	s.Visible = w.VisibleCount()
	if w.cache != nil {
		s.Capacity = w.cache.capacity()
	}
	return s
}

// GridToWorld returns the world-space centre of cell p. The x origin uses the
// width of row p.Z.
func (w *World) GridToWorld(p GridPos) mgl32.Vec3 {
	step := float64(2 * w.cubeSize)
	halfW := float64(w.grid.width(p.Z)) / 2
	halfD := float64(w.grid.depth()) / 2
	return mgl32.Vec3{
		float32((float64(p.X) - halfW) * step),
		float32(float64(p.Y) * step),
		float32((float64(p.Z) - halfD) * step),
	}
}

// WorldToGrid maps a world-space point to the nearest cell, clamping each
// coordinate at zero. The result may lie outside the grid on the high side.
func (w *World) WorldToGrid(v mgl32.Vec3) GridPos {
	x, y, z := w.rawGrid(v)
	return GridPos{max(x, 0), max(y, 0), max(z, 0)}
}

// rawGrid is WorldToGrid without the clamp.
func (w *World) rawGrid(v mgl32.Vec3) (x, y, z int) {
	step := float64(2 * w.cubeSize)
	z = roundHalfUp(float64(v.Z())/step + float64(w.grid.depth())/2)
	row := min(max(z, 0), w.grid.depth()-1)
	x = roundHalfUp(float64(v.X())/step + float64(w.grid.width(row))/2)
	y = roundHalfUp(float64(v.Y()) / step)
	return x, y, z
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Bounds returns the world-space box enclosing every allocated cell.
func (w *World) Bounds() (minPt, maxPt mgl32.Vec3) {
	step := 2 * w.cubeSize
	halfW := float32(w.grid.maxWidth()) / 2
	halfD := float32(w.grid.depth()) / 2
	minPt = mgl32.Vec3{-halfW*step - w.cubeSize, -w.cubeSize, -halfD*step - w.cubeSize}
	maxPt = mgl32.Vec3{halfW*step + w.cubeSize, float32(w.grid.maxHeight())*step + w.cubeSize, halfD*step + w.cubeSize}
	return minPt, maxPt
}

// IsExposed reports whether the solid cell p has a face next to air, next to the
// x/z edge of the grid, or above its column. The floor below y=0 never exposes.
func (w *World) IsExposed(p GridPos) bool {
	for _, d := range neighbourOffsets {
		n := p.Add(d[0], d[1], d[2])
		if n.Y < 0 {
			continue
		}
		if w.grid.get(n).IsAir() {
			return true
		}
	}
	return false
}

// VisibleCount is the number of live cache entries, zero while cold.
func (w *World) VisibleCount() int {
	if w.cache == nil {
		return 0
	}
	return w.cache.count
}

// Cold reports whether the visible cache is absent.
func (w *World) Cold() bool { return w.cache == nil }

// Destroy drops the visible cache. The next FillOffsetCache rebuilds it from
// the grid.
func (w *World) Destroy() {
	w.cache = nil
	w.touch()
}

// touch marks the instance data as changed since the last upload.
func (w *World) touch() { w.generation++ }

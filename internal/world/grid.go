package world

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyHeightmap  = errors.New("world: heightmap has no columns")
	ErrNegativeHeight  = errors.New("world: negative column height")
	ErrCoordinateRange = errors.New("world: grid dimension exceeds 16-bit instance range")
)

// GridPos addresses one cell of the grid.
type GridPos struct {
	X, Y, Z int
}

func (p GridPos) Add(dx, dy, dz int) GridPos {
	return GridPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// Axis-aligned neighbour offsets.
var neighbourOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

type column struct {
	offset int
	height int // allocated cells
}

// grid stores every column in one flat cell slice. Rows are indexed by z and
// may differ in width; columns may differ in height.
type grid struct {
	cells    []Block
	columns  []column
	rowStart []int
	rowWidth []int
}

// newGrid lays out the columns of heights, each with extra air cells on top,
// and fills them with the layered terrain. It returns the number of solid cells.
func newGrid(heights [][]int, headroom int) (*grid, int, error) {
	if len(heights) == 0 {
		return nil, 0, ErrEmptyHeightmap
	}
	if len(heights) > math.MaxInt16 {
		return nil, 0, fmt.Errorf("%w: depth %d", ErrCoordinateRange, len(heights))
	}

	g := &grid{
		rowStart: make([]int, len(heights)),
		rowWidth: make([]int, len(heights)),
	}

	nColumns, nCells := 0, 0
	for z, row := range heights {
		if len(row) > math.MaxInt16 {
			return nil, 0, fmt.Errorf("%w: row %d width %d", ErrCoordinateRange, z, len(row))
		}
		g.rowStart[z] = nColumns
		g.rowWidth[z] = len(row)
		nColumns += len(row)
		for x, h := range row {
			if h < 0 {
				return nil, 0, fmt.Errorf("%w: column (%d,%d) is %d", ErrNegativeHeight, x, z, h)
			}
			if h+headroom > math.MaxInt16 {
				return nil, 0, fmt.Errorf("%w: column (%d,%d) height %d", ErrCoordinateRange, x, z, h+headroom)
			}
			nCells += h + headroom
		}
	}
	if nColumns == 0 {
		return nil, 0, ErrEmptyHeightmap
	}

	g.cells = make([]Block, nCells)
	g.columns = make([]column, nColumns)

	offset, solid := 0, 0
	for z, row := range heights {
		for x, h := range row {
			g.columns[g.rowStart[z]+x] = column{offset: offset, height: h + headroom}
			for y := 0; y < h; y++ {
				g.cells[offset+y] = LayerBlock(y, h)
			}
			offset += h + headroom
			solid += h
		}
	}
	return g, solid, nil
}

func (g *grid) depth() int { return len(g.rowWidth) }

// width returns the width of row z, or 0 outside the grid.
func (g *grid) width(z int) int {
	if z < 0 || z >= len(g.rowWidth) {
		return 0
	}
	return g.rowWidth[z]
}

// columnHeight returns the allocated height of column (x, z), or 0 outside the
// grid.
func (g *grid) columnHeight(x, z int) int {
	if x < 0 || x >= g.width(z) {
		return 0
	}
	return g.columns[g.rowStart[z]+x].height
}

func (g *grid) inBounds(p GridPos) bool {
	return p.Y >= 0 && p.Y < g.columnHeight(p.X, p.Z)
}

// get returns the block at p, treating everything outside the grid as air.
func (g *grid) get(p GridPos) Block {
	if !g.inBounds(p) {
		return BlockAir
	}
	return g.cells[g.columns[g.rowStart[p.Z]+p.X].offset+p.Y]
}

func (g *grid) set(p GridPos, b Block) {
	g.cells[g.columns[g.rowStart[p.Z]+p.X].offset+p.Y] = b
}

// maxWidth is the widest row.
func (g *grid) maxWidth() int {
	w := 0
	for _, rw := range g.rowWidth {
		w = max(w, rw)
	}
	return w
}

// maxHeight is the tallest allocated column.
func (g *grid) maxHeight() int {
	h := 0
	for _, c := range g.columns {
		h = max(h, c.height)
	}
	return h
}

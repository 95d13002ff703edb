package world

// Block is a block-type code. Zero is air; codes 1..PaletteSize select a
// texture layer at index code-1.
type Block uint8

const (
	BlockAir Block = iota
	BlockPlanks
	BlockGrass
	BlockDirt
	BlockSand
	BlockCobblestone
	BlockStone
)

// PaletteSize is the number of non-air block codes.
const PaletteSize = int(BlockStone)

// Cells this close to the top of a column are dirt rather than stone.
const subsurfaceDepth = 4

var blockNames = [...]string{
	BlockAir:         "air",
	BlockPlanks:      "planks",
	BlockGrass:       "grass",
	BlockDirt:        "dirt",
	BlockSand:        "sand",
	BlockCobblestone: "cobblestone",
	BlockStone:       "stone",
}

func (b Block) String() string {
	if int(b) < len(blockNames) {
		return blockNames[b]
	}
	return "unknown"
}

func (b Block) IsAir() bool { return b == BlockAir }

// Valid reports whether b is air or a palette code.
func (b Block) Valid() bool { return int(b) <= PaletteSize }

// TextureIndex is the zero-based texture layer of a non-air block.
func (b Block) TextureIndex() int16 { return int16(b) - 1 }

// LayerBlock returns the code of cell y in a freshly generated column of the
// given height: grass on top, a few cells of dirt, stone below.
func LayerBlock(y, height int) Block {
	switch {
	case y == height-1:
		return BlockGrass
	case height-y < subsurfaceDepth:
		return BlockDirt
	default:
		return BlockStone
	}
}

// TextureNames lists the texture file stems in texture-index order.
func TextureNames() []string {
	names := make([]string, PaletteSize)
	for code := 1; code <= PaletteSize; code++ {
		names[code-1] = blockNames[code]
	}
	return names
}

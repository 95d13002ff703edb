package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	DefaultSize       = 700
	DefaultWallHeight = 1000

	KindSine   = "sine"
	KindPerlin = "perlin"
)

var ErrUnknownGenerator = errors.New("terrain: unknown generator")

// Generator yields the column height at a padding cell.
type Generator interface {
	Height(x, z int) int
}

// Sine is the rolling terrain of two crossed sine waves.
type Sine struct {
	Amplitude float64
	Base      int
}

func NewSine() Sine { return Sine{Amplitude: 5, Base: 10} }

func (s Sine) Height(x, z int) int {
	n := jsRound(math.Sin(float64(z)*0.1+2.3)*s.Amplitude+s.Amplitude) +
		jsRound(math.Sin(float64(x)*0.1+2.3)*s.Amplitude+s.Amplitude) +
		s.Base
	return max(0, n)
}

// Perlin is seeded Perlin-noise terrain.
type Perlin struct {
	noise     *perlin.Perlin
	Scale     float64
	Amplitude float64
	Base      int
}

func NewPerlin(seed int64) *Perlin {
	alpha := 2.0
	beta := 2.0
	n := int32(3)
	return &Perlin{
		noise:     perlin.NewPerlin(alpha, beta, n, seed),
		Scale:     0.02,
		Amplitude: 20,
		Base:      10,
	}
}

func (p *Perlin) Height(x, z int) int {
	// Noise2D is roughly in [-1, 1].
	v := (p.noise.Noise2D(float64(x)*p.Scale, float64(z)*p.Scale) + 1) / 2
	return max(0, p.Base+jsRound(v*p.Amplitude))
}

// NewGenerator picks a generator by name.
func NewGenerator(kind string, seed int64) (Generator, error) {
	switch kind {
	case "", KindSine:
		return NewSine(), nil
	case KindPerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, kind)
	}
}

// Heightmap is a [z][x] grid of column heights plus the offset at which a
// centred layout starts.
type Heightmap struct {
	Heights       [][]int `yaml:"heights"`
	PaddingOffset int     `yaml:"padding_offset"`
}

// Pad centres layout in a size×size map and fills the remaining columns from
// gen. A size smaller than the layout leaves it unpadded.
func Pad(layout [][]int, size int, gen Generator) Heightmap {
	depth, width := len(layout), 0
	for _, row := range layout {
		width = max(width, len(row))
	}
	size = max(size, depth, width)
	padding := (size - max(depth, width)) / 2

	heights := make([][]int, size)
	for z := range heights {
		heights[z] = make([]int, size)
		for x := range heights[z] {
			lz, lx := z-padding, x-padding
			if lz >= 0 && lz < depth && lx >= 0 && lx < len(layout[lz]) {
				heights[z][x] = layout[lz][lx]
				continue
			}
			heights[z][x] = gen.Height(x, z)
		}
	}
	return Heightmap{Heights: heights, PaddingOffset: padding}
}

type Params struct {
	Size       int
	WallHeight int
	Generator  string
	Seed       int64
}

func DefaultParams() Params {
	return Params{
		Size:       DefaultSize,
		WallHeight: DefaultWallHeight,
		Generator:  KindSine,
	}
}

// Build assembles the default world: the walled courtyard padded with
// generated terrain.
func Build(p Params) (Heightmap, error) {
	gen, err := NewGenerator(p.Generator, p.Seed)
	if err != nil {
		return Heightmap{}, err
	}
	layout := Courtyard()
	if p.WallHeight > 0 {
		WithWalls(layout, p.WallHeight)
	}
	return Pad(layout, p.Size, gen), nil
}

// jsRound rounds halves towards +Inf.
func jsRound(v float64) int {
	return int(math.Floor(v + 0.5))
}

package graphics

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"voxel-viewer/internal/logging"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
)

var ErrNoTextureLayers = errors.New("graphics: no texture layers")

// DefaultLayerSize is the edge length every texture layer is scaled to.
const DefaultLayerSize = 16

// Base colours for generated tiles, by texture name.
var tileColors = map[string]color.RGBA{
	"planks":      {164, 125, 74, 255},
	"grass":       {92, 158, 58, 255},
	"dirt":        {121, 85, 58, 255},
	"sand":        {219, 206, 152, 255},
	"cobblestone": {118, 118, 118, 255},
	"stone":       {138, 138, 140, 255},
}

// PrepareLayers returns one size×size image per name, read from dir/<name>.png
// and scaled. Names without a file get a generated tile.
func PrepareLayers(dir string, names []string, size int, log logging.Logger) ([]*image.RGBA, error) {
	if len(names) == 0 {
		return nil, ErrNoTextureLayers
	}
	if size <= 0 {
		size = DefaultLayerSize
	}
	log = logging.OrNop(log)

	layers := make([]*image.RGBA, 0, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name+".png")
		img, err := decodeImage(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Debugf("texture %s not found, generating layer %d", path, i)
			layers = append(layers, GeneratedTile(name, size))
		case err != nil:
			return nil, err
		default:
			layers = append(layers, ScaleToLayer(img, size))
		}
	}
	return layers, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return img, nil
}

// ScaleToLayer resamples src to size×size RGBA with nearest-neighbour
// filtering, which keeps pixel-art edges sharp.
func ScaleToLayer(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// GeneratedTile is a deterministic speckled tile in the base colour for name.
func GeneratedTile(name string, size int) *image.RGBA {
	base, ok := tileColors[name]
	if !ok {
		base = color.RGBA{200, 0, 200, 255}
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			h := fnv.New32a()
			fmt.Fprintf(h, "%s/%d/%d", name, x, y)
			shade := int(h.Sum32()%41) - 20
			img.SetRGBA(x, y, color.RGBA{
				R: shift(base.R, shade),
				G: shift(base.G, shade),
				B: shift(base.B, shade),
				A: 255,
			})
		}
	}
	return img
}

func shift(c uint8, d int) uint8 {
	return uint8(min(max(int(c)+d, 0), 255))
}

// TextureArray is a GL_TEXTURE_2D_ARRAY with one layer per block texture.
type TextureArray struct {
	ID     uint32
	Layers int
}

// NewTextureArray uploads equally sized layers. It needs a current GL context.
func NewTextureArray(layers []*image.RGBA) (*TextureArray, error) {
	if len(layers) == 0 {
		return nil, ErrNoTextureLayers
	}
	width, height := layers[0].Bounds().Dx(), layers[0].Bounds().Dy()
	for i, l := range layers {
		if l.Bounds().Dx() != width || l.Bounds().Dy() != height {
			return nil, fmt.Errorf("texture layer %d is %v, want %dx%d", i, l.Bounds().Size(), width, height)
		}
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, texture)

	gl.TexImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		gl.RGBA8,
		int32(width),
		int32(height),
		int32(len(layers)),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		nil,
	)

	for i, img := range layers {
		gl.TexSubImage3D(
			gl.TEXTURE_2D_ARRAY,
			0,
			0, 0, int32(i),
			int32(width),
			int32(height),
			1,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			gl.Ptr(img.Pix),
		)
	}

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	return &TextureArray{ID: texture, Layers: len(layers)}, nil
}

// Bind attaches the array to texture unit unit.
func (t *TextureArray) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.ID)
}

func (t *TextureArray) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

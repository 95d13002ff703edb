package terrain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("terrain: unsupported heightmap format")

// Load reads a heightmap from a .yaml/.yml file, optionally zstd-compressed
// with a trailing .zst.
func Load(path string) (Heightmap, error) {
	compressed, err := formatOf(path)
	if err != nil {
		return Heightmap{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Heightmap{}, fmt.Errorf("open heightmap: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return Heightmap{}, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	return Decode(r)
}

// Decode parses a YAML heightmap.
func Decode(r io.Reader) (Heightmap, error) {
	var hm Heightmap
	if err := yaml.NewDecoder(r).Decode(&hm); err != nil {
		return Heightmap{}, fmt.Errorf("decode heightmap: %w", err)
	}
	return hm, nil
}

// Save writes hm in the format implied by the path extension.
func Save(path string, hm Heightmap) error {
	compressed, err := formatOf(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(hm); err != nil {
		return fmt.Errorf("encode heightmap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode heightmap: %w", err)
	}

	data := buf.Bytes()
	if compressed {
		w, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		data = w.EncodeAll(data, nil)
		w.Close()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write heightmap: %w", err)
	}
	return nil
}

func formatOf(path string) (compressed bool, err error) {
	p := strings.ToLower(path)
	if strings.HasSuffix(p, ".zst") {
		compressed = true
		p = strings.TrimSuffix(p, ".zst")
	}
	if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
		return compressed, nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Package iconset rasterizes the app's SVG icon into the PNG sizes iOS and
// Android home screens ask for.
package iconset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

// Sizes are the edge lengths, in pixels, of the generated icons.
var Sizes = []int{40, 58, 60, 76, 80, 87, 114, 120, 128, 136, 152, 167, 180, 192, 1024}

var ErrSourceNotFound = errors.New("source svg not found")

func FileName(size int) string {
	return fmt.Sprintf("apple-touch-icon-%dx%d.png", size, size)
}

type Generator struct {
	Source string
	OutDir string
	// Sizes defaults to the package-level Sizes.
	Sizes []int
	Log   *zap.Logger
}

// Generate writes one PNG per size and returns the written paths in size order.
func (g *Generator) Generate(ctx context.Context) ([]string, error) {
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}
	sizes := g.Sizes
	if len(sizes) == 0 {
		sizes = Sizes
	}

	data, err := os.ReadFile(g.Source)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, g.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("read source svg: %w", err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse source svg: %w", err)
	}
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create icons dir: %w", err)
	}

	out := make([]string, 0, len(sizes))
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		path := filepath.Join(g.OutDir, FileName(size))
		if err := writePNG(path, Render(icon, size)); err != nil {
			return out, err
		}
		log.Info("icon_written", zap.Int("size", size), zap.String("path", path))
		out = append(out, path)
	}
	return out, nil
}

// Render draws icon scaled to a size×size canvas.
func Render(icon *oksvg.SvgIcon, size int) *image.RGBA {
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

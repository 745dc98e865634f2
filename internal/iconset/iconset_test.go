package iconset_test

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"bcvrates/internal/iconset"

	"github.com/stretchr/testify/require"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" width="512" height="512" viewBox="0 0 512 512">
  <rect x="0" y="0" width="512" height="512" fill="#ff0000"/>
</svg>`

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icon-512.svg")
	require.NoError(t, os.WriteFile(path, []byte(redSquare), 0o644))
	return path
}

func TestGenerate_AllSizes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "icons")
	gen := &iconset.Generator{Source: writeSource(t), OutDir: out}

	paths, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, len(iconset.Sizes))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, len(iconset.Sizes))

	for i, size := range iconset.Sizes {
		require.Equal(t, filepath.Join(out, iconset.FileName(size)), paths[i])
		f, err := os.Open(paths[i])
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		b := img.Bounds()
		require.Equal(t, size, b.Dx(), "width of %s", paths[i])
		require.Equal(t, size, b.Dy(), "height of %s", paths[i])

		r, g, bl, a := img.At(size/2, size/2).RGBA()
		require.Greater(t, r, uint32(0xf000))
		require.Less(t, g, uint32(0x1000))
		require.Less(t, bl, uint32(0x1000))
		require.Greater(t, a, uint32(0xf000))
	}
}

func TestGenerate_FileNames(t *testing.T) {
	require.Equal(t, "apple-touch-icon-180x180.png", iconset.FileName(180))
	require.Equal(t, []int{40, 58, 60, 76, 80, 87, 114, 120, 128, 136, 152, 167, 180, 192, 1024}, iconset.Sizes)
}

func TestGenerate_MissingSource(t *testing.T) {
	g := &iconset.Generator{Source: filepath.Join(t.TempDir(), "nope.svg"), OutDir: t.TempDir()}
	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, iconset.ErrSourceNotFound)
}

func TestGenerate_CustomSizes(t *testing.T) {
	out := t.TempDir()
	g := &iconset.Generator{Source: writeSource(t), OutDir: out, Sizes: []int{16, 32}}
	paths, err := g.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := &iconset.Generator{Source: writeSource(t), OutDir: t.TempDir()}
	paths, err := g.Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, paths)
}

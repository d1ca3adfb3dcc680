package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/palette"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testPalette(t *testing.T) palette.Palette {
	t.Helper()
	p, err := palette.NewPalette([]string{"#ffffff", "#000000", "#ff0000"})
	require.NoError(t, err)
	return p
}

func TestLoadGridReaderText(t *testing.T) {
	l := NewLoader()
	g, err := l.LoadGridReader("mem", strings.NewReader("01\n\n  2A \nfF\n"), BackendTypeText)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 2, g.Cols())
	assert.Equal(t, 0, g.At(0, 0))
	assert.Equal(t, 1, g.At(0, 1))
	assert.Equal(t, 2, g.At(1, 0))
	assert.Equal(t, 10, g.At(1, 1))
	assert.Equal(t, 15, g.At(2, 0))
	assert.Same(t, g, l.Get("mem"))
}

func TestLoadGridReaderTextErrors(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadGridReader("ragged", strings.NewReader("012\n01\n"), BackendTypeText)
	assert.ErrorIs(t, err, common.ErrRaggedGrid)

	_, err = l.LoadGridReader("empty", strings.NewReader("\n\n"), BackendTypeText)
	assert.ErrorIs(t, err, common.ErrRaggedGrid)

	_, err = l.LoadGridReader("bad", strings.NewReader("0g\n"), BackendTypeText)
	assert.ErrorContains(t, err, "invalid hex digit")
	assert.Nil(t, l.Get("bad"))
}

func TestLoadGridCachesByPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.txt")
	require.NoError(t, os.WriteFile(path, []byte("00\n11\n"), 0o644))

	l := NewLoader()
	first, err := l.LoadGrid(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("2\n"), 0o644))
	second, err := l.LoadGrid(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, l.Grids(), 1)
}

func TestLoadGridUnsupportedExtension(t *testing.T) {
	_, err := NewLoader().LoadGrid("art.gif")
	assert.ErrorContains(t, err, "unsupported grid format")
}

func TestDecodePalette(t *testing.T) {
	p, err := DecodePalette(strings.NewReader("colors:\n  - \"#ffffff\"\n  - \"000\"\n  - \"FF8000\"\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "#000000", p.Hex(1))
	assert.Equal(t, "#ff8000", p.Hex(2))

	_, err = DecodePalette(strings.NewReader("colours: [\"#fff\"]\n"))
	assert.Error(t, err)

	_, err = DecodePalette(strings.NewReader(""))
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)

	_, err = DecodePalette(strings.NewReader("colors: []\n"))
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

func TestLoadPaletteSetsActivePalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors: [\"#ffffff\", \"#000000\"]\n"), 0o644))

	l := NewLoader()
	assert.Nil(t, l.Palette())
	p, err := l.LoadPalette(path)
	require.NoError(t, err)
	assert.Same(t, p, l.Palette())
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	img.Set(1, 0, color.NRGBA{R: 10, G: 5, B: 0, A: 255})
	img.Set(2, 0, color.NRGBA{R: 200, G: 30, B: 20, A: 255})
	img.Set(0, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 0})
	img.Set(1, 1, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(2, 1, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	return img
}

func TestLoadGridReaderImageQuantizes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	l := NewLoader(WithPalette(testPalette(t)))
	g, err := l.LoadGridReader("png", &buf, BackendTypeImage)
	require.NoError(t, err)

	require.Equal(t, 2, g.Rows())
	require.Equal(t, 3, g.Cols())
	assert.Equal(t, []int{0, 1, 2}, []int{g.At(0, 0), g.At(0, 1), g.At(0, 2)})
	assert.Equal(t, []int{0, 2, 1}, []int{g.At(1, 0), g.At(1, 1), g.At(1, 2)})
}

func TestLoadGridReaderBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{A: 255})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))

	g, err := NewLoader(WithPalette(testPalette(t))).LoadGridReader("bmp", &buf, BackendTypeImage)
	require.NoError(t, err)
	assert.Equal(t, 2, g.At(0, 0))
	assert.Equal(t, 1, g.At(0, 1))
}

func TestLoadGridReaderImageNeedsPalette(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	_, err := NewLoader().LoadGridReader("png", &buf, BackendTypeImage)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

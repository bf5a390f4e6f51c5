package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timcal/epaper/display"
	"github.com/timcal/epaper/tricolor"
)

func testBuffer() *display.Buffer {
	buf := display.New(10, 2, tricolor.Red)
	buf.DrawPixel(0, 0, tricolor.Black)
	buf.DrawPixel(9, 1, tricolor.Accent)
	return buf
}

func TestScale(t *testing.T) {
	buf := testBuffer()

	assert.Same(t, buf.Image(), scale(buf.Image(), 1))

	img := scale(buf.Image(), 3)
	assert.Equal(t, image.Rect(0, 0, 30, 6), img.Bounds())

	p, ok := img.(*image.Paletted)
	require.True(t, ok)
	for _, pt := range []image.Point{{0, 0}, {2, 2}} {
		assert.Equal(t, uint8(tricolor.Black), p.ColorIndexAt(pt.X, pt.Y))
	}
	assert.Equal(t, uint8(tricolor.White), p.ColorIndexAt(3, 0))
	assert.Equal(t, uint8(tricolor.Accent), p.ColorIndexAt(29, 5))
}

func TestWritePlanes(t *testing.T) {
	file := filepath.Join(t.TempDir(), "planes.bin")
	require.NoError(t, writePlanes(file, testBuffer()))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x7f, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xbf,
	}, b)
}

func TestWritePNG(t *testing.T) {
	file := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, writePNG(file, testBuffer().Image(), 2))

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestWriteSixel(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, writeSixel(b, testBuffer().Image(), 1))
	assert.True(t, bytes.HasPrefix(b.Bytes(), []byte("\x1bP")))
}

func TestParseSymbol(t *testing.T) {
	s, err := parseSymbol("Accent")
	require.NoError(t, err)
	assert.Equal(t, tricolor.Accent, s)

	_, err = parseSymbol("green")
	assert.Error(t, err)
}

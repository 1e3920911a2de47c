package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownscaleImageLandscape(t *testing.T) {
	data := encodeTestPNG(t, 400, 200)

	out, err := DownscaleImage(data, 100, 100, 85)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestDownscaleImagePortrait(t *testing.T) {
	data := encodeTestPNG(t, 200, 400)

	out, err := DownscaleImage(data, 100, 100, 85)
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestDownscaleImageWithinBoundsReencodes(t *testing.T) {
	data := encodeTestPNG(t, 60, 40)

	out, err := DownscaleImage(data, 100, 100, 85)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}

func TestDownscaleImageRejectsGarbage(t *testing.T) {
	_, err := DownscaleImage([]byte("not an image"), 100, 100, 85)
	assert.Error(t, err)
}

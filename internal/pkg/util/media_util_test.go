package util

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestGetSafeContentType(t *testing.T) {
	assert.Equal(t, "image/png", GetSafeContentType(pngBytes(t, 8, 8)))
	assert.True(t, strings.HasPrefix(GetSafeContentType([]byte("plain text content")), "text/plain"))
}

func TestMakeThumbnailResizesWideImage(t *testing.T) {
	src := bytes.NewReader(pngBytes(t, 640, 480))

	buf, err := MakeThumbnail(src)
	require.NoError(t, err)

	thumb, err := imaging.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 320, thumb.Bounds().Dx())
	// 等比缩放
	assert.Equal(t, 240, thumb.Bounds().Dy())
}

func TestMakeThumbnailKeepsSmallImage(t *testing.T) {
	src := bytes.NewReader(pngBytes(t, 100, 80))

	buf, err := MakeThumbnail(src)
	require.NoError(t, err)

	thumb, err := imaging.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 100, thumb.Bounds().Dx())
}

func TestMakeThumbnailRejectsGarbage(t *testing.T) {
	_, err := MakeThumbnail(strings.NewReader("not an image"))
	assert.Error(t, err)
}

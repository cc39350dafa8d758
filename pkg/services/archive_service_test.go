package services

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func TestObjectName(t *testing.T) {
	p := models.Photo{ID: 102693, Camera: "FHAZ", EarthDate: "2015-05-30"}
	assert.Equal(t, "curiosity/2015-05-30/FHAZ/102693.jpg", ObjectName(rovers.Curiosity, p))

	p = models.Photo{ID: 7, Sol: 12}
	assert.Equal(t, "spirit/sol-12/UNKNOWN/7.jpg", ObjectName(rovers.Spirit, p))
}

func TestThumbnailName(t *testing.T) {
	assert.Equal(t, "spirit/2004-01-05/NAVCAM/7_thumb.jpg", ThumbnailName("spirit/2004-01-05/NAVCAM/7.jpg"))
}

func TestEncodeThumbnail(t *testing.T) {
	data, err := EncodeThumbnail(gradientImage(1024, 512), 320)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestEncodeThumbnailDoesNotEnlarge(t *testing.T) {
	data, err := EncodeThumbnail(gradientImage(100, 50), 320)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestValidateImage(t *testing.T) {
	assert.ErrorIs(t, ValidateImage(solidImage(64, 64, color.Black)), ErrBlankImage)
	assert.NoError(t, ValidateImage(gradientImage(64, 64)))
}

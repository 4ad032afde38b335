package assemble

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"", FormatPDF},
		{"pdf", FormatPDF},
		{"PDF", FormatPDF},
		{"images", FormatImages},
		{"image", FormatImages},
		{"cbz", FormatCBZ},
		{" cbz ", FormatCBZ},
	}

	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseFormat("epub")
	assert.Error(t, err)
}

func testImage(t *testing.T, w, h int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func testPNG(t *testing.T, w, h int) []byte {
	return testImage(t, w, h, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})
}

func testJPEG(t *testing.T, w, h int) []byte {
	return testImage(t, w, h, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, nil)
	})
}

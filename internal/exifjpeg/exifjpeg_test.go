package exifjpeg_test

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/domain"
	"fotocamera/internal/exifjpeg"
	"fotocamera/internal/services/overlay"
)

func TestEncode_OrientationReadsBack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for _, r := range []domain.Rotation{domain.Rotate0, domain.Rotate90, domain.Rotate180, domain.Rotate270} {
		var buf bytes.Buffer
		require.NoError(t, exifjpeg.Encode(&buf, img, 90, r))

		assert.Equal(t, r, overlay.ReadRotation(bytes.NewReader(buf.Bytes())), "rotation %d", r)

		decoded, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds(), "pixels stay in sensor order")
	}
}

func TestWithOrientation_RejectsNonJPEG(t *testing.T) {
	_, err := exifjpeg.WithOrientation([]byte("PNG"), 6)
	assert.Error(t, err)
}

func TestWithOrientation_ReplacesExistingTag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exifjpeg.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 4)), 90, domain.Rotate90))

	out, err := exifjpeg.WithOrientation(buf.Bytes(), domain.Rotate180.EXIFOrientation())
	require.NoError(t, err)

	assert.Equal(t, domain.Rotate180, overlay.ReadRotation(bytes.NewReader(out)))
	assert.Equal(t, 1, bytes.Count(out, []byte("Exif\x00\x00")), "one APP1 segment")
	_, err = jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
}

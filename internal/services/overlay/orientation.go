package overlay

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"

	"fotocamera/internal/domain"
)

// ReadRotation returns the rotation encoded in the EXIF orientation tag of r.
// Images without EXIF data, or without an orientation tag, need no rotation.
func ReadRotation(r io.Reader) domain.Rotation {
	x, err := exif.Decode(r)
	if err != nil {
		return domain.Rotate0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return domain.Rotate0
	}
	code, err := tag.Int(0)
	if err != nil {
		return domain.Rotate0
	}
	return domain.RotationFromEXIF(code)
}

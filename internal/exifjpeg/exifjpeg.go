// Package exifjpeg writes JPEGs that carry an EXIF orientation tag.
//
// The image encoder emits no metadata, so cameras that only know the
// target rotation at capture time use this to record it the way a phone
// sensor pipeline does: pixels stay in sensor order, the tag says how to
// turn them upright.
package exifjpeg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"fotocamera/internal/domain"
)

var errNotJPEG = errors.New("exifjpeg: missing SOI marker")

const orientationTag = "Orientation"

// Encode writes img as a JPEG at quality with an orientation tag for r.
// Rotate0 produces a plain JPEG with no APP1 segment.
func Encode(w io.Writer, img image.Image, quality int, r domain.Rotation) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return err
	}
	out := buf.Bytes()
	if r != domain.Rotate0 {
		var err error
		if out, err = WithOrientation(out, r.EXIFOrientation()); err != nil {
			return err
		}
	}
	_, err := w.Write(out)
	return err
}

// WithOrientation returns a copy of the JPEG in b whose IFD0 Orientation is
// code. Existing EXIF is kept and its tag replaced; otherwise a new APP1
// segment holding only the tag is added.
func WithOrientation(b []byte, code int) ([]byte, error) {
	if len(b) < 2 || b[0] != 0xFF || b[1] != 0xD8 {
		return nil, errNotJPEG
	}
	mc, err := jpegstructure.NewJpegMediaParser().ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("exifjpeg: parse: %w", err)
	}
	sl := mc.(*jpegstructure.SegmentList)

	ib, err := sl.ConstructExifBuilder()
	if err != nil {
		// No usable EXIF yet.
		if ib, err = newRootBuilder(); err != nil {
			return nil, err
		}
	}
	value := []uint16{uint16(code)}
	if err := ib.SetStandardWithName(orientationTag, value); err != nil {
		if err := ib.AddStandardWithName(orientationTag, value); err != nil {
			return nil, fmt.Errorf("exifjpeg: orientation: %w", err)
		}
	}
	if err := sl.SetExif(ib); err != nil {
		return nil, fmt.Errorf("exifjpeg: set exif: %w", err)
	}

	var out bytes.Buffer
	if err := sl.Write(&out); err != nil {
		return nil, fmt.Errorf("exifjpeg: write: %w", err)
	}
	return out.Bytes(), nil
}

func newRootBuilder() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("exifjpeg: ifd mapping: %w", err)
	}
	ti := exif.NewTagIndex()
	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}

package types

import (
	"fmt"
	"image"
)

// Rotation is a clockwise rotation in degrees: 0, 90, 180 or 270.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// EXIF orientation codes for the rotation-only subset of the tag.
const (
	EXIFOrientationNormal    = 1
	EXIFOrientationRotate180 = 3
	EXIFOrientationRotate90  = 6
	EXIFOrientationRotate270 = 8
)

// RotationFromEXIF maps an EXIF orientation code to the clockwise rotation needed to
// display the image upright. Mirrored and unknown codes map to Rotate0.
func RotationFromEXIF(code int) Rotation {
	switch code {
	case EXIFOrientationRotate90:
		return Rotate90
	case EXIFOrientationRotate180:
		return Rotate180
	case EXIFOrientationRotate270:
		return Rotate270
	default:
		return Rotate0
	}
}

// NormalizeRotation folds any multiple of 90 degrees into [0, 360).
func NormalizeRotation(degrees int) (Rotation, error) {
	if degrees%90 != 0 {
		return Rotate0, fmt.Errorf("rotation %d is not a multiple of 90", degrees)
	}
	return Rotation(((degrees % 360) + 360) % 360), nil
}

// EXIFOrientation is the inverse of RotationFromEXIF.
func (r Rotation) EXIFOrientation() int {
	switch r {
	case Rotate90:
		return EXIFOrientationRotate90
	case Rotate180:
		return EXIFOrientationRotate180
	case Rotate270:
		return EXIFOrientationRotate270
	default:
		return EXIFOrientationNormal
	}
}

// SwapsAxes reports whether applying r exchanges width and height.
func (r Rotation) SwapsAxes() bool { return r == Rotate90 || r == Rotate270 }

// Degrees returns r as a plain int.
func (r Rotation) Degrees() int { return int(r) }

// CapturedImage is a decoded frame plus the rotation still to be applied to it.
type CapturedImage struct {
	Pixels   image.Image
	Rotation Rotation
}

// Width is the width of the stored (unrotated) pixel buffer.
func (c CapturedImage) Width() int { return c.Pixels.Bounds().Dx() }

// Height is the height of the stored (unrotated) pixel buffer.
func (c CapturedImage) Height() int { return c.Pixels.Bounds().Dy() }

// FinalSize returns the dimensions after the rotation hint is applied.
func (c CapturedImage) FinalSize() (w, h int) {
	if c.Rotation.SwapsAxes() {
		return c.Height(), c.Width()
	}
	return c.Width(), c.Height()
}

// OverlayGeometry is the badge rectangle, anchored at its top-left corner.
// The anchor may be negative when the badge is larger than the image.
type OverlayGeometry struct {
	X, Y          int
	Width, Height int
}

// Rect returns the badge as an image.Rectangle.
func (g OverlayGeometry) Rect() image.Rectangle {
	return image.Rect(g.X, g.Y, g.X+g.Width, g.Y+g.Height)
}

// HalfWidth is the width of the left (red) half. The right half takes the
// remainder, one pixel wider when Width is odd.
func (g OverlayGeometry) HalfWidth() int { return g.Width / 2 }

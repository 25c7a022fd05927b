package overlay

import (
	"fmt"
	"strings"

	"fotocamera/internal/domain"
)

// Policy selects how the badge is sized and anchored.
type Policy string

const (
	PolicyScaled Policy = "scaled"
	PolicyFixed  Policy = "fixed"
)

// Badge constants.
const (
	ScaledBaseWidth  = 240
	ScaledBaseHeight = 128
	ScaledMinWidth   = 120
	ScaledMinHeight  = 60
	ScaledMargin     = 20

	// scaleUnit is the image dimension at which the base badge is drawn 1:1.
	scaleUnit = 1000

	FixedWidth  = 616
	FixedHeight = 328
	FixedMargin = 0

	// TextScale is the label size as a fraction of badge height.
	TextScale = 0.671
)

// ParsePolicy accepts "scaled" or "fixed" (case-insensitive); empty means scaled.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyScaled:
		return PolicyScaled, nil
	case PolicyFixed:
		return PolicyFixed, nil
	default:
		return "", fmt.Errorf("unknown overlay policy %q (want scaled or fixed)", s)
	}
}

// Geometry returns the badge rectangle for a final (post-rotation) image size.
func Geometry(p Policy, width, height int) domain.OverlayGeometry {
	if p == PolicyFixed {
		return domain.OverlayGeometry{
			X:      width - FixedWidth - FixedMargin,
			Y:      height - FixedHeight - FixedMargin,
			Width:  FixedWidth,
			Height: FixedHeight,
		}
	}

	minDim := min(width, height)
	// Integer arithmetic floors base*min/1000 exactly.
	w := max(ScaledBaseWidth*minDim/scaleUnit, ScaledMinWidth)
	h := max(ScaledBaseHeight*minDim/scaleUnit, ScaledMinHeight)
	return domain.OverlayGeometry{
		X:      width - w - ScaledMargin,
		Y:      height - h - ScaledMargin,
		Width:  w,
		Height: h,
	}
}

// TextSize is the label size in pixels for a badge.
func TextSize(g domain.OverlayGeometry) float64 {
	return float64(g.Height) * TextScale
}

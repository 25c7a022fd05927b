// Package render draws the flat shapes and bold labels shared by the photo badge
// and the digit picker.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// parsedFont parses a TTF once.
type parsedFont struct {
	once sync.Once
	ttf  []byte
	font *truetype.Font
	err  error
}

func (p *parsedFont) get() (*truetype.Font, error) {
	p.once.Do(func() { p.font, p.err = truetype.Parse(p.ttf) })
	return p.font, p.err
}

var (
	boldFont    = &parsedFont{ttf: gobold.TTF}
	regularFont = &parsedFont{ttf: goregular.TTF}
)

// BoldFace returns a bold face whose em size is px pixels.
func BoldFace(px float64) (font.Face, error) {
	return face(boldFont, "bold", px)
}

// RegularFace returns a regular-weight face whose em size is px pixels.
func RegularFace(px float64) (font.Face, error) {
	return face(regularFont, "regular", px)
}

func face(p *parsedFont, name string, px float64) (font.Face, error) {
	f, err := p.get()
	if err != nil {
		return nil, fmt.Errorf("parse %s font: %w", name, err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// FillRect composites c over r, so translucent colors blend with what is
// underneath. Parts of r outside dst are clipped.
func FillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// CenteredText draws text horizontally centered on cx with its baseline at y.
func CenteredText(dst draw.Image, face font.Face, text string, cx, y float64, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: c},
		Face: face,
	}
	width := d.MeasureString(text)
	x := toFixed(cx) - width/2
	d.Dot = fixed.Point26_6{X: x, Y: toFixed(y)}
	d.DrawString(text)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// ParseHex parses "#RRGGBB" or "#AARRGGBB" (leading '#' optional).
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #RRGGBB or #AARRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	a := uint8(0xff)
	if len(h) == 8 {
		a = uint8(v >> 24)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: a}, nil
}

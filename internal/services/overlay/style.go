package overlay

import (
	"image/color"

	"fotocamera/internal/render"
)

// Default badge colors.
const (
	DefaultRedHex  = "#D32F2F"
	DefaultBlueHex = "#1976D2"
	DefaultTextHex = "#FFFFFF"
)

// Style holds the badge colors.
type Style struct {
	Red  color.Color
	Blue color.Color
	Text color.Color
}

// DefaultStyle returns the stock red/blue badge with white text.
func DefaultStyle() Style {
	return Style{
		Red:  color.NRGBA{R: 0xD3, G: 0x2F, B: 0x2F, A: 0xFF},
		Blue: color.NRGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF},
		Text: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
}

// StyleFromHex builds a Style from hex strings; empty strings keep the default.
func StyleFromHex(red, blue, text string) (Style, error) {
	s := DefaultStyle()
	for _, f := range []struct {
		hex string
		dst *color.Color
	}{{red, &s.Red}, {blue, &s.Blue}, {text, &s.Text}} {
		if f.hex == "" {
			continue
		}
		c, err := render.ParseHex(f.hex)
		if err != nil {
			return Style{}, err
		}
		*f.dst = c
	}
	return s, nil
}

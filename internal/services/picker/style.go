package picker

import (
	"image/color"

	"fotocamera/internal/domain"
)

// Style is the explicit look of the picker.
type Style struct {
	// Selected fills the selected cell of each selector.
	Selected [domain.DisplayNumberLength]color.Color
	Background color.Color
	// Text colors the selected digits; Dimmed colors the neighbours above and below.
	Text   color.Color
	Dimmed color.Color
	Bold   bool

	Dividers bool
	Divider  color.Color

	TextSize   float64
	CellWidth  int
	CellHeight int
}

// DefaultStyle returns bold white digits on red (first two) and blue (last two)
// cells with dividers hidden.
func DefaultStyle() Style {
	red := color.NRGBA{R: 0xD3, G: 0x2F, B: 0x2F, A: 0xFF}
	blue := color.NRGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF}
	return Style{
		Selected:   [domain.DisplayNumberLength]color.Color{red, red, blue, blue},
		Background: color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xFF},
		Text:       color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Dimmed:     color.NRGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF},
		Bold:       true,
		Dividers:   false,
		Divider:    color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x60},
		TextSize:   48,
		CellWidth:  72,
		CellHeight: 72,
	}
}

// WithBadgeColors returns s with the selected cells painted red, red, blue, blue.
func (s Style) WithBadgeColors(red, blue color.Color) Style {
	s.Selected = [domain.DisplayNumberLength]color.Color{red, red, blue, blue}
	return s
}

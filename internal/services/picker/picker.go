package picker

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync"

	"fotocamera/internal/domain"
	"fotocamera/internal/render"
)

// Selectors is the number of digit selectors.
const Selectors = domain.DisplayNumberLength

var (
	// ErrPickerClosed is returned by every operation after Confirm or Cancel.
	ErrPickerClosed = errors.New("picker is closed")
	// ErrNoSelector is returned for a selector index outside [0, Selectors).
	ErrNoSelector = errors.New("no such selector")
)

// Picker holds four digit selectors.
type Picker struct {
	mu     sync.Mutex
	digits [Selectors]int
	closed bool
	style  Style
}

// New returns a picker whose selectors start at the digits of current.
// Absent or non-digit characters start at 0.
func New(current domain.DisplayNumber, style Style) *Picker {
	p := &Picker{style: style}
	for i := range p.digits {
		p.digits[i] = current.Digit(i)
	}
	return p
}

// Style returns the picker's style.
func (p *Picker) Style() Style { return p.style }

// Closed reports whether the picker has been confirmed or cancelled.
func (p *Picker) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Digits returns the current selector values.
func (p *Picker) Digits() ([Selectors]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return [Selectors]int{}, ErrPickerClosed
	}
	return p.digits, nil
}

// Increment moves selector i up by one, wrapping 9 to 0.
func (p *Picker) Increment(i int) (int, error) {
	return p.update(i, func(v int) int { return (v + 1) % 10 })
}

// Decrement moves selector i down by one, wrapping 0 to 9.
func (p *Picker) Decrement(i int) (int, error) {
	return p.update(i, func(v int) int { return (v + 9) % 10 })
}

// Set stores v in selector i, clamped to [0, 9].
func (p *Picker) Set(i, v int) (int, error) {
	return p.update(i, func(int) int { return min(max(v, 0), 9) })
}

func (p *Picker) update(i int, fn func(int) int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, ErrPickerClosed
	}
	if i < 0 || i >= Selectors {
		return 0, fmt.Errorf("%w: %d", ErrNoSelector, i)
	}
	p.digits[i] = fn(p.digits[i])
	return p.digits[i], nil
}

// Confirm closes the picker and returns the selected digits as a DisplayNumber.
func (p *Picker) Confirm() (domain.DisplayNumber, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", ErrPickerClosed
	}
	p.closed = true

	var b strings.Builder
	for _, d := range p.digits {
		b.WriteByte(byte('0' + d))
	}
	return domain.DisplayNumber(b.String()), nil
}

// Cancel closes the picker without producing a number.
func (p *Picker) Cancel() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

// Render draws the selectors as a wheel: the selected digit in a colored cell
// with the previous and next digits dimmed above and below.
func (p *Picker) Render() (*image.NRGBA, error) {
	digits, err := p.Digits()
	if err != nil {
		return nil, err
	}
	s := p.style
	cw, ch := s.CellWidth, s.CellHeight
	img := image.NewNRGBA(image.Rect(0, 0, Selectors*cw, 3*ch))
	render.FillRect(img, img.Bounds(), s.Background)

	newFace := render.RegularFace
	if s.Bold {
		newFace = render.BoldFace
	}
	face, err := newFace(s.TextSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	for i, d := range digits {
		x0 := i * cw
		cx := float64(x0) + float64(cw)/2
		render.FillRect(img, image.Rect(x0, ch, x0+cw, 2*ch), s.Selected[i])

		rows := [3]int{(d + 9) % 10, d, (d + 1) % 10}
		for row, v := range rows {
			c := s.Dimmed
			if row == 1 {
				c = s.Text
			}
			baseline := float64(row*ch) + float64(ch)/2 + s.TextSize/3
			render.CenteredText(img, face, strconv.Itoa(v), cx, baseline, c)
		}
	}

	if s.Dividers {
		render.FillRect(img, image.Rect(0, ch, img.Bounds().Dx(), ch+2), s.Divider)
		render.FillRect(img, image.Rect(0, 2*ch-2, img.Bounds().Dx(), 2*ch), s.Divider)
	}
	return img, nil
}

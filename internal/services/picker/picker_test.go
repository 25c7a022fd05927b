package picker_test

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/domain"
	"fotocamera/internal/services/picker"
)

func TestConfirm_ConcatenatesEverySelection(t *testing.T) {
	for n := 0; n < 10000; n++ {
		want := fmt.Sprintf("%04d", n)
		p := picker.New(domain.DefaultDisplayNumber, picker.DefaultStyle())
		for i := 0; i < picker.Selectors; i++ {
			_, err := p.Set(i, int(want[i]-'0'))
			require.NoError(t, err)
		}
		got, err := p.Confirm()
		require.NoError(t, err)
		if string(got) != want {
			t.Fatalf("Confirm() = %q, want %q", got, want)
		}
	}
}

func TestNew_InitializesFromNumber(t *testing.T) {
	cases := map[domain.DisplayNumber][picker.Selectors]int{
		"4271": {4, 2, 7, 1},
		"0042": {0, 0, 4, 2},
		"4x":   {4, 0, 0, 0},
		"":     {0, 0, 0, 0},
		"9a9b": {9, 0, 9, 0},
	}
	for in, want := range cases {
		got, err := picker.New(in, picker.DefaultStyle()).Digits()
		require.NoError(t, err)
		assert.Equal(t, want, got, "init from %q", in)
	}
}

func TestSelectorsWrap(t *testing.T) {
	p := picker.New("9000", picker.DefaultStyle())

	v, err := p.Increment(0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = p.Decrement(1)
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	v, err = p.Increment(2)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	got, err := p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayNumber("0910"), got)
}

func TestSet_Clamps(t *testing.T) {
	p := picker.New("5555", picker.DefaultStyle())

	v, err := p.Set(0, 42)
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	v, err = p.Set(3, -7)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = p.Set(4, 1)
	assert.ErrorIs(t, err, picker.ErrNoSelector)
	_, err = p.Increment(-1)
	assert.ErrorIs(t, err, picker.ErrNoSelector)
}

func TestCancel_ClosesWithoutResult(t *testing.T) {
	p := picker.New("1234", picker.DefaultStyle())
	p.Cancel()
	assert.True(t, p.Closed())

	_, err := p.Confirm()
	assert.ErrorIs(t, err, picker.ErrPickerClosed)
	_, err = p.Increment(0)
	assert.ErrorIs(t, err, picker.ErrPickerClosed)
	_, err = p.Render()
	assert.ErrorIs(t, err, picker.ErrPickerClosed)
}

func TestConfirm_Once(t *testing.T) {
	p := picker.New("1234", picker.DefaultStyle())
	_, err := p.Confirm()
	require.NoError(t, err)

	_, err = p.Confirm()
	assert.ErrorIs(t, err, picker.ErrPickerClosed)
	_, err = p.Digits()
	assert.ErrorIs(t, err, picker.ErrPickerClosed)
}

func TestRender_CellsUseStyle(t *testing.T) {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	blue := color.NRGBA{B: 0xFF, A: 0xFF}
	style := picker.DefaultStyle().WithBadgeColors(red, blue)
	p := picker.New("4271", style)

	img, err := p.Render()
	require.NoError(t, err)

	cw, ch := style.CellWidth, style.CellHeight
	assert.Equal(t, picker.Selectors*cw, img.Bounds().Dx())
	assert.Equal(t, 3*ch, img.Bounds().Dy())

	assert.Equal(t, red, img.NRGBAAt(1, ch+1))
	assert.Equal(t, red, img.NRGBAAt(cw+1, ch+1))
	assert.Equal(t, blue, img.NRGBAAt(2*cw+1, ch+1))
	assert.Equal(t, blue, img.NRGBAAt(3*cw+1, ch+1))
	assert.Equal(t, style.Background, img.NRGBAAt(1, 1))
}

func TestRender_Dividers(t *testing.T) {
	plain := picker.DefaultStyle()
	lined := plain
	lined.Dividers = true
	lined.Divider = color.NRGBA{G: 0xFF, A: 0xFF}

	a, err := picker.New("0000", plain).Render()
	require.NoError(t, err)
	b, err := picker.New("0000", lined).Render()
	require.NoError(t, err)

	assert.NotEqual(t, lined.Divider, a.NRGBAAt(1, plain.CellHeight))
	assert.Equal(t, lined.Divider, b.NRGBAAt(1, lined.CellHeight))
	assert.Equal(t, lined.Divider, b.NRGBAAt(1, 2*lined.CellHeight-1))
}

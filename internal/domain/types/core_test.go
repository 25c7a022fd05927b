package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/domain/types"
)

func TestParseDisplayNumber(t *testing.T) {
	for _, ok := range []string{"0000", "4271", "0099", "9999"} {
		n, err := types.ParseDisplayNumber(ok)
		require.NoError(t, err, ok)
		assert.Equal(t, ok, n.String())
	}
	for _, bad := range []string{"", "123", "12345", "12a4", " 123", "١٢٣٤"} {
		_, err := types.ParseDisplayNumber(bad)
		assert.ErrorIs(t, err, types.ErrInvalidDisplayNumber, bad)
	}
}

func TestDisplayNumber_Groups(t *testing.T) {
	n := types.DisplayNumber("0427")
	assert.Equal(t, "04", n.First())
	assert.Equal(t, "27", n.Last())
	assert.Equal(t, 0, n.Digit(0))
	assert.Equal(t, 7, n.Digit(3))
	assert.Equal(t, 0, n.Digit(4))
}

func TestDisplayNumber_DigitUnparseable(t *testing.T) {
	n := types.DisplayNumber("4x")
	assert.Equal(t, 4, n.Digit(0))
	assert.Equal(t, 0, n.Digit(1))
	assert.Equal(t, 0, n.Digit(2))
}

func TestRotationFromEXIF(t *testing.T) {
	cases := map[int]types.Rotation{
		0: types.Rotate0,
		1: types.Rotate0,
		2: types.Rotate0,
		3: types.Rotate180,
		6: types.Rotate90,
		8: types.Rotate270,
	}
	for code, want := range cases {
		assert.Equal(t, want, types.RotationFromEXIF(code), "code %d", code)
	}
	for _, r := range []types.Rotation{types.Rotate0, types.Rotate90, types.Rotate180, types.Rotate270} {
		assert.Equal(t, r, types.RotationFromEXIF(r.EXIFOrientation()))
	}
}

func TestNormalizeRotation(t *testing.T) {
	r, err := types.NormalizeRotation(-90)
	require.NoError(t, err)
	assert.Equal(t, types.Rotate270, r)

	r, err = types.NormalizeRotation(450)
	require.NoError(t, err)
	assert.Equal(t, types.Rotate90, r)

	_, err = types.NormalizeRotation(45)
	assert.Error(t, err)
}

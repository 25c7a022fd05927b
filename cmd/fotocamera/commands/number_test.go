package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/domain"
	"fotocamera/internal/services/picker"
)

func TestRunPicker_Confirm(t *testing.T) {
	p := picker.New("4271", picker.DefaultStyle())
	in := strings.NewReader("+1\n-4\n2=9\nbogus\n5=1\nok\n")
	var out bytes.Buffer

	n, ok, err := runPicker(p, in, &out, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.DisplayNumber("5970"), n)
	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.Contains(t, out.String(), "selector must be 1-4")
}

func TestRunPicker_CancelAndEOF(t *testing.T) {
	p := picker.New("1234", picker.DefaultStyle())
	_, ok, err := runPicker(p, strings.NewReader("+1\ncancel\n"), &bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, p.Closed())

	p = picker.New("1234", picker.DefaultStyle())
	_, ok, err = runPicker(p, strings.NewReader("+1\n"), &bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunPicker_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picker.png")
	p := picker.New("0000", picker.DefaultStyle())
	_, _, err := runPicker(p, strings.NewReader("ok\n"), &bytes.Buffer{}, path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

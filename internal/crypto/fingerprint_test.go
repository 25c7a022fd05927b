package crypto_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/crypto"
)

func TestFingerprintFile_MatchesBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jpg")
	data := []byte("not really a jpeg")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	fp, size, err := crypto.FingerprintFile(path)
	require.NoError(t, err)
	assert.Equal(t, crypto.Fingerprint(data), fp)
	assert.Equal(t, int64(len(data)), size)
	assert.Len(t, fp, 64)
	assert.Len(t, crypto.Short(fp), 20)
}

func TestFingerprint_Differs(t *testing.T) {
	assert.NotEqual(t, crypto.Fingerprint([]byte("a")), crypto.Fingerprint([]byte("b")))
}

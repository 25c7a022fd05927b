package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/domain"
	"fotocamera/internal/services/picker"
	"fotocamera/internal/services/session"
	"fotocamera/internal/store"
)

// failingStore accepts reads and rejects every write.
type failingStore struct {
	domain.PreferenceStore
	err error
}

func (f failingStore) SaveDisplayNumber(domain.DisplayNumber) error { return f.err }

func TestOpen_LoadsStoredNumber(t *testing.T) {
	prefs := store.NewPreferenceFileStore(t.TempDir())
	require.NoError(t, prefs.SaveDisplayNumber("0042"))

	c, err := session.Open(prefs)
	require.NoError(t, err)
	n, err := c.Number()
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayNumber("0042"), n)
}

func TestPickerConfirm_Persists(t *testing.T) {
	dir := t.TempDir()
	c, err := session.Open(store.NewPreferenceFileStore(dir))
	require.NoError(t, err)

	p, err := c.Picker()
	require.NoError(t, err)
	digits, err := p.Digits()
	require.NoError(t, err)
	assert.Equal(t, [picker.Selectors]int{0, 0, 0, 0}, digits)

	for i, d := range []int{4, 2, 7, 1} {
		_, err := p.Set(i, d)
		require.NoError(t, err)
	}
	n, err := c.Confirm(p)
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayNumber("4271"), n)

	reopened, err := store.NewPreferenceFileStore(dir).DisplayNumber()
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayNumber("4271"), reopened)
}

func TestPickerCancel_LeavesNumber(t *testing.T) {
	c, err := session.Open(store.NewPreferenceFileStore(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, c.Apply("1111"))

	p, err := c.Picker()
	require.NoError(t, err)
	_, err = p.Set(0, 9)
	require.NoError(t, err)
	p.Cancel()

	_, err = c.Confirm(p)
	assert.ErrorIs(t, err, picker.ErrPickerClosed)
	n, err := c.Number()
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayNumber("1111"), n)
}

func TestApply_RejectsInvalid(t *testing.T) {
	c, err := session.Open(store.NewPreferenceFileStore(t.TempDir()))
	require.NoError(t, err)

	assert.ErrorIs(t, c.Apply("12a4"), domain.ErrInvalidDisplayNumber)
	assert.ErrorIs(t, c.Apply("123"), domain.ErrInvalidDisplayNumber)

	n, err := c.Number()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplayNumber, n)
}

func TestApply_StoreFailureKeepsNumber(t *testing.T) {
	boom := errors.New("read-only")
	prefs := failingStore{PreferenceStore: store.NewPreferenceFileStore(t.TempDir()), err: boom}
	c, err := session.Open(prefs)
	require.NoError(t, err)

	assert.ErrorIs(t, c.Apply("9999"), boom)
	n, err := c.Number()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplayNumber, n)
}

func TestClose(t *testing.T) {
	c, err := session.Open(store.NewPreferenceFileStore(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.Number()
	assert.ErrorIs(t, err, session.ErrClosed)
	_, err = c.Picker()
	assert.ErrorIs(t, err, session.ErrClosed)
	assert.ErrorIs(t, c.Apply("1234"), session.ErrClosed)
}

package launch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/services/launch"
	"fotocamera/internal/store"
)

func TestNext_FirstLaunchPromptsOnce(t *testing.T) {
	prefs := store.NewPreferenceFileStore(t.TempDir())

	d, err := launch.Next(prefs)
	require.NoError(t, err)
	assert.Equal(t, launch.ShowDefaultPrompt, d)

	first, err := prefs.IsFirstLaunch()
	require.NoError(t, err)
	assert.False(t, first)

	// Not opted out yet, so later launches still prompt.
	d, err = launch.Next(prefs)
	require.NoError(t, err)
	assert.Equal(t, launch.ShowDefaultPrompt, d)
}

func TestNext_OptedOutOpensCamera(t *testing.T) {
	prefs := store.NewPreferenceFileStore(t.TempDir())
	require.NoError(t, prefs.SetFirstLaunchCompleted())
	require.NoError(t, prefs.SetDontAskAgainDefault(true))

	d, err := launch.Next(prefs)
	require.NoError(t, err)
	assert.Equal(t, launch.OpenCamera, d)
}

func TestNext_FirstLaunchIgnoresOptOut(t *testing.T) {
	prefs := store.NewPreferenceFileStore(t.TempDir())
	require.NoError(t, prefs.SetDontAskAgainDefault(true))

	d, err := launch.Next(prefs)
	require.NoError(t, err)
	assert.Equal(t, launch.ShowDefaultPrompt, d)
}

func TestAnswer(t *testing.T) {
	cases := []struct {
		choice     launch.Choice
		dontAsk    bool
		want       launch.Decision
		wantOptOut bool
	}{
		{launch.Yes, false, launch.OpenDefaultSettings, false},
		{launch.Yes, true, launch.OpenDefaultSettings, true},
		{launch.No, false, launch.OpenCamera, false},
		{launch.No, true, launch.OpenCamera, true},
		{launch.Later, false, launch.OpenCamera, false},
		{launch.Later, true, launch.OpenCamera, false},
	}
	for _, tc := range cases {
		t.Run(tc.choice.String(), func(t *testing.T) {
			prefs := store.NewPreferenceFileStore(t.TempDir())
			d, err := launch.Answer(prefs, tc.choice, tc.dontAsk)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d)

			optOut, err := prefs.IsDontAskAgainDefault()
			require.NoError(t, err)
			assert.Equal(t, tc.wantOptOut, optOut)
		})
	}
}

func TestParseChoice(t *testing.T) {
	c, err := launch.ParseChoice(" YES ")
	require.NoError(t, err)
	assert.Equal(t, launch.Yes, c)

	_, err = launch.ParseChoice("maybe")
	assert.Error(t, err)
}

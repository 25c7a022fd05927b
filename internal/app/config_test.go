package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotocamera/internal/app"
	"fotocamera/internal/device"
	"fotocamera/internal/domain"
	"fotocamera/internal/services/overlay"
	"fotocamera/internal/store"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	chdir(t, t.TempDir())

	cfg, err := app.LoadConfig(home, "")
	require.NoError(t, err)

	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, filepath.Join(home, "media"), cfg.MediaRoot)
	assert.Equal(t, filepath.Join(home, "inbox"), cfg.Camera.Inbox)
	assert.Equal(t, store.DriverSQLite, cfg.MediaIndex.Driver)
	assert.Equal(t, filepath.Join(home, "media.db"), cfg.MediaIndex.DSN)
	assert.Equal(t, string(overlay.PolicyScaled), cfg.Overlay.Policy)
	assert.Equal(t, app.CameraScreen, cfg.Camera.Kind)
	assert.Equal(t, 30*time.Second, cfg.Camera.Timeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr)
	assert.Equal(t, 9600, cfg.Shutter.Baud)

	style, err := cfg.Style()
	require.NoError(t, err)
	assert.Equal(t, overlay.DefaultStyle(), style)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	chdir(t, t.TempDir())
	yaml := `
overlay:
  policy: fixed
  colors:
    red: "#FF0000"
camera:
  kind: folder
  sensor_orientation: 90
  orientation: landscape
http:
  addr: ":9000"
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("FOTOCAMERA_HTTP_ADDR", ":9100")

	cfg, err := app.LoadConfig(home, "")
	require.NoError(t, err)

	assert.Equal(t, "fixed", cfg.Overlay.Policy)
	assert.Equal(t, "#FF0000", cfg.Overlay.Colors.Red)
	assert.Equal(t, overlay.DefaultBlueHex, cfg.Overlay.Colors.Blue)
	assert.Equal(t, app.CameraFolder, cfg.Camera.Kind)
	assert.Equal(t, ":9100", cfg.HTTP.Addr, "environment overrides the file")

	sensor, err := cfg.SensorOrientation()
	require.NoError(t, err)
	assert.Equal(t, domain.Rotate90, sensor)
	o, r, err := cfg.Orientation()
	require.NoError(t, err)
	assert.Equal(t, domain.OrientationLandscape, o)
	assert.Equal(t, domain.Rotate0, r)
}

func TestLoadConfig_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	cases := map[string]string{
		"policy":   "overlay:\n  policy: stretched\n",
		"color":    "overlay:\n  colors:\n    blue: nope\n",
		"camera":   "camera:\n  kind: webcam\n",
		"rotation": "camera:\n  rotation: 45\n",
		"driver":   "media_index:\n  driver: postgres\n",
		"mysqldsn": "media_index:\n  driver: mysql\n",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(file, []byte(yaml), 0o600))
			_, err := app.LoadConfig(t.TempDir(), file)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := app.LoadConfig(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWire_FolderCamera(t *testing.T) {
	home := t.TempDir()
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("camera:\n  kind: folder\n"), 0o600))
	cfg, err := app.LoadConfig(home, "")
	require.NoError(t, err)

	w, err := app.NewWire(cfg, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	n, err := w.Session.Number()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplayNumber, n)

	cam, err := w.Camera()
	require.NoError(t, err)
	assert.IsType(t, &device.FolderCamera{}, cam)
	assert.DirExists(t, cfg.Camera.Inbox)

	orch, err := w.Capture(context.Background())
	require.NoError(t, err)
	again, err := w.Capture(context.Background())
	require.NoError(t, err)
	assert.Same(t, orch, again)
	assert.Equal(t, filepath.Join(cfg.MediaRoot, "DCIM", "Camera"), orch.Dir())

	assert.Nil(t, w.Shutter(orch), "no serial port configured")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

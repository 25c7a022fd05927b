package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"fotocamera/internal/domain"
	"fotocamera/internal/logging"
	"fotocamera/internal/services/overlay"
	"fotocamera/internal/store"
)

// Camera kinds.
const (
	CameraScreen = "screen"
	CameraFolder = "folder"
)

// EnvPrefix prefixes environment overrides, e.g. FOTOCAMERA_HTTP_ADDR.
const EnvPrefix = "FOTOCAMERA"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string           `mapstructure:"home"`       // app state dir, e.g. $HOME/.fotocamera
	MediaRoot  string           `mapstructure:"media_root"` // shared media dir; photos go to DCIM/Camera below it
	Overlay    OverlayConfig    `mapstructure:"overlay"`
	Camera     CameraConfig     `mapstructure:"camera"`
	MediaIndex MediaIndexConfig `mapstructure:"media_index"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Shutter    ShutterConfig    `mapstructure:"shutter"`
	Log        LogConfig        `mapstructure:"log"`
}

type OverlayConfig struct {
	Policy string       `mapstructure:"policy"` // scaled or fixed
	Colors ColorsConfig `mapstructure:"colors"`
}

type ColorsConfig struct {
	Red  string `mapstructure:"red"`
	Blue string `mapstructure:"blue"`
	Text string `mapstructure:"text"`
}

type CameraConfig struct {
	Kind              string        `mapstructure:"kind"` // screen or folder
	Display           int           `mapstructure:"display"`
	FPS               int           `mapstructure:"fps"`
	Inbox             string        `mapstructure:"inbox"`
	Timeout           time.Duration `mapstructure:"timeout"`
	SensorOrientation int           `mapstructure:"sensor_orientation"`
	Orientation       string        `mapstructure:"orientation"` // portrait or landscape
	Rotation          int           `mapstructure:"rotation"`    // display rotation in degrees
}

type MediaIndexConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or mysql
	DSN    string `mapstructure:"dsn"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type ShutterConfig struct {
	Port string `mapstructure:"port"` // empty disables the serial shutter
	Baud int    `mapstructure:"baud"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	File        string `mapstructure:"file"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("home", "")
	v.SetDefault("media_root", "")
	v.SetDefault("overlay.policy", string(overlay.PolicyScaled))
	v.SetDefault("overlay.colors.red", overlay.DefaultRedHex)
	v.SetDefault("overlay.colors.blue", overlay.DefaultBlueHex)
	v.SetDefault("overlay.colors.text", overlay.DefaultTextHex)
	v.SetDefault("camera.kind", CameraScreen)
	v.SetDefault("camera.display", 0)
	v.SetDefault("camera.fps", 5)
	v.SetDefault("camera.inbox", "")
	v.SetDefault("camera.timeout", "30s")
	v.SetDefault("camera.sensor_orientation", 0)
	v.SetDefault("camera.orientation", domain.OrientationPortrait.String())
	v.SetDefault("camera.rotation", 0)
	v.SetDefault("media_index.driver", store.DriverSQLite)
	v.SetDefault("media_index.dsn", "")
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("shutter.port", "")
	v.SetDefault("shutter.baud", 9600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.development", false)
}

// LoadConfig reads config.yaml (from file, or else from home and the working
// directory), applies FOTOCAMERA_* environment overrides and fills in
// home-relative defaults. A missing config file is not an error.
func LoadConfig(home, file string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if home != "" {
		v.Set("home", home)
	}
	home = v.GetString("home")
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		home = filepath.Join(dir, ".fotocamera")
	}

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(home)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Home == "" {
		cfg.Home = home
	}
	cfg.fillPaths()
	return cfg, cfg.Validate()
}

func (c *Config) fillPaths() {
	if c.MediaRoot == "" {
		c.MediaRoot = filepath.Join(c.Home, "media")
	}
	if c.Camera.Inbox == "" {
		c.Camera.Inbox = filepath.Join(c.Home, "inbox")
	}
	if c.MediaIndex.DSN == "" && c.MediaIndex.Driver == store.DriverSQLite {
		c.MediaIndex.DSN = filepath.Join(c.Home, "media.db")
	}
}

// Validate checks enumerated values and colors.
func (c Config) Validate() error {
	if _, err := overlay.ParsePolicy(c.Overlay.Policy); err != nil {
		return err
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	switch c.Camera.Kind {
	case CameraScreen, CameraFolder:
	default:
		return fmt.Errorf("unknown camera kind %q (want screen or folder)", c.Camera.Kind)
	}
	if _, err := c.SensorOrientation(); err != nil {
		return fmt.Errorf("camera.sensor_orientation: %w", err)
	}
	if _, _, err := c.Orientation(); err != nil {
		return err
	}
	switch c.MediaIndex.Driver {
	case store.DriverSQLite, store.DriverMySQL:
	default:
		return fmt.Errorf("unknown media index driver %q (want sqlite or mysql)", c.MediaIndex.Driver)
	}
	if c.MediaIndex.DSN == "" {
		return errors.New("media_index.dsn is required for mysql")
	}
	return nil
}

// Style returns the configured badge colors.
func (c Config) Style() (overlay.Style, error) {
	return overlay.StyleFromHex(c.Overlay.Colors.Red, c.Overlay.Colors.Blue, c.Overlay.Colors.Text)
}

// SensorOrientation returns camera.sensor_orientation as a Rotation.
func (c Config) SensorOrientation() (domain.Rotation, error) {
	return domain.NormalizeRotation(c.Camera.SensorOrientation)
}

// Orientation returns the configured device orientation and display rotation.
func (c Config) Orientation() (domain.Orientation, domain.Rotation, error) {
	var o domain.Orientation
	switch strings.ToLower(c.Camera.Orientation) {
	case "", "portrait":
		o = domain.OrientationPortrait
	case "landscape":
		o = domain.OrientationLandscape
	default:
		return o, domain.Rotate0, fmt.Errorf("unknown camera orientation %q", c.Camera.Orientation)
	}
	r, err := domain.NormalizeRotation(c.Camera.Rotation)
	if err != nil {
		return o, domain.Rotate0, fmt.Errorf("camera.rotation: %w", err)
	}
	return o, r, nil
}

// Logging returns the logger settings.
func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, File: c.Log.File, Development: c.Log.Development}
}

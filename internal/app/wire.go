package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fotocamera/internal/device"
	"fotocamera/internal/domain"
	"fotocamera/internal/httpapi"
	"fotocamera/internal/services/capture"
	"fotocamera/internal/services/overlay"
	"fotocamera/internal/services/picker"
	"fotocamera/internal/services/session"
	"fotocamera/internal/store"
)

// Wire bundles the stores, services and devices for the CLI.
//
// The preference store, session and compositor are built eagerly. The media
// index, camera and capture orchestrator are opened on first use, so commands
// that only touch the DisplayNumber never need a database or a display.
type Wire struct {
	Config     Config
	Log        *zap.Logger
	Prefs      *store.PreferenceFileStore
	Session    *session.Controller
	Compositor *overlay.Compositor
	Frames     *device.FrameBuffer

	index   *store.MediaIndex
	camera  domain.Camera
	capture *capture.Orchestrator
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}
	policy, err := overlay.ParsePolicy(cfg.Overlay.Policy)
	if err != nil {
		return nil, err
	}

	prefs := store.NewPreferenceFileStore(cfg.Home, store.WithPreferenceLogger(log.Named("prefs")))
	sess, err := session.Open(prefs,
		session.WithPickerStyle(picker.DefaultStyle().WithBadgeColors(style.Red, style.Blue)),
		session.WithLogger(log.Named("session")))
	if err != nil {
		return nil, err
	}

	comp := overlay.New(
		overlay.WithPolicy(policy),
		overlay.WithStyle(style),
		overlay.WithLogger(log.Named("overlay")))

	return &Wire{
		Config:     cfg,
		Log:        log,
		Prefs:      prefs,
		Session:    sess,
		Compositor: comp,
		Frames:     &device.FrameBuffer{},
	}, nil
}

// MediaIndex opens the configured media index.
func (w *Wire) MediaIndex(ctx context.Context) (*store.MediaIndex, error) {
	if w.index != nil {
		return w.index, nil
	}
	idx, err := store.OpenMediaIndex(ctx, w.Config.MediaIndex.Driver, w.Config.MediaIndex.DSN)
	if err != nil {
		return nil, err
	}
	w.index = idx
	return idx, nil
}

// Camera builds the configured camera.
func (w *Wire) Camera() (domain.Camera, error) {
	if w.camera != nil {
		return w.camera, nil
	}
	cfg := w.Config.Camera
	switch cfg.Kind {
	case CameraFolder:
		cam, err := device.NewFolderCamera(cfg.Inbox,
			device.WithTimeout(cfg.Timeout),
			device.OnArmed(func() {
				w.Log.Info("waiting for tethered photo", zap.String("inbox", cfg.Inbox))
			}),
			device.WithFolderLogger(w.Log.Named("folder")))
		if err != nil {
			return nil, err
		}
		w.camera = cam
	case CameraScreen:
		sensor, err := w.Config.SensorOrientation()
		if err != nil {
			return nil, err
		}
		w.camera = device.NewScreenCamera(cfg.Display,
			device.WithFPS(cfg.FPS),
			device.WithSensorOrientation(sensor),
			device.WithScreenLogger(w.Log.Named("screen")))
	default:
		return nil, fmt.Errorf("unknown camera kind %q", cfg.Kind)
	}
	return w.camera, nil
}

// Capture builds the capture orchestrator over the camera and media index.
func (w *Wire) Capture(ctx context.Context) (*capture.Orchestrator, error) {
	if w.capture != nil {
		return w.capture, nil
	}
	idx, err := w.MediaIndex(ctx)
	if err != nil {
		return nil, err
	}
	cam, err := w.Camera()
	if err != nil {
		return nil, err
	}
	o, r, err := w.Config.Orientation()
	if err != nil {
		return nil, err
	}

	log := w.Log.Named("capture")
	w.capture = capture.New(capture.Deps{
		Camera:      cam,
		Compositor:  w.Compositor,
		Index:       idx,
		Numbers:     w.Session,
		Orientation: device.FixedOrientation{Orient: o, Display: r},
		MediaRoot:   w.Config.MediaRoot,
	},
		capture.WithLogger(log),
		capture.WithScanListener(capture.ScanFunc(func(rec domain.MediaRecord, path string) {
			log.Info("media scanned", zap.String("id", rec.ID), zap.String("path", path))
		})))
	return w.capture, nil
}

// Server builds the HTTP control surface.
func (w *Wire) Server(ctx context.Context) (*httpapi.Server, error) {
	orch, err := w.Capture(ctx)
	if err != nil {
		return nil, err
	}
	return httpapi.NewServer(w.Session, orch, w.index, w.Frames, w.Log.Named("http")), nil
}

// Shutter builds the serial remote shutter, or returns nil when none is configured.
func (w *Wire) Shutter(orch *capture.Orchestrator) *device.SerialShutter {
	if w.Config.Shutter.Port == "" {
		return nil
	}
	trigger := func(ctx context.Context) error {
		_, err := orch.TakePhoto(ctx)
		return err
	}
	return device.NewSerialShutter(w.Config.Shutter.Port, w.Config.Shutter.Baud, trigger, w.Log.Named("shutter"))
}

// Close releases everything opened through the wire.
func (w *Wire) Close() error {
	var errs []error
	if w.capture != nil {
		errs = append(errs, w.capture.Close())
	}
	if w.index != nil {
		errs = append(errs, w.index.Close())
	}
	errs = append(errs, w.Session.Close())
	return errors.Join(errs...)
}

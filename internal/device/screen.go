package device

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"

	"fotocamera/internal/domain"
	"fotocamera/internal/exifjpeg"
	"fotocamera/internal/util/atomicfile"
)

// GrabFunc captures one frame of display n.
type GrabFunc func(display int) (*image.RGBA, error)

// ScreenCamera uses a display as its sensor.
//
// Captured frames are stored the way a phone sensor stores them: pixels in
// sensor order plus an EXIF orientation tag that turns them upright.
type ScreenCamera struct {
	display int
	fps     int
	sensor  domain.Rotation
	quality int
	grab    GrabFunc
	log     *zap.Logger
}

// ScreenOption configures a ScreenCamera.
type ScreenOption func(*ScreenCamera)

// WithFPS sets the preview frame rate.
func WithFPS(fps int) ScreenOption { return func(c *ScreenCamera) { c.fps = fps } }

// WithSensorOrientation sets the simulated sensor mounting angle.
func WithSensorOrientation(r domain.Rotation) ScreenOption {
	return func(c *ScreenCamera) { c.sensor = r }
}

// WithGrabber replaces the screen grabber.
func WithGrabber(g GrabFunc) ScreenOption { return func(c *ScreenCamera) { c.grab = g } }

// WithScreenLogger sets the logger.
func WithScreenLogger(l *zap.Logger) ScreenOption { return func(c *ScreenCamera) { c.log = l } }

// NewScreenCamera returns a camera for display n.
func NewScreenCamera(display int, opts ...ScreenOption) *ScreenCamera {
	c := &ScreenCamera{
		display: display,
		fps:     5,
		quality: 95,
		grab:    screenshot.CaptureDisplay,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.fps <= 0 {
		c.fps = 1
	}
	return c
}

// Displays returns the number of active displays.
func Displays() int { return screenshot.NumActiveDisplays() }

// StartPreview presents a frame every 1/fps seconds until ctx is done.
func (c *ScreenCamera) StartPreview(ctx context.Context, surface domain.Surface) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.fps))
	defer ticker.Stop()
	for {
		img, err := c.grab(c.display)
		if err != nil {
			c.log.Warn("preview grab failed", zap.Int("display", c.display), zap.Error(err))
		} else {
			surface.Present(img)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Capture grabs the display and writes it to target.Path.
func (c *ScreenCamera) Capture(ctx context.Context, target domain.OutputTarget) (domain.SavedHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.SavedHandle{}, err
	}
	img, err := c.grab(c.display)
	if err != nil {
		return domain.SavedHandle{}, fmt.Errorf("grab display %d: %w", c.display, err)
	}

	rel := RelativeRotation(c.sensor, target.TargetRotation)
	raw := toSensorOrder(img, rel)
	err = atomicfile.Write(target.Path, 0o644, func(w io.Writer) error {
		return exifjpeg.Encode(w, raw, c.quality, rel)
	})
	if err != nil {
		return domain.SavedHandle{}, fmt.Errorf("write capture: %w", err)
	}
	c.log.Debug("screen captured",
		zap.String("path", target.Path),
		zap.Int("display", c.display),
		zap.Int("exif_rotation", rel.Degrees()))
	return domain.SavedHandle{Path: target.Path}, nil
}

// toSensorOrder turns an upright frame counter-clockwise by r, so that the
// clockwise EXIF rotation r restores it.
func toSensorOrder(img image.Image, r domain.Rotation) image.Image {
	switch r {
	case domain.Rotate90:
		return imaging.Rotate90(img)
	case domain.Rotate180:
		return imaging.Rotate180(img)
	case domain.Rotate270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}

var _ domain.Camera = (*ScreenCamera)(nil)

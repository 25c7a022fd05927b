package overlay

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"fotocamera/internal/domain"
	"fotocamera/internal/render"
	"fotocamera/internal/util/atomicfile"
)

// JPEGQuality is the quality used when re-encoding JPEG captures.
const JPEGQuality = 95

// EncodeFunc writes img to w in format.
type EncodeFunc func(w io.Writer, img image.Image, format imaging.Format) error

// Compositor burns the DisplayNumber badge into images on disk.
type Compositor struct {
	policy Policy
	style  Style
	encode EncodeFunc
	log    *zap.Logger
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithPolicy selects the badge geometry policy.
func WithPolicy(p Policy) Option { return func(c *Compositor) { c.policy = p } }

// WithStyle sets the badge colors.
func WithStyle(s Style) Option { return func(c *Compositor) { c.style = s } }

// WithEncoder replaces the image encoder.
func WithEncoder(fn EncodeFunc) Option { return func(c *Compositor) { c.encode = fn } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(c *Compositor) { c.log = l } }

// New returns a compositor using the scaled policy and default style unless overridden.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		policy: PolicyScaled,
		style:  DefaultStyle(),
		encode: defaultEncode,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func defaultEncode(w io.Writer, img image.Image, format imaging.Format) error {
	return imaging.Encode(w, img, format, imaging.JPEGQuality(JPEGQuality))
}

// Policy returns the active geometry policy.
func (c *Compositor) Policy() Policy { return c.policy }

// Apply overlays number onto the image at path and rewrites it in place.
// On error the file at path is unchanged.
func (c *Compositor) Apply(ctx context.Context, path string, number domain.DisplayNumber) (domain.OverlayGeometry, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return domain.OverlayGeometry{}, fmt.Errorf("overlay %s: %w", path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.OverlayGeometry{}, fmt.Errorf("overlay read %s: %w", path, err)
	}

	rotation := ReadRotation(bytes.NewReader(raw))
	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return domain.OverlayGeometry{}, fmt.Errorf("overlay decode %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.OverlayGeometry{}, err
	}

	captured := domain.CapturedImage{Pixels: src, Rotation: rotation}
	c.log.Debug("overlay source",
		zap.String("path", path),
		zap.Int("width", captured.Width()),
		zap.Int("height", captured.Height()),
		zap.Int("rotation", rotation.Degrees()))

	out, geom, err := c.Compose(captured, number)
	if err != nil {
		return domain.OverlayGeometry{}, fmt.Errorf("overlay draw %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.OverlayGeometry{}, err
	}

	err = atomicfile.Write(path, 0o644, func(w io.Writer) error {
		return c.encode(w, out, format)
	})
	if err != nil {
		return domain.OverlayGeometry{}, fmt.Errorf("overlay encode %s: %w", path, err)
	}

	c.log.Debug("overlay written",
		zap.String("path", path),
		zap.Int("width", out.Bounds().Dx()),
		zap.Int("height", out.Bounds().Dy()),
		zap.Int("x", geom.X), zap.Int("y", geom.Y),
		zap.Int("badge_width", geom.Width), zap.Int("badge_height", geom.Height))
	return geom, nil
}

// Compose rotates img upright and draws the badge for number on a fresh buffer.
func (c *Compositor) Compose(img domain.CapturedImage, number domain.DisplayNumber) (*image.NRGBA, domain.OverlayGeometry, error) {
	canvas := Rotate(img.Pixels, img.Rotation)
	b := canvas.Bounds()
	geom := Geometry(c.policy, b.Dx(), b.Dy())
	if err := DrawBadge(canvas, geom, number, c.style); err != nil {
		return nil, domain.OverlayGeometry{}, err
	}
	return canvas, geom, nil
}

// Rotate returns a copy of src rotated clockwise by r.
func Rotate(src image.Image, r domain.Rotation) *image.NRGBA {
	// imaging rotates counter-clockwise.
	switch r {
	case domain.Rotate90:
		return imaging.Rotate270(src)
	case domain.Rotate180:
		return imaging.Rotate180(src)
	case domain.Rotate270:
		return imaging.Rotate90(src)
	default:
		return imaging.Clone(src)
	}
}

// DrawBadge paints the two-tone badge and its labels onto dst at g.
func DrawBadge(dst *image.NRGBA, g domain.OverlayGeometry, number domain.DisplayNumber, s Style) error {
	left := image.Rect(g.X, g.Y, g.X+g.HalfWidth(), g.Y+g.Height)
	right := image.Rect(left.Max.X, g.Y, g.X+g.Width, g.Y+g.Height)
	render.FillRect(dst, left, s.Red)
	render.FillRect(dst, right, s.Blue)

	size := TextSize(g)
	face, err := render.BoldFace(size)
	if err != nil {
		return err
	}
	defer face.Close()

	baseline := float64(g.Y) + float64(g.Height)/2 + size/3
	render.CenteredText(dst, face, number.First(), centerX(left), baseline, s.Text)
	render.CenteredText(dst, face, number.Last(), centerX(right), baseline, s.Text)
	return nil
}

func centerX(r image.Rectangle) float64 { return float64(r.Min.X+r.Max.X) / 2 }

// Compile-time assertion that Compositor implements domain.Compositor.
var _ domain.Compositor = (*Compositor)(nil)

package device

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"fotocamera/internal/domain"
	"fotocamera/internal/util/atomicfile"
)

// DefaultFolderTimeout bounds how long Capture waits for the tethered camera.
const DefaultFolderTimeout = 30 * time.Second

// FolderCamera treats a tethered camera's download folder as its sensor.
// Capture waits for the next complete JPEG to land in the inbox and moves it
// to the output target; the camera's own EXIF orientation is kept.
type FolderCamera struct {
	inbox   string
	timeout time.Duration
	onArmed func()
	log     *zap.Logger
}

// FolderOption configures a FolderCamera.
type FolderOption func(*FolderCamera)

// WithTimeout bounds a single Capture.
func WithTimeout(d time.Duration) FolderOption { return func(c *FolderCamera) { c.timeout = d } }

// OnArmed is called once Capture is watching the inbox.
func OnArmed(fn func()) FolderOption { return func(c *FolderCamera) { c.onArmed = fn } }

// WithFolderLogger sets the logger.
func WithFolderLogger(l *zap.Logger) FolderOption { return func(c *FolderCamera) { c.log = l } }

// NewFolderCamera creates inbox if needed and returns a camera reading from it.
func NewFolderCamera(inbox string, opts ...FolderOption) (*FolderCamera, error) {
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}
	c := &FolderCamera{
		inbox:   inbox,
		timeout: DefaultFolderTimeout,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Inbox returns the watched directory.
func (c *FolderCamera) Inbox() string { return c.inbox }

// Capture waits for a new JPEG in the inbox and moves it to target.Path.
func (c *FolderCamera) Capture(ctx context.Context, target domain.OutputTarget) (domain.SavedHandle, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.SavedHandle{}, err
	}
	defer w.Close()
	if err := w.Add(c.inbox); err != nil {
		return domain.SavedHandle{}, fmt.Errorf("watch %s: %w", c.inbox, err)
	}
	if c.onArmed != nil {
		c.onArmed()
	}

	for {
		select {
		case <-ctx.Done():
			return domain.SavedHandle{}, fmt.Errorf("waiting for photo in %s: %w", c.inbox, ctx.Err())
		case err, ok := <-w.Errors:
			if !ok {
				return domain.SavedHandle{}, fmt.Errorf("watch %s: closed", c.inbox)
			}
			c.log.Warn("inbox watch error", zap.Error(err))
		case ev, ok := <-w.Events:
			if !ok {
				return domain.SavedHandle{}, fmt.Errorf("watch %s: closed", c.inbox)
			}
			if !arrived(ev) || !completeJPEG(ev.Name) {
				continue
			}
			if err := move(ev.Name, target.Path); err != nil {
				return domain.SavedHandle{}, err
			}
			c.log.Debug("tethered photo received",
				zap.String("from", ev.Name),
				zap.String("path", target.Path))
			return domain.SavedHandle{Path: target.Path}, nil
		}
	}
}

// StartPreview presents the newest inbox photo, then every new one, until ctx is done.
func (c *FolderCamera) StartPreview(ctx context.Context, surface domain.Surface) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(c.inbox); err != nil {
		return fmt.Errorf("watch %s: %w", c.inbox, err)
	}

	if newest := c.newest(); newest != "" {
		c.present(surface, newest)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("inbox watch error", zap.Error(err))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if arrived(ev) && completeJPEG(ev.Name) {
				c.present(surface, ev.Name)
			}
		}
	}
}

func (c *FolderCamera) present(surface domain.Surface, path string) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		c.log.Debug("preview decode failed", zap.String("path", path), zap.Error(err))
		return
	}
	surface.Present(img)
}

// newest returns the most recently modified JPEG in the inbox, or "".
func (c *FolderCamera) newest() string {
	entries, err := os.ReadDir(c.inbox)
	if err != nil {
		return ""
	}
	var (
		best    string
		bestMod time.Time
	)
	for _, e := range entries {
		if e.IsDir() || !isJPEGName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestMod) {
			best, bestMod = filepath.Join(c.inbox, e.Name()), info.ModTime()
		}
	}
	return best
}

func arrived(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)
}

func isJPEGName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// completeJPEG reports whether path is a JPEG whose writer has reached EOI.
func completeJPEG(path string) bool {
	if !isJPEGName(path) {
		return false
	}
	b, err := os.ReadFile(path)
	if err != nil || len(b) < 4 {
		return false
	}
	return bytes.HasPrefix(b, []byte{0xFF, 0xD8}) && bytes.HasSuffix(b, []byte{0xFF, 0xD9})
}

// move renames src to dst, copying when they are on different filesystems.
func move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	err = atomicfile.Write(dst, 0o644, func(w io.Writer) error {
		_, err := io.Copy(w, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return os.Remove(src)
}

var _ domain.Camera = (*FolderCamera)(nil)

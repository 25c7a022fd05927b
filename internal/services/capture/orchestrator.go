package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"fotocamera/internal/crypto"
	"fotocamera/internal/domain"
)

var (
	// ErrCaptureInProgress is returned when the shutter is pressed while a capture is running.
	ErrCaptureInProgress = errors.New("capture already in progress")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("capture orchestrator is closed")
)

// NumberSource yields the DisplayNumber to burn into the next photo.
type NumberSource interface {
	Number() (domain.DisplayNumber, error)
}

// ScanFunc adapts a function to domain.ScanListener.
type ScanFunc func(rec domain.MediaRecord, path string)

// Scanned calls f.
func (f ScanFunc) Scanned(rec domain.MediaRecord, path string) { f(rec, path) }

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Camera      domain.Camera
	Compositor  domain.Compositor
	Index       domain.MediaIndex
	Numbers     NumberSource
	Orientation domain.OrientationSource
	// MediaRoot is the shared media directory; photos land in MediaRoot/DCIM/Camera.
	MediaRoot string
}

// Result describes a finished capture.
type Result struct {
	Record   domain.MediaRecord
	Path     string
	Geometry domain.OverlayGeometry
	// OverlayErr is set when the badge could not be applied. The photo is
	// still saved and published without it.
	OverlayErr error
}

// Orchestrator runs at most one capture at a time.
type Orchestrator struct {
	deps Deps
	log  *zap.Logger
	now  func() time.Time

	busy   atomic.Bool
	worker *worker

	mu        sync.RWMutex
	listeners []domain.ScanListener
	closed    bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(o *Orchestrator) { o.log = l } }

// WithClock replaces time.Now for file naming.
func WithClock(now func() time.Time) Option { return func(o *Orchestrator) { o.now = now } }

// WithScanListener registers l at construction time.
func WithScanListener(l domain.ScanListener) Option {
	return func(o *Orchestrator) { o.listeners = append(o.listeners, l) }
}

// New starts the post-processing worker. Call Close to stop it.
func New(deps Deps, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		deps: deps,
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.worker = newWorker()
	return o
}

// AddScanListener registers l for every future publish.
func (o *Orchestrator) AddScanListener(l domain.ScanListener) {
	o.mu.Lock()
	o.listeners = append(o.listeners, l)
	o.mu.Unlock()
}

// Dir is the directory captures are written to.
func (o *Orchestrator) Dir() string {
	return filepath.Join(o.deps.MediaRoot, filepath.FromSlash(domain.DefaultRelativePath))
}

// StartPreview streams camera frames to surface until ctx is done.
func (o *Orchestrator) StartPreview(ctx context.Context, surface domain.Surface) error {
	return o.deps.Camera.StartPreview(ctx, surface)
}

// Busy reports whether a capture is in flight.
func (o *Orchestrator) Busy() bool { return o.busy.Load() }

// TakePhoto captures, badges and publishes one photo.
//
// Once the camera has been asked for a frame the capture runs to completion;
// ctx only bounds the steps before that.
func (o *Orchestrator) TakePhoto(ctx context.Context) (Result, error) {
	if !o.busy.CompareAndSwap(false, true) {
		return Result{}, ErrCaptureInProgress
	}
	defer o.busy.Store(false)

	o.mu.RLock()
	closed := o.closed
	o.mu.RUnlock()
	if closed {
		return Result{}, ErrClosed
	}

	number, err := o.deps.Numbers.Number()
	if err != nil {
		return Result{}, fmt.Errorf("display number: %w", err)
	}
	rotation := domain.Rotate0
	if o.deps.Orientation != nil {
		rotation = SelectTargetRotation(o.deps.Orientation.Orientation())
	}

	dir := o.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create media dir: %w", err)
	}
	name, path, err := uniquePath(dir, FileName(number, o.now()))
	if err != nil {
		return Result{}, fmt.Errorf("choose file name: %w", err)
	}

	rec, err := o.deps.Index.InsertPending(ctx, domain.MediaRecord{
		DisplayName:  name,
		RelativePath: domain.DefaultRelativePath,
		MimeType:     domain.MimeTypeJPEG,
	})
	if err != nil {
		return Result{}, err
	}

	// No cancellation past this point.
	ctx = context.WithoutCancel(ctx)
	log := o.log.With(zap.String("media_id", rec.ID), zap.String("name", name))
	log.Debug("capture started",
		zap.String("display_number", number.String()),
		zap.Int("target_rotation", rotation.Degrees()))

	handle, err := o.deps.Camera.Capture(ctx, domain.OutputTarget{Path: path, TargetRotation: rotation})
	if err != nil {
		if rmErr := o.deps.Index.Remove(ctx, rec.ID); rmErr != nil {
			log.Warn("drop pending record", zap.Error(rmErr))
		}
		log.Warn("capture failed", zap.Error(err))
		return Result{}, fmt.Errorf("photo save error: %w", err)
	}

	res := Result{Path: handle.Path}
	if err := o.worker.do(func() {
		res.Geometry, res.OverlayErr = o.deps.Compositor.Apply(ctx, handle.Path, number)
	}); err != nil {
		res.OverlayErr = err
	}
	if res.OverlayErr != nil {
		log.Error("overlay failed, keeping unmodified photo",
			zap.String("path", handle.Path), zap.Error(res.OverlayErr))
	}

	fp, size, err := crypto.FingerprintFile(handle.Path)
	if err != nil {
		return res, fmt.Errorf("fingerprint %s: %w", handle.Path, err)
	}
	rec, err = o.deps.Index.Publish(ctx, rec.ID, fp, size)
	if err != nil {
		return res, err
	}
	res.Record = rec
	log.Info("photo saved",
		zap.String("path", handle.Path),
		zap.String("fingerprint", crypto.Short(fp)),
		zap.Int64("size", size))

	o.mu.RLock()
	listeners := append([]domain.ScanListener(nil), o.listeners...)
	o.mu.RUnlock()
	for _, l := range listeners {
		l.Scanned(rec, handle.Path)
	}
	return res, nil
}

// Close stops the post-processing worker. A capture in progress finishes first.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	o.worker.close()
	return nil
}

package device

import (
	"bytes"
	"errors"
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"fotocamera/internal/domain"
)

// ErrNoFrame is returned before the first preview frame arrives.
var ErrNoFrame = errors.New("no preview frame yet")

// FrameBuffer is a Surface that keeps the latest preview frame.
type FrameBuffer struct {
	mu     sync.RWMutex
	latest image.Image
	count  uint64
}

// Present stores frame as the latest.
func (b *FrameBuffer) Present(frame image.Image) {
	b.mu.Lock()
	b.latest = frame
	b.count++
	b.mu.Unlock()
}

// Latest returns the most recent frame and how many frames have been presented.
func (b *FrameBuffer) Latest() (image.Image, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest, b.count
}

// JPEG encodes the latest frame.
func (b *FrameBuffer) JPEG(quality int) ([]byte, error) {
	frame, _ := b.Latest()
	if frame == nil {
		return nil, ErrNoFrame
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ domain.Surface = (*FrameBuffer)(nil)

package device_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fotocamera/internal/device"
	"fotocamera/internal/domain"
	"fotocamera/internal/exifjpeg"
	"fotocamera/internal/services/overlay"
	"fotocamera/internal/util/atomicfile"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, exifjpeg.Encode(&buf, imaging.New(w, h, color.NRGBA{G: 0xFF, A: 0xFF}), 90, domain.Rotate0))
	return buf.Bytes()
}

func TestRelativeRotation(t *testing.T) {
	assert.Equal(t, domain.Rotate90, device.RelativeRotation(domain.Rotate90, domain.Rotate0))
	assert.Equal(t, domain.Rotate0, device.RelativeRotation(domain.Rotate90, domain.Rotate90))
	assert.Equal(t, domain.Rotate180, device.RelativeRotation(domain.Rotate90, domain.Rotate270))
	assert.Equal(t, domain.Rotate270, device.RelativeRotation(domain.Rotate0, domain.Rotate90))
}

func TestScreenCamera_StoresSensorOrderWithTag(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			frame.Set(x, y, color.RGBA{B: 0xFF, A: 0xFF})
		}
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			frame.Set(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}
	cam := device.NewScreenCamera(0,
		device.WithSensorOrientation(domain.Rotate90),
		device.WithGrabber(func(int) (*image.RGBA, error) { return frame, nil }))

	path := filepath.Join(t.TempDir(), "shot.jpg")
	h, err := cam.Capture(context.Background(), domain.OutputTarget{Path: path, TargetRotation: domain.Rotate0})
	require.NoError(t, err)
	assert.Equal(t, path, h.Path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Rotate90, overlay.ReadRotation(bytes.NewReader(raw)))

	stored, err := imaging.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 40), stored.Bounds(), "pixels are kept in sensor order")

	upright := overlay.Rotate(stored, domain.Rotate90)
	assert.Equal(t, image.Rect(0, 0, 40, 20), upright.Bounds())
	c := upright.NRGBAAt(2, 2)
	assert.Greater(t, c.R, uint8(0xC0), "red corner is back at the top left, got %v", c)
	assert.Less(t, c.B, uint8(0x40))
}

func TestScreenCamera_GrabError(t *testing.T) {
	boom := errors.New("no display")
	cam := device.NewScreenCamera(3, device.WithGrabber(func(int) (*image.RGBA, error) { return nil, boom }))

	path := filepath.Join(t.TempDir(), "shot.jpg")
	_, err := cam.Capture(context.Background(), domain.OutputTarget{Path: path})
	require.ErrorIs(t, err, boom)
	assert.NoFileExists(t, path)
}

func TestScreenCamera_PreviewUntilCancelled(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 8, 8))
	cam := device.NewScreenCamera(0,
		device.WithFPS(100),
		device.WithGrabber(func(int) (*image.RGBA, error) { return frame, nil }))

	var fb device.FrameBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cam.StartPreview(ctx, &fb) }()

	require.Eventually(t, func() bool {
		_, n := fb.Latest()
		return n >= 2
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	b, err := fb.JPEG(80)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte{0xFF, 0xD8}))
}

func TestFrameBuffer_Empty(t *testing.T) {
	var fb device.FrameBuffer
	_, err := fb.JPEG(80)
	assert.ErrorIs(t, err, device.ErrNoFrame)
}

func TestFolderCamera_MovesNextPhoto(t *testing.T) {
	inbox := filepath.Join(t.TempDir(), "inbox")
	armed := make(chan struct{}, 1)
	cam, err := device.NewFolderCamera(inbox, device.OnArmed(func() { armed <- struct{}{} }))
	require.NoError(t, err)

	want := jpegBytes(t, 24, 16)
	target := filepath.Join(t.TempDir(), "4271-01.02-03.04.05.jpg")

	type result struct {
		h   domain.SavedHandle
		err error
	}
	done := make(chan result, 1)
	go func() {
		h, err := cam.Capture(context.Background(), domain.OutputTarget{Path: target})
		done <- result{h, err}
	}()
	<-armed

	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("x"), 0o644))
	src := filepath.Join(inbox, "DSC0001.JPG")
	require.NoError(t, atomicfile.WriteFile(src, want, 0o644))

	var r result
	select {
	case r = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("capture did not pick up the inbox photo")
	}
	require.NoError(t, r.err)
	assert.Equal(t, target, r.h.Path)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(inbox, "notes.txt"))
}

func TestFolderCamera_Timeout(t *testing.T) {
	cam, err := device.NewFolderCamera(t.TempDir(), device.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = cam.Capture(context.Background(), domain.OutputTarget{Path: filepath.Join(t.TempDir(), "x.jpg")})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFolderCamera_PreviewShowsNewest(t *testing.T) {
	inbox := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "a.jpg"), jpegBytes(t, 10, 10), 0o644))

	cam, err := device.NewFolderCamera(inbox)
	require.NoError(t, err)

	var fb device.FrameBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cam.StartPreview(ctx, &fb) }()

	require.Eventually(t, func() bool {
		img, _ := fb.Latest()
		return img != nil && img.Bounds().Dx() == 10
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestSerialShutter_Listen(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	calls := 0
	s := device.NewSerialShutter("/dev/null", 9600, func(context.Context) error {
		calls++
		if calls == 2 {
			return errors.New("capture already in progress")
		}
		return nil
	}, zap.New(core))

	in := strings.NewReader("SHUTTER\r\nfocus\n shutter \n\nSHUTTER\n")
	require.NoError(t, s.Listen(context.Background(), in))

	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, logs.FilterMessage("remote shutter capture failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("ignoring shutter line").Len())
}

func TestSerialShutter_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	s := device.NewSerialShutter("", 0, func(context.Context) error { calls++; return nil }, nil)

	require.NoError(t, s.Listen(ctx, strings.NewReader("SHUTTER\nSHUTTER\n")))
	assert.Zero(t, calls)
}

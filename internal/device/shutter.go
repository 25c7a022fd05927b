package device

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tarm/serial"
	"go.uber.org/zap"
)

// ShutterCommand is the line a remote shutter sends per press.
const ShutterCommand = "SHUTTER"

// SerialShutter turns lines from a serial remote into capture triggers.
type SerialShutter struct {
	port    string
	baud    int
	trigger func(ctx context.Context) error
	log     *zap.Logger
}

// NewSerialShutter returns a shutter on port at baud calling trigger per press.
func NewSerialShutter(port string, baud int, trigger func(ctx context.Context) error, log *zap.Logger) *SerialShutter {
	if log == nil {
		log = zap.NewNop()
	}
	return &SerialShutter{port: port, baud: baud, trigger: trigger, log: log}
}

// Run opens the port and listens until ctx is done or the port fails.
func (s *SerialShutter) Run(ctx context.Context) error {
	p, err := serial.OpenPort(&serial.Config{
		Name:     s.port,
		Baud:     s.baud,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	if err != nil {
		return fmt.Errorf("open shutter port %s: %w", s.port, err)
	}
	stop := context.AfterFunc(ctx, func() { _ = p.Close() })
	defer func() {
		if stop() {
			_ = p.Close()
		}
	}()

	s.log.Info("remote shutter listening", zap.String("port", s.port), zap.Int("baud", s.baud))
	err = s.Listen(ctx, p)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Listen reads lines from r and triggers a capture for each ShutterCommand.
// Trigger failures are logged; Listen returns at EOF, on a read error, or
// when ctx is done.
func (s *SerialShutter) Listen(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if !strings.EqualFold(line, ShutterCommand) {
			if line != "" {
				s.log.Debug("ignoring shutter line", zap.String("line", line))
			}
			continue
		}
		if err := s.trigger(ctx); err != nil {
			s.log.Warn("remote shutter capture failed", zap.Error(err))
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read shutter port: %w", err)
	}
	return nil
}

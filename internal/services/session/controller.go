package session

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fotocamera/internal/domain"
	"fotocamera/internal/services/picker"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("session is closed")

// Controller is the explicit owner of the current DisplayNumber.
type Controller struct {
	prefs domain.PreferenceStore
	style picker.Style
	log   *zap.Logger

	mu     sync.RWMutex
	number domain.DisplayNumber
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPickerStyle sets the style of pickers opened by the controller.
func WithPickerStyle(s picker.Style) Option { return func(c *Controller) { c.style = s } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(c *Controller) { c.log = l } }

// Open loads the stored DisplayNumber and returns a live controller.
func Open(prefs domain.PreferenceStore, opts ...Option) (*Controller, error) {
	c := &Controller{
		prefs: prefs,
		style: picker.DefaultStyle(),
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}

	n, err := prefs.DisplayNumber()
	if err != nil {
		return nil, fmt.Errorf("load display number: %w", err)
	}
	c.number = n
	c.log.Debug("session opened", zap.String("display_number", n.String()))
	return c, nil
}

// Number returns the current DisplayNumber.
func (c *Controller) Number() (domain.DisplayNumber, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return "", ErrClosed
	}
	return c.number, nil
}

// Picker opens a digit picker initialized from the current number.
func (c *Controller) Picker() (*picker.Picker, error) {
	n, err := c.Number()
	if err != nil {
		return nil, err
	}
	return picker.New(n, c.style), nil
}

// Confirm confirms p and applies its result.
func (c *Controller) Confirm(p *picker.Picker) (domain.DisplayNumber, error) {
	n, err := p.Confirm()
	if err != nil {
		return "", err
	}
	if err := c.Apply(n); err != nil {
		return "", err
	}
	return n, nil
}

// Apply validates n, persists it and makes it current.
// The in-memory number only changes once the store has accepted it.
func (c *Controller) Apply(n domain.DisplayNumber) error {
	if _, err := domain.ParseDisplayNumber(n.String()); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := c.prefs.SaveDisplayNumber(n); err != nil {
		return fmt.Errorf("save display number: %w", err)
	}
	c.log.Info("display number changed",
		zap.String("from", c.number.String()),
		zap.String("to", n.String()))
	c.number = n
	return nil
}

// Close ends the session. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

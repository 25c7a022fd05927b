package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"fotocamera/internal/domain"
)

const preferencesFile = "preferences.json"

// preferences is the on-disk layout. Pointers distinguish "never written" from
// an explicit false so defaults survive partial files.
type preferences struct {
	DisplayNumber  string `json:"display_number,omitempty"`
	FirstLaunch    *bool  `json:"first_launch,omitempty"`
	DontAskDefault *bool  `json:"dont_ask_default,omitempty"`
}

// PreferenceFileStore persists the DisplayNumber and launch flags to a JSON file.
type PreferenceFileStore struct {
	dir string
	log *zap.Logger
	mu  sync.Mutex
}

// PreferenceOption configures a PreferenceFileStore.
type PreferenceOption func(*PreferenceFileStore)

// WithPreferenceLogger sets the logger used to report an unreadable file.
func WithPreferenceLogger(log *zap.Logger) PreferenceOption {
	return func(s *PreferenceFileStore) { s.log = log }
}

// NewPreferenceFileStore returns a PreferenceFileStore rooted at dir.
func NewPreferenceFileStore(dir string, opts ...PreferenceOption) *PreferenceFileStore {
	s := &PreferenceFileStore{dir: dir, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PreferenceFileStore) path() string { return filepath.Join(s.dir, preferencesFile) }

// load reads the file. Undecodable content is treated as empty so reads see
// defaults and the next write replaces it; I/O errors are returned.
func (s *PreferenceFileStore) load() (preferences, error) {
	var p preferences
	err := readJSON(s.path(), &p)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return p, nil
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		s.log.Warn("preferences unreadable, using defaults",
			zap.String("path", s.path()), zap.Error(err))
		return preferences{}, nil
	default:
		return preferences{}, fmt.Errorf("read preferences: %w", err)
	}
}

func (s *PreferenceFileStore) update(fn func(p *preferences)) error {
	p, err := s.load()
	if err != nil {
		return err
	}
	fn(&p)
	if err := writeJSON(s.path(), p, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// DisplayNumber returns the saved number, or "0000" when none was saved or the
// stored value is not a valid 4-digit string.
func (s *PreferenceFileStore) DisplayNumber() (domain.DisplayNumber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return domain.DefaultDisplayNumber, err
	}
	n, err := domain.ParseDisplayNumber(p.DisplayNumber)
	if err != nil {
		return domain.DefaultDisplayNumber, nil
	}
	return n, nil
}

// SaveDisplayNumber stores n.
func (s *PreferenceFileStore) SaveDisplayNumber(n domain.DisplayNumber) error {
	if _, err := domain.ParseDisplayNumber(n.String()); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func(p *preferences) { p.DisplayNumber = n.String() })
}

// IsFirstLaunch reports whether the first launch has not completed yet.
func (s *PreferenceFileStore) IsFirstLaunch() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return true, err
	}
	if p.FirstLaunch == nil {
		return domain.DefaultPreferenceFlags().FirstLaunch, nil
	}
	return *p.FirstLaunch, nil
}

// SetFirstLaunchCompleted clears the first-launch flag.
func (s *PreferenceFileStore) SetFirstLaunchCompleted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := false
	return s.update(func(p *preferences) { p.FirstLaunch = &done })
}

// IsDontAskAgainDefault reports whether the default-camera prompt was silenced.
func (s *PreferenceFileStore) IsDontAskAgainDefault() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return false, err
	}
	if p.DontAskDefault == nil {
		return domain.DefaultPreferenceFlags().DontAskAgainDefault, nil
	}
	return *p.DontAskDefault, nil
}

// SetDontAskAgainDefault stores v.
func (s *PreferenceFileStore) SetDontAskAgainDefault(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func(p *preferences) { p.DontAskDefault = &v })
}

// Flags returns both launch flags in one read.
func (s *PreferenceFileStore) Flags() (domain.PreferenceFlags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags := domain.DefaultPreferenceFlags()
	p, err := s.load()
	if err != nil {
		return flags, err
	}
	if p.FirstLaunch != nil {
		flags.FirstLaunch = *p.FirstLaunch
	}
	if p.DontAskDefault != nil {
		flags.DontAskAgainDefault = *p.DontAskDefault
	}
	return flags, nil
}

// Compile-time assertion that PreferenceFileStore implements domain.PreferenceStore.
var _ domain.PreferenceStore = (*PreferenceFileStore)(nil)

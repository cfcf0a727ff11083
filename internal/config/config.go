// Package config persists the user preferences as YAML and notifies
// listeners when one changes.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"

	"github.com/esteban/piano/core/prefs"
	game_log "github.com/esteban/piano/internal/log"
)

const defaultPath = "~/.config/piano/prefs.yaml"

// DefaultPath is where preferences live unless a path is given.
func DefaultPath() (string, error) {
	return homedir.Expand(defaultPath)
}

// file is the on-disk layout.
type file struct {
	prefs.Preferences `yaml:",inline"`
	Samples           string `yaml:"samples,omitempty"`
}

// Listener receives the name of the preference that changed and the full
// new set.
type Listener func(name string, p prefs.Preferences)

// Store is the preference source. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	path      string
	data      file
	listeners []Listener
	logger    *game_log.Logger

	// notifications are delivered in commit order: each change takes a
	// ticket under mu and waits for its turn.
	turnMu     sync.Mutex
	turnCond   *sync.Cond
	nextTicket uint64
	turn       uint64
}

// Open loads the preferences at path. A missing file yields the defaults;
// an empty path keeps everything in memory.
func Open(path string, logger *game_log.Logger) (*Store, error) {
	s := &Store{
		data:   file{Preferences: prefs.Default()},
		logger: logger.Named("config"),
	}
	s.turnCond = sync.NewCond(&s.turnMu)
	if path == "" {
		return s, nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	s.path = p
	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Infof("no preferences at %s, using defaults", p)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	s.logger.Infof("loaded preferences from %s", p)
	return s, nil
}

// Path is the file the store saves to, empty for an in-memory store.
func (s *Store) Path() string { return s.path }

func (s *Store) Preferences() prefs.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Preferences
}

// SampleDir is the configured sample directory, empty for the built-in
// synthesized tones.
func (s *Store) SampleDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Samples
}

// OnChange registers fn to run after every preference change.
func (s *Store) OnChange(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Set changes one preference, saves, and notifies listeners. Setting the
// current value does nothing. Listeners see changes in the order they were
// saved and must not call Set themselves.
func (s *Store) Set(name, value string) error {
	s.mu.Lock()
	next := s.data.Preferences
	if err := next.Set(name, value); err != nil {
		s.mu.Unlock()
		return err
	}
	if next == s.data.Preferences {
		s.mu.Unlock()
		return nil
	}
	s.data.Preferences = next
	err := s.saveLocked()
	ls := append([]Listener(nil), s.listeners...)
	ticket := s.nextTicket
	s.nextTicket++
	s.mu.Unlock()

	s.logger.Infof("%s=%s", name, next.Get(name))
	s.turnMu.Lock()
	for s.turn != ticket {
		s.turnCond.Wait()
	}
	s.turnMu.Unlock()
	for _, fn := range ls {
		fn(name, next)
	}
	s.turnMu.Lock()
	s.turn++
	s.turnCond.Broadcast()
	s.turnMu.Unlock()
	return err
}

// SetSampleDir records the sample directory and saves.
func (s *Store) SetSampleDir(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Samples = dir
	return s.saveLocked()
}

// Save writes the preferences to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}
	out, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

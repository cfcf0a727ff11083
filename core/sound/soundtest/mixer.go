// Package soundtest provides a recording Mixer for tests.
package soundtest

import (
	"fmt"
	"sync"

	"github.com/esteban/piano/core/sound"
)

// Mixer records every call. Assets listed in Missing fail to load, handles
// listed in Reject fail to play.
type Mixer struct {
	mu sync.Mutex

	Missing map[int]bool
	Reject  map[sound.Handle]bool
	// OnLoad, if set, runs inside Load before it returns.
	OnLoad func(asset int)

	Loaded   map[sound.Handle]int // handle -> asset
	Unloaded []sound.Handle
	Played   []sound.Handle
	Stopped  []sound.Voice
	Live     map[sound.Voice]sound.Handle

	nextHandle sound.Handle
	nextVoice  sound.Voice
}

func New() *Mixer {
	return &Mixer{
		Missing: map[int]bool{},
		Reject:  map[sound.Handle]bool{},
		Loaded:  map[sound.Handle]int{},
		Live:    map[sound.Voice]sound.Handle{},
	}
}

func (m *Mixer) Load(asset int) (sound.Handle, error) {
	if m.OnLoad != nil {
		m.OnLoad(asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Missing[asset] {
		return 0, fmt.Errorf("note%d: %w", asset, sound.ErrAssetMissing)
	}
	m.nextHandle++
	m.Loaded[m.nextHandle] = asset
	return m.nextHandle, nil
}

func (m *Mixer) Play(h sound.Handle) (sound.Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Loaded[h]; !ok || m.Reject[h] {
		return 0, fmt.Errorf("handle %d: %w", h, sound.ErrPlaybackRejected)
	}
	m.nextVoice++
	m.Played = append(m.Played, h)
	m.Live[m.nextVoice] = h
	return m.nextVoice, nil
}

func (m *Mixer) Stop(v sound.Voice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Live[v]; !ok {
		return fmt.Errorf("voice %d: %w", v, sound.ErrPlaybackRejected)
	}
	delete(m.Live, v)
	m.Stopped = append(m.Stopped, v)
	return nil
}

func (m *Mixer) Unload(h sound.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Loaded, h)
	m.Unloaded = append(m.Unloaded, h)
}

// AssetOf returns the asset a loaded handle was created from.
func (m *Mixer) AssetOf(h sound.Handle) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Loaded[h]
	return a, ok
}

// PlayCount returns how many Play calls succeeded.
func (m *Mixer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Played)
}

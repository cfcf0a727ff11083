package audio

import (
	"fmt"
	"sync"

	"github.com/esteban/piano/core/sound"
	game_log "github.com/esteban/piano/internal/log"
)

const (
	SampleRate          = 44100
	bufferSizeBytes10ms = SampleRate / 100 * 2 // 10ms of 16-bit mono audio

	// MaxVoices is the number of voices mixed at once. Starting another
	// voice steals the oldest.
	MaxVoices = 24
)

// Bank supplies the PCM data for an asset index, mono at SampleRate in
// the range [-1,1].
type Bank interface {
	Sample(asset int) ([]float32, error)
}

// Mixer mixes sample voices into a single 16-bit mono PCM stream. It
// implements sound.Mixer and io.Reader for the output player.
type Mixer struct {
	mu     sync.Mutex
	bank   Bank
	logger *game_log.Logger
	gain   float64

	samples    map[sound.Handle][]float32
	voices     []*voiceState
	nextHandle sound.Handle
	nextVoice  sound.Voice

	out device
}

type voiceState struct {
	id  sound.Voice
	buf []float32
	pos int
}

func NewMixer(bank Bank, logger *game_log.Logger) *Mixer {
	return &Mixer{
		bank:    bank,
		logger:  logger.Named("audio"),
		gain:    0.5,
		samples: map[sound.Handle][]float32{},
	}
}

// SetBank replaces the sample source. Loaded samples are kept until they
// are unloaded.
func (m *Mixer) SetBank(b Bank) {
	m.mu.Lock()
	m.bank = b
	m.mu.Unlock()
}

// SetGain sets the master volume applied before clipping.
func (m *Mixer) SetGain(g float64) {
	m.mu.Lock()
	m.gain = g
	m.mu.Unlock()
}

func (m *Mixer) Load(asset int) (sound.Handle, error) {
	m.mu.Lock()
	b := m.bank
	m.mu.Unlock()
	if b == nil {
		return 0, fmt.Errorf("note%d: no sample bank: %w", asset, sound.ErrAssetMissing)
	}
	data, err := b.Sample(asset)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextHandle++
	m.samples[m.nextHandle] = data
	m.logger.Debugf("loaded note%d as handle %d (%d frames)", asset, m.nextHandle, len(data))
	return m.nextHandle, nil
}

func (m *Mixer) Play(h sound.Handle) (sound.Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.samples[h]
	if !ok {
		return 0, fmt.Errorf("handle %d: %w", h, sound.ErrPlaybackRejected)
	}
	if len(m.voices) >= MaxVoices {
		m.logger.Debugf("stealing voice %d", m.voices[0].id)
		m.voices = m.voices[1:]
	}
	m.nextVoice++
	m.voices = append(m.voices, &voiceState{id: m.nextVoice, buf: buf})
	return m.nextVoice, nil
}

// Stop silences a voice. Stopping a voice that already finished or was
// stolen is a no-op; stopping an id never handed out is rejected.
func (m *Mixer) Stop(v sound.Voice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v <= 0 || v > m.nextVoice {
		return fmt.Errorf("voice %d: %w", v, sound.ErrPlaybackRejected)
	}
	for i, vs := range m.voices {
		if vs.id == v {
			m.voices = append(m.voices[:i], m.voices[i+1:]...)
			break
		}
	}
	return nil
}

// Unload drops a sample. Voices already playing it run to the end.
func (m *Mixer) Unload(h sound.Handle) {
	m.mu.Lock()
	delete(m.samples, h)
	m.mu.Unlock()
}

// Active returns the number of voices currently mixed.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for the output player.
func (m *Mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < samples; i++ {
		var sum float64
		for idx := 0; idx < len(m.voices); idx++ {
			vs := m.voices[idx]
			if vs.pos < len(vs.buf) {
				sum += float64(vs.buf[vs.pos])
				vs.pos++
			}
			if vs.pos >= len(vs.buf) {
				m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
				idx--
			}
		}
		sum *= m.gain
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	return samples * 2, nil
}

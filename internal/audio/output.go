//go:build !test && !js

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

type device struct {
	ctx    *oto.Context
	player *oto.Player
}

// Start opens the audio device and begins streaming the mix.
func (m *Mixer) Start() error {
	if m.out.player != nil {
		return nil
	}
	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	p := c.NewPlayer(m)
	p.SetBufferSize(bufferSizeBytes10ms)
	p.Play()
	m.out = device{ctx: c, player: p}
	m.logger.Infof("audio device open: %dHz mono", SampleRate)
	return nil
}

// Close stops streaming.
func (m *Mixer) Close() error {
	if m.out.player == nil {
		return nil
	}
	err := m.out.player.Close()
	m.out.player = nil
	return err
}

//go:build test || js

package audio

type device struct{}

// Start is a no-op without an audio device.
func (m *Mixer) Start() error {
	m.logger.Infof("audio output disabled")
	return nil
}

func (m *Mixer) Close() error { return nil }

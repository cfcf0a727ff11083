// Package sound maps notes to mixer sounds and drives playback.
package sound

import "errors"

var (
	// ErrAssetMissing means no loadable sample exists for an asset.
	ErrAssetMissing = errors.New("asset missing")
	// ErrPlaybackRejected means the mixer refused to start or stop a voice.
	ErrPlaybackRejected = errors.New("playback rejected")
)

// Handle identifies a loaded sample.
type Handle int

// Voice identifies one playing instance of a sample.
type Voice int

// Mixer is the audio back end. Load fails with ErrAssetMissing, Play and
// Stop with ErrPlaybackRejected.
type Mixer interface {
	Load(asset int) (Handle, error)
	Play(h Handle) (Voice, error)
	Stop(v Voice) error
	Unload(h Handle)
}

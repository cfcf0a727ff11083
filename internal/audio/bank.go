package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/esteban/piano/core/sound"
)

// AssetCount is the number of note samples a bank provides: three octaves
// starting at C3.
const AssetCount = 36

// AssetName is the file name of an asset inside a sample directory.
func AssetName(asset int) string { return fmt.Sprintf("note%d.wav", asset) }

// DirBank reads note<N>.wav files from a directory.
type DirBank struct {
	FS fs.FS
}

// NewDirBank opens dir as a sample directory.
func NewDirBank(dir string) (*DirBank, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("sample dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("sample dir %s: not a directory", dir)
	}
	return &DirBank{FS: os.DirFS(dir)}, nil
}

func (b *DirBank) Sample(asset int) ([]float32, error) {
	name := AssetName(asset)
	data, err := fs.ReadFile(b.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, sound.ErrAssetMissing)
		}
		return nil, fmt.Errorf("%s: %v: %w", name, err, sound.ErrAssetMissing)
	}
	pcm, err := decodeMono(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", name, err, sound.ErrAssetMissing)
	}
	return pcm, nil
}

func decodeMono(r *bytes.Reader) ([]float32, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, errors.New("invalid wav buffer")
	}
	if buf.Format.SampleRate != SampleRate {
		return nil, fmt.Errorf("expected %dHz wav, got %d", SampleRate, buf.Format.SampleRate)
	}
	frames := len(buf.Data) / buf.Format.NumChannels
	if frames == 0 {
		return nil, errors.New("empty wav data")
	}
	return downmix(buf), nil
}

// downmix averages the channels of buf. The decoder already scales
// samples to [-1,1].
func downmix(buf *audio.Float32Buffer) []float32 {
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float32, frames)
	if ch == 1 {
		copy(out, buf.Data[:frames])
		return out
	}
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += buf.Data[i*ch+c]
		}
		out[i] = sum / float32(ch)
	}
	return out
}

// SynthBank renders a plucked piano-like tone for every asset, used when no
// sample directory is configured.
type SynthBank struct {
	// Seconds is the length of each rendered note.
	Seconds float64
}

// Frequency returns the pitch of an asset; asset 0 is C3.
func Frequency(asset int) float64 {
	return 440 * math.Pow(2, float64(48+asset-69)/12)
}

func (b SynthBank) Sample(asset int) ([]float32, error) {
	if asset < 0 || asset >= AssetCount {
		return nil, fmt.Errorf("%s: %w", AssetName(asset), sound.ErrAssetMissing)
	}
	secs := b.Seconds
	if secs <= 0 {
		secs = 2
	}
	n := int(secs * SampleRate)
	freq := Frequency(asset)
	out := make([]float32, n)
	for i := range out {
		sec := float64(i) / SampleRate
		t := 2 * math.Pi * freq * sec
		f := math.Sin(1*t) * math.Exp(-3*sec) / 2
		f += math.Sin(2*t) * math.Exp(-6*sec) / 4
		f += math.Sin(4*t) * math.Exp(-9*sec) / 8
		f += math.Sin(8*t) * math.Exp(-12*sec) / 16
		f += f * f * f
		// short fade so the tail does not click
		if rem := n - i; rem < SampleRate/100 {
			f *= float64(rem) / (SampleRate / 100)
		}
		out[i] = float32(f * .6)
	}
	return out, nil
}

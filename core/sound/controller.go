package sound

import (
	"github.com/esteban/piano/core/keyboard"
	game_log "github.com/esteban/piano/internal/log"
)

// Controller starts and stops voices, one live voice per note.
type Controller struct {
	mixer   Mixer
	catalog *Catalog
	logger  *game_log.Logger
	voices  map[int]Voice
}

func NewController(m Mixer, c *Catalog, logger *game_log.Logger) *Controller {
	return &Controller{
		mixer:   m,
		catalog: c,
		logger:  logger.Named("playback"),
		voices:  map[int]Voice{},
	}
}

// Apply plays every attacked note and stops every released one. A note that
// cannot be played or stopped is logged and skipped.
func (p *Controller) Apply(attacks, releases keyboard.NoteSet) {
	for _, note := range attacks.Notes() {
		h, ok := p.catalog.Handle(note)
		if !ok {
			p.logger.Warnf("key %s not playable: no sample", keyboard.Name(note))
			continue
		}
		v, err := p.mixer.Play(h)
		if err != nil {
			p.logger.Errorf("key %s not playable: %v", keyboard.Name(note), err)
			continue
		}
		p.voices[note] = v
		p.logger.Debugf("play %s voice=%d", keyboard.Name(note), v)
	}
	for _, note := range releases.Notes() {
		v, ok := p.voices[note]
		if !ok {
			continue
		}
		delete(p.voices, note)
		if err := p.mixer.Stop(v); err != nil {
			p.logger.Errorf("key %s not stoppable: %v", keyboard.Name(note), err)
			continue
		}
		p.logger.Debugf("stop %s voice=%d", keyboard.Name(note), v)
	}
}

// Voice returns the last voice started for note.
func (p *Controller) Voice(note int) (Voice, bool) {
	v, ok := p.voices[note]
	return v, ok
}

// Live is the number of notes with a recorded voice.
func (p *Controller) Live() int { return len(p.voices) }

// StopAll stops every recorded voice and forgets it.
func (p *Controller) StopAll() {
	for note, v := range p.voices {
		if err := p.mixer.Stop(v); err != nil {
			p.logger.Debugf("stop %s: %v", keyboard.Name(note), err)
		}
	}
	p.voices = map[int]Voice{}
}

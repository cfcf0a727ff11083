package sound

import (
	"github.com/esteban/piano/core/keyboard"
	"github.com/esteban/piano/core/prefs"
	game_log "github.com/esteban/piano/internal/log"
)

// Catalog holds the sample handle of every note for the active octave range.
type Catalog struct {
	mixer   Mixer
	logger  *game_log.Logger
	octaves prefs.OctaveRange
	handles map[int]Handle
}

func NewCatalog(m Mixer, logger *game_log.Logger) *Catalog {
	return &Catalog{
		mixer:   m,
		logger:  logger.Named("catalog"),
		handles: map[int]Handle{},
	}
}

// Reload unloads everything, then loads the 24 samples of octaves one by
// one. A note whose asset fails to load is left without a handle. The new
// mapping only becomes visible once every note has been tried.
func (c *Catalog) Reload(octaves prefs.OctaveRange) {
	c.UnloadAll()
	next := make(map[int]Handle, keyboard.NoteCount)
	for note := 0; note < keyboard.NoteCount; note++ {
		asset := octaves.AssetIndex(note)
		h, err := c.mixer.Load(asset)
		if err != nil {
			c.logger.Warnf("note %s (asset %d) unplayable: %v", keyboard.Name(note), asset, err)
			continue
		}
		next[note] = h
	}
	c.handles = next
	c.octaves = octaves
	c.logger.Infof("loaded %d/%d notes for octaves=%v", len(next), keyboard.NoteCount, octaves)
}

// UnloadAll releases every loaded sample.
func (c *Catalog) UnloadAll() {
	for note := 0; note < keyboard.NoteCount; note++ {
		if h, ok := c.handles[note]; ok {
			c.mixer.Unload(h)
		}
	}
	c.handles = map[int]Handle{}
}

// Handle returns the sample handle of note.
func (c *Catalog) Handle(note int) (Handle, bool) {
	h, ok := c.handles[note]
	return h, ok
}

// Len is the number of playable notes.
func (c *Catalog) Len() int { return len(c.handles) }

func (c *Catalog) Octaves() prefs.OctaveRange { return c.octaves }

package engine

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/esteban/piano/core/keyboard"
	"github.com/esteban/piano/core/prefs"
	"github.com/esteban/piano/core/sound"
	"github.com/esteban/piano/core/touch"
	game_log "github.com/esteban/piano/internal/log"
)

// Surface is what the keyboard paints on.
type Surface interface {
	Clear(c color.Color)
	Fill(p keyboard.Polygon, c color.Color)
	Stroke(p keyboard.Polygon, c color.Color, width float64)
}

// Palette holds the key colours.
type Palette struct {
	Background   color.Color
	Black        color.Color
	BlackPressed color.Color
	WhiteStroke  color.Color
	WhitePressed color.Color
	StrokeWidth  float64
}

var DefaultPalette = Palette{
	Background:   color.White,
	Black:        color.Black,
	BlackPressed: color.RGBA{0xcc, 0xcc, 0xcc, 0xff},
	WhiteStroke:  color.Black,
	WhitePressed: color.RGBA{0x44, 0x44, 0x44, 0xff},
	StrokeWidth:  2,
}

// Piano owns the keyboard state. Every method may be called from any
// goroutine; a layout rebuild or sample reload completes before another
// touch batch is resolved.
type Piano struct {
	mu      sync.Mutex
	logger  *game_log.Logger
	prefs   prefs.Preferences
	layout  *keyboard.Layout
	catalog *sound.Catalog
	player  *sound.Controller
	palette Palette

	pressed  keyboard.NoteSet
	flash    keyboard.NoteSet // render state: attacks of the last batch
	pressure map[int]float64  // reserved for velocity

	// OnRedraw is called after each touch batch.
	OnRedraw func()
	// OnOrientation is called when the orientation preference changes.
	OnOrientation func(prefs.Orientation)
}

// New loads the samples for p.Octaves. No layout exists until the first
// RebuildLayout.
func New(m sound.Mixer, p prefs.Preferences, logger *game_log.Logger) *Piano {
	logger = logger.Named("piano")
	c := sound.NewCatalog(m, logger)
	pn := &Piano{
		logger:   logger,
		prefs:    p,
		catalog:  c,
		player:   sound.NewController(m, c, logger),
		palette:  DefaultPalette,
		pressure: map[int]float64{},
	}
	c.Reload(p.Octaves)
	return pn
}

// RebuildLayout lays the keys out for a new viewport. On error the previous
// layout stays in effect.
func (p *Piano) RebuildLayout(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rebuildLocked(float64(width), float64(height))
}

func (p *Piano) rebuildLocked(w, h float64) error {
	l, err := keyboard.Build(w, h, p.prefs.Rows)
	if err != nil {
		p.logger.Errorf("layout rebuild skipped: %v", err)
		return fmt.Errorf("rebuild layout: %w", err)
	}
	p.layout = l
	p.logger.Infof("layout %vx%v rows=%v", w, h, p.prefs.Rows)
	return nil
}

// HandleTouchBatch resolves one batch, plays and stops notes, and records
// the notes to highlight.
func (p *Piano) HandleTouchBatch(pointers []touch.Pointer) touch.Result {
	p.mu.Lock()
	res := touch.Resolve(pointers, p.pressed, p.layout, p.prefs.Damper)
	p.player.Apply(res.Attacks, res.Releases)
	p.pressed = res.Pressed
	p.flash = res.Attacks
	p.pressure = res.Pressure
	redraw := p.OnRedraw
	p.mu.Unlock()

	if !res.Attacks.Empty() || !res.Releases.Empty() {
		p.logger.Debugf("batch pointers=%d pressed=%v attacks=%v releases=%v", len(pointers), res.Pressed, res.Attacks, res.Releases)
	}
	if redraw != nil {
		redraw()
	}
	return res
}

// Draw paints every key, black keys first.
func (p *Piano) Draw(s Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pal := p.palette
	s.Clear(pal.Background)
	if p.layout == nil {
		return
	}
	for _, k := range p.layout.Keys {
		if !k.Black() {
			continue
		}
		if p.flash.Has(k.Note) {
			s.Fill(k.Shape, pal.BlackPressed)
		} else {
			s.Fill(k.Shape, pal.Black)
		}
	}
	for _, k := range p.layout.Keys {
		if k.Black() {
			continue
		}
		if p.flash.Has(k.Note) {
			s.Fill(k.Shape, pal.WhitePressed)
		} else {
			s.Stroke(k.Shape, pal.WhiteStroke, pal.StrokeWidth)
		}
	}
}

// SetPalette replaces the key colours.
func (p *Piano) SetPalette(pal Palette) {
	p.mu.Lock()
	p.palette = pal
	p.mu.Unlock()
}

// Pressed is the set of notes held after the last batch.
func (p *Piano) Pressed() keyboard.NoteSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pressed
}

// RenderState is the set of notes drawn as pressed.
func (p *Piano) RenderState() keyboard.NoteSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flash
}

// Layout returns the current layout, nil before the first rebuild.
func (p *Piano) Layout() *keyboard.Layout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.layout
}

// Playable is the number of notes with a loaded sample.
func (p *Piano) Playable() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.catalog.Len()
}

func (p *Piano) Preferences() prefs.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prefs
}

// ApplyPreferences is the change-notification entry point: name is the
// preference that changed and next the full new set.
func (p *Piano) ApplyPreferences(name string, next prefs.Preferences) {
	p.mu.Lock()
	cur := p.prefs
	var orient func(prefs.Orientation)
	switch name {
	case prefs.NameDamper:
		p.prefs.Damper = next.Damper
		p.logger.Infof("damper=%v", next.Damper)
	case prefs.NameRows:
		if next.Rows != cur.Rows {
			p.prefs.Rows = next.Rows
			if p.layout != nil {
				p.layout.SwapRows()
			}
			p.logger.Infof("rows=%v", next.Rows)
		}
	case prefs.NameOctaves:
		if next.Octaves != cur.Octaves {
			p.prefs.Octaves = next.Octaves
			p.catalog.Reload(next.Octaves)
		}
	case prefs.NameOrientation:
		if next.Orientation != cur.Orientation {
			p.prefs.Orientation = next.Orientation
			orient = p.OnOrientation
		}
	default:
		p.logger.Warnf("ignoring change of unknown preference %q", name)
	}
	p.mu.Unlock()

	if orient != nil {
		orient(next.Orientation)
	}
}

// Reload unloads every sample and loads them again for the current octave
// range, e.g. after the sample source changed.
func (p *Piano) Reload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.player.StopAll()
	p.catalog.Reload(p.prefs.Octaves)
}

// Close stops every voice and releases every sample.
func (p *Piano) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.player.StopAll()
	p.catalog.UnloadAll()
	p.pressed, p.flash = 0, 0
}

package ui

import (
	"sort"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/esteban/piano/core/engine"
	"github.com/esteban/piano/core/prefs"
	"github.com/esteban/piano/core/touch"
	"github.com/esteban/piano/internal/audio"
	"github.com/esteban/piano/internal/config"
	game_log "github.com/esteban/piano/internal/log"
)

const (
	ebitenTPS = 60
	hintTicks = 5 * ebitenTPS

	// mousePointer is the pointer id of the left mouse button. Touch ids
	// are never negative.
	mousePointer = -1
)

var hintLines = []string{
	"Esc or PageUp+PageDown: settings",
	"O: octaves  R: rows  D: damper",
	"L: sample directory  H: this help",
}

var (
	setWindowSize = ebiten.SetWindowSize
	windowSize    = ebiten.WindowSize
)

// BankSetter swaps the source the mixer loads samples from.
type BankSetter interface {
	SetBank(audio.Bank)
}

// Game is the ebiten front end: it turns pointer input into touch batches
// and draws the keyboard when it changed.
type Game struct {
	piano   *engine.Piano
	store   *config.Store
	samples BankSetter
	logger  *game_log.Logger

	winW, winH int
	frame      int64
	hintUntil  int64

	touches   map[ebiten.TouchID]touch.Pointer
	mouse     touch.Pointer
	mouseDown bool

	dirty    atomic.Bool
	menuOpen atomic.Bool
}

func New(p *engine.Piano, store *config.Store, samples BankSetter, logger *game_log.Logger) *Game {
	g := &Game{
		piano:     p,
		store:     store,
		samples:   samples,
		logger:    logger.Named("GAME"),
		hintUntil: hintTicks,
		touches:   map[ebiten.TouchID]touch.Pointer{},
	}
	g.dirty.Store(true)
	p.OnRedraw = g.invalidate
	p.OnOrientation = g.applyOrientation
	store.OnChange(func(name string, next prefs.Preferences) {
		p.ApplyPreferences(name, next)
		g.invalidate()
	})
	g.applyOrientation(store.Preferences().Orientation)
	return g
}

func (g *Game) invalidate() { g.dirty.Store(true) }

func (g *Game) Layout(w, h int) (int, int) {
	if w == g.winW && h == g.winH {
		return w, h
	}
	g.winW, g.winH = w, h
	// a failed size is remembered too, so a minimized window logs once
	if err := g.piano.RebuildLayout(w, h); err != nil {
		g.logger.Warnf("Layout: %v", err)
		return w, h
	}
	g.piano.SetPalette(keyPalette(w))
	g.invalidate()
	g.logger.Infof("Layout: winW: %d, winH: %d", w, h)
	return w, h
}

func (g *Game) Update() error {
	g.frame++
	if g.frame == g.hintUntil {
		g.invalidate()
	}
	g.handleKeys()
	if ptrs, changed := g.collectPointers(); changed {
		g.piano.HandleTouchBatch(ptrs)
	}
	return nil
}

// collectPointers gathers every pointer on screen plus the ones lifted
// this tick. changed is false when nothing moved, went down or came up.
func (g *Game) collectPointers() ([]touch.Pointer, bool) {
	var ptrs []touch.Pointer
	changed := false

	ids := appendTouchIDs(nil)
	seen := make(map[ebiten.TouchID]bool, len(ids))
	for _, id := range ids {
		x, y := touchPosition(id)
		p := touch.Pointer{ID: int(id), X: float64(x), Y: float64(y), Pressure: 1}
		if old, ok := g.touches[id]; !ok || old != p {
			changed = true
		}
		g.touches[id] = p
		seen[id] = true
		ptrs = append(ptrs, p)
	}
	for _, id := range appendJustReleasedTouch(nil) {
		x, y := prevTouchPosition(id)
		ptrs = append(ptrs, touch.Pointer{ID: int(id), X: float64(x), Y: float64(y), Pressure: 1, Lifting: true})
		delete(g.touches, id)
		seen[id] = true
		changed = true
	}
	// touches that vanished without a release event
	for id, p := range g.touches {
		if !seen[id] {
			p.Lifting = true
			ptrs = append(ptrs, p)
			delete(g.touches, id)
			changed = true
		}
	}

	if isMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := cursorPosition()
		p := touch.Pointer{ID: mousePointer, X: float64(x), Y: float64(y), Pressure: 1}
		if !g.mouseDown || p != g.mouse {
			changed = true
		}
		g.mouse, g.mouseDown = p, true
		ptrs = append(ptrs, p)
	} else if g.mouseDown {
		p := g.mouse
		p.Lifting = true
		g.mouseDown = false
		ptrs = append(ptrs, p)
		changed = true
	}

	sort.Slice(ptrs, func(i, j int) bool { return ptrs[i].ID < ptrs[j].ID })
	return ptrs, changed
}

func (g *Game) handleKeys() {
	if isKeyJustPressed(ebiten.KeyEscape) ||
		(isKeyPressed(ebiten.KeyPageUp) && isKeyPressed(ebiten.KeyPageDown) &&
			(isKeyJustPressed(ebiten.KeyPageUp) || isKeyJustPressed(ebiten.KeyPageDown))) {
		g.OpenSettings()
	}
	cur := g.store.Preferences()
	switch {
	case isKeyJustPressed(ebiten.KeyO):
		g.set(prefs.NameOctaves, cur.Octaves.Next().String())
	case isKeyJustPressed(ebiten.KeyR):
		g.set(prefs.NameRows, cur.Rows.Toggle().String())
	case isKeyJustPressed(ebiten.KeyD):
		g.set(prefs.NameDamper, cur.Damper.Toggle().String())
	case isKeyJustPressed(ebiten.KeyL):
		g.runMenu(g.chooseSampleDir)
	case isKeyJustPressed(ebiten.KeyH):
		if g.frame < g.hintUntil {
			g.hintUntil = g.frame
		} else {
			g.hintUntil = g.frame + hintTicks
		}
		g.invalidate()
	}
}

func (g *Game) set(name, value string) {
	if err := g.store.Set(name, value); err != nil {
		g.logger.Errorf("set %s=%s: %v", name, value, err)
	}
}

// OpenSettings shows the settings menu without blocking the game loop.
func (g *Game) OpenSettings() {
	g.runMenu(func() { showSettings(g) })
}

func (g *Game) runMenu(fn func()) {
	if !g.menuOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.menuOpen.Store(false)
		fn()
	}()
}

// chooseSampleDir asks for a directory of note<N>.wav files and reloads
// every sample from it.
func (g *Game) chooseSampleDir() {
	dir, err := pickSampleDir()
	if err != nil {
		g.logger.Infof("sample directory not changed: %v", err)
		return
	}
	if err := g.UseSampleDir(dir); err != nil {
		g.logger.Errorf("%v", err)
	}
}

// UseSampleDir switches to the samples in dir and reloads them.
func (g *Game) UseSampleDir(dir string) error {
	b, err := audio.NewDirBank(dir)
	if err != nil {
		return err
	}
	g.samples.SetBank(b)
	if err := g.store.SetSampleDir(dir); err != nil {
		g.logger.Warnf("sample directory not saved: %v", err)
	}
	g.piano.Reload()
	g.logger.Infof("samples from %s: %d playable", dir, g.piano.Playable())
	g.invalidate()
	return nil
}

func (g *Game) applyOrientation(o prefs.Orientation) {
	if o == prefs.OrientAuto {
		return
	}
	w, h := windowSize()
	switch {
	case o == prefs.OrientLandscape && h > w, o == prefs.OrientPortrait && w > h:
		setWindowSize(h, w)
		g.logger.Infof("orientation %v: window %dx%d", o, h, w)
	}
}

func (g *Game) Draw(dst *ebiten.Image) {
	if !g.dirty.Swap(false) {
		return
	}
	g.piano.Draw(screen{dst: dst})
	if g.frame < g.hintUntil {
		drawHint(dst, hintLines)
	}
}

package engine

import (
	"errors"
	"image/color"
	"sync"
	"testing"

	"github.com/esteban/piano/core/keyboard"
	"github.com/esteban/piano/core/prefs"
	"github.com/esteban/piano/core/sound/soundtest"
	"github.com/esteban/piano/core/touch"
	game_log "github.com/esteban/piano/internal/log"
)

var testLogger = game_log.Discard()

const testW, testH = 700, 400

func newPiano(t *testing.T, p prefs.Preferences) (*Piano, *soundtest.Mixer) {
	t.Helper()
	m := soundtest.New()
	pn := New(m, p, testLogger)
	if err := pn.RebuildLayout(testW, testH); err != nil {
		t.Fatalf("RebuildLayout: %v", err)
	}
	return pn, m
}

func at(pn *Piano, note int, id int, lifting bool) touch.Pointer {
	var best keyboard.Rect
	for _, r := range pn.Layout().Keys[note].Shape.Bands() {
		if r.Dx()*r.Dy() > best.Dx()*best.Dy() {
			best = r
		}
	}
	return touch.Pointer{ID: id, X: (best.MinX + best.MaxX) / 2, Y: (best.MinY + best.MaxY) / 2, Pressure: 1, Lifting: lifting}
}

func TestInvalidRebuildKeepsPreviousLayout(t *testing.T) {
	pn, _ := newPiano(t, prefs.Default())
	before := pn.Layout()
	err := pn.RebuildLayout(0, 300)
	if !errors.Is(err, keyboard.ErrInvalidLayout) {
		t.Fatalf("err=%v want ErrInvalidLayout", err)
	}
	if pn.Layout() != before {
		t.Fatalf("failed rebuild replaced the layout")
	}
}

func TestTouchFlowDampen(t *testing.T) {
	p := prefs.Default()
	p.Damper = prefs.Dampen
	pn, m := newPiano(t, p)
	redraws := 0
	pn.OnRedraw = func() { redraws++ }

	r1 := pn.HandleTouchBatch([]touch.Pointer{at(pn, 5, 0, false)})
	if r1.Attacks != keyboard.NewNoteSet(5) || pn.RenderState() != keyboard.NewNoteSet(5) {
		t.Fatalf("attacks=%v render=%v", r1.Attacks, pn.RenderState())
	}
	r2 := pn.HandleTouchBatch([]touch.Pointer{at(pn, 5, 0, false), at(pn, 7, 1, false)})
	if r2.Attacks != keyboard.NewNoteSet(7) {
		t.Fatalf("attacks=%v want {7}", r2.Attacks)
	}
	if pn.RenderState() != keyboard.NewNoteSet(7) {
		t.Fatalf("render state %v want only the new attack", pn.RenderState())
	}
	r3 := pn.HandleTouchBatch([]touch.Pointer{at(pn, 5, 0, true), at(pn, 7, 1, false)})
	if r3.Releases != keyboard.NewNoteSet(5) {
		t.Fatalf("releases=%v want {5}", r3.Releases)
	}
	if len(m.Stopped) != 1 {
		t.Fatalf("stop calls=%d want 1", len(m.Stopped))
	}
	if !pn.RenderState().Empty() {
		t.Fatalf("render state %v want empty", pn.RenderState())
	}
	if pn.Pressed() != keyboard.NewNoteSet(7) {
		t.Fatalf("pressed=%v want {7}", pn.Pressed())
	}
	if redraws != 3 {
		t.Fatalf("redraws=%d want 3", redraws)
	}
}

func TestSustainRetriggers(t *testing.T) {
	pn, m := newPiano(t, prefs.Default())
	pn.HandleTouchBatch([]touch.Pointer{at(pn, 9, 0, false)})
	r := pn.HandleTouchBatch([]touch.Pointer{at(pn, 9, 0, true)})
	if !r.Releases.Empty() || len(m.Stopped) != 0 {
		t.Fatalf("sustain released %v stopped %v", r.Releases, m.Stopped)
	}
	pn.HandleTouchBatch([]touch.Pointer{at(pn, 9, 0, false)})
	if m.PlayCount() != 2 {
		t.Fatalf("play calls=%d want 2", m.PlayCount())
	}
}

func TestDamperChangeTakesEffectNextBatch(t *testing.T) {
	pn, m := newPiano(t, prefs.Default())
	pn.HandleTouchBatch([]touch.Pointer{at(pn, 2, 0, false)})
	next := pn.Preferences()
	next.Damper = prefs.Dampen
	pn.ApplyPreferences(prefs.NameDamper, next)
	pn.HandleTouchBatch([]touch.Pointer{at(pn, 2, 0, true)})
	if len(m.Stopped) != 1 {
		t.Fatalf("stop calls=%d want 1", len(m.Stopped))
	}
}

func TestRowChangeSwapsRegions(t *testing.T) {
	pn, m := newPiano(t, prefs.Default())
	upperC := at(pn, 0, 0, false) // upper-row C before the swap

	next := pn.Preferences()
	next.Rows = prefs.LowerRowLowerOctave
	pn.ApplyPreferences(prefs.NameRows, next)
	r := pn.HandleTouchBatch([]touch.Pointer{upperC})
	if r.Pressed != keyboard.NewNoteSet(12) {
		t.Fatalf("upper C after swap pressed %v want {12}", r.Pressed)
	}
	h := m.Played[len(m.Played)-1]
	if a, _ := m.AssetOf(h); a != 12 {
		t.Fatalf("note 12 played asset %d want 12", a)
	}

	// a repeated notification with the same value must not swap back
	pn.ApplyPreferences(prefs.NameRows, next)
	want, _ := keyboard.Build(testW, testH, prefs.LowerRowLowerOctave)
	if !pn.Layout().Equal(want) {
		t.Fatalf("layout does not match the lower-row-lower-octave build")
	}

	// resizing keeps the row order
	if err := pn.RebuildLayout(testW, testH); err != nil {
		t.Fatal(err)
	}
	if !pn.Layout().Equal(want) {
		t.Fatalf("rebuild lost the row order")
	}
}

func TestOctaveChangeReloads(t *testing.T) {
	pn, m := newPiano(t, prefs.Default())
	next := pn.Preferences()
	next.Octaves = prefs.OctavesHigh
	pn.ApplyPreferences(prefs.NameOctaves, next)
	if len(m.Unloaded) != keyboard.NoteCount {
		t.Fatalf("unloaded=%d want %d", len(m.Unloaded), keyboard.NoteCount)
	}
	pn.HandleTouchBatch([]touch.Pointer{at(pn, 0, 0, false)})
	if a, _ := m.AssetOf(m.Played[0]); a != 12 {
		t.Fatalf("note 0 played asset %d want 12", a)
	}
	// same value again: no reload
	pn.ApplyPreferences(prefs.NameOctaves, next)
	if len(m.Unloaded) != keyboard.NoteCount {
		t.Fatalf("redundant notification reloaded samples")
	}
}

func TestOrientationForwarded(t *testing.T) {
	pn, _ := newPiano(t, prefs.Default())
	var got []prefs.Orientation
	pn.OnOrientation = func(o prefs.Orientation) { got = append(got, o) }
	next := pn.Preferences()
	next.Orientation = prefs.OrientPortrait
	pn.ApplyPreferences(prefs.NameOrientation, next)
	pn.ApplyPreferences(prefs.NameOrientation, next)
	if len(got) != 1 || got[0] != prefs.OrientPortrait {
		t.Fatalf("orientation callbacks %v", got)
	}
}

func TestReloadIsAtomicForTouches(t *testing.T) {
	m := soundtest.New()
	pn := New(m, prefs.Default(), testLogger)
	if err := pn.RebuildLayout(testW, testH); err != nil {
		t.Fatal(err)
	}
	p0 := at(pn, 0, 0, false)

	var (
		once     sync.Once
		wg       sync.WaitGroup
		observed []int
		mu       sync.Mutex
	)
	pn.OnRedraw = func() {
		mu.Lock()
		observed = append(observed, pn.Playable())
		mu.Unlock()
	}
	m.OnLoad = func(asset int) {
		if asset != 5 {
			return
		}
		once.Do(func() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				pn.HandleTouchBatch([]touch.Pointer{p0})
			}()
		})
	}
	next := pn.Preferences()
	next.Octaves = prefs.OctavesMid
	pn.ApplyPreferences(prefs.NameOctaves, next)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(observed) != 1 || observed[0] != keyboard.NoteCount {
		t.Fatalf("touch during reload observed %v playable notes", observed)
	}
}

type recorder struct {
	cleared int
	fills   []color.Color
	strokes int
}

func (r *recorder) Clear(color.Color) { r.cleared++ }
func (r *recorder) Fill(_ keyboard.Polygon, c color.Color) {
	r.fills = append(r.fills, c)
}
func (r *recorder) Stroke(keyboard.Polygon, color.Color, float64) { r.strokes++ }

func TestDrawPaintsPressedKeys(t *testing.T) {
	pn, _ := newPiano(t, prefs.Default())
	rec := &recorder{}
	pn.Draw(rec)
	if rec.cleared != 1 || len(rec.fills) != 10 || rec.strokes != 14 {
		t.Fatalf("idle draw: cleared=%d fills=%d strokes=%d", rec.cleared, len(rec.fills), rec.strokes)
	}

	pn.HandleTouchBatch([]touch.Pointer{at(pn, 1, 0, false), at(pn, 4, 1, false)})
	rec = &recorder{}
	pn.Draw(rec)
	if len(rec.fills) != 11 || rec.strokes != 13 {
		t.Fatalf("pressed draw: fills=%d strokes=%d", len(rec.fills), rec.strokes)
	}
	var pressedBlack, pressedWhite int
	for _, c := range rec.fills {
		switch c {
		case DefaultPalette.BlackPressed:
			pressedBlack++
		case DefaultPalette.WhitePressed:
			pressedWhite++
		}
	}
	if pressedBlack != 1 || pressedWhite != 1 {
		t.Fatalf("pressed fills black=%d white=%d", pressedBlack, pressedWhite)
	}
	// black keys come first
	if rec.fills[len(rec.fills)-1] != DefaultPalette.WhitePressed {
		t.Fatalf("white key was not painted after black keys")
	}
}

func TestDrawBeforeLayout(t *testing.T) {
	pn := New(soundtest.New(), prefs.Default(), testLogger)
	rec := &recorder{}
	pn.Draw(rec)
	if rec.cleared != 1 || len(rec.fills) != 0 {
		t.Fatalf("draw without layout painted keys")
	}
	if r := pn.HandleTouchBatch([]touch.Pointer{{X: 1, Y: 1}}); !r.Pressed.Empty() {
		t.Fatalf("touch without layout pressed %v", r.Pressed)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	pn, m := newPiano(t, prefs.Default())
	pn.HandleTouchBatch([]touch.Pointer{at(pn, 3, 0, false)})
	pn.Close()
	if len(m.Loaded) != 0 || len(m.Live) != 0 {
		t.Fatalf("close left loaded=%d live=%d", len(m.Loaded), len(m.Live))
	}
	if pn.Playable() != 0 {
		t.Fatalf("playable=%d after close", pn.Playable())
	}
}

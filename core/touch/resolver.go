// Package touch turns pointer samples into pressed notes.
package touch

import (
	"github.com/esteban/piano/core/keyboard"
	"github.com/esteban/piano/core/prefs"
)

// Pointer is one contact in a touch batch.
type Pointer struct {
	ID       int
	X, Y     float64
	Pressure float64
	// Lifting is set for the pointer that leaves the surface in this batch.
	Lifting bool
}

// Result is the outcome of resolving one batch.
type Result struct {
	// Pressed holds every note touched by a pointer that is not lifting.
	Pressed keyboard.NoteSet
	// Attacks are notes pressed now but not in the previous batch.
	Attacks keyboard.NoteSet
	// Releases are notes pressed before but not now. Only filled when
	// damping.
	Releases keyboard.NoteSet
	// Pressure is the highest pressure seen per touched note, lifting
	// pointers included. Playback does not use it yet.
	Pressure map[int]float64
}

// Resolve computes the pressed set for a batch of simultaneous pointers.
// prev is the Pressed set returned for the previous batch.
func Resolve(pointers []Pointer, prev keyboard.NoteSet, layout *keyboard.Layout, damper prefs.Damper) Result {
	res := Result{Pressure: make(map[int]float64)}
	for _, p := range pointers {
		note, ok := NoteAt(layout, p.X, p.Y)
		if !ok {
			continue
		}
		if old, seen := res.Pressure[note]; !seen || p.Pressure > old {
			res.Pressure[note] = p.Pressure
		}
		if !p.Lifting {
			res.Pressed = res.Pressed.With(note)
		}
	}
	res.Attacks = res.Pressed.Minus(prev)
	if damper == prefs.Dampen {
		res.Releases = prev.Minus(res.Pressed)
	}
	return res
}

// NoteAt finds the key under (x, y). Black keys are tested first and win
// over any white key; within each colour the last matching key wins.
func NoteAt(layout *keyboard.Layout, x, y float64) (int, bool) {
	if layout == nil {
		return 0, false
	}
	note, found := 0, false
	for _, k := range layout.Keys {
		if k.Black() && k.Shape.Contains(x, y) {
			note, found = k.Note, true
		}
	}
	if found {
		return note, true
	}
	for _, k := range layout.Keys {
		if !k.Black() && k.Shape.Contains(x, y) {
			note, found = k.Note, true
		}
	}
	return note, found
}

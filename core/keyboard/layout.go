package keyboard

import (
	"errors"
	"fmt"

	"github.com/esteban/piano/core/prefs"
)

// ErrInvalidLayout is returned for a viewport without positive area.
var ErrInvalidLayout = errors.New("invalid layout")

// Key is the hit region and drawing outline of one note.
type Key struct {
	Note  int
	Shape Polygon
}

func (k Key) Black() bool { return IsBlack(k.Note) }

// Layout holds one Key per note, indexed by note.
type Layout struct {
	Width, Height float64
	Rows          prefs.RowOrder
	Keys          []Key
}

type template int

const (
	tmplBlack     template = iota
	tmplSymmetric          // D, G, A: notches on both sides
	tmplCF                 // C, F: notch on the right
	tmplEB                 // E, B: notch on the left
)

// Outlines in units of the viewport, already placed at the first key of
// their kind in the lower octave (C#, D, C, E).
//
// A white key is width/7 wide and height/2 tall; a black key is width/12
// wide and height/4 tall.
var templates = [...][]Point{
	tmplBlack: {
		{17.0 / 168, 0}, {17.0/168 + 1.0/12, 0},
		{17.0/168 + 1.0/12, 1.0 / 4}, {17.0 / 168, 1.0 / 4},
	},
	tmplSymmetric: {
		{1.0/7 + 1.0/24, 0}, {1.0/7 + 17.0/168, 0},
		{1.0/7 + 17.0/168, 1.0 / 4}, {2.0 / 7, 1.0 / 4},
		{2.0 / 7, 1.0 / 2}, {1.0 / 7, 1.0 / 2},
		{1.0 / 7, 1.0 / 4}, {1.0/7 + 1.0/24, 1.0 / 4},
	},
	tmplCF: {
		{0, 0}, {17.0 / 168, 0},
		{17.0 / 168, 1.0 / 4}, {1.0 / 7, 1.0 / 4},
		{1.0 / 7, 1.0 / 2}, {0, 1.0 / 2},
	},
	tmplEB: {
		{2.0/7 + 1.0/24, 0}, {3.0 / 7, 0},
		{3.0 / 7, 1.0 / 2}, {2.0 / 7, 1.0 / 2},
		{2.0 / 7, 1.0 / 4}, {2.0/7 + 1.0/24, 1.0 / 4},
	},
}

// octave lists, per note of one octave, the template it uses and how far
// (in widths) that template moves from the previous key drawn with it.
// Black keys are not evenly spaced, hence D#, F#, G# and A# each carry their
// own delta.
var octave = [12]struct {
	tmpl template
	dx   float64
}{
	{tmplCF, 0},              // C
	{tmplBlack, 0},           // C#
	{tmplSymmetric, 0},       // D
	{tmplBlack, 1.0 / 7},     // D#
	{tmplEB, 0},              // E
	{tmplCF, 3.0 / 7},        // F
	{tmplBlack, 2.0 / 7},     // F#
	{tmplSymmetric, 3.0 / 7}, // G
	{tmplBlack, 1.0 / 7},     // G#
	{tmplSymmetric, 1.0 / 7}, // A
	{tmplBlack, 1.0 / 7},     // A#
	{tmplEB, 4.0 / 7},        // B
}

// Build lays out the 24 keys for a width×height viewport: two rows of one
// octave each, notes 0..11 in the upper row unless rows says otherwise.
// The result depends only on its arguments.
func Build(width, height float64, rows prefs.RowOrder) (*Layout, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: viewport %vx%v", ErrInvalidLayout, width, height)
	}
	l := &Layout{
		Width:  width,
		Height: height,
		Rows:   prefs.LowerRowHigherOctave,
		Keys:   make([]Key, NoteCount),
	}
	var shift [len(templates)]float64
	for i, o := range octave {
		shift[o.tmpl] += o.dx
		shape := scale(templates[o.tmpl], width, height).Translate(shift[o.tmpl]*width, 0)
		l.Keys[i] = Key{Note: i, Shape: shape}
		l.Keys[i+12] = Key{Note: i + 12, Shape: shape.Translate(0, height/2)}
	}
	if rows.Swapped() {
		l.SwapRows()
	}
	return l, nil
}

func scale(unit []Point, w, h float64) Polygon {
	out := make(Polygon, len(unit))
	for i, v := range unit {
		out[i] = Point{v.X * w, v.Y * h}
	}
	return out
}

// SwapRows exchanges the regions of notes i and i+12 for i in [0,12).
// Note identities stay put, so each note keeps its sound; only where it is
// touched and drawn changes. Calling it twice restores the layout.
func (l *Layout) SwapRows() {
	half := len(l.Keys) / 2
	for i := 0; i < half; i++ {
		l.Keys[i].Shape, l.Keys[i+half].Shape = l.Keys[i+half].Shape, l.Keys[i].Shape
	}
	l.Rows = l.Rows.Toggle()
}

// Equal reports whether both layouts have identical vertices.
func (l *Layout) Equal(o *Layout) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.Width != o.Width || l.Height != o.Height || len(l.Keys) != len(o.Keys) {
		return false
	}
	for i := range l.Keys {
		a, b := l.Keys[i], o.Keys[i]
		if a.Note != b.Note || len(a.Shape) != len(b.Shape) {
			return false
		}
		for j := range a.Shape {
			if a.Shape[j] != b.Shape[j] {
				return false
			}
		}
	}
	return true
}

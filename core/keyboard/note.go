package keyboard

import (
	"math/bits"
	"strconv"
	"strings"
)

// NoteCount is the number of keys: two chromatic octaves, C..B twice.
const NoteCount = 24

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// IsBlack reports whether note is a black key (C#, D#, F#, G#, A#).
func IsBlack(note int) bool {
	switch note % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// BlackNotes returns the black-key note indices in ascending order.
func BlackNotes() []int {
	out := make([]int, 0, 10)
	for n := 0; n < NoteCount; n++ {
		if IsBlack(n) {
			out = append(out, n)
		}
	}
	return out
}

// Name returns a display name such as "F#1" (second octave F sharp).
func Name(note int) string {
	if note < 0 || note >= NoteCount {
		return "?" + strconv.Itoa(note)
	}
	return noteNames[note%12] + strconv.Itoa(note/12)
}

// NoteSet is a set of note indices in [0, NoteCount).
type NoteSet uint32

func NewNoteSet(notes ...int) NoteSet {
	var s NoteSet
	for _, n := range notes {
		s = s.With(n)
	}
	return s
}

func (s NoteSet) Has(note int) bool {
	if note < 0 || note >= NoteCount {
		return false
	}
	return s&(1<<uint(note)) != 0
}

func (s NoteSet) With(note int) NoteSet {
	if note < 0 || note >= NoteCount {
		return s
	}
	return s | 1<<uint(note)
}

func (s NoteSet) Without(note int) NoteSet {
	if note < 0 || note >= NoteCount {
		return s
	}
	return s &^ (1 << uint(note))
}

// Minus returns the notes of s that are not in o.
func (s NoteSet) Minus(o NoteSet) NoteSet { return s &^ o }

func (s NoteSet) Union(o NoteSet) NoteSet { return s | o }

func (s NoteSet) Len() int { return bits.OnesCount32(uint32(s)) }

func (s NoteSet) Empty() bool { return s == 0 }

// Notes lists the members in ascending order.
func (s NoteSet) Notes() []int {
	out := make([]int, 0, s.Len())
	for n := 0; n < NoteCount; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func (s NoteSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, n := range s.Notes() {
		parts = append(parts, strconv.Itoa(n))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

package keyboard

import (
	"errors"
	"math"
	"testing"

	"github.com/esteban/piano/core/prefs"
)

var viewports = [][2]float64{{1, 1}, {320, 480}, {480, 320}, {1080, 1920}, {1279.5, 719.25}}

var rowOrders = []prefs.RowOrder{prefs.LowerRowHigherOctave, prefs.LowerRowLowerOctave}

func TestBuildProducesAllKeys(t *testing.T) {
	wantBlack := NewNoteSet(1, 3, 6, 8, 10, 13, 15, 18, 20, 22)
	for _, vp := range viewports {
		for _, rows := range rowOrders {
			l, err := Build(vp[0], vp[1], rows)
			if err != nil {
				t.Fatalf("Build(%v, %v): %v", vp, rows, err)
			}
			if len(l.Keys) != NoteCount {
				t.Fatalf("got %d keys want %d", len(l.Keys), NoteCount)
			}
			var black NoteSet
			for i, k := range l.Keys {
				if k.Note != i {
					t.Fatalf("key %d carries note %d", i, k.Note)
				}
				if k.Black() {
					black = black.With(k.Note)
				}
				if len(k.Shape) < 4 {
					t.Fatalf("key %d has %d vertices", i, len(k.Shape))
				}
			}
			if black != wantBlack {
				t.Fatalf("black keys %v want %v", black, wantBlack)
			}
		}
	}
}

func TestBuildRejectsEmptyViewport(t *testing.T) {
	for _, vp := range [][2]float64{{0, 100}, {100, 0}, {-1, 10}, {10, -5}, {math.NaN(), 10}} {
		if _, err := Build(vp[0], vp[1], prefs.LowerRowHigherOctave); !errors.Is(err, ErrInvalidLayout) {
			t.Fatalf("Build(%v) err=%v want ErrInvalidLayout", vp, err)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	for _, rows := range rowOrders {
		a, _ := Build(777, 555, rows)
		b, _ := Build(777, 555, rows)
		if !a.Equal(b) {
			t.Fatalf("two builds with rows=%v differ", rows)
		}
	}
}

func TestSwapRowsIsInvolution(t *testing.T) {
	orig, _ := Build(640, 480, prefs.LowerRowHigherOctave)
	l, _ := Build(640, 480, prefs.LowerRowHigherOctave)
	l.SwapRows()
	if l.Equal(orig) {
		t.Fatalf("swap did not change the layout")
	}
	alt, _ := Build(640, 480, prefs.LowerRowLowerOctave)
	if !l.Equal(alt) {
		t.Fatalf("swapped layout differs from building with the alternate row order")
	}
	l.SwapRows()
	if !l.Equal(orig) || l.Rows != prefs.LowerRowHigherOctave {
		t.Fatalf("swapping twice did not restore the layout")
	}
}

func TestKeysTileTheViewport(t *testing.T) {
	w, h := 700.0, 400.0
	l, _ := Build(w, h, prefs.LowerRowHigherOctave)
	var area float64
	for _, k := range l.Keys {
		area += k.Shape.Area()
		b := k.Shape.Bounds()
		if b.MinX < 0 || b.MinY < 0 || b.MaxX > w+1e-9 || b.MaxY > h+1e-9 {
			t.Fatalf("key %s escapes the viewport: %+v", Name(k.Note), b)
		}
	}
	if math.Abs(area-w*h) > 1e-6 {
		t.Fatalf("key areas sum to %f want %f", area, w*h)
	}
}

func TestKeyPlacement(t *testing.T) {
	w, h := 168.0, 100.0
	l, _ := Build(w, h, prefs.LowerRowHigherOctave)
	// left edge of each black key, in 168ths of the width
	want := map[int]float64{1: 17, 3: 41, 6: 89, 8: 113, 10: 137}
	for n, x := range want {
		for _, note := range []int{n, n + 12} {
			b := l.Keys[note].Shape.Bounds()
			if math.Abs(b.MinX-x) > 1e-9 || math.Abs(b.Dx()-w/12) > 1e-9 || math.Abs(b.Dy()-h/4) > 1e-9 {
				t.Errorf("%s bounds %+v", Name(note), b)
			}
		}
	}
	// white keys occupy consecutive sevenths
	for i, n := range []int{0, 2, 4, 5, 7, 9, 11} {
		b := l.Keys[n].Shape.Bounds()
		if math.Abs(b.MinX-float64(i)*w/7) > 1e-9 || math.Abs(b.Dx()-w/7) > 1e-9 {
			t.Errorf("%s bounds %+v", Name(n), b)
		}
		if b.MinY != 0 || b.MaxY != h/2 {
			t.Errorf("%s not in the upper row: %+v", Name(n), b)
		}
		if b2 := l.Keys[n+12].Shape.Bounds(); b2.MinY != h/2 || b2.MaxY != h {
			t.Errorf("%s not in the lower row: %+v", Name(n+12), b2)
		}
	}
}

func TestEveryKeyCentreHitsOnlyItself(t *testing.T) {
	l, _ := Build(1024, 600, prefs.LowerRowHigherOctave)
	for _, k := range l.Keys {
		// centre of the widest band is always inside the key
		var best Rect
		for _, r := range k.Shape.Bands() {
			if r.Dx()*r.Dy() > best.Dx()*best.Dy() {
				best = r
			}
		}
		cx, cy := (best.MinX+best.MaxX)/2, (best.MinY+best.MaxY)/2
		for _, other := range l.Keys {
			if got := other.Shape.Contains(cx, cy); got != (other.Note == k.Note) {
				t.Fatalf("centre of %s: Contains for %s = %v", Name(k.Note), Name(other.Note), got)
			}
		}
	}
}

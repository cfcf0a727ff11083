package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/esteban/piano/core/keyboard"
)

// drawRect fills a rectangle. It is defined as a variable so tests can
// override it to capture draw calls.
var drawRect = func(dst *ebiten.Image, x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(dst, x, y, w, h, c, false)
}

// drawLine strokes a line segment. Overridden in tests.
var drawLine = func(dst *ebiten.Image, x0, y0, x1, y1, width float32, c color.Color) {
	vector.StrokeLine(dst, x0, y0, x1, y1, width, c, false)
}

var fillScreen = func(dst *ebiten.Image, c color.Color) { dst.Fill(c) }

var debugPrint = ebitenutil.DebugPrintAt

// screen adapts an ebiten image to engine.Surface.
type screen struct{ dst *ebiten.Image }

func (s screen) Clear(c color.Color) { fillScreen(s.dst, c) }

// Fill paints a rectilinear polygon as the rectangles it decomposes into.
func (s screen) Fill(p keyboard.Polygon, c color.Color) {
	for _, r := range p.Bands() {
		drawRect(s.dst, float32(r.MinX), float32(r.MinY), float32(r.Dx()), float32(r.Dy()), c)
	}
}

func (s screen) Stroke(p keyboard.Polygon, c color.Color, width float64) {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		drawLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c)
	}
}

func drawHint(dst *ebiten.Image, lines []string) {
	const lineH, pad = 16, 6
	w := 0
	for _, l := range lines {
		if n := len(l) * 6; n > w {
			w = n
		}
	}
	drawRect(dst, 4, 4, float32(w+2*pad), float32(len(lines)*lineH+2*pad), colHintBox)
	for i, l := range lines {
		debugPrint(dst, l, 4+pad, 4+pad+i*lineH)
	}
}

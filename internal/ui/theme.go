package ui

import (
	"image/color"

	"github.com/esteban/piano/core/engine"
)

var (
	colBackground   = color.RGBA{255, 255, 255, 255}
	colKeyBlack     = color.RGBA{0, 0, 0, 255}
	colBlackPressed = color.RGBA{0xcc, 0xcc, 0xcc, 255}
	colKeyOutline   = color.RGBA{0, 0, 0, 255}
	colWhitePressed = color.RGBA{0x44, 0x44, 0x44, 255}

	colHintBox = color.RGBA{20, 20, 30, 200}
)

// keyPalette returns the key colours for a window of the given width.
// Outlines get thicker on wide windows.
func keyPalette(width int) engine.Palette {
	stroke := float64(width) / 350
	if stroke < 1 {
		stroke = 1
	}
	return engine.Palette{
		Background:   colBackground,
		Black:        colKeyBlack,
		BlackPressed: colBlackPressed,
		WhiteStroke:  colKeyOutline,
		WhitePressed: colWhitePressed,
		StrokeWidth:  stroke,
	}
}

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	cursorPosition          = ebiten.CursorPosition
	isMouseButtonPressed    = ebiten.IsMouseButtonPressed
	isKeyPressed            = ebiten.IsKeyPressed
	isKeyJustPressed        = inpututil.IsKeyJustPressed
	appendTouchIDs          = ebiten.AppendTouchIDs
	touchPosition           = ebiten.TouchPosition
	appendJustReleasedTouch = inpututil.AppendJustReleasedTouchIDs
	prevTouchPosition       = inpututil.TouchPositionInPreviousTick
)

// Input holds replacements for the ebiten input functions. Nil fields
// report no input.
type Input struct {
	Cursor       func() (int, int)
	Mouse        func(ebiten.MouseButton) bool
	Key          func(ebiten.Key) bool
	KeyJust      func(ebiten.Key) bool
	Touches      func([]ebiten.TouchID) []ebiten.TouchID
	TouchPos     func(ebiten.TouchID) (int, int)
	Released     func([]ebiten.TouchID) []ebiten.TouchID
	PrevTouchPos func(ebiten.TouchID) (int, int)
}

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(in Input) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldKeyJust := isKeyJustPressed
	oldTouches := appendTouchIDs
	oldTouchPos := touchPosition
	oldReleased := appendJustReleasedTouch
	oldPrev := prevTouchPosition

	noKey := func(ebiten.Key) bool { return false }
	noTouchPos := func(ebiten.TouchID) (int, int) { return 0, 0 }
	noIDs := func(ids []ebiten.TouchID) []ebiten.TouchID { return ids }

	cursorPosition = func() (int, int) { return 0, 0 }
	if in.Cursor != nil {
		cursorPosition = in.Cursor
	}
	isMouseButtonPressed = func(ebiten.MouseButton) bool { return false }
	if in.Mouse != nil {
		isMouseButtonPressed = in.Mouse
	}
	isKeyPressed = noKey
	if in.Key != nil {
		isKeyPressed = in.Key
	}
	isKeyJustPressed = noKey
	if in.KeyJust != nil {
		isKeyJustPressed = in.KeyJust
	}
	appendTouchIDs = noIDs
	if in.Touches != nil {
		appendTouchIDs = in.Touches
	}
	touchPosition = noTouchPos
	if in.TouchPos != nil {
		touchPosition = in.TouchPos
	}
	appendJustReleasedTouch = noIDs
	if in.Released != nil {
		appendJustReleasedTouch = in.Released
	}
	prevTouchPosition = noTouchPos
	if in.PrevTouchPos != nil {
		prevTouchPosition = in.PrevTouchPos
	}
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		isKeyJustPressed = oldKeyJust
		appendTouchIDs = oldTouches
		touchPosition = oldTouchPos
		appendJustReleasedTouch = oldReleased
		prevTouchPosition = oldPrev
	}
}

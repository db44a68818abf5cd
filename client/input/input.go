package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// Keyboard confirm keys and gamepad A/B are accepted. Mouse and touch are left to the GUI.
func IsPositiveJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, g := range gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightRight) {
				return true
			}
		} else {
			// The button 0/1 might not be A/B buttons.
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
				return true
			}
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton1) {
				return true
			}
		}
	}
	return false
}

// IsDebugJustPressed toggles the debug overlay.
func IsDebugJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF3)
}

// CursorDrag tracks cursor movement while the left mouse button is held.
// It is used for orbit camera controls.
type CursorDrag struct {
	lastX, lastY int
	dragging     bool
}

func (d *CursorDrag) Delta() (dx, dy int) {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		d.dragging = false
		return 0, 0
	}
	x, y := ebiten.CursorPosition()
	if !d.dragging {
		d.dragging = true
		d.lastX, d.lastY = x, y
		return 0, 0
	}
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return dx, dy
}

// Reset forgets any drag in progress.
func (d *CursorDrag) Reset() {
	d.dragging = false
}

// WheelDelta returns the vertical wheel movement of this tick.
func WheelDelta() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

package input

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// Gamepad classes.
const (
	ClassXbox360  = "xbox360"
	ClassStandard = "standard"
)

// Xbox360Input maps raw Xbox 360 pad state to controls: steer from the left
// stick's X axis (right turns clockwise), gas from the right trigger, which
// rests at -1, and shoot from button 0.
func Xbox360Input(stickX, trigger float64, button0 bool) game.Input {
	return game.Input{
		Steer: -stickX,
		Gas:   (trigger + 1) / 2,
		Shoot: button0,
	}.Clamp()
}

// StandardInput maps a standard-layout pad: left stick X, right trigger
// value in [0,1] and the bottom face button.
func StandardInput(stickX, trigger float64, bottom bool) game.Input {
	return game.Input{
		Steer: -stickX,
		Gas:   trigger,
		Shoot: bottom,
	}.Clamp()
}

// Xbox360Pad reads an Xbox 360 controller through its raw axes.
type Xbox360Pad struct {
	ID ebiten.GamepadID
}

func (p *Xbox360Pad) Poll() game.Input {
	return Xbox360Input(
		ebiten.GamepadAxisValue(p.ID, 0),
		ebiten.GamepadAxisValue(p.ID, 4),
		ebiten.IsGamepadButtonPressed(p.ID, ebiten.GamepadButton0),
	)
}

func (p *Xbox360Pad) Class() string { return ClassXbox360 }

// StandardPad reads any pad ebiten maps to the standard layout.
type StandardPad struct {
	ID ebiten.GamepadID
}

func (p *StandardPad) Poll() game.Input {
	return StandardInput(
		ebiten.StandardGamepadAxisValue(p.ID, ebiten.StandardGamepadAxisLeftStickHorizontal),
		ebiten.StandardGamepadButtonValue(p.ID, ebiten.StandardGamepadButtonFrontBottomRight),
		ebiten.IsStandardGamepadButtonPressed(p.ID, ebiten.StandardGamepadButtonRightBottom),
	)
}

func (p *StandardPad) Class() string { return ClassStandard }

// Classify picks a profile for a pad from its name and layout support.
// Unrecognized pads return "".
func Classify(name string, standard bool) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "xbox 360") || strings.Contains(lower, "x-box 360") {
		return ClassXbox360
	}
	if standard {
		return ClassStandard
	}
	return ""
}

// NewGamepad returns the source for a pad class, or nil if the class is unknown.
func NewGamepad(class string, id ebiten.GamepadID) game.InputSource {
	switch class {
	case ClassXbox360:
		return &Xbox360Pad{ID: id}
	case ClassStandard:
		return &StandardPad{ID: id}
	}
	return nil
}

// Package input turns ebiten keyboard and gamepad state into the
// normalized controls the simulation consumes. Each device class is its
// own game.InputSource.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// KeyMap assigns keys to controls. Any key of a group activates it.
type KeyMap struct {
	Name   string
	Left   []ebiten.Key
	Right  []ebiten.Key
	Thrust []ebiten.Key
	Fire   []ebiten.Key
}

// ArrowKeys steers with the arrows and fires with space.
var ArrowKeys = KeyMap{
	Name:   "arrows",
	Left:   []ebiten.Key{ebiten.KeyArrowLeft},
	Right:  []ebiten.Key{ebiten.KeyArrowRight},
	Thrust: []ebiten.Key{ebiten.KeyArrowUp},
	Fire:   []ebiten.Key{ebiten.KeySpace},
}

// WASDKeys is a second keyboard seat on the left hand.
var WASDKeys = KeyMap{
	Name:   "wasd",
	Left:   []ebiten.Key{ebiten.KeyA},
	Right:  []ebiten.Key{ebiten.KeyD},
	Thrust: []ebiten.Key{ebiten.KeyW},
	Fire:   []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyTab},
}

// Keyboard is an InputSource reading one KeyMap.
type Keyboard struct {
	keys    KeyMap
	pressed func(ebiten.Key) bool
}

// NewKeyboard creates a keyboard source for the given key map.
func NewKeyboard(keys KeyMap) *Keyboard {
	return &Keyboard{keys: keys, pressed: ebiten.IsKeyPressed}
}

// Poll reads the current key state.
func (k *Keyboard) Poll() game.Input {
	var in game.Input
	if k.any(k.keys.Left) {
		in.Steer++
	}
	if k.any(k.keys.Right) {
		in.Steer--
	}
	if k.any(k.keys.Thrust) {
		in.Gas = 1
	}
	in.Shoot = k.any(k.keys.Fire)
	return in
}

// Class identifies the device class.
func (k *Keyboard) Class() string { return "keyboard/" + k.keys.Name }

func (k *Keyboard) any(keys []ebiten.Key) bool {
	for _, key := range keys {
		if k.pressed(key) {
			return true
		}
	}
	return false
}

// QuitRequested reports whether Q was pressed this frame.
func QuitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

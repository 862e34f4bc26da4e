package input

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// Registrar accepts new controllers. *game.Engine satisfies it.
type Registrar interface {
	AddController(src game.InputSource) (int, error)
}

// Discovery registers gamepads as they appear. ebiten reports pads lazily,
// so Sync is called every frame rather than once at startup. Pads are
// never unregistered; a disconnected pad reads as neutral.
type Discovery struct {
	known map[ebiten.GamepadID]bool
	ids   []ebiten.GamepadID

	gamepadIDs func([]ebiten.GamepadID) []ebiten.GamepadID
	name       func(ebiten.GamepadID) string
	standard   func(ebiten.GamepadID) bool
}

// NewDiscovery creates a discovery backed by ebiten.
func NewDiscovery() *Discovery {
	return &Discovery{
		known:      make(map[ebiten.GamepadID]bool),
		gamepadIDs: ebiten.AppendGamepadIDs,
		name:       ebiten.GamepadName,
		standard:   ebiten.IsStandardGamepadLayoutAvailable,
	}
}

// Sync registers every pad not seen before. Returns how many were added.
func (d *Discovery) Sync(reg Registrar) int {
	d.ids = d.gamepadIDs(d.ids[:0])

	added := 0
	for _, id := range d.ids {
		if d.known[id] {
			continue
		}
		d.known[id] = true

		name := d.name(id)
		class := Classify(name, d.standard(id))
		if class == "" {
			log.Printf("🎮 Ignoring unrecognized gamepad %d (%s)", id, name)
			continue
		}
		if _, err := reg.AddController(NewGamepad(class, id)); err != nil {
			log.Printf("⚠️ Gamepad %d (%s) not added: %v", id, name, err)
			continue
		}
		log.Printf("🎮 Gamepad %d connected: %s as %s", id, name, class)
		added++
	}
	return added
}

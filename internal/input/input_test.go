package input

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
)

// TestXbox360Input verifies the raw-axis mapping and clamping
func TestXbox360Input(t *testing.T) {
	tests := []struct {
		name    string
		stickX  float64
		trigger float64
		button  bool
		want    game.Input
	}{
		{"at rest", 0, -1, false, game.Input{Steer: 0, Gas: 0}},
		{"full right, full trigger", 1, 1, true, game.Input{Steer: -1, Gas: 1, Shoot: true}},
		{"half left, half trigger", -0.5, 0, false, game.Input{Steer: 0.5, Gas: 0.5}},
		{"overshoot clamps", -1.2, 1.5, false, game.Input{Steer: 1, Gas: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Xbox360Input(tt.stickX, tt.trigger, tt.button)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestStandardInput verifies the standard-layout mapping
func TestStandardInput(t *testing.T) {
	got := StandardInput(0.25, 0.75, true)
	want := game.Input{Steer: -0.25, Gas: 0.75, Shoot: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got := StandardInput(0, -0.1, false); got.Gas != 0 {
		t.Errorf("negative trigger should clamp to 0, got %v", got.Gas)
	}
}

// TestClassify verifies pad profile selection
func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		standard bool
		want     string
	}{
		{"Microsoft X-Box 360 pad", false, ClassXbox360},
		{"Xbox 360 Controller", true, ClassXbox360},
		{"Xbox 360 Wireless Receiver", false, ClassXbox360},
		{"Sony DualShock 4", true, ClassStandard},
		{"Generic USB Joystick", false, ""},
	}
	for _, tt := range tests {
		if got := Classify(tt.name, tt.standard); got != tt.want {
			t.Errorf("Classify(%q, %v) = %q, want %q", tt.name, tt.standard, got, tt.want)
		}
	}
	if NewGamepad("", 0) != nil {
		t.Error("unknown class should have no source")
	}
	if NewGamepad(ClassXbox360, 3).Class() != ClassXbox360 {
		t.Error("xbox360 source has wrong class")
	}
}

// TestKeyboardPoll verifies key maps produce clamped controls
func TestKeyboardPoll(t *testing.T) {
	held := map[ebiten.Key]bool{}
	k := NewKeyboard(ArrowKeys)
	k.pressed = func(key ebiten.Key) bool { return held[key] }

	if got := k.Poll(); got != (game.Input{}) {
		t.Errorf("no keys: got %+v", got)
	}

	held[ebiten.KeyArrowLeft] = true
	held[ebiten.KeyArrowUp] = true
	held[ebiten.KeySpace] = true
	if got, want := k.Poll(), (game.Input{Steer: 1, Gas: 1, Shoot: true}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	held[ebiten.KeyArrowRight] = true
	if got := k.Poll(); got.Steer != 0 {
		t.Errorf("opposite keys should cancel, got steer %v", got.Steer)
	}

	if k.Class() != "keyboard/arrows" {
		t.Errorf("class = %q", k.Class())
	}
}

// TestScriptLoops verifies a script replays its steps in order
func TestScriptLoops(t *testing.T) {
	s := NewScript(
		Step{Input: game.Input{Shoot: true}, Ticks: 1},
		Step{Input: game.Input{Gas: 2}, Ticks: 2},
		Step{Ticks: 0},
	)

	want := []game.Input{
		{Shoot: true},
		{Gas: 1},
		{Gas: 1},
		{Shoot: true},
	}
	for i, w := range want {
		if got := s.Poll(); got != w {
			t.Errorf("poll %d: got %+v, want %+v", i, got, w)
		}
	}

	if got := NewScript().Poll(); got != (game.Input{}) {
		t.Errorf("empty script should be neutral, got %+v", got)
	}
}

type fakeRegistrar struct {
	added []game.InputSource
	limit int
}

func (f *fakeRegistrar) AddController(src game.InputSource) (int, error) {
	if len(f.added) >= f.limit {
		return -1, errors.New("full")
	}
	f.added = append(f.added, src)
	return len(f.added) - 1, nil
}

// TestDiscoverySync verifies pads are registered once, as they appear
func TestDiscoverySync(t *testing.T) {
	connected := []ebiten.GamepadID{0}
	names := map[ebiten.GamepadID]string{0: "Xbox 360 Controller", 1: "Unknown Pad", 2: "8BitDo"}
	standard := map[ebiten.GamepadID]bool{2: true}

	d := NewDiscovery()
	d.gamepadIDs = func(ids []ebiten.GamepadID) []ebiten.GamepadID { return append(ids, connected...) }
	d.name = func(id ebiten.GamepadID) string { return names[id] }
	d.standard = func(id ebiten.GamepadID) bool { return standard[id] }

	reg := &fakeRegistrar{limit: 8}

	if n := d.Sync(reg); n != 1 {
		t.Fatalf("first sync added %d, want 1", n)
	}
	if n := d.Sync(reg); n != 0 {
		t.Errorf("repeat sync added %d, want 0", n)
	}

	connected = append(connected, 1, 2)
	if n := d.Sync(reg); n != 1 {
		t.Errorf("hot-plug sync added %d, want 1", n)
	}

	if len(reg.added) != 2 || reg.added[0].Class() != ClassXbox360 || reg.added[1].Class() != ClassStandard {
		t.Errorf("unexpected sources %+v", reg.added)
	}
}

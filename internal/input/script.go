package input

import "github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"

// Step holds one input for a number of ticks.
type Step struct {
	Input game.Input
	Ticks int
}

// Script replays a fixed input sequence in a loop. Used by the headless
// soak run, where no device is attached.
type Script struct {
	steps []Step
	pos   int
	left  int
}

// NewScript creates a looping script. Steps with no ticks are skipped.
func NewScript(steps ...Step) *Script {
	kept := make([]Step, 0, len(steps))
	for _, s := range steps {
		if s.Ticks > 0 {
			s.Input = s.Input.Clamp()
			kept = append(kept, s)
		}
	}
	s := &Script{steps: kept}
	if len(kept) > 0 {
		s.left = kept[0].Ticks
	}
	return s
}

// DefaultPatrol fires, thrusts and turns in a repeating pattern.
func DefaultPatrol() *Script {
	return NewScript(
		Step{Input: game.Input{Shoot: true}, Ticks: 1},
		Step{Input: game.Input{Gas: 1}, Ticks: 30},
		Step{Input: game.Input{Steer: 1, Shoot: true}, Ticks: 15},
		Step{Input: game.Input{Gas: 0.5, Steer: -0.5, Shoot: true}, Ticks: 45},
		Step{Input: game.Input{}, Ticks: 20},
	)
}

// Poll returns the current step's input and advances by one tick.
func (s *Script) Poll() game.Input {
	if len(s.steps) == 0 {
		return game.Input{}
	}
	in := s.steps[s.pos].Input
	s.left--
	if s.left <= 0 {
		s.pos = (s.pos + 1) % len(s.steps)
		s.left = s.steps[s.pos].Ticks
	}
	return in
}

func (s *Script) Class() string { return "script" }

package game

import (
	"fmt"
	"math"
)

// InputSource is one input device. Poll is called once per tick and must
// return values already clamped to Input's ranges.
type InputSource interface {
	Poll() Input
	Class() string // "keyboard", "xbox360", ...
}

// ControllerState is the binding state of a controller.
type ControllerState uint8

const (
	Unbound ControllerState = iota
	Bound
)

func (s ControllerState) String() string {
	if s == Bound {
		return "bound"
	}
	return "unbound"
}

// Controller ties an input source to at most one ship.
type Controller struct {
	ID     int
	Source InputSource
	State  ControllerState
	Ship   Handle // Valid only while Bound
	Last   Input  // Input polled this tick
}

// AddController registers an input source and returns its id.
func (w *World) AddController(src InputSource) (int, error) {
	if len(w.controllers) >= w.maxCtrl {
		return -1, fmt.Errorf("add %s controller: %w", src.Class(), ErrCapacityExhausted)
	}
	id := len(w.controllers)
	w.controllers = append(w.controllers, &Controller{ID: id, Source: src, Ship: NoHandle})
	return id, nil
}

// Controllers returns the registered controllers. The slice must not be
// modified.
func (w *World) Controllers() []*Controller {
	return w.controllers
}

// BindControllers polls every controller once. An unbound controller
// holding shoot gets a new ship if a slot is free; a bound controller
// whose ship is gone becomes unbound; otherwise its input is copied to
// its ship.
func (w *World) BindControllers() {
	for _, c := range w.controllers {
		in := c.Source.Poll()
		c.Last = in

		switch c.State {
		case Bound:
			s, ok := w.Store.Ships.Get(c.Ship)
			if !ok {
				w.unbind(c.ID)
				continue
			}
			s.Controls = in
		case Unbound:
			if in.Shoot {
				w.bind(c)
			}
		}
	}
}

func (w *World) bind(c *Controller) {
	h, s, err := w.Store.Ships.Allocate()
	if err != nil {
		w.slotExhausted(KindShip)
		return
	}
	*s = Ship{
		X:          w.rng.Float64() * w.Space.W,
		Y:          w.rng.Float64() * w.Space.H,
		A:          w.rng.Float64() * 2 * math.Pi,
		Controller: c.ID,
	}
	c.State = Bound
	c.Ship = h
	w.emit(Event{Type: EventTypeShipBound, Slot: h.Index, Controller: c.ID, X: s.X, Y: s.Y})
}

func (w *World) unbind(id int) {
	if id < 0 || id >= len(w.controllers) {
		return
	}
	c := w.controllers[id]
	if c.State != Bound {
		return
	}
	slot := c.Ship.Index
	c.State = Unbound
	c.Ship = NoHandle
	w.emit(Event{Type: EventTypeControllerUnbound, Slot: slot, Controller: id})
}

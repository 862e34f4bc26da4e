package game

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExhausted is returned when every slot of an arena is alive.
	ErrCapacityExhausted = errors.New("capacity exhausted")
	// ErrSlotInUse is returned by AllocateAt when the slot is already alive.
	ErrSlotInUse = errors.New("slot in use")
	// ErrStaleHandle is returned when a handle refers to a freed or reused slot.
	ErrStaleHandle = errors.New("stale handle")
)

// Handle addresses an entity in an Arena. The generation changes every time
// the slot is reused, so a handle kept past its entity's death never
// resolves to the newcomer.
type Handle struct {
	Index int
	Gen   uint32
}

// NoHandle is the zero handle; generation 0 is never issued.
var NoHandle = Handle{Index: -1}

// Valid reports whether h was ever issued by an arena.
func (h Handle) Valid() bool {
	return h.Index >= 0 && h.Gen > 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.Index, h.Gen)
}

type slot[T any] struct {
	alive bool
	gen   uint32
	value T
}

// Arena is a fixed-capacity slot table with liveness flags.
// Allocation scans linearly for the first dead slot; capacities are small.
type Arena[T any] struct {
	slots []slot[T]
	live  int
}

// NewArena creates an arena with the given fixed capacity.
func NewArena[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[T]{slots: make([]slot[T], capacity)}
}

// Cap returns the fixed capacity.
func (a *Arena[T]) Cap() int { return len(a.slots) }

// Len returns the number of alive entities.
func (a *Arena[T]) Len() int { return a.live }

// Full reports whether no slot is free.
func (a *Arena[T]) Full() bool { return a.live == len(a.slots) }

// Allocate claims the first dead slot. The slot's value is reset to the
// zero value, so nothing from a previous occupant leaks into the new one.
func (a *Arena[T]) Allocate() (Handle, *T, error) {
	for i := range a.slots {
		if !a.slots[i].alive {
			return a.claim(i)
		}
	}
	return NoHandle, nil, ErrCapacityExhausted
}

// AllocateAt claims a specific slot, used where slots are paired by index
// (bullet i belongs to ship i).
func (a *Arena[T]) AllocateAt(i int) (Handle, *T, error) {
	if i < 0 || i >= len(a.slots) {
		return NoHandle, nil, fmt.Errorf("slot %d out of range [0,%d): %w", i, len(a.slots), ErrCapacityExhausted)
	}
	if a.slots[i].alive {
		return NoHandle, nil, ErrSlotInUse
	}
	return a.claim(i)
}

func (a *Arena[T]) claim(i int) (Handle, *T, error) {
	s := &a.slots[i]
	s.alive = true
	s.gen++
	if s.gen == 0 { // skip the never-issued generation on wraparound
		s.gen = 1
	}
	var zero T
	s.value = zero
	a.live++
	return Handle{Index: i, Gen: s.gen}, &s.value, nil
}

// Free clears the alive flag of the entity h refers to.
func (a *Arena[T]) Free(h Handle) error {
	if !a.Alive(h) {
		return ErrStaleHandle
	}
	a.slots[h.Index].alive = false
	a.live--
	return nil
}

// FreeAt clears the alive flag of slot i regardless of generation.
// Returns false if the slot was already dead.
func (a *Arena[T]) FreeAt(i int) bool {
	if i < 0 || i >= len(a.slots) || !a.slots[i].alive {
		return false
	}
	a.slots[i].alive = false
	a.live--
	return true
}

// Alive reports whether h still refers to a live entity.
func (a *Arena[T]) Alive(h Handle) bool {
	if h.Index < 0 || h.Index >= len(a.slots) {
		return false
	}
	s := &a.slots[h.Index]
	return s.alive && s.gen == h.Gen
}

// Get resolves a handle. It fails for freed or reused slots.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if !a.Alive(h) {
		return nil, false
	}
	return &a.slots[h.Index].value, true
}

// At returns the entity in slot i if it is alive.
func (a *Arena[T]) At(i int) (*T, bool) {
	if i < 0 || i >= len(a.slots) || !a.slots[i].alive {
		return nil, false
	}
	return &a.slots[i].value, true
}

// HandleAt returns the current handle of slot i, or NoHandle if it is dead.
func (a *Arena[T]) HandleAt(i int) Handle {
	if i < 0 || i >= len(a.slots) || !a.slots[i].alive {
		return NoHandle
	}
	return Handle{Index: i, Gen: a.slots[i].gen}
}

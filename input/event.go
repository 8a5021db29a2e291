// Package input models touch input as an ordered stream of pointer events and
// provides the desktop plumbing that produces it: a mouse-to-touch emulator
// and a dispatcher goroutine that delivers events in arrival order.
package input

import (
	"fmt"
	"time"
)

// Action is the kind of pointer transition an Event describes.
type Action int

const (
	// ActionDown starts a touch sequence with its first pointer.
	ActionDown Action = iota
	// ActionPointerDown adds a pointer to an active sequence.
	ActionPointerDown
	// ActionMove reports new positions for every active pointer.
	ActionMove
	// ActionPointerUp removes a non-last pointer; it is still listed in the event.
	ActionPointerUp
	// ActionUp ends the sequence as the last pointer lifts.
	ActionUp
	// ActionCancel aborts the sequence.
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionPointerDown:
		return "pointer-down"
	case ActionMove:
		return "move"
	case ActionPointerUp:
		return "pointer-up"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Pointer is one contact point in surface pixels, y growing downward.
type Pointer struct {
	ID   int
	X, Y float64
}

// Event is a snapshot of all pointers at one transition.
type Event struct {
	Action Action
	// Pointers lists every pointer down during the event, including the one
	// going up for ActionPointerUp and ActionUp.
	Pointers []Pointer
	// ActionIndex is the index in Pointers of the pointer that went down or
	// up. It is 0 for other actions.
	ActionIndex int
	// Time is the event timestamp relative to an arbitrary origin.
	Time time.Duration
}

// X is the primary pointer's x coordinate.
func (e Event) X() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].X
}

// Y is the primary pointer's y coordinate.
func (e Event) Y() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].Y
}


// Lifting reports whether the pointer at index i is leaving in this event.
func (e Event) Lifting(i int) bool {
	return (e.Action == ActionPointerUp || e.Action == ActionUp) && e.ActionIndex == i
}

// Remaining returns the pointers still down after the event is applied.
func (e Event) Remaining() []Pointer {
	switch e.Action {
	case ActionUp, ActionCancel:
		return nil
	case ActionPointerUp:
		out := make([]Pointer, 0, len(e.Pointers))
		for i, p := range e.Pointers {
			if i != e.ActionIndex {
				out = append(out, p)
			}
		}
		return out
	}
	return e.Pointers
}

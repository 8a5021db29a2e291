package input

import (
	"context"
	gomath "math"
	"sync"
	"testing"
	"time"
)

func record() (*[]Event, func(Event)) {
	var events []Event
	return &events, func(e Event) { events = append(events, e) }
}

func actions(events []Event) []Action {
	out := make([]Action, len(events))
	for i, e := range events {
		out[i] = e.Action
	}
	return out
}

func equalActions(a, b []Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEmulatorLeftDrag(t *testing.T) {
	events, sink := record()
	m := NewMouseEmulator(sink, func() time.Duration { return 0 })

	m.CursorMoved(10, 20)
	m.MouseButton(MouseLeft, true)
	m.CursorMoved(15, 30)
	m.MouseButton(MouseLeft, false)

	want := []Action{ActionDown, ActionMove, ActionUp}
	if got := actions(*events); !equalActions(got, want) {
		t.Fatalf("actions: expected %v, got %v", want, got)
	}
	if e := (*events)[1]; e.X() != 15 || e.Y() != 30 {
		t.Errorf("move position: expected (15,30), got (%v,%v)", e.X(), e.Y())
	}
}

func TestEmulatorScrollIsPinch(t *testing.T) {
	events, sink := record()
	m := NewMouseEmulator(sink, nil)
	m.CursorMoved(400, 300)
	m.Scrolled(1)

	want := []Action{ActionDown, ActionPointerDown, ActionMove, ActionPointerUp, ActionUp}
	if got := actions(*events); !equalActions(got, want) {
		t.Fatalf("actions: expected %v, got %v", want, got)
	}
	move := (*events)[2]
	span := move.Pointers[1].X - move.Pointers[0].X
	if want := 2 * PinchRadius * ScrollZoomStep; span < want-1e-9 || span > want+1e-9 {
		t.Errorf("pinch span: expected %v, got %v", want, span)
	}
	if (*events)[3].ActionIndex != 1 {
		t.Errorf("pointer-up index: expected 1, got %d", (*events)[3].ActionIndex)
	}
}

func TestEmulatorScrollIgnoredDuringDrag(t *testing.T) {
	events, sink := record()
	m := NewMouseEmulator(sink, nil)
	m.MouseButton(MouseLeft, true)
	m.Scrolled(2)
	if len(*events) != 1 {
		t.Errorf("expected only the down event, got %v", actions(*events))
	}
}

func TestEmulatorRightDragTwists(t *testing.T) {
	events, sink := record()
	m := NewMouseEmulator(sink, nil)
	m.CursorMoved(100, 100)
	m.MouseButton(MouseRight, true)
	m.CursorMoved(200, 100)
	m.MouseButton(MouseRight, false)

	want := []Action{ActionDown, ActionPointerDown, ActionMove, ActionPointerUp, ActionUp}
	if got := actions(*events); !equalActions(got, want) {
		t.Fatalf("actions: expected %v, got %v", want, got)
	}
	move := (*events)[2]
	cx := (move.Pointers[0].X + move.Pointers[1].X) / 2
	cy := (move.Pointers[0].Y + move.Pointers[1].Y) / 2
	if gomath.Abs(cx-100) > 1e-9 || gomath.Abs(cy-100) > 1e-9 {
		t.Errorf("twist centre: expected (100,100), got (%v,%v)", cx, cy)
	}
}

func TestEventRemaining(t *testing.T) {
	e := Event{
		Action:      ActionPointerUp,
		Pointers:    []Pointer{{ID: 0, X: 1}, {ID: 1, X: 2}, {ID: 2, X: 3}},
		ActionIndex: 1,
	}
	rem := e.Remaining()
	if len(rem) != 2 || rem[0].ID != 0 || rem[1].ID != 2 {
		t.Errorf("Remaining: expected ids [0 2], got %v", rem)
	}
	if !e.Lifting(1) || e.Lifting(0) {
		t.Error("Lifting: unexpected result")
	}
}

func TestDispatcherPreservesOrder(t *testing.T) {
	var mu sync.Mutex
	var got []time.Duration
	d := NewDispatcher(context.Background(), func(e Event) {
		mu.Lock()
		got = append(got, e.Time)
		mu.Unlock()
	}, 4)

	const n = 500
	for i := 0; i < n; i++ {
		if !d.Post(Event{Action: ActionMove, Time: time.Duration(i)}) {
			t.Fatalf("Post %d rejected", i)
		}
	}
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != n {
		t.Fatalf("delivered: expected %d, got %d", n, len(got))
	}
	for i, v := range got {
		if v != time.Duration(i) {
			t.Fatalf("event %d delivered out of order (got %v)", i, v)
		}
	}
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(context.Background(), func(Event) {}, 1)
	d.Close()
	d.Close()
	if d.Post(Event{}) {
		t.Error("Post after Close: expected false")
	}
}

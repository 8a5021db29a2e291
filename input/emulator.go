package input

import (
	gomath "math"
	"time"
)

// Mouse button indices, matching glfw.
const (
	MouseLeft  = 0
	MouseRight = 1
)

// Emulation tuning.
const (
	// PinchRadius is the half distance between the two synthetic pointers.
	PinchRadius = 120.0
	// ScrollZoomStep is the pinch scale applied per scroll notch.
	ScrollZoomStep = 1.15
	// RotateRadiansPerPixel converts horizontal right-drag distance to twist.
	RotateRadiansPerPixel = 0.01
)

// MouseEmulator turns mouse callbacks into touch events so the gesture
// pipeline can be driven from a desktop window:
//
//   - left drag is a single pointer (two quick clicks make a double tap)
//   - scroll is a pinch about the cursor
//   - right drag is a two finger twist about the press point
type MouseEmulator struct {
	sink  func(Event)
	clock func() time.Duration

	cursorX, cursorY float64

	left   bool
	right  bool
	anchor Pointer // twist centre
	startX float64
}

// NewMouseEmulator delivers synthesized events to sink. A nil clock uses the
// wall time since construction.
func NewMouseEmulator(sink func(Event), clock func() time.Duration) *MouseEmulator {
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}
	return &MouseEmulator{sink: sink, clock: clock}
}

// Active reports whether an emulated touch sequence is in progress.
func (m *MouseEmulator) Active() bool { return m.left || m.right }

// CursorMoved handles a cursor position callback.
func (m *MouseEmulator) CursorMoved(x, y float64) {
	m.cursorX, m.cursorY = x, y
	switch {
	case m.left:
		m.emit(ActionMove, 0, Pointer{ID: 0, X: x, Y: y})
	case m.right:
		a, b := m.twistPointers()
		m.emit(ActionMove, 0, a, b)
	}
}

// MouseButton handles a button press or release at the current cursor.
func (m *MouseEmulator) MouseButton(button int, pressed bool) {
	switch button {
	case MouseLeft:
		if m.right {
			return
		}
		p := Pointer{ID: 0, X: m.cursorX, Y: m.cursorY}
		if pressed && !m.left {
			m.left = true
			m.emit(ActionDown, 0, p)
		} else if !pressed && m.left {
			m.left = false
			m.emit(ActionUp, 0, p)
		}
	case MouseRight:
		if m.left {
			return
		}
		if pressed && !m.right {
			m.right = true
			m.anchor = Pointer{X: m.cursorX, Y: m.cursorY}
			m.startX = m.cursorX
			a, b := m.twistPointers()
			m.emit(ActionDown, 0, a)
			m.emit(ActionPointerDown, 1, a, b)
		} else if !pressed && m.right {
			a, b := m.twistPointers()
			m.emit(ActionPointerUp, 1, a, b)
			m.emit(ActionUp, 0, a)
			m.right = false
		}
	}
}

// Scrolled emits a complete pinch sequence centred on the cursor. Scrolling
// during another sequence is ignored.
func (m *MouseEmulator) Scrolled(yoff float64) {
	if m.Active() || yoff == 0 {
		return
	}
	factor := gomath.Pow(ScrollZoomStep, yoff)
	cx, cy := m.cursorX, m.cursorY
	pair := func(r float64) (Pointer, Pointer) {
		return Pointer{ID: 0, X: cx - r, Y: cy}, Pointer{ID: 1, X: cx + r, Y: cy}
	}
	a, b := pair(PinchRadius)
	m.emit(ActionDown, 0, a)
	m.emit(ActionPointerDown, 1, a, b)
	a, b = pair(PinchRadius * factor)
	m.emit(ActionMove, 0, a, b)
	m.emit(ActionPointerUp, 1, a, b)
	m.emit(ActionUp, 0, a)
}

func (m *MouseEmulator) twistPointers() (Pointer, Pointer) {
	angle := (m.cursorX - m.startX) * RotateRadiansPerPixel
	dx := PinchRadius * gomath.Cos(angle)
	dy := PinchRadius * gomath.Sin(angle)
	return Pointer{ID: 0, X: m.anchor.X - dx, Y: m.anchor.Y - dy},
		Pointer{ID: 1, X: m.anchor.X + dx, Y: m.anchor.Y + dy}
}

func (m *MouseEmulator) emit(action Action, index int, pointers ...Pointer) {
	m.sink(Event{Action: action, Pointers: pointers, ActionIndex: index, Time: m.clock()})
}

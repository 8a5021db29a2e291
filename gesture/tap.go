package gesture

import (
	gomath "math"
	"time"

	"fractal-explorer/input"
)

// Tap recognition thresholds.
const (
	DoubleTapTimeout = 300 * time.Millisecond
	// TouchSlop is how far a pointer may wander and still count as a tap.
	TouchSlop = 16.0
	// DoubleTapSlop is the maximum distance between the two downs of a
	// double tap.
	DoubleTapSlop = 100.0
)

// TapResult is what a TapDetector reports for one event.
type TapResult int

const (
	TapNone TapResult = iota
	// TapSingleConfirmed means the previous tap will not become a double tap.
	TapSingleConfirmed
	// TapDouble is reported on the second down of a double tap.
	TapDouble
	// TapDoubleEvent is reported for the moves and up that follow TapDouble.
	TapDoubleEvent
)

// TapDetector recognizes single and double taps. Single taps are confirmed
// lazily: by Expire once the timeout has passed, or by the next down that
// arrives too late to pair with them.
type TapDetector struct {
	down      bool
	firstDown input.Pointer
	downTime  time.Duration
	inTapArea bool

	pending    bool // a finished tap waiting for a possible second one
	pendingPos input.Pointer
	pendingUp  time.Duration

	doubleTapping bool
}

// OnTouchEvent feeds e to the detector.
func (d *TapDetector) OnTouchEvent(e input.Event) TapResult {
	switch e.Action {
	case input.ActionDown:
		p := e.Pointers[0]
		result := TapNone
		if d.pending {
			if e.Time-d.pendingUp <= DoubleTapTimeout && dist(p, d.pendingPos) < DoubleTapSlop {
				d.pending = false
				d.doubleTapping = true
				result = TapDouble
			} else {
				d.pending = false
				result = TapSingleConfirmed
			}
		}
		d.down = true
		d.firstDown = p
		d.downTime = e.Time
		d.inTapArea = true
		return result
	case input.ActionPointerDown:
		d.cancel()
		return TapNone
	case input.ActionMove:
		if !d.down {
			return TapNone
		}
		if d.inTapArea && dist(e.Pointers[0], d.firstDown) > TouchSlop {
			d.inTapArea = false
		}
		if d.doubleTapping {
			return TapDoubleEvent
		}
		return TapNone
	case input.ActionUp:
		if !d.down {
			return TapNone
		}
		d.down = false
		if d.doubleTapping {
			d.doubleTapping = false
			return TapDoubleEvent
		}
		if d.inTapArea {
			d.pending = true
			d.pendingPos = d.firstDown
			d.pendingUp = e.Time
		}
		return TapNone
	case input.ActionCancel:
		d.cancel()
		d.pending = false
	}
	return TapNone
}

// Expire confirms a pending single tap once now is past the double tap
// window.
func (d *TapDetector) Expire(now time.Duration) TapResult {
	if d.pending && now-d.pendingUp > DoubleTapTimeout {
		d.pending = false
		return TapSingleConfirmed
	}
	return TapNone
}

func (d *TapDetector) cancel() {
	d.down = false
	d.inTapArea = false
	d.doubleTapping = false
}

func dist(a, b input.Pointer) float64 {
	return gomath.Hypot(a.X-b.X, a.Y-b.Y)
}

// Package gesture recognizes pinch, twist and tap gestures from an ordered
// touch stream and routes them onto a view transform.
package gesture

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"fractal-explorer/input"
)

// ScalePhase is what a ScaleDetector reports for one event.
type ScalePhase int

const (
	ScaleIdle ScalePhase = iota
	ScaleBegin
	ScaleStep
	ScaleEnd
)

// ScaleDetector tracks a pinch between two or more pointers.
//
// The focus is the mean position of the pointers that remain down after an
// event and the span is their mean distance to the focus. Any change in the
// pointer set re-baselines the span, so adding or lifting a finger never
// produces a jump in the scale factor.
type ScaleDetector struct {
	inProgress bool
	focus      mgl64.Vec2
	span       float64
	prevSpan   float64
	factor     float64
}

// OnTouchEvent feeds e to the detector.
func (d *ScaleDetector) OnTouchEvent(e input.Event) ScalePhase {
	switch e.Action {
	case input.ActionMove:
		if !d.inProgress {
			return ScaleIdle
		}
		d.focus, d.span = configuration(e.Pointers)
		d.factor = 1
		if d.prevSpan > 0 && d.span > 0 {
			d.factor = d.span / d.prevSpan
		}
		d.prevSpan = d.span
		return ScaleStep
	case input.ActionCancel:
		return d.end()
	}

	pts := e.Remaining()
	if len(pts) < 2 {
		return d.end()
	}
	d.focus, d.span = configuration(pts)
	d.prevSpan = d.span
	d.factor = 1
	d.inProgress = true
	return ScaleBegin
}

func (d *ScaleDetector) end() ScalePhase {
	was := d.inProgress
	d.inProgress = false
	d.span, d.prevSpan, d.factor = 0, 0, 1
	if was {
		return ScaleEnd
	}
	return ScaleIdle
}

// InProgress reports whether a pinch is underway.
func (d *ScaleDetector) InProgress() bool { return d.inProgress }

// Focus is the current pinch centre in surface pixels.
func (d *ScaleDetector) Focus() mgl64.Vec2 { return d.focus }

// ScaleFactor is the span ratio of the last step, 1 outside a step.
func (d *ScaleDetector) ScaleFactor() float64 {
	if d.factor == 0 {
		return 1
	}
	return d.factor
}

func configuration(pts []input.Pointer) (focus mgl64.Vec2, span float64) {
	if len(pts) == 0 {
		return mgl64.Vec2{}, 0
	}
	for _, p := range pts {
		focus = focus.Add(mgl64.Vec2{p.X, p.Y})
	}
	focus = focus.Mul(1 / float64(len(pts)))
	for _, p := range pts {
		span += gomath.Hypot(p.X-focus[0], p.Y-focus[1])
	}
	return focus, span / float64(len(pts))
}

package gesture

import (
	gomath "math"

	"fractal-explorer/input"
	fmath "fractal-explorer/math"
)

// RotateDetector measures the twist of the line from the first to the second
// pointer. Angles are in screen space, so a positive delta is clockwise on
// screen.
type RotateDetector struct {
	active    bool
	prevAngle float64
	lifetime  float64
}

// OnTouchEvent feeds e to the detector and reports whether LifetimeRotation
// changed.
func (d *RotateDetector) OnTouchEvent(e input.Event) bool {
	switch e.Action {
	case input.ActionMove:
		if !d.active || len(e.Pointers) < 2 {
			return false
		}
		angle := pairAngle(e.Pointers)
		delta := fmath.NormalizeAngle(angle - d.prevAngle)
		d.prevAngle = angle
		if delta == 0 {
			return false
		}
		d.lifetime += delta
		return true
	case input.ActionCancel:
		d.active = false
		return false
	}

	pts := e.Remaining()
	if len(pts) < 2 {
		d.active = false
		return false
	}
	d.active = true
	d.prevAngle = pairAngle(pts)
	return false
}

// Active reports whether at least two pointers are down.
func (d *RotateDetector) Active() bool { return d.active }

// LifetimeRotation is the accumulated twist in radians since creation.
func (d *RotateDetector) LifetimeRotation() float64 { return d.lifetime }

func pairAngle(pts []input.Pointer) float64 {
	return gomath.Atan2(pts[1].Y-pts[0].Y, pts[1].X-pts[0].X)
}
